package parser

// verbGrammar selects the positional-argument strategy for a verb family.
// kubectl does not use one uniform positional grammar: exec takes a pod name
// followed by a "--" command tail, cp takes source/destination paths, rollout
// and friends take a subcommand first. Each family is handled as its own case.
type verbGrammar int

const (
	// grammarResource is the common "verb [type] [name...]" shape
	// (get, describe, delete, label, annotate, scale, expose, ...).
	grammarResource verbGrammar = iota
	// grammarExec covers exec-like verbs: positionals are target names and
	// everything after "--" is the in-container command, kept verbatim.
	// Combined short boolean flags (-it) are expanded only for this family.
	grammarExec
	// grammarCopy covers cp: positionals are src/dest paths, no resource type.
	grammarCopy
	// grammarDirect covers verbs whose positionals are plain arguments with
	// no resource-type slot (logs, port-forward, apply).
	grammarDirect
	// grammarSubcommand covers verbs whose first positional is a subcommand
	// (rollout status, config use-context, auth can-i, ...).
	grammarSubcommand
)

// builtinVerbs maps every recognized kubectl verb to its positional grammar.
func builtinVerbs() map[string]verbGrammar {
	return map[string]verbGrammar{
		"get":            grammarResource,
		"describe":       grammarResource,
		"create":         grammarResource,
		"apply":          grammarDirect,
		"delete":         grammarResource,
		"edit":           grammarResource,
		"patch":          grammarResource,
		"replace":        grammarResource,
		"expose":         grammarResource,
		"run":            grammarResource,
		"set":            grammarResource,
		"explain":        grammarResource,
		"logs":           grammarDirect,
		"attach":         grammarExec,
		"exec":           grammarExec,
		"port-forward":   grammarDirect,
		"proxy":          grammarResource,
		"cp":             grammarCopy,
		"auth":           grammarSubcommand,
		"scale":          grammarResource,
		"autoscale":      grammarResource,
		"rollout":        grammarSubcommand,
		"label":          grammarResource,
		"annotate":       grammarResource,
		"completion":     grammarResource,
		"top":            grammarResource,
		"drain":          grammarResource,
		"cordon":         grammarResource,
		"uncordon":       grammarResource,
		"cluster-info":   grammarResource,
		"config":         grammarSubcommand,
		"plugin":         grammarSubcommand,
		"version":        grammarResource,
		"api-resources":  grammarResource,
		"api-versions":   grammarResource,
		"certificate":    grammarSubcommand,
		"wait":           grammarResource,
		"debug":          grammarExec,
		"taint":          grammarResource,
	}
}

// builtinAliases maps resource shorthand and plural spellings to the
// canonical kind stored in the structured result.
func builtinAliases() map[string]string {
	return map[string]string{
		// Core/v1 resources
		"pods":                   "pod",
		"pod":                    "pod",
		"po":                     "pod",
		"services":               "service",
		"service":                "service",
		"svc":                    "service",
		"nodes":                  "node",
		"node":                   "node",
		"no":                     "node",
		"namespaces":             "namespace",
		"namespace":              "namespace",
		"ns":                     "namespace",
		"configmaps":             "configmap",
		"configmap":              "configmap",
		"cm":                     "configmap",
		"secrets":                "secret",
		"secret":                 "secret",
		"endpoints":              "endpoints",
		"ep":                     "endpoints",
		"events":                 "event",
		"event":                  "event",
		"ev":                     "event",
		"persistentvolumes":      "persistentvolume",
		"persistentvolume":       "persistentvolume",
		"pv":                     "persistentvolume",
		"persistentvolumeclaims": "persistentvolumeclaim",
		"persistentvolumeclaim":  "persistentvolumeclaim",
		"pvc":                    "persistentvolumeclaim",
		"serviceaccounts":        "serviceaccount",
		"serviceaccount":         "serviceaccount",
		"sa":                     "serviceaccount",

		// Apps/v1 resources
		"deployments":  "deployment",
		"deployment":   "deployment",
		"deploy":       "deployment",
		"replicasets":  "replicaset",
		"replicaset":   "replicaset",
		"rs":           "replicaset",
		"daemonsets":   "daemonset",
		"daemonset":    "daemonset",
		"ds":           "daemonset",
		"statefulsets": "statefulset",
		"statefulset":  "statefulset",
		"sts":          "statefulset",

		// Batch resources
		"jobs":     "job",
		"job":      "job",
		"cronjobs": "cronjob",
		"cronjob":  "cronjob",
		"cj":       "cronjob",

		// Networking resources
		"ingresses":       "ingress",
		"ingress":         "ingress",
		"ing":             "ingress",
		"networkpolicies": "networkpolicy",
		"networkpolicy":   "networkpolicy",
		"netpol":          "networkpolicy",

		// RBAC resources
		"roles":               "role",
		"role":                "role",
		"rolebindings":        "rolebinding",
		"rolebinding":         "rolebinding",
		"clusterroles":        "clusterrole",
		"clusterrole":         "clusterrole",
		"clusterrolebindings": "clusterrolebinding",
		"clusterrolebinding":  "clusterrolebinding",

		// Autoscaling
		"horizontalpodautoscalers": "horizontalpodautoscaler",
		"horizontalpodautoscaler":  "horizontalpodautoscaler",
		"hpa":                      "horizontalpodautoscaler",

		// API extensions
		"customresourcedefinitions": "customresourcedefinition",
		"customresourcedefinition":  "customresourcedefinition",
		"crds":                      "customresourcedefinition",
		"crd":                       "customresourcedefinition",
	}
}

// flagKind describes how a flag consumes values.
type flagKind int

const (
	// flagSwitch is a boolean flag that consumes no following token. An
	// attached value (--dry-run=client) is still recorded when present.
	flagSwitch flagKind = iota
	// flagValued takes exactly one value, attached (--flag=v) or following
	// (--flag v). A repeated valued flag keeps the last occurrence.
	flagValued
	// flagRepeated accumulates every occurrence in order (-f a.yaml -f b.yaml).
	flagRepeated
	// flagSelector collects a possibly multi-token label selector expression.
	flagSelector
)

// flagSpec is the canonical description of one recognized flag spelling.
type flagSpec struct {
	// canonical is the key the flag is stored under in the result.
	canonical string
	kind      flagKind
}

// CanonicalNamespaceFlag is the result key that carries the namespace value.
const CanonicalNamespaceFlag = "namespace"

// CanonicalFilenameFlag is the result key for -f/--filename file references.
const CanonicalFilenameFlag = "filename"

// CanonicalSelectorFlag is the result key for -l/--selector expressions.
const CanonicalSelectorFlag = "selector"

// builtinFlags maps each recognized flag spelling (short and long) to its
// canonical name and value-consumption kind. Flags absent from this table are
// preserved under their own spelling so no information is lost.
func builtinFlags() map[string]flagSpec {
	return map[string]flagSpec{
		"-n":          {CanonicalNamespaceFlag, flagValued},
		"--namespace": {CanonicalNamespaceFlag, flagValued},

		"-f":          {CanonicalFilenameFlag, flagRepeated},
		"--filename":  {CanonicalFilenameFlag, flagRepeated},
		"-k":          {"kustomize", flagValued},
		"--kustomize": {"kustomize", flagValued},

		"-l":         {CanonicalSelectorFlag, flagSelector},
		"--selector": {CanonicalSelectorFlag, flagSelector},

		"-o":       {"output", flagValued},
		"--output": {"output", flagValued},

		"-c":          {"container", flagValued},
		"--container": {"container", flagValued},

		"-p":      {"patch", flagValued},
		"--patch": {"patch", flagValued},

		"-i":      {"i", flagSwitch},
		"--stdin": {"i", flagSwitch},
		"-t":      {"t", flagSwitch},
		"--tty":   {"t", flagSwitch},

		"-w":      {"watch", flagSwitch},
		"--watch": {"watch", flagSwitch},

		"--all":                  {"all", flagSwitch},
		"--all-namespaces":       {"all-namespaces", flagSwitch},
		"-A":                     {"all-namespaces", flagSwitch},
		"--follow":               {"follow", flagSwitch},
		"--previous":             {"previous", flagSwitch},
		"--timestamps":           {"timestamps", flagSwitch},
		"--dry-run":              {"dry-run", flagSwitch},
		"--force":                {"force", flagSwitch},
		"--ignore-not-found":     {"ignore-not-found", flagSwitch},
		"--ignore-daemonsets":    {"ignore-daemonsets", flagSwitch},
		"--delete-emptydir-data": {"delete-emptydir-data", flagSwitch},
		"--overwrite":            {"overwrite", flagSwitch},
		"--show-labels":          {"show-labels", flagSwitch},
		"--help":                 {"help", flagSwitch},
		"-h":                     {"help", flagSwitch},
		"--recursive":            {"recursive", flagSwitch},
		"-R":                     {"recursive", flagSwitch},
		"--cascade":              {"cascade", flagValued},

		"--tail":           {"tail", flagValued},
		"--since":          {"since", flagValued},
		"--sort-by":        {"sort-by", flagValued},
		"--field-selector": {"field-selector", flagValued},
		"--replicas":       {"replicas", flagValued},
		"--image":          {"image", flagValued},
		"--port":           {"port", flagValued},
		"--target-port":    {"target-port", flagValued},
		"--type":           {"type", flagValued},
		"--to-revision":    {"to-revision", flagValued},
		"--timeout":        {"timeout", flagValued},
		"--for":            {"for", flagValued},
		"--grace-period":   {"grace-period", flagValued},
		"--min":            {"min", flagValued},
		"--max":            {"max", flagValued},
		"--cpu-percent":    {"cpu-percent", flagValued},
		"--target":         {"target", flagValued},
		"--from-file":      {"from-file", flagRepeated},
		"--from-literal":   {"from-literal", flagRepeated},
		"--tcp":            {"tcp", flagRepeated},

		"--kubeconfig":            {"kubeconfig", flagValued},
		"--context":               {"context", flagValued},
		"--cluster":               {"cluster", flagValued},
		"--user":                  {"user", flagValued},
		"--token":                 {"token", flagValued},
		"--as":                    {"as", flagValued},
		"--as-group":              {"as-group", flagRepeated},
		"--server":                {"server", flagValued},
		"-s":                      {"server", flagValued},
		"--request-timeout":       {"request-timeout", flagValued},
		"--certificate-authority": {"certificate-authority", flagValued},
		"--client-certificate":    {"client-certificate", flagValued},
		"--client-key":            {"client-key", flagValued},
		"--cache-dir":             {"cache-dir", flagValued},
	}
}
