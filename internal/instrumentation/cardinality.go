package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.

// VerbOther is the normalized label value for verbs outside the recognized set.
const VerbOther = "other"

// NormalizeVerb returns a metrics-safe label value for a kubectl verb.
// Verbs come straight from untrusted command strings, so any spelling the
// parser did not recognize is collapsed to "other" instead of becoming a new
// label value. An empty verb is reported as "none".
func NormalizeVerb(verb string, known bool) string {
	if verb == "" {
		return "none"
	}
	if !known {
		return VerbOther
	}
	return strings.ToLower(verb)
}

// NamespaceClass classifies a namespace name into a coarse category for
// metrics. This keeps namespace-labelled metrics bounded even in clusters
// with thousands of namespaces.
//
//	NamespaceClass("")            // "none"
//	NamespaceClass("kube-system") // "system"
//	NamespaceClass("default")     // "default"
//	NamespaceClass("team-a")      // "user"
func NamespaceClass(namespace string) string {
	switch {
	case namespace == "":
		return "none"
	case namespace == "default":
		return "default"
	case strings.HasPrefix(namespace, "kube-"):
		return "system"
	case strings.HasSuffix(namespace, "-system"):
		return "system"
	default:
		return "user"
	}
}
