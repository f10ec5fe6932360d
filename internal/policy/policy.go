// Package policy evaluates parsed kubectl commands against operator-defined
// guard rules and produces explainable allow/deny decisions.
package policy

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/giantswarm/mcp-kubectl-guard/internal/parser"
)

// Rules configures the guard policy. The zero value allows everything.
type Rules struct {
	// NonDestructiveMode blocks mutating verbs unless they are listed in
	// AllowedVerbs or the command carries --dry-run.
	NonDestructiveMode bool

	// AllowedVerbs are mutating verbs exempted from NonDestructiveMode.
	AllowedVerbs []string

	// RestrictedNamespaces are namespaces where mutating verbs are always
	// denied, regardless of the other rules.
	RestrictedNamespaces []string
}

// Decision is the outcome of evaluating one command.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// mutatingVerbs are the kubectl verbs that change cluster state or open an
// interactive channel into it. Everything else is treated as read-only.
var mutatingVerbs = map[string]bool{
	"create":       true,
	"apply":        true,
	"delete":       true,
	"patch":        true,
	"edit":         true,
	"replace":      true,
	"scale":        true,
	"autoscale":    true,
	"expose":       true,
	"run":          true,
	"set":          true,
	"label":        true,
	"annotate":     true,
	"rollout":      true,
	"exec":         true,
	"attach":       true,
	"debug":        true,
	"cp":           true,
	"port-forward": true,
	"drain":        true,
	"cordon":       true,
	"uncordon":     true,
	"taint":        true,
}

// Engine evaluates commands against a fixed rule set. An Engine holds only
// immutable lookup tables and is safe for concurrent use.
type Engine struct {
	rules      Rules
	allowed    map[string]bool
	restricted map[string]bool
	titler     cases.Caser
}

// NewEngine creates an Engine from the given rules.
func NewEngine(rules Rules) *Engine {
	allowed := make(map[string]bool, len(rules.AllowedVerbs))
	for _, v := range rules.AllowedVerbs {
		allowed[v] = true
	}
	restricted := make(map[string]bool, len(rules.RestrictedNamespaces))
	for _, ns := range rules.RestrictedNamespaces {
		restricted[ns] = true
	}
	return &Engine{
		rules:      rules,
		allowed:    allowed,
		restricted: restricted,
		titler:     cases.Title(language.English),
	}
}

// Rules returns a copy of the engine's rule set.
func (e *Engine) Rules() Rules {
	return e.rules
}

// IsMutating reports whether a verb changes cluster state.
func IsMutating(verb string) bool {
	return mutatingVerbs[verb]
}

// Evaluate decides whether the command may be forwarded to a cluster.
//
// Structurally invalid commands are always denied: the guard cannot vouch for
// a command it could not fully interpret. Restricted-namespace checks run
// before the non-destructive check so the more specific reason wins.
func (e *Engine) Evaluate(cmd *parser.ParsedCommand) Decision {
	if cmd == nil {
		return Decision{Allowed: false, Reason: "no command to evaluate"}
	}

	if !cmd.Valid {
		return Decision{
			Allowed: false,
			Reason:  fmt.Sprintf("command could not be fully interpreted: %s", cmd.ParseError),
		}
	}

	if !IsMutating(cmd.Verb) {
		return Decision{Allowed: true}
	}

	if cmd.Namespace != "" && e.restricted[cmd.Namespace] {
		return Decision{
			Allowed: false,
			Reason: fmt.Sprintf("%s operations are not allowed in restricted namespace %q",
				e.titler.String(cmd.Verb), cmd.Namespace),
		}
	}

	if !e.rules.NonDestructiveMode {
		return Decision{Allowed: true}
	}

	// --dry-run validates without applying, so it is always safe.
	if cmd.HasFlag("dry-run") {
		return Decision{Allowed: true}
	}

	if e.allowed[cmd.Verb] {
		return Decision{Allowed: true}
	}

	return Decision{
		Allowed: false,
		Reason: fmt.Sprintf("%s operations are not allowed in non-destructive mode (use --dry-run to validate without applying)",
			e.titler.String(cmd.Verb)),
	}
}
