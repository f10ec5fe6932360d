package parser

// BaseCommand is the only CLI name the parser recognizes.
const BaseCommand = "kubectl"

// FlagValue holds the resolved value(s) of one canonical flag. Boolean
// switches carry no values; repeatable flags carry every occurrence in order;
// single-valued flags repeated on the command line keep only the last value.
type FlagValue struct {
	Values []string `json:"values,omitempty"`
}

// IsSwitch reports whether the flag was given without a value.
func (f FlagValue) IsSwitch() bool {
	return len(f.Values) == 0
}

// Value returns the effective single value: the last one given, or the empty
// string for a boolean switch.
func (f FlagValue) Value() string {
	if len(f.Values) == 0 {
		return ""
	}
	return f.Values[len(f.Values)-1]
}

// ParsedCommand is the immutable structured interpretation of one kubectl
// invocation. It is built in a single pass and never mutated afterwards, so a
// value may be shared freely across goroutines.
//
// Every populated field traces back to a literal token in RawTokens; the only
// transformations applied are documented normalizations (resource alias
// resolution, flag canonicalization, quote stripping).
type ParsedCommand struct {
	// BaseCommand is always "kubectl" for a successfully classified command.
	BaseCommand string `json:"baseCommand"`

	// Verb is the action keyword as given. VerbKnown is false when the verb
	// is not in the recognized set; the text is preserved either way.
	Verb      string `json:"verb,omitempty"`
	VerbKnown bool   `json:"verbKnown"`

	// Subcommand is the first positional of subcommand-style verbs
	// (rollout status, config use-context, auth can-i).
	Subcommand string `json:"subcommand,omitempty"`

	// ResourceType is the canonical resource kind, alias-resolved
	// ("po" and "pods" both become "pod"). Empty when the verb takes no
	// resource type or none was given.
	ResourceType string `json:"resourceType,omitempty"`

	// ResourceNames are the positional target names in original order.
	ResourceNames []string `json:"resourceNames,omitempty"`

	// Namespace is the value of -n/--namespace. Empty means the caller's
	// current namespace; the parser never injects a default.
	Namespace string `json:"namespace,omitempty"`

	// Flags maps canonical flag names to their values. Unrecognized flags are
	// kept under their literal spelling with leading dashes trimmed.
	Flags map[string]FlagValue `json:"flags,omitempty"`

	// Files are the -f/--filename arguments in original order.
	Files []string `json:"files,omitempty"`

	// CommandTail is everything after a bare "--" for exec-like verbs,
	// preserved verbatim and never reinterpreted as flags.
	CommandTail []string `json:"commandTail,omitempty"`

	// RawTokens is the tokenized input, retained for audit traceability.
	RawTokens []Token `json:"rawTokens"`

	// Valid is false when the command parsed but is structurally incomplete
	// or malformed; ParseError carries the reason. Consumers receive the
	// best-effort partial record either way.
	Valid      bool   `json:"isValid"`
	ParseError string `json:"parseError,omitempty"`
}

// Flag returns the value for a canonical flag name and whether it was given.
func (c *ParsedCommand) Flag(name string) (FlagValue, bool) {
	v, ok := c.Flags[name]
	return v, ok
}

// HasFlag reports whether the canonical flag name was given.
func (c *ParsedCommand) HasFlag(name string) bool {
	_, ok := c.Flags[name]
	return ok
}

// Selector returns the label selector expression, if one was given.
func (c *ParsedCommand) Selector() string {
	return c.Flags[CanonicalSelectorFlag].Value()
}

// IsFileDriven reports whether the command targets manifests via -f/--filename
// rather than an inline resource specification.
func (c *ParsedCommand) IsFileDriven() bool {
	return len(c.Files) > 0
}
