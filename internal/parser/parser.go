package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotKubectlCommand is returned when the first token of the input is not
// the recognized CLI name. No partial result is produced.
var ErrNotKubectlCommand = errors.New("not a kubectl command")

// ErrUnknownVerb is returned in strict-verbs mode when the verb is not in the
// recognized set. Outside strict mode the verb is preserved and the result is
// tagged invalid instead.
var ErrUnknownVerb = errors.New("unknown kubectl verb")

// Config adjusts the parser's built-in lookup tables.
type Config struct {
	// ExtraAliases are additional resource shorthand mappings merged over the
	// built-in alias table. Entries with the same key override the default.
	ExtraAliases map[string]string

	// StrictVerbs makes an unrecognized verb a hard parse failure instead of
	// a soft-invalid result.
	StrictVerbs bool
}

// Parser converts raw kubectl command strings into ParsedCommand records.
//
// A Parser holds only immutable lookup tables built at construction time and
// no per-call state, so a single instance is safe for concurrent use.
type Parser struct {
	verbs      map[string]verbGrammar
	aliases    map[string]string
	flags      map[string]flagSpec
	repeatable map[string]bool
	strict     bool
}

// New creates a Parser with the built-in tables adjusted by cfg.
func New(cfg Config) (*Parser, error) {
	aliases := builtinAliases()
	for alias, kind := range cfg.ExtraAliases {
		if alias == "" || kind == "" {
			return nil, fmt.Errorf("invalid resource alias %q -> %q: empty key or value", alias, kind)
		}
		aliases[alias] = kind
	}

	flags := builtinFlags()
	repeatable := make(map[string]bool)
	for _, spec := range flags {
		if spec.kind == flagRepeated {
			repeatable[spec.canonical] = true
		}
	}

	return &Parser{
		verbs:      builtinVerbs(),
		aliases:    aliases,
		flags:      flags,
		repeatable: repeatable,
		strict:     cfg.StrictVerbs,
	}, nil
}

// Parse tokenizes and classifies one kubectl invocation.
//
// Hard failures (ErrUnterminatedQuote, ErrNotKubectlCommand, and ErrUnknownVerb
// in strict mode) return a nil record. Everything else, including structurally
// incomplete commands, returns a best-effort record with Valid=false and a
// ParseError reason so downstream policy logic can still inspect it.
func (p *Parser) Parse(raw string) (*ParsedCommand, error) {
	tokens, err := Tokenize(raw)
	if err != nil {
		return nil, err
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrNotKubectlCommand)
	}
	if tokens[0].Value != BaseCommand {
		return nil, fmt.Errorf("%w: got %q", ErrNotKubectlCommand, tokens[0].Value)
	}

	cmd := &ParsedCommand{
		BaseCommand: BaseCommand,
		Flags:       make(map[string]FlagValue),
		RawTokens:   tokens,
		Valid:       true,
	}

	s := &scan{parser: p, tokens: tokens, cmd: cmd, idx: 1}

	// kubectl accepts global flags before the verb (kubectl -n prod get pods).
	for s.idx < len(tokens) && isFlagToken(tokens[s.idx]) {
		s.consumeFlag(grammarResource)
	}

	grammar := grammarResource
	if s.idx < len(tokens) {
		verb := tokens[s.idx].Value
		g, known := p.verbs[verb]
		if !known && p.strict {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVerb, verb)
		}
		cmd.Verb = verb
		cmd.VerbKnown = known
		if known {
			grammar = g
		}
		s.idx++
	}

	for s.idx < len(tokens) {
		tok := tokens[s.idx]

		if tok.Value == "--" && !tok.Quoted {
			s.idx++
			s.consumeTail(grammar)
			break
		}

		if isFlagToken(tok) {
			s.consumeFlag(grammar)
			continue
		}

		s.positional(tok, grammar)
		s.idx++
	}

	p.finalize(cmd, grammar)
	return cmd, nil
}

// scan is the shared cursor used by classification and flag resolution.
// The two stages interleave over the same index because a token consumed as
// a flag value must never be reinterpreted as a positional argument.
type scan struct {
	parser *Parser
	tokens []Token
	cmd    *ParsedCommand
	idx    int
}

// positional assigns a non-flag token according to the verb's grammar.
func (s *scan) positional(tok Token, grammar verbGrammar) {
	switch grammar {
	case grammarResource:
		if s.cmd.ResourceType == "" {
			s.cmd.ResourceType = s.parser.resolveAlias(tok.Value)
			return
		}
		s.cmd.ResourceNames = append(s.cmd.ResourceNames, tok.Value)
	case grammarSubcommand:
		if s.cmd.Subcommand == "" {
			s.cmd.Subcommand = tok.Value
			return
		}
		s.cmd.ResourceNames = append(s.cmd.ResourceNames, tok.Value)
	default:
		// exec-like, cp, and direct-arg verbs have no resource-type slot.
		s.cmd.ResourceNames = append(s.cmd.ResourceNames, tok.Value)
	}
}

// consumeTail handles everything after a bare "--". For exec-like verbs the
// tail is the in-container command and is preserved verbatim; for all other
// verbs the remaining tokens are plain positionals with flag parsing off.
func (s *scan) consumeTail(grammar verbGrammar) {
	for ; s.idx < len(s.tokens); s.idx++ {
		tok := s.tokens[s.idx]
		if grammar == grammarExec {
			s.cmd.CommandTail = append(s.cmd.CommandTail, tok.Value)
			continue
		}
		s.positional(tok, grammar)
	}
}

// consumeFlag resolves the flag token at the cursor, together with any value
// tokens it owns, and advances the cursor past them.
func (s *scan) consumeFlag(grammar verbGrammar) {
	raw := s.tokens[s.idx].Value

	// Combined short boolean flags (-it) are a kubectl convention for
	// exec-style verbs only; expanding them elsewhere would misparse
	// unrelated short flags.
	if grammar == grammarExec && isCombinedShort(raw) {
		for _, c := range raw[1:] {
			s.applyFlag("-"+string(c), nil)
		}
		s.idx++
		return
	}

	// --flag=value and -n=value forms carry the value in the same token.
	if name, value, found := strings.Cut(raw, "="); found {
		spec, known := s.parser.flags[name]
		if known && spec.kind == flagSelector {
			// The attached value may be only the head of a multi-token
			// set-based expression: --selector=service in (a,b).
			parts, next := collectSelector(s.tokens, s.idx+1, []string{value})
			s.record(spec.canonical, strings.Join(parts, " "), false)
			s.idx = next
			return
		}
		s.applyFlag(name, &value)
		s.idx++
		return
	}

	spec, known := s.parser.flags[raw]
	if !known {
		// Unknown flags are preserved, never dropped, so the structured
		// result loses no information.
		s.record(strings.TrimLeft(raw, "-"), "", true)
		s.idx++
		return
	}

	switch spec.kind {
	case flagSwitch:
		s.record(spec.canonical, "", true)
		s.idx++
	case flagSelector:
		parts, next := collectSelector(s.tokens, s.idx+1, nil)
		if len(parts) == 0 {
			s.record(spec.canonical, "", true)
			s.idx++
			return
		}
		s.record(spec.canonical, strings.Join(parts, " "), false)
		s.idx = next
	default:
		// Valued and repeated flags take the following token as their value
		// unless it is itself a flag.
		if s.idx+1 < len(s.tokens) && !isFlagToken(s.tokens[s.idx+1]) {
			s.applyFlag(raw, &s.tokens[s.idx+1].Value)
			s.idx += 2
			return
		}
		s.record(spec.canonical, "", true)
		s.idx++
	}
}

// applyFlag records one occurrence of a flag given by its literal spelling,
// with an optional value.
func (s *scan) applyFlag(name string, value *string) {
	spec, known := s.parser.flags[name]
	if !known {
		key := strings.TrimLeft(name, "-")
		if value == nil {
			s.record(key, "", true)
			return
		}
		s.record(key, *value, false)
		return
	}
	if value == nil {
		s.record(spec.canonical, "", true)
		return
	}
	// Switch flags written in the --flag=value form (--dry-run=client,
	// --watch=true) keep the attached value; only the bare spelling is a
	// pure switch.
	s.record(spec.canonical, *value, false)
}

// record stores a resolved flag occurrence under its canonical key and keeps
// the namespace and file side-channels in sync.
func (s *scan) record(key, value string, asSwitch bool) {
	entry := s.cmd.Flags[key]
	if !asSwitch {
		if s.parser.repeatable[key] {
			entry.Values = append(entry.Values, value)
		} else {
			// Repeated single-valued flags keep the last occurrence,
			// mirroring real CLI flag semantics.
			entry.Values = []string{value}
		}
	}
	s.cmd.Flags[key] = entry

	switch key {
	case CanonicalNamespaceFlag:
		if !asSwitch {
			s.cmd.Namespace = value
		}
	case CanonicalFilenameFlag:
		if !asSwitch {
			s.cmd.Files = append(s.cmd.Files, value)
		}
	}
}

// resolveAlias maps a resource spelling to its canonical kind, or returns the
// spelling unchanged when it is not a known alias.
func (p *Parser) resolveAlias(spelling string) string {
	if kind, ok := p.aliases[spelling]; ok {
		return kind
	}
	return spelling
}

// isCombinedShort reports whether a token looks like combined short boolean
// flags: a single dash followed by two or more letters without a value.
func isCombinedShort(raw string) bool {
	return strings.HasPrefix(raw, "-") &&
		!strings.HasPrefix(raw, "--") &&
		len(raw) > 2 &&
		!strings.Contains(raw, "=")
}
