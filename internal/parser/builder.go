package parser

import (
	"fmt"

	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/validation"
)

// finalize applies cross-field normalization and structural validation to the
// assembled record. It never fails hard: downstream policy logic needs the
// partial structure of a malformed command to reason about it, so problems
// are reported through Valid and ParseError instead.
func (p *Parser) finalize(cmd *ParsedCommand, grammar verbGrammar) {
	invalidate := func(reason string) {
		if cmd.Valid {
			cmd.Valid = false
			cmd.ParseError = reason
		}
	}

	if cmd.Verb == "" {
		invalidate("missing verb")
		return
	}
	if !cmd.VerbKnown {
		invalidate(fmt.Sprintf("unrecognized verb %q", cmd.Verb))
	}

	if cmd.Namespace != "" {
		if errs := validation.IsDNS1123Label(cmd.Namespace); len(errs) > 0 {
			invalidate(fmt.Sprintf("invalid namespace %q: %s", cmd.Namespace, errs[0]))
		}
	}

	if sel := cmd.Selector(); sel != "" {
		if _, err := labels.Parse(sel); err != nil {
			invalidate(fmt.Sprintf("invalid label selector %q: %v", sel, err))
		}
	}

	switch grammar {
	case grammarExec:
		if len(cmd.ResourceNames) == 0 {
			invalidate(fmt.Sprintf("%s requires a target pod name", cmd.Verb))
		}
	case grammarCopy:
		if len(cmd.ResourceNames) < 2 {
			invalidate("cp requires source and destination paths")
		}
	case grammarSubcommand:
		if cmd.Subcommand == "" {
			invalidate(fmt.Sprintf("%s requires a subcommand", cmd.Verb))
		}
	}

	switch cmd.Verb {
	case "delete":
		// File-driven deletes may omit the inline resource specification.
		if cmd.ResourceType == "" && len(cmd.ResourceNames) == 0 &&
			!cmd.IsFileDriven() && !cmd.HasFlag("kustomize") {
			invalidate("delete requires a resource, a file, or a kustomization target")
		}
	case "apply":
		if !cmd.IsFileDriven() && !cmd.HasFlag("kustomize") {
			invalidate("apply requires a -f file or -k kustomization source")
		}
	}
}
