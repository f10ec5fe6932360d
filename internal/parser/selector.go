package parser

import "strings"

// selectorOperators are tokens that continue a set-based selector expression
// when they appear between collected parts.
var selectorOperators = map[string]bool{
	"and":   true,
	"or":    true,
	"!=":    true,
	"==":    true,
	"=":     true,
	"in":    true,
	"notin": true,
	",":     true,
}

// collectSelector gathers the tokens of a label selector expression starting
// at index i, seeded with any value already attached via "=".
//
// Set-based selectors are routinely written unquoted on real command lines
// ("-l service in (email,checkout)"), so the expression may span several
// tokens. Collection tracks parenthesis depth and stops at the next flag
// token once the parentheses are balanced and no operator continues the
// expression. It returns the collected parts and the index of the first
// token not consumed.
func collectSelector(tokens []Token, i int, initial []string) ([]string, int) {
	parts := initial
	depth := 0
	for _, p := range parts {
		depth += strings.Count(p, "(") - strings.Count(p, ")")
	}

	for i < len(tokens) {
		tok := tokens[i]

		if isFlagToken(tok) && depth == 0 {
			break
		}

		parts = append(parts, tok.Value)
		depth += strings.Count(tok.Value, "(") - strings.Count(tok.Value, ")")
		i++

		if depth != 0 || i >= len(tokens) {
			continue
		}

		next := tokens[i]
		if isFlagToken(next) {
			break
		}
		if !selectorContinues(parts, next.Value) {
			break
		}
	}

	return parts, i
}

// selectorContinues decides whether the next token still belongs to the
// selector expression being collected.
func selectorContinues(parts []string, next string) bool {
	if selectorOperators[strings.ToLower(next)] ||
		strings.ContainsAny(next, "=!<>,") ||
		strings.HasPrefix(next, "(") {
		return true
	}
	// An "in"/"notin" operator promises a value list, so the expression
	// cannot end yet even when the next token looks like a plain word.
	last := strings.ToLower(parts[len(parts)-1])
	return last == "in" || last == "notin"
}
