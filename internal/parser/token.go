package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnterminatedQuote is returned by Tokenize when a quoted section is
// opened but never closed. No partial token sequence is returned in that case.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Token is a single shell-aware unit of a command string.
//
// Quoted records whether the token opened with a quote character. The
// classifier uses this to avoid treating a quoted argument that happens to
// start with '-' as a flag.
type Token struct {
	// Value is the token text with surrounding quotes stripped.
	Value string `json:"value"`
	// Quoted is true when the token began inside single or double quotes.
	Quoted bool `json:"quoted,omitempty"`
	// Pos is the token's index in the emitted sequence.
	Pos int `json:"pos"`
}

// Tokenize splits a raw command string into shell-aware tokens.
//
// Unquoted whitespace runs separate tokens; single- or double-quoted sections
// preserve embedded whitespace as part of one token, with the quote characters
// stripped from the emitted value. Empty input yields an empty slice, not an
// error. An unterminated quote fails with ErrUnterminatedQuote.
func Tokenize(raw string) ([]Token, error) {
	var (
		tokens    []Token
		current   strings.Builder
		inQuotes  bool
		quoteChar byte
		quoted    bool
	)

	emit := func() {
		if current.Len() > 0 {
			tokens = append(tokens, Token{
				Value:  current.String(),
				Quoted: quoted,
				Pos:    len(tokens),
			})
			current.Reset()
		}
		quoted = false
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if inQuotes {
			if c == quoteChar {
				inQuotes = false
				continue
			}
			current.WriteByte(c)
			continue
		}

		switch {
		case c == '"' || c == '\'':
			if current.Len() == 0 {
				quoted = true
			}
			inQuotes = true
			quoteChar = c
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			emit()
		default:
			current.WriteByte(c)
		}
	}

	if inQuotes {
		return nil, fmt.Errorf("%w: missing closing %q", ErrUnterminatedQuote, string(quoteChar))
	}

	emit()
	return tokens, nil
}

// isFlagToken reports whether a token should be interpreted as a flag marker.
// Quoted tokens are never flags, regardless of their content.
func isFlagToken(t Token) bool {
	return !t.Quoted && strings.HasPrefix(t.Value, "-") && t.Value != "-" && t.Value != "--"
}
