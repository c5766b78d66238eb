package token

import (
	"zplspec/internal/source"
)

// Token represents a single source token with its location and leading trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsData reports whether the token carries field or raw payload bytes.
func (t Token) IsData() bool {
	return t.Kind == FieldData || t.Kind == RawData
}

// IsDelimiter reports whether the token is the active delimiter character.
func (t Token) IsDelimiter() bool { return t.Kind == Comma }

// IsPrefix reports whether the token is a command prefix character.
func (t Token) IsPrefix() bool { return t.Kind == Prefix }
