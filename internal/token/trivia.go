package token

import "zplspec/internal/source"

// TriviaKind classifies non-semantic source material collected between
// tokens.
type TriviaKind uint8

const (
	// TriviaSpace represents horizontal whitespace.
	TriviaSpace TriviaKind = iota
	// TriviaNewline represents a line terminator.
	TriviaNewline
	// TriviaLineComment represents a ^FX comment command, kept as trivia
	// rather than a command token since it has no device-visible effect
	// beyond consuming text up to the next prefix character.
	TriviaLineComment
)

// Trivia represents a non-semantic source element: whitespace, a newline,
// or a ^FX comment command collected outside field/raw data mode.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
