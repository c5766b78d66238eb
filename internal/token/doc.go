// Package token defines lexical token kinds and trivia for ZPL II source.
// Invariants:
//   - Token.Text is a slice of the original source (no copies) except where
//     hex-escape or other decoding has to materialize new bytes.
//   - Token.Span matches Text exactly (Start..End).
//   - The prefix and delimiter characters are not fixed: Token.Text on a
//     Prefix/Comma token carries the exact rune the lexer matched, since
//     ^CC and ^CD can change them mid-stream.
//   - Whitespace between commands outside field data is trivia, never a
//     token in the main stream.
package token
