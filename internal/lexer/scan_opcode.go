package lexer

import (
	"fmt"

	"zplspec/internal/diag"
	"zplspec/internal/token"
)

// scanPrefixOrBare is dispatched at the top of a command, where only a
// format-prefix or control-prefix byte is valid. Anything else is an
// unrecognized byte: it is reported and consumed one at a time so the
// lexer can resynchronize on the next prefix it finds.
func (lx *Lexer) scanPrefixOrBare() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()

	if b == lx.formatPrefix || b == lx.controlPrefix {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.expect = expectOpcode
		return token.Token{Kind: token.Prefix, Span: sp, Text: lx.textFrom(sp)}
	}

	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownByte, sp, fmt.Sprintf("unexpected byte %q outside any command", b))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
}

// scanOpcode recognizes the opcode immediately following a Prefix token.
// With a command table's opcode trie configured (Options.Matcher), the
// match is the longest known opcode at this position; otherwise a fixed
// two-byte width is assumed, matching the shape of the overwhelming
// majority of ZPL opcodes.
func (lx *Lexer) scanOpcode() token.Token {
	start := lx.cursor.Mark()

	width := fallbackOpcodeWidth
	if lx.opts.Matcher != nil {
		if n := lx.opts.Matcher.MatchOpcode(lx.remaining()); n > 0 {
			width = n
		}
	}

	for i := 0; i < width && !lx.cursor.EOF() && !lx.isBoundaryByte(lx.cursor.Peek()); i++ {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)

	if sp.Start == sp.End {
		lx.errLex(diag.SynExpectedOpcode, sp, "expected an opcode after the prefix character")
		lx.expect = expectPrefixOrTrivia
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}

	lx.expect = expectArgOrComma
	return token.Token{Kind: token.Opcode, Span: sp, Text: lx.textFrom(sp)}
}
