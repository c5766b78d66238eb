package lexer

import "zplspec/internal/token"

// scanArgOrComma scans one token of a command's argument list: a Comma if
// the delimiter byte is next (including back-to-back commas, which is how
// an Empty argument slot is represented — there is no zero-width ArgBlob
// between them), otherwise an ArgBlob running up to the next delimiter or
// command boundary. Reaching the boundary with nothing scanned switches
// back to expecting a fresh command and dispatches straight to
// scanPrefixOrBare/eofToken — not back through scanNormal, which would
// collect leading trivia a second time and stomp the Leading already
// assigned to this token.
func (lx *Lexer) scanArgOrComma() token.Token {
	if lx.cursor.EOF() {
		lx.expect = expectPrefixOrTrivia
		return lx.eofToken()
	}
	if lx.isBoundaryByte(lx.cursor.Peek()) {
		lx.expect = expectPrefixOrTrivia
		return lx.scanPrefixOrBare()
	}

	if lx.cursor.Peek() == lx.delimiter {
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.expect = expectArgOrComma
		return token.Token{Kind: token.Comma, Span: sp, Text: lx.textFrom(sp)}
	}

	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != lx.delimiter && !lx.isBoundaryByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.expect = expectArgOrComma
	return token.Token{Kind: token.ArgBlob, Span: sp, Text: lx.textFrom(sp)}
}

// scanFieldData captures everything up to the next command boundary as a
// single FieldData token, then reverts to ModeNormal. Entered only when
// the parser calls SetMode(ModeFieldData) after a field-data opcode.
func (lx *Lexer) scanFieldData() token.Token {
	if lx.cursor.EOF() {
		lx.mode = ModeNormal
		lx.expect = expectPrefixOrTrivia
		return lx.eofToken()
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && !lx.isBoundaryByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.mode = ModeNormal
	lx.expect = expectPrefixOrTrivia
	return token.Token{Kind: token.FieldData, Span: sp, Text: lx.textFrom(sp)}
}

// scanRawData captures exactly rawRemaining bytes verbatim as a single
// RawData token, even if they contain what would otherwise be read as a
// prefix or delimiter byte. Entered only via SetRawMode.
func (lx *Lexer) scanRawData() token.Token {
	start := lx.cursor.Mark()
	for i := uint32(0); i < lx.rawRemaining && !lx.cursor.EOF(); i++ {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.mode = ModeNormal
	lx.expect = expectPrefixOrTrivia
	lx.rawRemaining = 0
	return token.Token{Kind: token.RawData, Span: sp, Text: lx.textFrom(sp)}
}
