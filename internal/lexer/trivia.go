package lexer

import "zplspec/internal/token"

// collectLeadingTrivia gathers whitespace and ^FX comments immediately
// before the next significant token. Space/tab/CR coalesce into one
// TriviaSpace; consecutive newlines coalesce into one TriviaNewline.
// ^FX is ZPL's only comment form: the printer simply discards everything
// between ^FX and the next command, so it is folded directly into
// TriviaLineComment here rather than surfaced as a command the parser
// has to special-case.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\r' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.textFrom(sp)})
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: sp, Text: lx.textFrom(sp)})
			continue
		}

		if b == lx.formatPrefix && lx.scanFXCommentInto(start) {
			continue
		}

		break
	}
}

// scanFXCommentInto consumes a ^FX comment starting at the current cursor
// position (already marked at start) if one is present, appending a
// TriviaLineComment to hold. Reports false and leaves the cursor
// untouched if the bytes at the cursor aren't ^FX.
func (lx *Lexer) scanFXCommentInto(start Mark) bool {
	b0, b1, b2, ok := lx.cursor.Peek3()
	if !ok || b0 != lx.formatPrefix || b1 != 'F' || b2 != 'X' {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() && !lx.isBoundaryByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaLineComment, Span: sp, Text: lx.textFrom(sp)})
	return true
}
