package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"zplspec/internal/diag"
	"zplspec/internal/source"
	"zplspec/internal/token"
)

const maxTokenLength = 64 * 1024 // hard limit in bytes to avoid pathological tokens

const (
	defaultFormatPrefix  byte = '^'
	defaultControlPrefix byte = '~'
	defaultDelimiter     byte = ','
)

// expect tracks where the lexer sits within a single command, so that
// Next() knows which scanner to dispatch to without re-deriving it from
// the byte class alone (ZPL's grammar is positional, not self-describing
// per byte the way an expression language's operators are).
type expect uint8

const (
	expectPrefixOrTrivia expect = iota
	expectOpcode
	expectArgOrComma
)

// Lexer converts ZPL source content into a stream of tokens. Prefix and
// delimiter bytes are mutable at runtime (^CC, ~CC, ^CD change them mid
// stream); the parser calls SetFormatPrefix/SetControlPrefix/SetDelimiter
// the moment it observes one of those commands take effect.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	mode   Mode
	expect expect

	formatPrefix  byte
	controlPrefix byte
	delimiter     byte

	rawRemaining uint32

	look *token.Token
	hold []token.Trivia
}

// New creates a new Lexer for the provided file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:          file,
		cursor:        NewCursor(file),
		opts:          opts,
		mode:          ModeNormal,
		expect:        expectPrefixOrTrivia,
		formatPrefix:  defaultFormatPrefix,
		controlPrefix: defaultControlPrefix,
		delimiter:     defaultDelimiter,
	}
}

// SetRange restricts the lexer to a specific byte range within the file.
func (lx *Lexer) SetRange(start, end uint32) {
	if lx == nil {
		return
	}
	lx.cursor.Off = start
	if end != 0 {
		lx.cursor.Limit = end
	}
	lx.mode = ModeNormal
	lx.expect = expectPrefixOrTrivia
	lx.look = nil
	lx.hold = nil
}

// SetMode switches the lexer's scanning mode. Used by the parser to enter
// ModeFieldData right after consuming a field-data command's opcode (and
// any leading arguments); the lexer reverts to ModeNormal on its own once
// it has produced the FieldData token.
func (lx *Lexer) SetMode(m Mode) {
	if lx == nil {
		return
	}
	lx.mode = m
}

// SetRawMode switches the lexer into ModeRawData to capture exactly n
// bytes verbatim as the next token, regardless of their content.
func (lx *Lexer) SetRawMode(n uint32) {
	if lx == nil {
		return
	}
	lx.mode = ModeRawData
	lx.rawRemaining = n
}

// SetFormatPrefix changes the byte recognized as the format-command prefix
// (default '^'), effective for tokens scanned from this point on.
func (lx *Lexer) SetFormatPrefix(b byte) {
	if lx == nil {
		return
	}
	lx.formatPrefix = b
}

// SetControlPrefix changes the byte recognized as the control-command
// prefix (default '~').
func (lx *Lexer) SetControlPrefix(b byte) {
	if lx == nil {
		return
	}
	lx.controlPrefix = b
}

// SetDelimiter changes the byte recognized as the argument delimiter
// (default ',').
func (lx *Lexer) SetDelimiter(b byte) {
	if lx == nil {
		return
	}
	lx.delimiter = b
}

// Next returns the next significant token, with its leading trivia already
// attached. Once EOF is reached it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	var tok token.Token
	switch lx.mode {
	case ModeFieldData:
		tok = lx.scanFieldData()
	case ModeRawData:
		tok = lx.scanRawData()
	default:
		tok = lx.scanNormal()
	}
	lx.enforceTokenLength(&tok)
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Push injects a token back into the one-token lookahead buffer.
func (lx *Lexer) Push(tok token.Token) {
	lx.look = &tok
}

// EmptySpan returns a zero-length span at the current cursor position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) scanNormal() token.Token {
	lx.collectLeadingTrivia()
	if lx.cursor.EOF() {
		return lx.eofToken()
	}

	var tok token.Token
	switch lx.expect {
	case expectOpcode:
		tok = lx.scanOpcode()
	case expectArgOrComma:
		tok = lx.scanArgOrComma()
	default:
		tok = lx.scanPrefixOrBare()
	}
	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

func (lx *Lexer) eofToken() token.Token {
	return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
}

func (lx *Lexer) isBoundaryByte(b byte) bool {
	return b == lx.formatPrefix || b == lx.controlPrefix
}

func (lx *Lexer) textFrom(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

// remaining returns the unconsumed file content from the cursor to the
// end of its active range, for the OpcodeMatcher to inspect.
func (lx *Lexer) remaining() []byte {
	return lx.file.Content[lx.cursor.Off:lx.cursor.limit()]
}

func (lx *Lexer) enforceTokenLength(tok *token.Token) {
	if tok == nil {
		return
	}
	length := tok.Span.End - tok.Span.Start
	if length <= maxTokenLength {
		return
	}
	msg := fmt.Sprintf("token length %d exceeds limit %d", length, maxTokenLength)
	lx.errLex(diag.LexTokenTooLong, tok.Span, msg)
	tok.Kind = token.Invalid
	if tok.Text == "" && tok.Span.End > tok.Span.Start && int(tok.Span.End) <= len(lx.file.Content) {
		tok.Text = string(lx.file.Content[tok.Span.Start:tok.Span.End])
	}
	// Fast-forward to EOF to avoid cascading work on a pathological token.
	if off, err := safecast.Conv[uint32](len(lx.file.Content)); err == nil {
		lx.cursor.Off = off
	}
}
