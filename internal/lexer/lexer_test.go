package lexer_test

import (
	"fmt"
	"testing"

	"zplspec/internal/diag"
	"zplspec/internal/lexer"
	"zplspec/internal/source"
	"zplspec/internal/token"
)

// testReporter collects every diagnostic reported by the lexer.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func (r *testReporter) ErrorCount() int {
	count := 0
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			count++
		}
	}
	return count
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.zpl", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func tokensToString(tokens []token.Token) string {
	out := ""
	for _, tok := range tokens {
		out += fmt.Sprintf("%v(%q) ", tok.Kind, tok.Text)
	}
	return out
}

func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)

	if len(tokens) > 0 && tokens[len(tokens)-1].Kind == token.EOF {
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s\nerrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func TestSimpleCommandNoArgs(t *testing.T) {
	expectTokens(t, "^XA", []token.Kind{token.Prefix, token.Opcode})
}

func TestCommandWithTwoArgs(t *testing.T) {
	// ^FO100,200 -> Prefix, Opcode(FO), ArgBlob(100), Comma, ArgBlob(200)
	expectTokens(t, "^FO100,200", []token.Kind{
		token.Prefix, token.Opcode, token.ArgBlob, token.Comma, token.ArgBlob,
	})
}

func TestTwoCommandsBackToBack(t *testing.T) {
	expectTokens(t, "^XA^FO100,200^XZ", []token.Kind{
		token.Prefix, token.Opcode,
		token.Prefix, token.Opcode, token.ArgBlob, token.Comma, token.ArgBlob,
		token.Prefix, token.Opcode,
	})
}

func TestControlPrefixCommand(t *testing.T) {
	expectTokens(t, "~JA", []token.Kind{token.Prefix, token.Opcode})
}

func TestEmptyArgumentBetweenCommas(t *testing.T) {
	// ^FO,,10 has an empty first arg: Comma directly follows Opcode.
	lx, _ := makeTestLexer("^FO,,10")
	tokens := collectAllTokens(lx)

	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	expected := []token.Kind{
		token.Prefix, token.Opcode, token.Comma, token.Comma, token.ArgBlob, token.EOF,
	}
	if len(kinds) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, kinds)
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Fatalf("token %d: expected %v, got %v", i, expected[i], kinds[i])
		}
	}
}

func TestUnknownByteOutsideCommandIsReported(t *testing.T) {
	lx, reporter := makeTestLexer("garbage^XA")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid for first stray byte, got %v", tok.Kind)
	}
	if reporter.ErrorCount() == 0 {
		t.Fatalf("expected a diagnostic for the unrecognized byte")
	}
}

func TestFieldDataModeCapturesUntilNextCommand(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("field.zpl", []byte("^FDHello, World^FS"))
	file := fs.Get(fileID)
	lx := lexer.New(file, lexer.Options{})

	prefix := lx.Next()
	if prefix.Kind != token.Prefix {
		t.Fatalf("expected Prefix, got %v", prefix.Kind)
	}
	opcode := lx.Next()
	if opcode.Kind != token.Opcode || opcode.Text != "FD" {
		t.Fatalf("expected Opcode(FD), got %v %q", opcode.Kind, opcode.Text)
	}

	lx.SetMode(lexer.ModeFieldData)
	data := lx.Next()
	if data.Kind != token.FieldData {
		t.Fatalf("expected FieldData, got %v", data.Kind)
	}
	if data.Text != "Hello, World" {
		t.Fatalf("expected field text %q, got %q", "Hello, World", data.Text)
	}

	closePrefix := lx.Next()
	if closePrefix.Kind != token.Prefix {
		t.Fatalf("expected Prefix after field data, got %v", closePrefix.Kind)
	}
}

func TestRawDataModeCapturesDeclaredByteCount(t *testing.T) {
	fs := source.NewFileSet()
	payload := "AB^C~D" // includes bytes that would otherwise look like prefixes
	fileID := fs.AddVirtual("raw2.zpl", []byte("^GF"+payload+"^XZ"))
	file := fs.Get(fileID)
	lx := lexer.New(file, lexer.Options{})

	_ = lx.Next() // Prefix
	_ = lx.Next() // Opcode GF

	lx.SetRawMode(uint32(len(payload)))
	raw := lx.Next()
	if raw.Kind != token.RawData {
		t.Fatalf("expected RawData, got %v", raw.Kind)
	}
	if raw.Text != payload {
		t.Fatalf("expected raw payload %q, got %q", payload, raw.Text)
	}

	next := lx.Next()
	if next.Kind != token.Prefix {
		t.Fatalf("expected Prefix after raw payload, got %v", next.Kind)
	}
}

func TestFXCommentFoldedIntoTrivia(t *testing.T) {
	lx, _ := makeTestLexer("^FXthis is ignored^XA")
	tok := lx.Next()
	if tok.Kind != token.Prefix {
		t.Fatalf("expected Prefix for ^XA, got %v", tok.Kind)
	}
	if len(tok.Leading) != 1 {
		t.Fatalf("expected one leading trivia, got %d", len(tok.Leading))
	}
	if tok.Leading[0].Kind != token.TriviaLineComment {
		t.Fatalf("expected TriviaLineComment, got %v", tok.Leading[0].Kind)
	}
}

func TestMutablePrefixAndDelimiter(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("mutable.zpl", []byte("#FO100;200"))
	file := fs.Get(fileID)
	lx := lexer.New(file, lexer.Options{})
	lx.SetFormatPrefix('#')
	lx.SetDelimiter(';')

	prefix := lx.Next()
	if prefix.Kind != token.Prefix || prefix.Text != "#" {
		t.Fatalf("expected Prefix(#), got %v %q", prefix.Kind, prefix.Text)
	}
	opcode := lx.Next()
	if opcode.Kind != token.Opcode || opcode.Text != "FO" {
		t.Fatalf("expected Opcode(FO), got %v %q", opcode.Kind, opcode.Text)
	}
	arg1 := lx.Next()
	if arg1.Kind != token.ArgBlob || arg1.Text != "100" {
		t.Fatalf("expected ArgBlob(100), got %v %q", arg1.Kind, arg1.Text)
	}
	comma := lx.Next()
	if comma.Kind != token.Comma || comma.Text != ";" {
		t.Fatalf("expected Comma(;), got %v %q", comma.Kind, comma.Text)
	}
}

func TestWhitespaceBetweenCommandsIsTrivia(t *testing.T) {
	lx, _ := makeTestLexer("^XA\n  ^FO100,100")
	_ = lx.Next() // Prefix for ^XA
	_ = lx.Next() // Opcode XA
	fo := lx.Next()
	if fo.Kind != token.Prefix {
		t.Fatalf("expected Prefix, got %v", fo.Kind)
	}
	if len(fo.Leading) != 2 {
		t.Fatalf("expected newline+space leading trivia, got %d: %v", len(fo.Leading), fo.Leading)
	}
	if fo.Leading[0].Kind != token.TriviaNewline {
		t.Fatalf("expected first trivia to be newline, got %v", fo.Leading[0].Kind)
	}
	if fo.Leading[1].Kind != token.TriviaSpace {
		t.Fatalf("expected second trivia to be space, got %v", fo.Leading[1].Kind)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("^XA")
	peeked := lx.Peek()
	next := lx.Next()
	if peeked.Kind != next.Kind || peeked.Span != next.Span {
		t.Fatalf("expected Peek to match subsequent Next, got %v vs %v", peeked, next)
	}
}
