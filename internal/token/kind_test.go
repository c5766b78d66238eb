package token_test

import (
	"testing"

	"zplspec/internal/source"
	"zplspec/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsData(t *testing.T) {
	data := []token.Kind{token.FieldData, token.RawData}
	for _, k := range data {
		if !tok(k).IsData() {
			t.Fatalf("%v should be data", k)
		}
	}
	non := []token.Kind{token.Opcode, token.ArgBlob, token.Prefix, token.Comma}
	for _, k := range non {
		if tok(k).IsData() {
			t.Fatalf("%v must NOT be data", k)
		}
	}
}

func TestIsDelimiter(t *testing.T) {
	if !tok(token.Comma).IsDelimiter() {
		t.Fatalf("Comma should be a delimiter")
	}
	if tok(token.Opcode).IsDelimiter() {
		t.Fatalf("Opcode must not be a delimiter")
	}
}

func TestIsPrefix(t *testing.T) {
	if !tok(token.Prefix).IsPrefix() {
		t.Fatalf("Prefix should report IsPrefix")
	}
	if tok(token.Opcode).IsPrefix() {
		t.Fatalf("Opcode must not report IsPrefix")
	}
}

func TestKindZeroValueIsInvalid(t *testing.T) {
	var k token.Kind
	if k != token.Invalid {
		t.Fatalf("zero value of Kind must be Invalid, got %v", k)
	}
}
