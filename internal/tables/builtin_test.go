package tables

import "testing"

func TestBuiltinLooksUpKnownOpcodes(t *testing.T) {
	bt := Builtin()
	for _, op := range []string{"XA", "XZ", "FO", "A0", "FD", "FS", "CD", "MU"} {
		if _, ok := bt.Lookup(op); !ok {
			t.Fatalf("builtin tables missing opcode %q", op)
		}
	}
}

func TestBuiltinTrieMatchesGluedOpcode(t *testing.T) {
	bt := Builtin()
	n := bt.Trie().MatchOpcode([]byte("A0N"))
	if n != 2 {
		t.Fatalf("expected 2-byte match for A0N, got %d", n)
	}
}

func TestBuiltinTrieNoMatch(t *testing.T) {
	bt := Builtin()
	if n := bt.Trie().MatchOpcode([]byte("ZZ")); n != 0 {
		t.Fatalf("expected no match, got %d", n)
	}
}
