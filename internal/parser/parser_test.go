package parser

import (
	"testing"

	"zplspec/internal/ast"
	"zplspec/internal/source"
	"zplspec/internal/tables"
)

func parseString(t *testing.T, src string) *ast.Ast {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zpl", []byte(src))
	p := New(fs.Get(id), Options{Tables: tables.Builtin()})
	return p.Parse()
}

func commandCodes(a *ast.Ast, label ast.Label) []string {
	var out []string
	for _, n := range a.LabelNodes(label) {
		if n.Kind == ast.NodeCommand {
			out = append(out, n.Code)
		}
	}
	return out
}

func TestParseSimpleLabel(t *testing.T) {
	a := parseString(t, "^XA^FO50,50^A0N,30,30^FDhello^FS^XZ")
	if len(a.Labels) != 1 {
		t.Fatalf("expected 1 label, got %d", len(a.Labels))
	}
	if a.Labels[0].Unclosed {
		t.Fatalf("label should be closed")
	}
	codes := commandCodes(a, a.Labels[0])
	want := []string{"FO", "A0", "FD", "FS"}
	if len(codes) != len(want) {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes = %v, want %v", codes, want)
		}
	}
}

func TestParseGluedFontSplitsIntoSlots(t *testing.T) {
	a := parseString(t, "^XA^A0N,30,30^XZ")
	var font *ast.Node
	for _, n := range a.LabelNodes(a.Labels[0]) {
		if n.Kind == ast.NodeCommand && n.Code == "A0" {
			font = n
		}
	}
	if font == nil {
		t.Fatalf("A0 command not found")
	}
	fontArg, ok := font.Arg("font")
	if !ok || fontArg.Value != "N" {
		t.Fatalf("expected split font=N, got %+v (ok=%v)", fontArg, ok)
	}
	orient, ok := font.Arg("orientation")
	if !ok {
		t.Fatalf("expected orientation slot present")
	}
	if orient.Presence != ast.Missing {
		t.Fatalf("orientation slot should be Missing (no 4th char), got %v", orient.Presence)
	}
}

func TestParseEmptyArgumentSlot(t *testing.T) {
	a := parseString(t, "^XA^FO50,,0^XZ")
	var fo *ast.Node
	for _, n := range a.LabelNodes(a.Labels[0]) {
		if n.Kind == ast.NodeCommand && n.Code == "FO" {
			fo = n
		}
	}
	if fo == nil {
		t.Fatalf("FO command not found")
	}
	y, ok := fo.Arg("y")
	if !ok || y.Presence != ast.Empty {
		t.Fatalf("expected y Empty, got %+v (ok=%v)", y, ok)
	}
}

func TestParseFieldDataDoesNotSplitOnCommas(t *testing.T) {
	a := parseString(t, "^XA^FDa,b,c^FS^XZ")
	var fd *ast.Node
	for _, n := range a.LabelNodes(a.Labels[0]) {
		if n.Kind == ast.NodeFieldData {
			fd = n
		}
	}
	if fd == nil {
		t.Fatalf("FieldData node not found")
	}
	if fd.Content != "a,b,c" {
		t.Fatalf("field data content = %q, want %q", fd.Content, "a,b,c")
	}
}

func TestParseUnclosedLabelMarked(t *testing.T) {
	a := parseString(t, "^XA^FO10,10")
	if len(a.Labels) != 1 || !a.Labels[0].Unclosed {
		t.Fatalf("expected one still-open label")
	}
}

func TestParseImplicitLabelForLeadingContent(t *testing.T) {
	a := parseString(t, "^FX stray comment\n^XA^FS^XZ")
	if len(a.Labels) < 1 || !a.Labels[0].Implicit {
		t.Fatalf("expected an implicit label to hold leading trivia")
	}
}

func TestParseDelimiterChangeTakesEffectImmediately(t *testing.T) {
	a := parseString(t, "^XA^CD;^FO50;60^XZ")
	var fo *ast.Node
	for _, n := range a.LabelNodes(a.Labels[0]) {
		if n.Kind == ast.NodeCommand && n.Code == "FO" {
			fo = n
		}
	}
	if fo == nil {
		t.Fatalf("FO command not found")
	}
	x, ok := fo.Arg("x")
	if !ok || x.Value != "50" {
		t.Fatalf("expected x=50 split on new delimiter, got %+v (ok=%v)", x, ok)
	}
	y, ok := fo.Arg("y")
	if !ok || y.Value != "60" {
		t.Fatalf("expected y=60 split on new delimiter, got %+v (ok=%v)", y, ok)
	}
}
