package validate

import (
	"testing"

	"zplspec/internal/ast"
	"zplspec/internal/diag"
	"zplspec/internal/parser"
	"zplspec/internal/profile"
	"zplspec/internal/source"
	"zplspec/internal/tables"
)

func parseDoc(t *testing.T, src string) *ast.Ast {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zpl", []byte(src))
	p := parser.New(fs.Get(id), parser.Options{Tables: tables.Builtin()})
	return p.Parse()
}

func errorCount(res Result) int {
	n := 0
	for _, d := range res.Issues {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

// Scenario 1: bare field data with no ^FO, closed normally — zero errors.
func TestValidateHelloFieldZeroErrors(t *testing.T) {
	doc := parseDoc(t, "^XA^FDHello^FS^XZ")
	res := Validate(doc, Options{Tables: tables.Builtin()})
	if !res.OK {
		t.Fatalf("expected OK, got issues: %+v", res.Issues)
	}
	if n := errorCount(res); n != 0 {
		t.Fatalf("expected 0 errors, got %d: %+v", n, res.Issues)
	}
}

// Scenario 2: positioned field within the loaded profile's page bounds.
func TestValidatePositionedFieldWithinProfileZeroErrors(t *testing.T) {
	doc := parseDoc(t, "^XA^FO10,10^A0N,30,30^FDHi^FS^XZ")
	prof := &profile.Profile{DPI: 203, Page: &profile.Page{WidthDots: 203, HeightDots: 400}}
	res := Validate(doc, Options{Tables: tables.Builtin(), Profile: prof})
	if !res.OK {
		t.Fatalf("expected OK, got issues: %+v", res.Issues)
	}
}

// Scenario 3: ^PW exceeding the profile's page width is a profile_constraint error.
func TestValidatePWExceedsProfileWidth(t *testing.T) {
	doc := parseDoc(t, "^XA^PW9999^XZ")
	prof := &profile.Profile{DPI: 203, Page: &profile.Page{WidthDots: 812, HeightDots: 1218}}
	res := Validate(doc, Options{Tables: tables.Builtin(), Profile: prof})
	if res.OK {
		t.Fatalf("expected a profile_constraint error")
	}
	if n := errorCount(res); n != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %+v", n, res.Issues)
	}
}

// Scenario 4: duplicate ^FN within one label is exactly one error.
func TestValidateDuplicateFieldNumber(t *testing.T) {
	doc := parseDoc(t, "^XA^FN1^FS^FN1^FS^XZ")
	res := Validate(doc, Options{Tables: tables.Builtin()})
	if n := errorCount(res); n != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %+v", n, res.Issues)
	}
}

// Scenario 5: field data with no closing ^FS and no closing ^XZ reports
// both an unclosed-field and an unclosed-label diagnostic.
func TestValidateUnclosedFieldAndLabel(t *testing.T) {
	doc := parseDoc(t, "^XA^FDHello")
	if !doc.Labels[0].Unclosed {
		t.Fatalf("parser should have marked the label unclosed")
	}
	res := Validate(doc, Options{Tables: tables.Builtin()})
	if n := errorCount(res); n != 2 {
		t.Fatalf("expected exactly 2 errors (unclosed field + unclosed label), got %d: %+v", n, res.Issues)
	}
}

// Scenario 6: a changed delimiter is honored by both the parser and the
// validator's argument checks.
func TestValidateChangedDelimiterZeroErrors(t *testing.T) {
	doc := parseDoc(t, "^XA^CD~^FO10~10^FS^XZ")
	res := Validate(doc, Options{Tables: tables.Builtin()})
	if !res.OK {
		t.Fatalf("expected OK, got issues: %+v", res.Issues)
	}
}

func TestValidateUnknownCommandReported(t *testing.T) {
	doc := parseDoc(t, "^XA^ZZ1,2^XZ")
	res := Validate(doc, Options{Tables: tables.Builtin()})
	if res.OK {
		t.Fatalf("expected an error for an unrecognized opcode")
	}
}

func TestValidateMissingRequiredArg(t *testing.T) {
	doc := parseDoc(t, "^XA^FO^XZ")
	res := Validate(doc, Options{Tables: tables.Builtin()})
	if res.OK {
		t.Fatalf("expected an error for ^FO's missing required x/y")
	}
}

func TestValidateArgOutOfRange(t *testing.T) {
	doc := parseDoc(t, "^XA^FO99999,10^XZ")
	res := Validate(doc, Options{Tables: tables.Builtin()})
	if res.OK {
		t.Fatalf("expected an out-of-range error for x=99999")
	}
}

func TestValidateEnumMismatch(t *testing.T) {
	doc := parseDoc(t, "^XA^MUZ^XZ")
	res := Validate(doc, Options{Tables: tables.Builtin()})
	if res.OK {
		t.Fatalf("expected an enum-mismatch error for unit code Z")
	}
}

func TestValidateNilTablesSkipsEntirely(t *testing.T) {
	doc := parseDoc(t, "^XA^ZZ1,2^XZ")
	res := Validate(doc, Options{})
	if !res.OK {
		t.Fatalf("nil tables should make validation a no-op pass")
	}
}

func TestValidateResolvedLabelsCaptured(t *testing.T) {
	doc := parseDoc(t, "^XA^FO5,7^A0NR,30,30^FDHi^FS^XZ")
	res := Validate(doc, Options{Tables: tables.Builtin()})
	if len(res.ResolvedLabels) != 1 {
		t.Fatalf("expected 1 resolved label, got %d", len(res.ResolvedLabels))
	}
	rl := res.ResolvedLabels[0]
	if rl.Font != "N" || rl.Orientation != "R" {
		t.Fatalf("resolved font/orientation = %q/%q, want N/R", rl.Font, rl.Orientation)
	}
	if rl.HomeX != 5 || rl.HomeY != 7 {
		t.Fatalf("resolved home = %g,%g, want 5,7", rl.HomeX, rl.HomeY)
	}
}

func TestProfileConstraintCoverage(t *testing.T) {
	bt := tables.Builtin()
	known := make(map[string]bool, len(profile.KnownPaths))
	for _, p := range profile.KnownPaths {
		known[p] = true
	}
	for _, entry := range bt.Commands {
		for _, param := range entry.Signature.Params {
			if param.ProfileConstraint == "" {
				continue
			}
			if !known[param.ProfileConstraint] {
				t.Fatalf("profile_constraint %q (used by ^%v) is not covered by profile.KnownPaths",
					param.ProfileConstraint, entry.Opcodes)
			}
		}
	}
}
