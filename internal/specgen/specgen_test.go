package specgen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"zplspec/internal/tables"
)

func TestStripCommentsPreservesStringsAndEscapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "line comment",
			in:   "{\"a\": 1} // trailing comment\n",
			want: "{\"a\": 1} \n",
		},
		{
			name: "block comment",
			in:   "{/* field */\"a\": 1}",
			want: "{\"a\": 1}",
		},
		{
			name: "slash inside string untouched",
			in:   `{"path": "a // not a comment"}`,
			want: `{"path": "a // not a comment"}`,
		},
		{
			name: "escaped quote inside string",
			in:   `{"msg": "say \"hi\" // still a string"}`,
			want: `{"msg": "say \"hi\" // still a string"}`,
		},
		{
			name: "unicode in string preserved",
			in:   `{"label": "café direct: café"}`,
			want: `{"label": "café direct: café"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StripComments([]byte(tt.in))
			if err != nil {
				t.Fatalf("StripComments() error: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("StripComments() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestStripCommentsRejectsUnterminated(t *testing.T) {
	if _, err := StripComments([]byte("{/* never closes")); err == nil {
		t.Fatal("expected error for unterminated block comment")
	}
	if _, err := StripComments([]byte(`{"a": "never closes`)); err == nil {
		t.Fatal("expected error for unterminated string literal")
	}
}

func TestConstraintKindDriftDetectsMismatch(t *testing.T) {
	s := DefaultSchema()
	if drift := ConstraintKindDrift(s); len(drift) != 0 {
		t.Fatalf("expected no drift for DefaultSchema, got %v", drift)
	}

	s.ConstraintKinds = append(append([]string(nil), s.ConstraintKinds[1:]...), "Bogus")
	drift := ConstraintKindDrift(s)
	if len(drift) != 2 {
		t.Fatalf("expected 2 drift entries, got %v", drift)
	}
}

func TestSchemaValidateCatchesViolations(t *testing.T) {
	schema := DefaultSchema()

	cmd := SpecCommand{
		SourcePath: "FO.json",
		Name:       "field-origin",
		Opcodes:    []string{"FO"},
		Arity:      1,
		Plane:      "bogus-plane",
		Signature: SpecSignature{
			Params: []SpecArg{
				{Key: "x", Type: "weird-type"},
			},
		},
	}
	errs := schema.Validate(cmd)
	if len(errs) == 0 {
		t.Fatal("expected schema violations, got none")
	}

	foundPlane := false
	foundType := false
	for _, e := range errs {
		if e.Field == "plane" {
			foundPlane = true
		}
		if e.Field == "signature.params[0].type" {
			foundType = true
		}
	}
	if !foundPlane || !foundType {
		t.Fatalf("expected plane and param type violations, got %v", errs)
	}
}

func TestValidateSingleFileArityAgreement(t *testing.T) {
	cmd := SpecCommand{
		SourcePath: "FO.json",
		Name:       "field-origin",
		Arity:      2,
		Signature: SpecSignature{
			Params: []SpecArg{
				{Key: "x", Type: "int"},
				{Key: "y", Type: "int"},
				{Key: "z", Type: "enum", Enum: []string{"0", "1"}},
			},
		},
	}
	errs := validateSingleFile(cmd)
	if len(errs) != 1 || errs[0].Field != "arity" {
		t.Fatalf("expected single arity mismatch error, got %v", errs)
	}
}

func TestValidateSingleFileSplitRuleArity(t *testing.T) {
	cmd := SpecCommand{
		SourcePath: "A0.json",
		Name:       "font",
		Arity:      3,
		SplitRule:  &SpecSplitRule{ParamIndex: 0, Widths: []int{1, 1}},
		Signature: SpecSignature{
			Params: []SpecArg{
				{Key: "font", Type: "char"},
				{Key: "orientation", Type: "enum", Enum: []string{"N", "R"}},
				{Key: "height", Type: "int"},
				{Key: "width", Type: "int"},
			},
		},
	}
	if errs := validateSingleFile(cmd); len(errs) != 0 {
		t.Fatalf("expected no errors for valid split_rule arity, got %v", errs)
	}
}

func TestValidateSingleFileDuplicateKeyAndDefaultFrom(t *testing.T) {
	cmd := SpecCommand{
		SourcePath: "X.json",
		Name:       "x",
		Arity:      2,
		Signature: SpecSignature{
			Params: []SpecArg{
				{Key: "a", Type: "int"},
				{Key: "a", Type: "int"},
			},
		},
	}
	errs := validateSingleFile(cmd)
	found := false
	for _, e := range errs {
		if e.Field == "signature.params[1].key" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected duplicate key error, got %v", errs)
	}

	cmd2 := SpecCommand{
		SourcePath: "Y.json",
		Name:       "y",
		Arity:      1,
		Signature: SpecSignature{
			Params: []SpecArg{
				{Key: "a", Type: "int", DefaultFrom: "missing"},
			},
		},
	}
	errs2 := validateSingleFile(cmd2)
	if len(errs2) != 1 || errs2[0].Field != "signature.params[0].default_from" {
		t.Fatalf("expected default_from error, got %v", errs2)
	}
}

func TestValidateCrossCommandDuplicateOpcodeAndMissingTarget(t *testing.T) {
	a := SpecCommand{SourcePath: "a.json", Name: "a", Opcodes: []string{"AA"}}
	b := SpecCommand{SourcePath: "b.json", Name: "b", Opcodes: []string{"AA"}}
	errs := validateCrossCommand([]SpecCommand{a, b})
	if len(errs) != 1 || errs[0].Kind != ErrDuplicateOpcode {
		t.Fatalf("expected one duplicate-opcode error, got %v", errs)
	}

	c := SpecCommand{
		SourcePath: "c.json", Name: "c", Opcodes: []string{"CC"},
		Constraints: []SpecConstraint{{Kind: "Requires", Target: "ZZ", Message: "needs ZZ"}},
	}
	errs2 := validateCrossCommand([]SpecCommand{c})
	if len(errs2) != 1 || errs2[0].Field != "constraints[0].target" {
		t.Fatalf("expected missing-target error, got %v", errs2)
	}
}

func writeSpecFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write spec file %s: %v", name, err)
	}
}

func TestCompileEndToEnd(t *testing.T) {
	dir := t.TempDir()

	writeSpecFile(t, dir, "FO.json", `{
		// field origin
		"name": "field-origin",
		"opcodes": ["FO"],
		"arity": 3,
		"plane": "format",
		"scope": "label",
		"category": "position",
		"opens_field": true,
		"signature": {
			"allow_empty_trailing": true,
			"params": [
				{"name": "x", "key": "x", "type": "int", "unit": "dots", "range": {"min": 0, "max": 32000}},
				{"name": "y", "key": "y", "type": "int", "unit": "dots", "range": {"min": 0, "max": 32000}},
				{"name": "z", "key": "justification", "type": "enum", "optional": true, "enum": ["0", "1", "2"]}
			]
		}
	}`)

	writeSpecFile(t, dir, "FS.json", `{
		"name": "field-separator",
		"opcodes": ["FS"],
		"arity": 0,
		"plane": "format",
		"scope": "label",
		"category": "data",
		"closes_field": true,
		"constraints": [
			{"kind": "Requires", "target": "FO", "message": "^FS requires a preceding ^FO", "severity": "error"}
		]
	}`)

	compiled, artifacts, err := Compile(context.Background(), dir, DefaultSchema())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	if entry, ok := compiled.Lookup("FO"); !ok || entry.Arity != 3 {
		t.Fatalf("expected FO entry with arity 3, got %+v ok=%v", entry, ok)
	}
	if _, ok := compiled.Lookup("FS"); !ok {
		t.Fatal("expected FS entry to be present")
	}
	if compiled.Trie() == nil {
		t.Fatal("expected a non-nil opcode trie")
	}

	if artifacts.Coverage.TotalCommands != 2 {
		t.Fatalf("TotalCommands = %d, want 2", artifacts.Coverage.TotalCommands)
	}
	var categoryCoverage *FieldCoverage
	for i := range artifacts.Coverage.Fields {
		if artifacts.Coverage.Fields[i].Field == "category" {
			categoryCoverage = &artifacts.Coverage.Fields[i]
		}
	}
	if categoryCoverage == nil || categoryCoverage.Present != 2 {
		t.Fatalf("expected category present=2, got %+v", categoryCoverage)
	}

	if len(artifacts.ConstraintsJSON) == 0 || len(artifacts.DocsJSON) == 0 {
		t.Fatal("expected non-empty constraints/docs bundles")
	}
}

func TestCompileFailsOnSchemaViolation(t *testing.T) {
	dir := t.TempDir()
	writeSpecFile(t, dir, "BAD.json", `{"name": "bad", "opcodes": ["BD"], "arity": 0, "plane": "nope"}`)

	_, _, err := Compile(context.Background(), dir, DefaultSchema())
	if err == nil {
		t.Fatal("expected error for invalid plane, got nil")
	}
}

func TestCompileFailsOnConstraintKindDrift(t *testing.T) {
	dir := t.TempDir()
	writeSpecFile(t, dir, "A.json", `{"name": "a", "opcodes": ["AA"], "arity": 0}`)

	schema := DefaultSchema()
	schema.ConstraintKinds = []string{"Order"}

	_, _, err := Compile(context.Background(), dir, schema)
	if err == nil {
		t.Fatal("expected constraint-kind drift error, got nil")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeSpecFile(t, dir, "FO.json", `{"name": "field-origin", "opcodes": ["FO"], "arity": 0}`)

	hash, err := HashSpecDir(dir)
	if err != nil {
		t.Fatalf("HashSpecDir() error: %v", err)
	}

	cacheDir := t.TempDir()
	cache, err := OpenDiskCache(cacheDir)
	if err != nil {
		t.Fatalf("OpenDiskCache() error: %v", err)
	}

	if _, ok, err := cache.Get(hash); err != nil || ok {
		t.Fatalf("expected cache miss, got ok=%v err=%v", ok, err)
	}

	artifacts := Artifacts{
		TablesJSON:      []byte(`{"schema_version":"x","format_version":"` + tables.FormatVersion + `","commands":[]}`),
		ConstraintsJSON: []byte(`{"commands":[]}`),
		DocsJSON:        []byte(`{"commands":[]}`),
		Coverage:        CoverageReport{TotalCommands: 1},
	}
	if err := cache.Put(hash, artifacts); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, ok, err := cache.Get(hash)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit after Put")
	}
	if string(got.TablesJSON) != string(artifacts.TablesJSON) {
		t.Fatalf("TablesJSON mismatch: got %q", got.TablesJSON)
	}

	// Changing the spec directory's content must change the hash and
	// therefore miss the old cache entry.
	writeSpecFile(t, dir, "FO.json", `{"name": "field-origin", "opcodes": ["FO"], "arity": 1}`)
	newHash, err := HashSpecDir(dir)
	if err != nil {
		t.Fatalf("HashSpecDir() error: %v", err)
	}
	if newHash == hash {
		t.Fatal("expected hash to change after editing spec file content")
	}
	if _, ok, _ := cache.Get(newHash); ok {
		t.Fatal("expected miss for the new hash")
	}
}
