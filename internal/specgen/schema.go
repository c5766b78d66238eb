package specgen

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"zplspec/internal/tables"
)

// Schema describes the permissible shape of a spec file: which top-level
// fields are required and which string enums are legal, so a drifted
// spec file or a drifted schema file fails loudly instead of silently
// producing a malformed table.
type Schema struct {
	RequiredFields  []string `json:"required_fields"`
	ArgTypes        []string `json:"arg_types"`
	Planes          []string `json:"planes"`
	Scopes          []string `json:"scopes"`
	ConstraintKinds []string `json:"constraint_kinds"`
	CompareOps      []string `json:"compare_ops"`
	Severities      []string `json:"severities"`
	Stabilities     []string `json:"stabilities"`
}

// DefaultSchema returns the built-in schema matching internal/tables'
// current enums exactly. LoadSchema falls back to this when no schema
// file is configured, so a minimal spec directory still validates.
func DefaultSchema() Schema {
	return Schema{
		RequiredFields:  []string{"name", "opcodes", "arity"},
		ArgTypes:        []string{"int", "float", "char", "string", "enum"},
		Planes:          []string{"format", "device", "host", "config"},
		Scopes:          []string{"label", "session", "global"},
		ConstraintKinds: append([]string(nil), tables.ConstraintKindNames...),
		CompareOps:      []string{"=", "!=", "<", "<=", ">", ">="},
		Severities:      []string{"error", "warn", "info"},
		Stabilities:     []string{"stable", "deprecated", "experimental"},
	}
}

// LoadSchema decodes a schema file from path.
func LoadSchema(path string) (Schema, error) {
	// #nosec G304 -- path is provided by the caller (CLI flag / config)
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("specgen: failed to read schema %q: %w", path, err)
	}
	stripped, err := StripComments(data)
	if err != nil {
		return Schema{}, fmt.Errorf("specgen: %s: %w", path, err)
	}
	var s Schema
	if err := json.Unmarshal(stripped, &s); err != nil {
		return Schema{}, fmt.Errorf("specgen: %s: invalid json: %w", path, err)
	}
	return s, nil
}

// ConstraintKindDrift reports any mismatch between the schema's declared
// constraint_kinds enum and internal/tables.ConstraintKindNames, the
// single source of truth the spec compiler's own code enforces. This is
// the "regression test asserts the set of constraint kinds in code
// equals the set in the schema" check, exposed as a callable so both the
// test suite and a `zpl genspec --check-schema` run can use it.
func ConstraintKindDrift(s Schema) []string {
	want := make(map[string]bool, len(tables.ConstraintKindNames))
	for _, k := range tables.ConstraintKindNames {
		want[k] = true
	}
	have := make(map[string]bool, len(s.ConstraintKinds))
	for _, k := range s.ConstraintKinds {
		have[k] = true
	}

	var drift []string
	for k := range want {
		if !have[k] {
			drift = append(drift, fmt.Sprintf("missing from schema: %s", k))
		}
	}
	for k := range have {
		if !want[k] {
			drift = append(drift, fmt.Sprintf("unknown to code: %s", k))
		}
	}
	sort.Strings(drift)
	return drift
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

// Validate checks one decoded SpecCommand against the schema, returning
// one *Error per violation with a precise file+path pointer (SourcePath
// plus a dotted field path such as "params[2].type").
func (s Schema) Validate(cmd SpecCommand) []*Error {
	var errs []*Error
	fail := func(field, msg string) {
		errs = append(errs, &Error{Kind: ErrSchemaViolation, Path: cmd.SourcePath, Field: field, Msg: msg})
	}

	if contains(s.RequiredFields, "name") && cmd.Name == "" {
		fail("name", "required field is empty")
	}
	if contains(s.RequiredFields, "opcodes") && len(cmd.Opcodes) == 0 {
		fail("opcodes", "required field is empty")
	}
	if contains(s.RequiredFields, "arity") && cmd.Arity < 0 {
		fail("arity", "must not be negative")
	}

	if cmd.Plane != "" && len(s.Planes) > 0 && !contains(s.Planes, cmd.Plane) {
		fail("plane", fmt.Sprintf("unknown plane %q", cmd.Plane))
	}
	if cmd.Scope != "" && len(s.Scopes) > 0 && !contains(s.Scopes, cmd.Scope) {
		fail("scope", fmt.Sprintf("unknown scope %q", cmd.Scope))
	}
	if cmd.Stability != "" && len(s.Stabilities) > 0 && !contains(s.Stabilities, cmd.Stability) {
		fail("stability", fmt.Sprintf("unknown stability %q", cmd.Stability))
	}

	for i, p := range cmd.Signature.Params {
		field := fmt.Sprintf("signature.params[%d]", i)
		if p.Type != "" && len(s.ArgTypes) > 0 && !contains(s.ArgTypes, p.Type) {
			fail(field+".type", fmt.Sprintf("unknown arg type %q", p.Type))
		}
		if p.ProfileCompare != "" && len(s.CompareOps) > 0 && !contains(s.CompareOps, p.ProfileCompare) {
			fail(field+".profile_compare", fmt.Sprintf("unknown compare op %q", p.ProfileCompare))
		}
		if p.Type == "enum" && len(p.Enum) == 0 {
			fail(field+".enum", "enum-typed argument must declare a non-empty enum")
		}
		if p.Range != nil && p.Range.Min > p.Range.Max {
			fail(field+".range", fmt.Sprintf("min %v exceeds max %v", p.Range.Min, p.Range.Max))
		}
	}

	for i, c := range cmd.Constraints {
		field := fmt.Sprintf("constraints[%d]", i)
		if len(s.ConstraintKinds) > 0 && !contains(s.ConstraintKinds, c.Kind) {
			fail(field+".kind", fmt.Sprintf("unknown constraint kind %q", c.Kind))
		}
		if c.Severity != "" && len(s.Severities) > 0 && !contains(s.Severities, c.Severity) {
			fail(field+".severity", fmt.Sprintf("unknown severity %q", c.Severity))
		}
		if c.Range != nil && c.Range.Min > c.Range.Max {
			fail(field+".range", fmt.Sprintf("min %v exceeds max %v", c.Range.Min, c.Range.Max))
		}
	}

	return errs
}
