// Package specgen is the offline spec compiler (component C): it reads
// one comment-bearing JSON file per command family from a spec
// directory, validates each against a schema file, cross-checks fields
// across the whole set, merges everything into a single
// *tables.ParserTables, and emits the canonical runtime tables alongside
// a constraints bundle, a docs bundle, and a coverage report.
package specgen

import "zplspec/internal/tables"

// SpecArg is the on-disk shape of one argument slot, shared with the
// canonical tables wire format (internal/tables/load.go's jsonArg) so a
// compiled spec file round-trips byte-for-byte through tables.LoadBytes.
type SpecArg struct {
	Name              string        `json:"name,omitempty"`
	Key               string        `json:"key,omitempty"`
	Type              string        `json:"type"`
	Unit              string        `json:"unit,omitempty"`
	Range             *tables.Range `json:"range,omitempty"`
	Optional          bool          `json:"optional,omitempty"`
	Default           string        `json:"default,omitempty"`
	DefaultFrom       string        `json:"default_from,omitempty"`
	ProfileConstraint string        `json:"profile_constraint,omitempty"`
	ProfileCompare    string        `json:"profile_compare,omitempty"`
	RangeWhen         *SpecPred     `json:"range_when,omitempty"`
	RangeWhenRange    *tables.Range `json:"range_when_range,omitempty"`
	RoundingStep      *float64      `json:"rounding_policy,omitempty"`
	RoundingWhen      *SpecPred     `json:"rounding_policy_when,omitempty"`
	Enum              []string      `json:"enum,omitempty"`
	MinLength         int           `json:"min_length,omitempty"`
	MaxLength         int           `json:"max_length,omitempty"`
}

// SpecPred is the on-disk shape of a range_when/rounding_policy_when/
// Custom-constraint predicate leaf.
type SpecPred struct {
	Key     string     `json:"key,omitempty"`
	Op      string     `json:"op,omitempty"`
	Literal string     `json:"literal,omitempty"`
	And     []SpecPred `json:"and,omitempty"`
	Or      []SpecPred `json:"or,omitempty"`
}

// SpecSplitRule is the on-disk shape of a glued-composite-parameter split.
type SpecSplitRule struct {
	ParamIndex int   `json:"param_index"`
	Widths     []int `json:"widths"`
}

// SpecConstraint is the on-disk shape of one cross-command rule.
type SpecConstraint struct {
	Kind     string        `json:"kind"`
	Target   string        `json:"target,omitempty"`
	Relation string        `json:"relation,omitempty"`
	Range    *tables.Range `json:"range,omitempty"`
	Expr     *SpecPred     `json:"expr,omitempty"`
	Message  string        `json:"message"`
	Severity string        `json:"severity,omitempty"`
}

// SpecSignature is the on-disk shape of a command's argument signature.
type SpecSignature struct {
	Params             []SpecArg `json:"params"`
	Joiner             string    `json:"joiner,omitempty"`
	AllowEmptyTrailing bool      `json:"allow_empty_trailing,omitempty"`
}

// SpecCommand is the decoded shape of one per-command spec file. Field
// names and JSON tags mirror internal/tables/load.go's jsonCommandEntry
// exactly, plus Name/Description, which exist only for spec-file
// bookkeeping (stable merge ordering, the docs bundle) and are not part
// of the canonical runtime tables.
type SpecCommand struct {
	// Name is the spec file's declared command family name, used for
	// deterministic merge ordering and the docs bundle. It need not
	// match any opcode.
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Opcodes              []string         `json:"opcodes"`
	Arity                int              `json:"arity"`
	Signature            SpecSignature    `json:"signature"`
	SplitRule            *SpecSplitRule   `json:"split_rule,omitempty"`
	OpensField           bool             `json:"opens_field,omitempty"`
	ClosesField          bool             `json:"closes_field,omitempty"`
	RequiresField        bool             `json:"requires_field,omitempty"`
	FieldData            bool             `json:"field_data,omitempty"`
	RawPayload           bool             `json:"raw_payload,omitempty"`
	HexEscapeModifier    bool             `json:"hex_escape_modifier,omitempty"`
	Plane                string           `json:"plane,omitempty"`
	Scope                string           `json:"scope,omitempty"`
	Category             string           `json:"category,omitempty"`
	Stability            string           `json:"stability,omitempty"`
	Constraints          []SpecConstraint `json:"constraints,omitempty"`
	PrinterGates         []string         `json:"printer_gates,omitempty"`
	ChangesFormatPrefix  bool             `json:"changes_format_prefix,omitempty"`
	ChangesControlPrefix bool             `json:"changes_control_prefix,omitempty"`
	ChangesDelimiter     bool             `json:"changes_delimiter,omitempty"`
	ChangesUnit          bool             `json:"changes_unit,omitempty"`

	// SourcePath is set by the loader to the file the command was read
	// from; it is never part of the JSON document itself.
	SourcePath string `json:"-"`
}

// Artifacts bundles the four outputs component C emits: the canonical
// runtime tables document (already in internal/tables' wire JSON shape),
// a tooling-facing constraints bundle, a tooling-facing docs bundle, and
// the field coverage report.
type Artifacts struct {
	TablesJSON      []byte
	ConstraintsJSON []byte
	DocsJSON        []byte
	Coverage        CoverageReport
}

// CoverageReport counts, per tracked field, how many merged commands set
// it versus leave it at its zero value ("present/missing counts per
// field" per the spec compiler's fifth step).
type CoverageReport struct {
	TotalCommands int             `json:"total_commands"`
	Fields        []FieldCoverage `json:"fields"`
}

// FieldCoverage is one row of CoverageReport.
type FieldCoverage struct {
	Field   string `json:"field"`
	Present int    `json:"present"`
	Missing int    `json:"missing"`
}
