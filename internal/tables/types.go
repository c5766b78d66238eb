// Package tables holds the in-memory schema for ZPL command definitions:
// argument signatures, structural role flags, cross-command constraints,
// profile-gate references, and the opcode trie used for longest-match
// recognition. Values are produced offline by internal/specgen and are
// immutable once loaded.
package tables

// ArgType is the primitive shape of a single argument value.
type ArgType uint8

const (
	ArgInt ArgType = iota
	ArgFloat
	ArgChar
	ArgString
	ArgEnum
)

func (t ArgType) String() string {
	switch t {
	case ArgInt:
		return "int"
	case ArgFloat:
		return "float"
	case ArgChar:
		return "char"
	case ArgString:
		return "string"
	case ArgEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Unit names the physical unit an argument's numeric value is expressed
// in. "dots" is the canonical unit device state converts everything to
// before a Range check.
type Unit string

const (
	UnitDots   Unit = "dots"
	UnitInches Unit = "in"
	UnitMM     Unit = "mm"
	UnitCM     Unit = "cm"
	UnitNone   Unit = ""
)

// Range is an inclusive numeric bound.
type Range struct {
	Min float64
	Max float64
}

// RoundingPolicy asks the validator to warn when a value isn't a
// multiple of Step.
type RoundingPolicy struct {
	Step float64
}

// Arg describes one positional (or split_rule-expanded) parameter of a
// command's signature.
type Arg struct {
	Name                string
	Key                 string
	Type                ArgType
	Unit                Unit
	Range               *Range
	Optional            bool
	Default             string
	DefaultFrom         string
	ProfileConstraint   string // dotted profile path, e.g. "page.width_dots"
	ProfileCompare      CompareOp
	RangeWhen           *Predicate
	RangeWhenRange      *Range
	RoundingPolicy      *RoundingPolicy
	RoundingPolicyWhen  *Predicate
	Enum                []string
	MinLength           int
	MaxLength           int
}

// CompareOp is a comparison operator used by profile_constraint and the
// Custom/Range constraint expression DSL.
type CompareOp uint8

const (
	CompareNone CompareOp = iota
	CompareEQ
	CompareNE
	CompareLT
	CompareLE
	CompareGT
	CompareGE
)

func (c CompareOp) String() string {
	switch c {
	case CompareEQ:
		return "="
	case CompareNE:
		return "!="
	case CompareLT:
		return "<"
	case CompareLE:
		return "<="
	case CompareGT:
		return ">"
	case CompareGE:
		return ">="
	default:
		return ""
	}
}

// Predicate is one leaf of the Custom/range_when/rounding_policy_when
// expression DSL: a key compared against a literal, optionally composed
// with other predicates via logical conjunction/disjunction.
type Predicate struct {
	// Key references an earlier-resolved argument (by Key) or a
	// device-state variable ("unit", "label_open").
	Key     string
	Op      CompareOp
	Literal string

	// And/Or hold sub-predicates for logical composition; at most one
	// of them is non-empty on any given node (a flat conjunction or
	// disjunction list, not a general tree — "small and closed" per the
	// design note).
	And []Predicate
	Or  []Predicate
}

// ConstraintKind enumerates the cross-command constraint shapes. This is
// the single source of truth mirrored by the spec schema's "kind" enum;
// internal/specgen cross-checks the two for drift.
type ConstraintKind uint8

const (
	ConstraintOrder ConstraintKind = iota
	ConstraintRequires
	ConstraintIncompatible
	ConstraintEmptyData
	ConstraintRange
	ConstraintNote
	ConstraintCustom
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintOrder:
		return "Order"
	case ConstraintRequires:
		return "Requires"
	case ConstraintIncompatible:
		return "Incompatible"
	case ConstraintEmptyData:
		return "EmptyData"
	case ConstraintRange:
		return "Range"
	case ConstraintNote:
		return "Note"
	case ConstraintCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// ConstraintKindNames lists every ConstraintKind by its schema string, in
// declaration order. internal/specgen's schema-parity test walks this
// slice to assert the schema's enum has neither more nor fewer members.
var ConstraintKindNames = []string{
	ConstraintOrder.String(),
	ConstraintRequires.String(),
	ConstraintIncompatible.String(),
	ConstraintEmptyData.String(),
	ConstraintRange.String(),
	ConstraintNote.String(),
	ConstraintCustom.String(),
}

// OrderRelation selects which side of X the current command must fall
// on, for a ConstraintOrder constraint.
type OrderRelation uint8

const (
	OrderBefore OrderRelation = iota
	OrderAfter
)

// Constraint is one cross-command rule attached to a CommandEntry.
type Constraint struct {
	Kind     ConstraintKind
	Target   string // opcode referenced by Order/Requires/Incompatible
	Relation OrderRelation
	Range    *Range
	Expr     *Predicate // Custom/Range expression tree
	Message  string
	Severity string // "error" | "warn" | "info"; empty defaults to error
}

// Plane classifies which subsystem of the printer a command configures.
type Plane uint8

const (
	PlaneFormat Plane = iota
	PlaneDevice
	PlaneHost
	PlaneConfig
)

// Scope classifies how long a command's effect persists.
type Scope uint8

const (
	ScopeLabel Scope = iota
	ScopeSession
	ScopeGlobal
)

// Signature describes how a command's raw argument text is split into
// positional slots.
type Signature struct {
	Params             []Arg
	Joiner             byte // delimiter used between params; 0 means "active delimiter"
	AllowEmptyTrailing bool
}

// SplitRule decomposes one glued composite parameter (e.g. "0N" from
// ^A0N) into fixed-width sub-fields by character count, starting at
// ParamIndex in the signature's Params.
type SplitRule struct {
	ParamIndex int
	Widths     []int
}

// CommandEntry is everything the parser and validator need to know about
// one command family.
type CommandEntry struct {
	Index int

	// Opcodes lists every mnemonic that resolves to this entry (usually
	// one; a handful of commands share behavior under two spellings).
	Opcodes []string

	Arity     int
	Signature Signature
	SplitRule *SplitRule

	OpensField    bool
	ClosesField   bool
	RequiresField bool
	FieldData     bool
	RawPayload    bool

	HexEscapeModifier bool

	Plane    Plane
	Scope    Scope
	Category string
	Stability string // "stable" | "deprecated" | "experimental"

	Constraints []Constraint

	// PrinterGates names profile feature flags gating this command at
	// the command level (tri-state: true passes, false is an error,
	// absent is skipped).
	PrinterGates []string

	// ChangesPrefix/ChangesDelimiter mark ^CC/~CC/^CT/~CT and ^CD/~CD:
	// the parser applies the new byte to the lexer immediately after
	// parsing this command's arguments.
	ChangesFormatPrefix  bool
	ChangesControlPrefix bool
	ChangesDelimiter     bool

	// ChangesUnit marks ^MU: the validator's device state adopts the
	// parsed unit argument as its active unit for subsequent range
	// checks.
	ChangesUnit bool
}

// FormatVersion is the canonical tables format this build understands.
// Load rejects any document whose format_version does not equal this
// exactly (SPEC_FULL.md pins 0.4.0 at time of writing).
const FormatVersion = "0.4.0"

// ParserTables is the root, immutable document produced by
// internal/specgen and consumed by the parser and validator.
type ParserTables struct {
	SchemaVersion string
	FormatVersion string
	Commands      []CommandEntry

	byOpcode map[string]*CommandEntry
	trie     *OpcodeTrie
}

// Lookup resolves an opcode string to its CommandEntry, if any command
// declares it.
func (t *ParserTables) Lookup(opcode string) (*CommandEntry, bool) {
	if t == nil || t.byOpcode == nil {
		return nil, false
	}
	e, ok := t.byOpcode[opcode]
	return e, ok
}

// Trie returns the pre-built opcode trie, which satisfies
// lexer.OpcodeMatcher.
func (t *ParserTables) Trie() *OpcodeTrie {
	if t == nil {
		return nil
	}
	return t.trie
}

// index builds byOpcode and trie from Commands. Called once after load
// or in-memory construction; ParserTables is immutable to callers from
// then on.
func (t *ParserTables) index() {
	t.byOpcode = make(map[string]*CommandEntry, len(t.Commands)*2)
	t.trie = NewOpcodeTrie()
	for i := range t.Commands {
		e := &t.Commands[i]
		e.Index = i
		for _, op := range e.Opcodes {
			t.byOpcode[op] = e
			t.trie.Insert(op, i)
		}
	}
}

// New constructs a ParserTables from already-decoded commands (used by
// internal/specgen after merging spec files, and by tests). The opcode
// index and trie are built immediately.
func New(schemaVersion string, commands []CommandEntry) *ParserTables {
	t := &ParserTables{SchemaVersion: schemaVersion, FormatVersion: FormatVersion, Commands: commands}
	t.index()
	return t
}
