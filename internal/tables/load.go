package tables

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonArg mirrors Arg for the canonical on-disk document (§3's "Arg"
// shape). Field names match the JSON keys internal/specgen emits.
type jsonArg struct {
	Name               string   `json:"name,omitempty"`
	Key                string   `json:"key,omitempty"`
	Type               string   `json:"type"`
	Unit               string   `json:"unit,omitempty"`
	Range              *Range   `json:"range,omitempty"`
	Optional           bool     `json:"optional,omitempty"`
	Default            string   `json:"default,omitempty"`
	DefaultFrom        string   `json:"default_from,omitempty"`
	ProfileConstraint  string   `json:"profile_constraint,omitempty"`
	ProfileCompare     string   `json:"profile_compare,omitempty"`
	RangeWhen          *jsonPred `json:"range_when,omitempty"`
	RangeWhenRange     *Range   `json:"range_when_range,omitempty"`
	RoundingStep       *float64 `json:"rounding_policy,omitempty"`
	RoundingWhen       *jsonPred `json:"rounding_policy_when,omitempty"`
	Enum               []string `json:"enum,omitempty"`
	MinLength          int      `json:"min_length,omitempty"`
	MaxLength          int      `json:"max_length,omitempty"`
}

type jsonPred struct {
	Key     string     `json:"key,omitempty"`
	Op      string     `json:"op,omitempty"`
	Literal string     `json:"literal,omitempty"`
	And     []jsonPred `json:"and,omitempty"`
	Or      []jsonPred `json:"or,omitempty"`
}

type jsonSplitRule struct {
	ParamIndex int   `json:"param_index"`
	Widths     []int `json:"widths"`
}

type jsonConstraint struct {
	Kind     string    `json:"kind"`
	Target   string    `json:"target,omitempty"`
	Relation string    `json:"relation,omitempty"`
	Range    *Range    `json:"range,omitempty"`
	Expr     *jsonPred `json:"expr,omitempty"`
	Message  string    `json:"message"`
	Severity string    `json:"severity,omitempty"`
}

type jsonSignature struct {
	Params             []jsonArg `json:"params"`
	Joiner             string    `json:"joiner,omitempty"`
	AllowEmptyTrailing bool      `json:"allow_empty_trailing,omitempty"`
}

type jsonCommandEntry struct {
	Opcodes              []string         `json:"opcodes"`
	Arity                int              `json:"arity"`
	Signature            jsonSignature    `json:"signature"`
	SplitRule            *jsonSplitRule   `json:"split_rule,omitempty"`
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
	Constraints          []jsonConstraint `json:"constraints,omitempty"`
	PrinterGates         []string         `json:"printer_gates,omitempty"`
	ChangesFormatPrefix  bool             `json:"changes_format_prefix,omitempty"`
	ChangesControlPrefix bool             `json:"changes_control_prefix,omitempty"`
	ChangesDelimiter     bool             `json:"changes_delimiter,omitempty"`
	ChangesUnit          bool             `json:"changes_unit,omitempty"`
}

type jsonDoc struct {
	SchemaVersion string             `json:"schema_version"`
	FormatVersion string             `json:"format_version"`
	Commands      []jsonCommandEntry `json:"commands"`
}

// LoadBytes decodes a canonical parser-tables JSON document. A
// mismatching format_version is a load error (SPEC_FULL.md §4.B); this
// is a typed failure returned to the caller, never a diag.Bag entry, per
// the out-of-band failure taxonomy.
func LoadBytes(data []byte) (*ParserTables, error) {
	var doc jsonDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("tables: invalid json: %w", err)
	}
	if doc.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("tables: format_version %q unsupported by this build (want %q)", doc.FormatVersion, FormatVersion)
	}
	commands := make([]CommandEntry, len(doc.Commands))
	for i, jc := range doc.Commands {
		commands[i] = commandEntryFromJSON(jc)
	}
	t := New(doc.SchemaVersion, commands)
	return t, nil
}

// Load reads and decodes a canonical parser-tables JSON document from
// disk.
func Load(path string) (*ParserTables, error) {
	// #nosec G304 -- path is provided by the caller (CLI flag / config)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tables: %w", err)
	}
	return LoadBytes(data)
}

func commandEntryFromJSON(jc jsonCommandEntry) CommandEntry {
	e := CommandEntry{
		Opcodes:              jc.Opcodes,
		Arity:                jc.Arity,
		OpensField:           jc.OpensField,
		ClosesField:          jc.ClosesField,
		RequiresField:        jc.RequiresField,
		FieldData:            jc.FieldData,
		RawPayload:           jc.RawPayload,
		HexEscapeModifier:    jc.HexEscapeModifier,
		Category:             jc.Category,
		Stability:            jc.Stability,
		PrinterGates:         jc.PrinterGates,
		ChangesFormatPrefix:  jc.ChangesFormatPrefix,
		ChangesControlPrefix: jc.ChangesControlPrefix,
		ChangesDelimiter:     jc.ChangesDelimiter,
		ChangesUnit:          jc.ChangesUnit,
		Plane:                planeFromString(jc.Plane),
		Scope:                scopeFromString(jc.Scope),
	}
	e.Signature = signatureFromJSON(jc.Signature)
	if jc.SplitRule != nil {
		e.SplitRule = &SplitRule{ParamIndex: jc.SplitRule.ParamIndex, Widths: jc.SplitRule.Widths}
	}
	for _, jcn := range jc.Constraints {
		e.Constraints = append(e.Constraints, constraintFromJSON(jcn))
	}
	return e
}

func signatureFromJSON(js jsonSignature) Signature {
	sig := Signature{AllowEmptyTrailing: js.AllowEmptyTrailing}
	if js.Joiner != "" {
		sig.Joiner = js.Joiner[0]
	}
	for _, ja := range js.Params {
		sig.Params = append(sig.Params, argFromJSON(ja))
	}
	return sig
}

func argFromJSON(ja jsonArg) Arg {
	a := Arg{
		Name:              ja.Name,
		Key:               ja.Key,
		Type:              argTypeFromString(ja.Type),
		Unit:              Unit(ja.Unit),
		Range:             ja.Range,
		Optional:          ja.Optional,
		Default:           ja.Default,
		DefaultFrom:       ja.DefaultFrom,
		ProfileConstraint: ja.ProfileConstraint,
		ProfileCompare:    compareOpFromString(ja.ProfileCompare),
		RangeWhenRange:    ja.RangeWhenRange,
		Enum:              ja.Enum,
		MinLength:         ja.MinLength,
		MaxLength:         ja.MaxLength,
	}
	if ja.RangeWhen != nil {
		p := predicateFromJSON(*ja.RangeWhen)
		a.RangeWhen = &p
	}
	if ja.RoundingStep != nil {
		a.RoundingPolicy = &RoundingPolicy{Step: *ja.RoundingStep}
	}
	if ja.RoundingWhen != nil {
		p := predicateFromJSON(*ja.RoundingWhen)
		a.RoundingPolicyWhen = &p
	}
	return a
}

func predicateFromJSON(jp jsonPred) Predicate {
	p := Predicate{Key: jp.Key, Op: compareOpFromString(jp.Op), Literal: jp.Literal}
	for _, sub := range jp.And {
		p.And = append(p.And, predicateFromJSON(sub))
	}
	for _, sub := range jp.Or {
		p.Or = append(p.Or, predicateFromJSON(sub))
	}
	return p
}

func constraintFromJSON(jc jsonConstraint) Constraint {
	c := Constraint{
		Kind:     constraintKindFromString(jc.Kind),
		Target:   jc.Target,
		Range:    jc.Range,
		Message:  jc.Message,
		Severity: jc.Severity,
	}
	if jc.Relation == "after" {
		c.Relation = OrderAfter
	}
	if jc.Expr != nil {
		p := predicateFromJSON(*jc.Expr)
		c.Expr = &p
	}
	return c
}

func argTypeFromString(s string) ArgType {
	switch s {
	case "int":
		return ArgInt
	case "float":
		return ArgFloat
	case "char":
		return ArgChar
	case "enum":
		return ArgEnum
	default:
		return ArgString
	}
}

func compareOpFromString(s string) CompareOp {
	switch s {
	case "=":
		return CompareEQ
	case "!=":
		return CompareNE
	case "<":
		return CompareLT
	case "<=":
		return CompareLE
	case ">":
		return CompareGT
	case ">=":
		return CompareGE
	default:
		return CompareNone
	}
}

func constraintKindFromString(s string) ConstraintKind {
	switch s {
	case "Order":
		return ConstraintOrder
	case "Requires":
		return ConstraintRequires
	case "Incompatible":
		return ConstraintIncompatible
	case "EmptyData":
		return ConstraintEmptyData
	case "Range":
		return ConstraintRange
	case "Custom":
		return ConstraintCustom
	default:
		return ConstraintNote
	}
}

func planeFromString(s string) Plane {
	switch s {
	case "device":
		return PlaneDevice
	case "host":
		return PlaneHost
	case "config":
		return PlaneConfig
	default:
		return PlaneFormat
	}
}

func scopeFromString(s string) Scope {
	switch s {
	case "session":
		return ScopeSession
	case "global":
		return ScopeGlobal
	default:
		return ScopeLabel
	}
}
