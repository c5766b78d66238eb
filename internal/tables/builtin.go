package tables

// Builtin returns a small, hand-written ParserTables covering the
// commands exercised by SPEC_FULL.md's concrete scenarios and this
// module's own tests. It is what `zpl.Parse`/`zpl.Validate` fall back to
// when the caller supplies no external tables file — the "embedded
// tables" design note: a binding that ships as a single artifact can
// embed this literally rather than loading JSON at runtime.
//
// internal/specgen produces the full, generated table from per-command
// spec files; this hand-written set is deliberately small and is not
// regenerated from those files, so the two can drift — acceptable for a
// fallback whose job is "parse/validate common labels with no external
// configuration," not full symbology coverage.
func Builtin() *ParserTables {
	dotsRange := func(lo, hi float64) *Range { return &Range{Min: lo, Max: hi} }

	commands := []CommandEntry{
		{
			Opcodes: []string{"XA"},
			Arity:   0,
			Plane:   PlaneHost, Scope: ScopeLabel, Category: "format",
		},
		{
			Opcodes: []string{"XZ"},
			Arity:   0,
			Plane:   PlaneHost, Scope: ScopeLabel, Category: "format",
		},
		{
			Opcodes:    []string{"FO"},
			Arity:      3,
			OpensField: true,
			Plane:      PlaneFormat, Scope: ScopeLabel, Category: "position",
			Signature: Signature{
				AllowEmptyTrailing: true,
				Params: []Arg{
					{Name: "x", Key: "x", Type: ArgInt, Unit: UnitDots, Range: dotsRange(0, 32000)},
					{Name: "y", Key: "y", Type: ArgInt, Unit: UnitDots, Range: dotsRange(0, 32000)},
					{Name: "z", Key: "justification", Type: ArgEnum, Optional: true, Enum: []string{"0", "1", "2"}},
				},
			},
		},
		{
			Opcodes:       []string{"A0"},
			Arity:         3,
			SplitRule:     &SplitRule{ParamIndex: 0, Widths: []int{1, 1}},
			Plane:         PlaneFormat, Scope: ScopeLabel, Category: "font",
			Signature: Signature{
				Params: []Arg{
					{Name: "font", Key: "font", Type: ArgChar},
					{Name: "orientation", Key: "orientation", Type: ArgEnum, Enum: []string{"N", "R", "I", "B"}, Optional: true, Default: "N"},
					{Name: "height", Key: "height", Type: ArgInt, Unit: UnitDots, Optional: true, Range: dotsRange(10, 32000)},
					{Name: "width", Key: "width", Type: ArgInt, Unit: UnitDots, Optional: true, Range: dotsRange(10, 32000)},
				},
			},
		},
		{
			Opcodes:       []string{"FD"},
			Arity:         1,
			FieldData:     true,
			Plane:         PlaneFormat, Scope: ScopeLabel, Category: "data",
		},
		{
			Opcodes:     []string{"FS"},
			Arity:       0,
			ClosesField: true,
			Plane:       PlaneFormat, Scope: ScopeLabel, Category: "data",
		},
		{
			Opcodes:       []string{"FN"},
			Arity:         1,
			Plane:         PlaneFormat, Scope: ScopeLabel, Category: "field",
			Constraints: []Constraint{
				{Kind: ConstraintNote, Message: "^FN field numbers must be unique within a label"},
			},
			Signature: Signature{
				Params: []Arg{
					{Name: "number", Key: "number", Type: ArgInt, Range: dotsRange(0, 9999)},
				},
			},
		},
		{
			Opcodes: []string{"PW"},
			Arity:   1,
			Plane:   PlaneDevice, Scope: ScopeSession, Category: "layout",
			Signature: Signature{
				Params: []Arg{
					{
						Name: "width", Key: "width", Type: ArgInt, Unit: UnitDots,
						Range: dotsRange(2, 32000), ProfileConstraint: "page.width_dots", ProfileCompare: CompareLE,
					},
				},
			},
		},
		{
			Opcodes:          []string{"CD"},
			Arity:            1,
			ChangesDelimiter: true,
			Plane:            PlaneHost, Scope: ScopeGlobal, Category: "control",
			Signature: Signature{Params: []Arg{{Name: "delim", Key: "delim", Type: ArgChar}}},
		},
		{
			Opcodes:             []string{"CC"},
			Arity:               1,
			ChangesFormatPrefix: true,
			Plane:               PlaneHost, Scope: ScopeGlobal, Category: "control",
			Signature: Signature{Params: []Arg{{Name: "prefix", Key: "prefix", Type: ArgChar}}},
		},
		{
			Opcodes:              []string{"CT"},
			Arity:                1,
			ChangesControlPrefix: true,
			Plane:                PlaneHost, Scope: ScopeGlobal, Category: "control",
			Signature: Signature{Params: []Arg{{Name: "prefix", Key: "prefix", Type: ArgChar}}},
		},
		{
			Opcodes:     []string{"MU"},
			Arity:       1,
			ChangesUnit: true,
			Plane:       PlaneDevice, Scope: ScopeGlobal, Category: "units",
			Signature: Signature{
				Params: []Arg{
					{Name: "unit", Key: "unit", Type: ArgEnum, Enum: []string{"D", "I", "C"}},
				},
			},
		},
		{
			Opcodes:           []string{"FH"},
			Arity:             1,
			HexEscapeModifier: true,
			Plane:             PlaneFormat, Scope: ScopeLabel, Category: "data",
			Signature: Signature{
				Params: []Arg{
					{Name: "indicator", Key: "indicator", Type: ArgChar, Optional: true, Default: "_"},
				},
			},
		},
		{
			Opcodes:       []string{"GF"},
			Arity:         4,
			RawPayload:    true,
			Plane:         PlaneFormat, Scope: ScopeLabel, Category: "graphic",
			Signature: Signature{
				Params: []Arg{
					{Name: "format", Key: "format", Type: ArgEnum, Enum: []string{"A", "B", "C"}},
					{Name: "byte_count", Key: "byte_count", Type: ArgInt, Range: dotsRange(0, 10_000_000)},
					{Name: "total_bytes", Key: "total_bytes", Type: ArgInt, Range: dotsRange(0, 10_000_000)},
					{Name: "bytes_per_row", Key: "bytes_per_row", Type: ArgInt, Range: dotsRange(0, 10_000_000)},
				},
			},
		},
		{
			Opcodes:       []string{"BC"},
			Arity:         6,
			Plane:         PlaneFormat, Scope: ScopeLabel, Category: "barcode",
			Signature: Signature{
				AllowEmptyTrailing: true,
				Params: []Arg{
					{Name: "orientation", Key: "orientation", Type: ArgEnum, Optional: true, Enum: []string{"N", "R", "I", "B"}},
					{Name: "height", Key: "height", Type: ArgInt, Unit: UnitDots, Optional: true, Range: dotsRange(1, 32000)},
					{Name: "print_interpretation_line", Key: "line", Type: ArgEnum, Optional: true, Enum: []string{"Y", "N"}},
					{Name: "print_interpretation_line_above", Key: "line_above", Type: ArgEnum, Optional: true, Enum: []string{"Y", "N"}},
					{Name: "check_digit", Key: "check_digit", Type: ArgEnum, Optional: true, Enum: []string{"Y", "N"}},
					{Name: "mode", Key: "mode", Type: ArgEnum, Optional: true, Enum: []string{"N", "U", "A", "D"}},
				},
			},
		},
	}

	return New("builtin-0.4.0", commands)
}
