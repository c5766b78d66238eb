package specgen

import "fmt"

// validateSingleFile performs the cross-field checks that only need one
// command's own document: signature-vs-arity agreement, composite
// (split_rule) expansion bounds, and argument hygiene (duplicate keys,
// default_from references a valid sibling).
func validateSingleFile(cmd SpecCommand) []*Error {
	var errs []*Error
	fail := func(field, msg string) {
		errs = append(errs, &Error{Kind: ErrCrossField, Path: cmd.SourcePath, Field: field, Msg: msg})
	}

	params := cmd.Signature.Params
	if cmd.SplitRule == nil {
		if cmd.Arity != len(params) {
			fail("arity", fmt.Sprintf("declares %d but signature.params has %d entries", cmd.Arity, len(params)))
		}
	} else {
		sr := cmd.SplitRule
		if sr.ParamIndex < 0 || sr.ParamIndex >= len(params) {
			fail("split_rule.param_index", fmt.Sprintf("index %d out of range for %d params", sr.ParamIndex, len(params)))
		} else if sr.ParamIndex+len(sr.Widths) > len(params) {
			fail("split_rule.widths", fmt.Sprintf("expansion of %d sub-fields from param_index %d exceeds %d params", len(sr.Widths), sr.ParamIndex, len(params)))
		} else {
			expectedArity := len(params) - len(sr.Widths) + 1
			if cmd.Arity != expectedArity {
				fail("arity", fmt.Sprintf("declares %d but split_rule collapses %d params to 1 raw slot, expecting %d", cmd.Arity, len(sr.Widths), expectedArity))
			}
		}
	}

	seenKeys := make(map[string]bool, len(params))
	validKeys := make(map[string]bool, len(params))
	for _, p := range params {
		if p.Key != "" {
			validKeys[p.Key] = true
		}
	}
	for i, p := range params {
		field := fmt.Sprintf("signature.params[%d]", i)
		if p.Key != "" {
			if seenKeys[p.Key] {
				fail(field+".key", fmt.Sprintf("duplicate key %q", p.Key))
			}
			seenKeys[p.Key] = true
		}
		if p.DefaultFrom != "" {
			if p.DefaultFrom == p.Key {
				fail(field+".default_from", fmt.Sprintf("references itself %q", p.DefaultFrom))
			} else if !validKeys[p.DefaultFrom] {
				fail(field+".default_from", fmt.Sprintf("references unknown sibling key %q", p.DefaultFrom))
			}
		}
	}

	return errs
}

// validateCrossCommand performs the checks that require the full merged
// command set: override targets (Order/Requires/Incompatible) must
// reference an opcode some command declares, and opcodes must not be
// claimed by more than one command family.
func validateCrossCommand(cmds []SpecCommand) []*Error {
	var errs []*Error

	opcodeOwner := make(map[string]string, len(cmds)*2)
	for _, cmd := range cmds {
		for _, op := range cmd.Opcodes {
			if owner, dup := opcodeOwner[op]; dup {
				errs = append(errs, &Error{
					Kind: ErrDuplicateOpcode, Path: cmd.SourcePath,
					Field: "opcodes",
					Msg:   fmt.Sprintf("opcode %q already declared by %s", op, owner),
				})
				continue
			}
			opcodeOwner[op] = cmd.SourcePath
		}
	}

	for _, cmd := range cmds {
		for i, c := range cmd.Constraints {
			if c.Target == "" {
				continue
			}
			if _, ok := opcodeOwner[c.Target]; !ok {
				errs = append(errs, &Error{
					Kind: ErrCrossField, Path: cmd.SourcePath,
					Field: fmt.Sprintf("constraints[%d].target", i),
					Msg:   fmt.Sprintf("references unknown opcode %q", c.Target),
				})
			}
		}
	}

	return errs
}
