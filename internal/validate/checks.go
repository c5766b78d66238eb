package validate

import (
	"fmt"
	"strconv"

	"zplspec/internal/ast"
	"zplspec/internal/diag"
	"zplspec/internal/tables"
)

// checkArgs runs signature/arity, type, range, rounding, and enum checks
// against n's already-parsed Args, returning the resolved key→value map
// later stages (constraints, semantics, profile gates) consult.
func (v *validator) checkArgs(entry *tables.CommandEntry, n *ast.Node, rl *ResolvedLabel) resolvedArgs {
	resolved := make(resolvedArgs, len(entry.Signature.Params))

	if len(n.Args) > len(entry.Signature.Params) && !entry.Signature.AllowEmptyTrailing {
		v.report(diag.SemaTooManyArgs, diag.SevError, n.Span,
			fmt.Sprintf("^%s takes at most %d argument(s), got %d", n.Code, len(entry.Signature.Params), len(n.Args)))
	}

	for i, param := range entry.Signature.Params {
		var slot ast.ArgSlot
		if i < len(n.Args) {
			slot = n.Args[i]
		} else {
			slot = ast.ArgSlot{Key: param.Key, Presence: ast.Missing}
		}
		v.checkOneArg(entry, n, param, slot, resolved)
	}

	v.trackResolvedState(n, resolved, rl)
	return resolved
}

func (v *validator) checkOneArg(entry *tables.CommandEntry, n *ast.Node, param tables.Arg, slot ast.ArgSlot, resolved resolvedArgs) {
	switch slot.Presence {
	case ast.Missing:
		if !param.Optional && param.Default == "" && param.DefaultFrom == "" {
			v.report(diag.SemaMissingRequiredArg, diag.SevError, n.Span,
				fmt.Sprintf("^%s: required argument %q omitted", n.Code, paramLabel(param)))
		}
		if param.Default != "" {
			resolved[param.Key] = param.Default
		}
		return
	case ast.Empty:
		if !entry.Signature.AllowEmptyTrailing && !param.Optional {
			v.report(diag.SemaEmptyArgNotAllowed, diag.SevError, slot.Span,
				fmt.Sprintf("^%s: argument %q may not be empty", n.Code, paramLabel(param)))
		}
		if param.Default != "" {
			resolved[param.Key] = param.Default
		}
		return
	}

	resolved[param.Key] = slot.Value
	v.checkType(n, param, slot)
	v.checkRange(n, param, slot, resolved)
	v.checkRounding(n, param, slot, resolved)
	v.checkEnum(n, param, slot)
}

func paramLabel(a tables.Arg) string {
	if a.Key != "" {
		return a.Key
	}
	return a.Name
}

func (v *validator) checkType(n *ast.Node, param tables.Arg, slot ast.ArgSlot) {
	switch param.Type {
	case tables.ArgInt:
		if _, err := strconv.ParseInt(slot.Value, 10, 64); err != nil {
			v.report(diag.SemaArgTypeMismatch, diag.SevError, slot.Span,
				fmt.Sprintf("^%s: %q is not a valid integer for %q", n.Code, slot.Value, paramLabel(param)))
		}
	case tables.ArgFloat:
		if _, err := strconv.ParseFloat(slot.Value, 64); err != nil {
			v.report(diag.SemaArgTypeMismatch, diag.SevError, slot.Span,
				fmt.Sprintf("^%s: %q is not a valid number for %q", n.Code, slot.Value, paramLabel(param)))
		}
	case tables.ArgChar:
		if len([]rune(slot.Value)) != 1 {
			v.report(diag.SemaArgTypeMismatch, diag.SevError, slot.Span,
				fmt.Sprintf("^%s: %q must be exactly one character for %q", n.Code, slot.Value, paramLabel(param)))
		}
	case tables.ArgString:
		v.checkStringLength(n, param, slot)
	case tables.ArgEnum:
		// validated by checkEnum
	}
}

func (v *validator) checkStringLength(n *ast.Node, param tables.Arg, slot ast.ArgSlot) {
	length := len([]rune(slot.Value))
	if param.MinLength > 0 && length < param.MinLength {
		v.report(diag.SemaArgOutOfRange, diag.SevError, slot.Span,
			fmt.Sprintf("^%s: %q is shorter than the minimum length %d for %q", n.Code, slot.Value, param.MinLength, paramLabel(param)))
	}
	if param.MaxLength > 0 && length > param.MaxLength {
		v.report(diag.SemaArgOutOfRange, diag.SevError, slot.Span,
			fmt.Sprintf("^%s: %q exceeds the maximum length %d for %q", n.Code, slot.Value, param.MaxLength, paramLabel(param)))
	}
}

func (v *validator) checkRange(n *ast.Node, param tables.Arg, slot ast.ArgSlot, resolved resolvedArgs) {
	rng := param.Range
	if param.RangeWhen != nil && evalPredicate(param.RangeWhen, resolved, v.dev) && param.RangeWhenRange != nil {
		rng = param.RangeWhenRange
	}
	if rng == nil {
		return
	}
	f, err := strconv.ParseFloat(slot.Value, 64)
	if err != nil {
		return // already reported by checkType
	}
	dots := v.dev.ConvertToDots(f, param.Unit)
	if dots < rng.Min || dots > rng.Max {
		v.report(diag.SemaArgOutOfRange, diag.SevError, slot.Span,
			fmt.Sprintf("^%s: %q (%.4g) falls outside [%g, %g] for %q", n.Code, slot.Value, dots, rng.Min, rng.Max, paramLabel(param)))
	}
}

func (v *validator) checkRounding(n *ast.Node, param tables.Arg, slot ast.ArgSlot, resolved resolvedArgs) {
	if param.RoundingPolicy == nil || param.RoundingPolicy.Step <= 0 {
		return
	}
	if param.RoundingPolicyWhen != nil && !evalPredicate(param.RoundingPolicyWhen, resolved, v.dev) {
		return
	}
	f, err := strconv.ParseFloat(slot.Value, 64)
	if err != nil {
		return
	}
	step := param.RoundingPolicy.Step
	remainder := remainderOf(f, step)
	if remainder != 0 {
		v.report(diag.SemaArgRoundedToStep, diag.SevWarning, slot.Span,
			fmt.Sprintf("^%s: %q is not a multiple of %g for %q", n.Code, slot.Value, step, paramLabel(param)))
	}
}

func remainderOf(v, step float64) float64 {
	q := v / step
	rounded := float64(int64(q + 0.5))
	if q < 0 {
		rounded = float64(int64(q - 0.5))
	}
	return v - rounded*step
}

func (v *validator) checkEnum(n *ast.Node, param tables.Arg, slot ast.ArgSlot) {
	if param.Type != tables.ArgEnum || len(param.Enum) == 0 {
		return
	}
	for _, e := range param.Enum {
		if e == slot.Value {
			return
		}
	}
	v.report(diag.SemaArgEnumMismatch, diag.SevError, slot.Span,
		fmt.Sprintf("^%s: %q is not one of %v for %q", n.Code, slot.Value, param.Enum, paramLabel(param)))
}

// trackResolvedState folds resolved args into the label's accumulating
// device-state snapshot (font, orientation, home position) surfaced via
// resolved_labels.
func (v *validator) trackResolvedState(n *ast.Node, resolved resolvedArgs, rl *ResolvedLabel) {
	switch n.Code {
	case "A0":
		if f, ok := resolved["font"]; ok {
			rl.Font = f
		}
		if o, ok := resolved["orientation"]; ok {
			rl.Orientation = o
		}
	case "FO":
		if x, ok := resolved["x"]; ok {
			if f, err := strconv.ParseFloat(x, 64); err == nil {
				rl.HomeX = v.dev.ConvertToDots(f, tables.UnitDots)
			}
		}
		if y, ok := resolved["y"]; ok {
			if f, err := strconv.ParseFloat(y, 64); err == nil {
				rl.HomeY = v.dev.ConvertToDots(f, tables.UnitDots)
			}
		}
	}
}
