package validate

import (
	"fmt"

	"zplspec/internal/ast"
	"zplspec/internal/diag"
	"zplspec/internal/profile"
	"zplspec/internal/tables"
)

// checkProfileGates resolves entry's command-level PrinterGates and each
// argument's ProfileConstraint against the loaded profile. A nil profile
// skips every gate, per the tri-state "unknown never fails" design.
func (v *validator) checkProfileGates(entry *tables.CommandEntry, n *ast.Node, resolved resolvedArgs) {
	if v.profile == nil {
		return
	}
	for _, gate := range entry.PrinterGates {
		switch profile.ResolveGate(v.profile, gate) {
		case profile.GateFail:
			v.report(diag.ProfileCommandUnsupported, diag.SevError, n.Span,
				fmt.Sprintf("^%s is unsupported by the loaded printer profile (%s)", n.Code, gate))
		case profile.GateSkip:
			// unknown feature key: neither confirmed nor denied
		}
	}

	for _, param := range entry.Signature.Params {
		if param.ProfileConstraint == "" {
			continue
		}
		val, ok := resolved[param.Key]
		if !ok {
			continue
		}
		f, ok := parseFloatOK(val)
		if !ok {
			continue
		}
		bound, ok := v.profile.Resolve(param.ProfileConstraint)
		if !ok {
			continue
		}
		if !compareProfile(f, bound, param.ProfileCompare) {
			v.report(diag.ProfileArgUnsupported, diag.SevError, n.Span,
				fmt.Sprintf("^%s: %q (%g) does not satisfy %s %s %g from the loaded profile",
					n.Code, paramLabel(param), f, param.ProfileConstraint, param.ProfileCompare, bound))
		}
	}
}
