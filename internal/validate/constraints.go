package validate

import (
	"fmt"
	"strconv"

	"zplspec/internal/ast"
	"zplspec/internal/diag"
	"zplspec/internal/tables"
)

// checkConstraints evaluates entry's cross-command constraints against
// the label's history so far and the current command's resolved
// arguments.
func (v *validator) checkConstraints(entry *tables.CommandEntry, n *ast.Node, hist *labelHistory, resolved resolvedArgs) {
	for _, c := range entry.Constraints {
		switch c.Kind {
		case tables.ConstraintOrder:
			v.checkOrder(n, c, hist)
		case tables.ConstraintRequires:
			v.checkRequires(n, c, hist)
		case tables.ConstraintIncompatible:
			v.checkIncompatible(n, c, hist)
		case tables.ConstraintEmptyData:
			v.checkEmptyData(n, c)
		case tables.ConstraintRange:
			v.checkConstraintRange(n, c, resolved)
		case tables.ConstraintCustom:
			v.checkCustom(n, c, resolved)
		case tables.ConstraintNote:
			v.report(diag.ConstraintCustomFailed, diag.SevInfo, n.Span, noteMessage(c))
		}
	}
}

func severityOf(c tables.Constraint, fallback diag.Severity) diag.Severity {
	switch c.Severity {
	case "warn":
		return diag.SevWarning
	case "info":
		return diag.SevInfo
	case "error", "":
		return fallback
	default:
		return fallback
	}
}

func noteMessage(c tables.Constraint) string {
	if c.Message != "" {
		return c.Message
	}
	return "note"
}

func (v *validator) checkOrder(n *ast.Node, c tables.Constraint, hist *labelHistory) {
	if !hist.seen(c.Target) {
		return // target never appeared — nothing to order against
	}
	var violated bool
	switch c.Relation {
	case tables.OrderBefore:
		violated = !hist.before(n.Code, c.Target)
	case tables.OrderAfter:
		violated = !hist.before(c.Target, n.Code)
	}
	if violated {
		msg := c.Message
		if msg == "" {
			rel := "before"
			if c.Relation == tables.OrderAfter {
				rel = "after"
			}
			msg = fmt.Sprintf("^%s must appear %s ^%s", n.Code, rel, c.Target)
		}
		v.report(diag.ConstraintOrderViolated, severityOf(c, diag.SevError), n.Span, msg)
	}
}

func (v *validator) checkRequires(n *ast.Node, c tables.Constraint, hist *labelHistory) {
	if hist.seen(c.Target) {
		return
	}
	msg := c.Message
	if msg == "" {
		msg = fmt.Sprintf("^%s requires ^%s earlier in the label", n.Code, c.Target)
	}
	v.report(diag.ConstraintRequiresMissing, severityOf(c, diag.SevError), n.Span, msg)
}

func (v *validator) checkIncompatible(n *ast.Node, c tables.Constraint, hist *labelHistory) {
	if !hist.seen(c.Target) {
		return
	}
	msg := c.Message
	if msg == "" {
		msg = fmt.Sprintf("^%s is incompatible with ^%s in the same label", n.Code, c.Target)
	}
	v.report(diag.ConstraintIncompatible, severityOf(c, diag.SevError), n.Span, msg)
}

func (v *validator) checkEmptyData(n *ast.Node, c tables.Constraint) {
	if n.Kind != ast.NodeCommand || n.Content != "" {
		return
	}
	msg := c.Message
	if msg == "" {
		msg = fmt.Sprintf("^%s requires non-empty data", n.Code)
	}
	v.report(diag.ConstraintEmptyDataReq, severityOf(c, diag.SevError), n.Span, msg)
}

func (v *validator) checkConstraintRange(n *ast.Node, c tables.Constraint, resolved resolvedArgs) {
	if c.Expr == nil || c.Range == nil {
		return
	}
	val, ok := resolveKey(c.Expr.Key, resolved, v.dev)
	if !ok {
		return
	}
	f, ok := parseFloatOK(val)
	if !ok {
		return
	}
	if f < c.Range.Min || f > c.Range.Max {
		msg := c.Message
		if msg == "" {
			msg = fmt.Sprintf("^%s: %s falls outside [%g, %g]", n.Code, c.Expr.Key, c.Range.Min, c.Range.Max)
		}
		v.report(diag.ConstraintRangeViolated, severityOf(c, diag.SevError), n.Span, msg)
	}
}

func (v *validator) checkCustom(n *ast.Node, c tables.Constraint, resolved resolvedArgs) {
	if c.Expr == nil {
		return
	}
	if evalPredicate(c.Expr, resolved, v.dev) {
		return
	}
	msg := c.Message
	if msg == "" {
		msg = fmt.Sprintf("^%s fails a custom constraint", n.Code)
	}
	v.report(diag.ConstraintCustomFailed, severityOf(c, diag.SevError), n.Span, msg)
}

func parseFloatOK(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
