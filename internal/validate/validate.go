// Package validate implements the table-driven ZPL validator: a
// structural state machine plus value checks, cross-command constraints,
// semantic checks, and profile gates, walked over an already-parsed AST
// in source order.
package validate

import (
	"fmt"

	"zplspec/internal/ast"
	"zplspec/internal/diag"
	"zplspec/internal/profile"
	"zplspec/internal/source"
	"zplspec/internal/tables"
)

// ResolvedLabel carries the device-state families accumulated while
// walking one label, for editor-integration consumers that don't want to
// re-derive them from the raw AST.
type ResolvedLabel struct {
	Font            string
	Orientation     string
	HomeX, HomeY    float64
	EffectiveWidth  float64
	EffectiveHeight float64
}

// Result is the validator's output.
type Result struct {
	OK             bool
	Issues         []*diag.Diagnostic
	ResolvedLabels []ResolvedLabel
}

// Options configures a validation run.
type Options struct {
	Tables  *tables.ParserTables
	Profile *profile.Profile
}

// Validate walks a (doc holds its own FileSet-resolved source) Ast
// against tables and an optional profile, producing a deterministically
// ordered Result. Validate never panics on malformed input; every
// problem becomes an Issue.
func Validate(doc *ast.Ast, opts Options) Result {
	if opts.Tables == nil {
		return Result{OK: true}
	}
	v := &validator{
		doc:     doc,
		tables:  opts.Tables,
		profile: opts.Profile,
		dev:     NewDeviceState(profileDPI(opts.Profile)),
		bag:     diag.NewBag(1 << 16),
	}
	v.run()
	v.bag.Sort()
	v.bag.Dedup()
	return Result{
		OK:             !v.bag.HasErrors(),
		Issues:         v.bag.Items(),
		ResolvedLabels: v.resolved,
	}
}

func profileDPI(p *profile.Profile) int {
	if p == nil {
		return 0
	}
	return p.DPI
}

type validator struct {
	doc     *ast.Ast
	tables  *tables.ParserTables
	profile *profile.Profile
	dev     *DeviceState
	bag     *diag.Bag

	resolved []ResolvedLabel
}

func (v *validator) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	d := diag.New(sev, code, sp, msg)
	v.bag.Add(&d)
}

func (v *validator) run() {
	for _, label := range v.doc.Labels {
		v.validateLabel(label)
	}
}

func (v *validator) validateLabel(label ast.Label) {
	v.dev.ResetLabel()
	ft := NewFieldTracker()
	seen := newLabelHistory()
	rl := ResolvedLabel{Font: "0", Orientation: "N"}

	nodes := v.doc.LabelNodes(label)
	for i, n := range nodes {
		if n == nil || n.Kind != ast.NodeCommand {
			continue
		}
		var follower *ast.Node
		if i+1 < len(nodes) {
			follower = nodes[i+1]
		}
		v.validateCommand(n, follower, ft, seen, &rl)
	}

	if label.Unclosed {
		v.report(diag.SemaLabelUnclosed, diag.SevError, label.Span, "label never reached ^XZ")
	}
	if ft.InField() || ft.FieldDataPending() {
		v.report(diag.SemaLabelEmptyField, diag.SevError, label.Span, "field opened but never closed with ^FS before end of label")
	}
	rl.EffectiveWidth, rl.EffectiveHeight = v.effectiveDimensions()
	v.resolved = append(v.resolved, rl)
}

func (v *validator) effectiveDimensions() (float64, float64) {
	if v.profile == nil || v.profile.Page == nil {
		return 0, 0
	}
	return v.profile.Page.WidthDots, v.profile.Page.HeightDots
}

// labelHistory tracks, within one label, which opcodes have been seen and
// where — the input cross-command constraints (Order/Requires/
// Incompatible) need.
type labelHistory struct {
	seenAt map[string]source.Span
	order  []string

	// barcodePending is set by a barcode command and cleared by the
	// next ^FD, so that ^FD's checkSemantics can tell it is supplying
	// barcode data rather than plain text.
	barcodePending bool
}

func newLabelHistory() *labelHistory {
	return &labelHistory{seenAt: make(map[string]source.Span)}
}

func (h *labelHistory) record(opcode string, sp source.Span) {
	if _, ok := h.seenAt[opcode]; !ok {
		h.seenAt[opcode] = sp
	}
	h.order = append(h.order, opcode)
}

func (h *labelHistory) seen(opcode string) bool {
	_, ok := h.seenAt[opcode]
	return ok
}

// before reports whether a appears strictly before b in h.order, given
// both appear at least once.
func (h *labelHistory) before(a, b string) bool {
	for _, op := range h.order {
		if op == a {
			return true
		}
		if op == b {
			return false
		}
	}
	return false
}

func (v *validator) validateCommand(n *ast.Node, follower *ast.Node, ft *FieldTracker, hist *labelHistory, rl *ResolvedLabel) {
	entry, known := v.tables.Lookup(n.Code)
	if !known {
		v.report(diag.SemaUnknownCommand, diag.SevError, n.Span, fmt.Sprintf("^%s is not present in the loaded command table", n.Code))
		return
	}
	hist.record(n.Code, n.Span)

	// ^FS is a generic field terminator: closing one that ^FO never
	// explicitly opened (because data was supplied directly, as with a
	// bare ^FD) is not itself an error — only a genuine double ^FO is.
	switch tr := ft.Apply(entry.OpensField, entry.ClosesField, entry.RequiresField); tr {
	case trackDoubleOpen:
		v.report(diag.SynUnexpectedPrefix, diag.SevError, n.Span, "field opened while one is already open")
	case trackRequiresFieldOutside:
		v.report(diag.SynFieldDataOutsideField, diag.SevError, n.Span, fmt.Sprintf("^%s requires an open field", n.Code))
	}
	if entry.FieldData {
		ft.MarkFieldData()
	}
	if entry.ClosesField {
		ft.ClearFieldData()
	}

	if entry.Stability == "deprecated" {
		v.report(diag.SemaDeprecatedCommand, diag.SevWarning, n.Span, fmt.Sprintf("^%s is marked deprecated", n.Code))
	}

	resolved := v.checkArgs(entry, n, rl)
	v.checkConstraints(entry, n, hist, resolved)
	v.checkProfileGates(entry, n, resolved)
	v.applyDeviceEffects(entry, n, resolved)
	v.checkSemantics(entry, n, follower, hist, resolved)
}

// applyDeviceEffects updates DeviceState for commands that change it
// (^MU's unit; prefix/delimiter changes are already applied by the
// parser directly against the lexer).
func (v *validator) applyDeviceEffects(entry *tables.CommandEntry, _ *ast.Node, resolved resolvedArgs) {
	if entry.ChangesUnit {
		if code, ok := resolved["unit"]; ok {
			v.dev.SetUnitFromCode(code)
		}
	}
}
