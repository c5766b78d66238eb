package profile

import "strings"

// Resolve maps a dotted profile_constraint path (e.g. "page.width_dots",
// "speed_range.max", "dpi") to a numeric value. ok is false when the
// path names a field this profile doesn't carry (e.g. no page block) —
// the validator must treat that identically to a feature gate's "absent"
// case: skip, never a false positive.
func (p *Profile) Resolve(path string) (value float64, ok bool) {
	if p == nil {
		return 0, false
	}
	switch path {
	case "dpi":
		return float64(p.DPI), true
	case "page.width_dots":
		if p.Page == nil {
			return 0, false
		}
		return p.Page.WidthDots, true
	case "page.height_dots":
		if p.Page == nil {
			return 0, false
		}
		return p.Page.HeightDots, true
	case "speed_range.min":
		if p.SpeedRange == nil {
			return 0, false
		}
		return p.SpeedRange.Min, true
	case "speed_range.max":
		if p.SpeedRange == nil {
			return 0, false
		}
		return p.SpeedRange.Max, true
	case "darkness_range.min":
		if p.DarknessRange == nil {
			return 0, false
		}
		return p.DarknessRange.Min, true
	case "darkness_range.max":
		if p.DarknessRange == nil {
			return 0, false
		}
		return p.DarknessRange.Max, true
	case "media.gap_dots":
		if p.Media == nil {
			return 0, false
		}
		return p.Media.GapDots, true
	}
	if rest, found := strings.CutPrefix(path, "memory."); found {
		for _, m := range p.Memory {
			if m.Region == rest {
				return float64(m.Bytes), true
			}
		}
		return 0, false
	}
	return 0, false
}

// GateResult is the tri-state outcome of resolving a printer_gates
// feature name against a profile (or the absence of one).
type GateResult uint8

const (
	// GateSkip means unknown — no profile loaded, or the profile didn't
	// say either way. Never treated as a failure.
	GateSkip GateResult = iota
	// GatePass means the feature is present.
	GatePass
	// GateFail means the feature is explicitly absent.
	GateFail
)

// ResolveGate resolves a printer_gates feature name against p. A nil
// profile always skips, matching "no profile loaded" per §4.D.
func ResolveGate(p *Profile, name string) GateResult {
	if p == nil || p.Features == nil {
		return GateSkip
	}
	present, ok := p.Features.Has(name)
	if !ok {
		return GateSkip
	}
	if present {
		return GatePass
	}
	return GateFail
}

// KnownPaths lists every profile_constraint path this resolver
// understands. internal/validate's coverage conformance test walks the
// tables for every profile_constraint/printer_gates reference and
// asserts each resolves here (paths) or names a Features key
// (printer_gates, which have no closed enum — any string is a valid key).
var KnownPaths = []string{
	"dpi",
	"page.width_dots",
	"page.height_dots",
	"speed_range.min",
	"speed_range.max",
	"darkness_range.min",
	"darkness_range.max",
	"media.gap_dots",
}
