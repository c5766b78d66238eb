// Package profile models a printer capability profile: DPI, page
// dimensions, speed/darkness ranges, and tri-state feature flags. Values
// are loaded from JSON and are immutable once returned by Load.
package profile

import "fmt"

// Range is an inclusive [Min, Max] bound, shared by speed/darkness/page
// dimensions.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) valid() bool { return r.Min <= r.Max }

// Page describes the printable area, in dots.
type Page struct {
	WidthDots  float64 `json:"width_dots"`
	HeightDots float64 `json:"height_dots"`
}

// Media describes consumable constraints (label gap/media type), kept
// loose since printers vary widely here.
type Media struct {
	Kind    string  `json:"kind,omitempty"`
	GapDots float64 `json:"gap_dots,omitempty"`
}

// Memory lists named storage regions (e.g. "R:", "E:") and their
// capacity in bytes.
type Memory struct {
	Region string `json:"region"`
	Bytes  int64  `json:"bytes"`
}

// Features is a tri-state map: a flag present-true means the printer has
// the capability, present-false means it explicitly lacks it, and an
// absent key means unknown — every gate resolver must treat absence as
// "skip", never as a false positive.
type Features map[string]bool

// Has resolves a dotted feature name. ok is false when the key is
// absent (unknown); present is only meaningful when ok is true.
func (f Features) Has(name string) (present bool, ok bool) {
	v, found := f[name]
	return v, found
}

// Profile is a printer capability description, per the on-disk schema.
type Profile struct {
	ID            string   `json:"id"`
	SchemaVersion string   `json:"schema_version"`
	DPI           int      `json:"dpi"`
	Page          *Page    `json:"page,omitempty"`
	SpeedRange    *Range   `json:"speed_range,omitempty"`
	DarknessRange *Range   `json:"darkness_range,omitempty"`
	Features      Features `json:"features,omitempty"`
	Media         *Media   `json:"media,omitempty"`
	Memory        []Memory `json:"memory,omitempty"`
}

// ErrorKind distinguishes a malformed document from one that parses but
// violates a structural invariant.
type ErrorKind uint8

const (
	// InvalidJSON means the document could not be decoded at all.
	InvalidJSON ErrorKind = iota
	// InvalidField means the document decoded but a field violates a
	// structural invariant (range ordering, DPI bounds, etc).
	InvalidField
)

// Error is a typed profile-load failure, returned out of band — never as
// a diag.Bag entry, per this module's out-of-band failure taxonomy.
type Error struct {
	Kind  ErrorKind
	Field string
	Msg   string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("profile: %s: %s", e.Field, e.Msg)
}

func invalidField(field, msg string) *Error {
	return &Error{Kind: InvalidField, Field: field, Msg: msg}
}

// Validate checks the structural invariants §3 places on a decoded
// profile document, independent of how it was decoded.
func (p *Profile) Validate() error {
	if p.DPI < 100 || p.DPI > 600 {
		return invalidField("dpi", fmt.Sprintf("must be in [100, 600], got %d", p.DPI))
	}
	if p.Page != nil {
		if p.Page.WidthDots <= 0 {
			return invalidField("page.width_dots", "must be positive")
		}
		if p.Page.HeightDots <= 0 {
			return invalidField("page.height_dots", "must be positive")
		}
	}
	if p.SpeedRange != nil {
		if !p.SpeedRange.valid() {
			return invalidField("speed_range", "min must be <= max")
		}
		if p.SpeedRange.Min < 1 || p.SpeedRange.Max > 14 {
			return invalidField("speed_range", "must fall within [1, 14] ips")
		}
	}
	if p.DarknessRange != nil {
		if !p.DarknessRange.valid() {
			return invalidField("darkness_range", "min must be <= max")
		}
		if p.DarknessRange.Min < 0 || p.DarknessRange.Max > 30 {
			return invalidField("darkness_range", "must fall within [0, 30]")
		}
	}
	for _, m := range p.Memory {
		if m.Bytes <= 0 {
			return invalidField("memory."+m.Region, "bytes must be positive")
		}
	}
	return nil
}
