package validate

import "zplspec/internal/tables"

// defaultDPI is assumed when no profile is loaded, per the DPI a generic
// 203dpi desktop printer reports.
const defaultDPI = 203

// DeviceState is the validator-local, transient state mirroring what a
// physical printer tracks across a source: active unit system, current
// prefix/delimiter characters, and the accumulating per-label field
// tracker. It persists across labels within one Validate call and is
// discarded at exit.
type DeviceState struct {
	DPI int

	Unit          tables.Unit // active unit selected by ^MU; UnitDots until changed
	FormatPrefix  byte
	ControlPrefix byte
	Delimiter     byte

	fieldNumbers map[string]struct{} // ^FN values seen in the current label
}

// NewDeviceState creates device state for one Validate invocation. dpi is
// the profile's configured DPI, or defaultDPI when no profile is loaded.
func NewDeviceState(dpi int) *DeviceState {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	return &DeviceState{
		DPI:           dpi,
		Unit:          tables.UnitDots,
		FormatPrefix:  '^',
		ControlPrefix: '~',
		Delimiter:     ',',
		fieldNumbers:  make(map[string]struct{}),
	}
}

// ResetLabel clears per-label accumulators (field-number tracking) at a
// ^XA boundary; unit and prefix/delimiter state survive across labels,
// matching a physical printer's session-scoped configuration.
func (d *DeviceState) ResetLabel() {
	d.fieldNumbers = make(map[string]struct{})
}

// SeenFieldNumber records n and reports whether it was already seen in
// the current label (a duplicate ^FN).
func (d *DeviceState) SeenFieldNumber(n string) bool {
	_, dup := d.fieldNumbers[n]
	d.fieldNumbers[n] = struct{}{}
	return dup
}

// SetUnitFromCode applies a ^MU unit code ("D" dots, "I" inches, "C" cm).
// An unrecognized code leaves the active unit unchanged, per the "missing
// or unknown unit preserves the current active unit" design note.
func (d *DeviceState) SetUnitFromCode(code string) {
	switch code {
	case "D":
		d.Unit = tables.UnitDots
	case "I":
		d.Unit = tables.UnitInches
	case "C":
		d.Unit = tables.UnitCM
	}
}

// ConvertToDots converts value, expressed in unit, to dots. unit ==
// UnitNone means "use the device's active unit".
func (d *DeviceState) ConvertToDots(value float64, unit tables.Unit) float64 {
	if unit == tables.UnitNone {
		unit = d.Unit
	}
	switch unit {
	case tables.UnitInches:
		return value * float64(d.DPI)
	case tables.UnitMM:
		return value / 25.4 * float64(d.DPI)
	case tables.UnitCM:
		return value / 2.54 * float64(d.DPI)
	default:
		return value
	}
}
