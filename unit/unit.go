// Package unit provides unit-safe length values for sheet geometry.
// Page positions and sizes are millimeters; font sizes are points.
package unit

import (
	"strconv"
	"strings"
)

// Unit identifies the unit a length was authored in.
type Unit int

const (
	None Unit = iota // unit-less numbers
	MM               // millimeters
	CM               // centimeters
	IN               // inches
	PT               // points
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// String returns the unit suffix ("" for None).
func (u Unit) String() string {
	switch u {
	case MM:
		return "mm"
	case CM:
		return "cm"
	case IN:
		return "in"
	case PT:
		return "pt"
	}
	return ""
}

// Length preserves a numeric value with its authored unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// To converts the length to the target unit. Supported targets are MM and
// PT; unit-less lengths pass their value through unchanged.
func (l Length) To(target Unit) float64 {
	mm := 0.0
	switch l.Unit {
	case MM:
		mm = l.Value
	case CM:
		mm = l.Value * 10
	case IN:
		mm = l.Value * 25.4
	case PT:
		mm = l.Value * PtToMm
	case None:
		return l.Value
	default:
		return l.Value
	}
	if target == PT {
		return mm * MmToPt
	}
	return mm
}

func (l Length) ToMM() float64 { return l.To(MM) }
func (l Length) ToPT() float64 { return l.To(PT) }

// Parse reads a length string such as "12pt", "10mm" or "4.5", keeping the
// authored unit. Malformed input parses as a zero, unit-less length.
func Parse(value string) Length {
	v := strings.TrimSpace(value)
	if v == "" {
		return Length{}
	}
	lower := strings.ToLower(v)
	unit := None
	num := lower
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", MM}, {"cm", CM}, {"in", IN}, {"pt", PT}} {
		if strings.HasSuffix(lower, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(lower, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}
	}
	return Length{Value: f, Unit: unit}
}
