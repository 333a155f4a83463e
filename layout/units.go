package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe helpers for lengths. Layout works in CSS pixels;
// the canvas painter works in millimeters and font sizes in points.

// Unit is the unit a length was written with in a chart file.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers, read as pixels
	UnitPX
	UnitPT
	UnitMM
	UnitCM
	UnitIN
)

// Conversion constants at the CSS reference density of 96 px per inch.
const (
	PxPerIn = 96.0
	PxToMm  = 25.4 / PxPerIn
	MmToPx  = 1.0 / PxToMm
	PxToPt  = 72.0 / PxPerIn
	PtToPx  = 1.0 / PxToPt
)

var unitSuffixes = []struct {
	s string
	u Unit
}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}}

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	for _, suf := range unitSuffixes {
		if suf.u == u {
			return suf.s
		}
	}
	return ""
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// PX converts the length to pixels.
func (l Length) PX() float64 {
	switch l.Unit {
	case UnitPT:
		return l.Value * PtToPx
	case UnitMM:
		return l.Value * MmToPx
	case UnitCM:
		return l.Value * 10 * MmToPx
	case UnitIN:
		return l.Value * PxPerIn
	default:
		return l.Value
	}
}

// ParseLength parses strings such as "40", "40px", "12pt" or "1in".
func ParseLength(value string) (Length, error) {
	lower := strings.ToLower(strings.TrimSpace(value))
	unit := UnitNone
	num := lower
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(lower, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(lower, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, err
	}
	return Length{Value: f, Unit: unit}, nil
}

// PxToMM converts pixels to millimeters.
func PxToMM(px float64) float64 { return px * PxToMm }

// MMToPx converts millimeters to pixels.
func MMToPx(mm float64) float64 { return mm * MmToPx }

// PxToPT converts a pixel font size to points.
func PxToPT(px float64) float64 { return px * PxToPt }
