package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe helpers for CSS lengths found in inline styles.

// Unit is the unit a length was written in.
type Unit int

const (
	UnitNone    Unit = iota // unit-less numbers like line-height factors
	UnitPX                  // CSS pixels (1/96 in)
	UnitREM                 // relative to the root font size
	UnitEM                  // relative to the current font size
	UnitPercent             // relative to the containing block
	UnitMM                  // millimeters
	UnitCM                  // centimeters
	UnitIN                  // inches
	UnitPT                  // points
)

// Conversion constants between pt, px and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	PxToMm = 25.4 / 96
	// RootFontSizePx is the browser default root font size.
	RootFontSizePx = 16.0
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitREM:
		return "rem"
	case UnitEM:
		return "em"
	case UnitPercent:
		return "%"
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// Context carries the sizes relative units resolve against, all in mm.
type Context struct {
	RootFontSize float64
	FontSize     float64
	Container    float64
}

// DefaultContext uses the browser default 16px for both root and current font size.
func DefaultContext(container float64) Context {
	fs := RootFontSizePx * PxToMm
	return Context{RootFontSize: fs, FontSize: fs, Container: container}
}

// ToMM converts the length to millimeters, resolving relative units against ctx.
func (l Length) ToMM(ctx Context) float64 {
	switch l.Unit {
	case UnitPX:
		return l.Value * PxToMm
	case UnitREM:
		return l.Value * ctx.RootFontSize
	case UnitEM:
		return l.Value * ctx.FontSize
	case UnitPercent:
		return l.Value / 100 * ctx.Container
	case UnitMM:
		return l.Value
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	case UnitPT:
		return l.Value * PtToMm
	default:
		// unit-less zero is the only meaningful case; treat others as px like browsers in quirks mode
		return l.Value * PxToMm
	}
}

// ToPT converts the length to points.
func (l Length) ToPT(ctx Context) float64 { return l.ToMM(ctx) * MmToPt }

// ParseLength parses a CSS length such as "2rem" or "1500px". ok is false for
// keywords like "auto" or malformed input.
func ParseLength(value string) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := v
	// longer suffixes first so "rem" is not read as "em"
	for _, suf := range []struct {
		s string
		u Unit
	}{{"rem", UnitREM}, {"px", UnitPX}, {"em", UnitEM}, {"%", UnitPercent}, {"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}
