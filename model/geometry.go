package model

import "math"

// Unit conversion factors used by OOXML.
const (
	EMUPerInch   = 914400
	TwipsPerInch = 1440
	TwipsPerPt   = 20
)

// Inches is a length in inches
type Inches float64

// EMU converts to English Metric Units (drawing extents)
func (in Inches) EMU() int64 {
	return int64(math.Round(float64(in) * EMUPerInch))
}

// Twips converts to twentieths of a point (paragraph indents)
func (in Inches) Twips() int {
	return int(math.Round(float64(in) * TwipsPerInch))
}

// Points is a length in typographic points
type Points float64

// Twips converts to twentieths of a point (paragraph spacing)
func (p Points) Twips() int {
	return int(math.Round(float64(p) * TwipsPerPt))
}

// HalfPoints converts to half-points (font sizes)
func (p Points) HalfPoints() int {
	return int(math.Round(float64(p) * 2))
}

// ScaleToWidth returns the height that keeps a width x height box's aspect
// ratio when its width becomes target. Degenerate sizes yield a square.
func ScaleToWidth(width, height int, target Inches) Inches {
	if width <= 0 || height <= 0 {
		return target
	}
	return Inches(float64(target) * float64(height) / float64(width))
}
