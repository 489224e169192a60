package canvas

import "image/color"

// Pixel is a single canvas cell holding an optional color.
// The zero value is the transparent (empty) pixel.
type Pixel struct {
	color.NRGBA
	Filled bool
}

// Empty is the transparent pixel.
var Empty = Pixel{}

// Fill returns a filled pixel of color c.
func Fill(c color.NRGBA) Pixel {
	return Pixel{NRGBA: c, Filled: true}
}

// IsEmpty reports whether the pixel is transparent.
func (p Pixel) IsEmpty() bool {
	return !p.Filled
}

// Color returns the pixel color and whether the pixel is filled.
// Empty pixels report the fully transparent color.
func (p Pixel) Color() (color.NRGBA, bool) {
	if !p.Filled {
		return color.NRGBA{}, false
	}
	return p.NRGBA, true
}
