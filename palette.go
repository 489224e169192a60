package pigment

import "image/color"

// MaxSavedColors is the capacity of the saved colors palette.
const MaxSavedColors = 16

// Palette is a bounded list of distinct colors kept in insertion order.
// Adding a color to a full palette evicts the oldest one.
type Palette struct {
	colors []color.NRGBA
	max    int
}

// NewPalette creates an empty palette holding at most max colors.
func NewPalette(max int) *Palette {
	if max <= 0 {
		max = MaxSavedColors
	}
	return &Palette{max: max}
}

// Add appends c to the palette. Colors already present are rejected.
func (p *Palette) Add(c color.NRGBA) bool {
	for _, v := range p.colors {
		if v == c {
			return false
		}
	}
	if len(p.colors) >= p.max {
		p.colors = append(p.colors[:0], p.colors[len(p.colors)-p.max+1:]...)
	}
	p.colors = append(p.colors, c)
	return true
}

// Remove deletes the color at index i.
func (p *Palette) Remove(i int) bool {
	if i < 0 || i >= len(p.colors) {
		return false
	}
	p.colors = append(p.colors[:i], p.colors[i+1:]...)
	return true
}

// At returns the color at index i.
func (p *Palette) At(i int) (color.NRGBA, bool) {
	if i < 0 || i >= len(p.colors) {
		return color.NRGBA{}, false
	}
	return p.colors[i], true
}

// Len returns the number of saved colors.
func (p *Palette) Len() int { return len(p.colors) }

// Colors returns a copy of the saved colors, oldest first.
func (p *Palette) Colors() []color.NRGBA {
	return append([]color.NRGBA(nil), p.colors...)
}
