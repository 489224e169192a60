package pigment

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPalette_Bounded(t *testing.T) {
	assert := assert.New(t)

	p := NewPalette(MaxSavedColors)
	for i := 0; i < 17; i++ {
		assert.True(p.Add(color.NRGBA{R: uint8(i), A: 255}))
	}
	assert.Equal(MaxSavedColors, p.Len())

	// The first color was evicted, the order of the others is preserved.
	colors := p.Colors()
	for i, c := range colors {
		assert.Equal(uint8(i+1), c.R)
	}
}

func TestPalette_Distinct(t *testing.T) {
	assert := assert.New(t)

	p := NewPalette(2)
	c := color.NRGBA{G: 100, A: 255}
	assert.True(p.Add(c))
	assert.False(p.Add(c))
	assert.Equal(1, p.Len())

	got, ok := p.At(0)
	assert.True(ok)
	assert.Equal(c, got)

	_, ok = p.At(1)
	assert.False(ok)
	assert.False(p.Remove(-1))
	assert.True(p.Remove(0))
	assert.Equal(0, p.Len())
}
