package imop

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlend_Basic(t *testing.T) {
	assert := assert.New(t)

	op := NewBlend()
	assert.Equal(Normal, op.Get())

	assert.NoError(op.Set(Darken))
	assert.Equal(Darken, op.Get())

	assert.Error(op.Set("unsupported_blend_mode"))
	assert.Equal(Darken, op.Get())

	assert.Equal(Normal, (&Blend{}).Get())
}

func TestBlend_Modes(t *testing.T) {
	assert := assert.New(t)

	pink := color.NRGBA{R: 214, G: 20, B: 65, A: 255}
	orange := color.NRGBA{R: 250, G: 121, B: 17, A: 255}

	cases := []struct {
		mode     string
		expected color.NRGBA
	}{
		{Normal, pink},
		{Add, color.NRGBA{R: 255, G: 141, B: 82, A: 255}},
		{Darken, color.NRGBA{R: 214, G: 20, B: 17, A: 255}},
		{Lighten, color.NRGBA{R: 250, G: 121, B: 65, A: 255}},
		{Multiply, color.NRGBA{R: 210, G: 9, B: 4, A: 255}},
		{Screen, color.NRGBA{R: 254, G: 132, B: 78, A: 255}},
		{Overlay, color.NRGBA{R: 253, G: 19, B: 9, A: 255}},
	}

	op := NewBlend()
	comp := InitOp()
	for _, c := range cases {
		assert.NoError(op.Set(c.mode))
		assert.Equal(c.expected, comp.Apply(op.Mix(pink, orange), orange), c.mode)
	}
}

func TestBlend_TransparentBackdropKeepsSource(t *testing.T) {
	assert := assert.New(t)

	op := NewBlend()
	assert.NoError(op.Set(Multiply))

	src := color.NRGBA{R: 100, G: 150, B: 200, A: 90}
	assert.Equal(src, op.Mix(src, color.NRGBA{}))
}

func TestBlend_Draw(t *testing.T) {
	assert := assert.New(t)

	rect := image.Rect(0, 0, 2, 2)
	src := image.NewNRGBA(rect)
	dst := image.NewNRGBA(rect)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			dst.SetNRGBA(x, y, color.NRGBA{R: 40, G: 80, B: 120, A: 255})
		}
	}

	blend := NewBlend()
	assert.NoError(blend.Set(Multiply))
	bmp := InitOp().Draw(nil, src, dst, blend)

	// Multiplying with white leaves the backdrop unchanged.
	assert.Equal(color.NRGBA{R: 40, G: 80, B: 120, A: 255}, bmp.Img.NRGBAAt(1, 1))
}
