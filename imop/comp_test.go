package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComp_Basic(t *testing.T) {
	assert := assert.New(t)

	op := InitOp()
	assert.Equal(SrcOver, op.Get())

	assert.NoError(op.Set(Clear))
	assert.Equal(Clear, op.Get())

	assert.Error(op.Set("unsupported_composite_operation"))
	assert.Equal(Clear, op.Get())

	assert.NoError(op.Set(Dst))
	assert.Equal(Dst, op.Get())
}

func TestComp_Ops(t *testing.T) {
	assert := assert.New(t)
	op := InitOp()

	transparent := color.NRGBA{}
	cyan := color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	magenta := color.NRGBA{R: 233, G: 30, B: 99, A: 255}

	rect := image.Rect(0, 0, 10, 10)
	bmp := NewBitmap(rect)
	source := image.NewNRGBA(rect)
	backdrop := image.NewNRGBA(rect)

	// The source rectangle covers the bottom left corner and the backdrop
	// rectangle covers the top right corner; they overlap in the middle.
	draw.Draw(source, image.Rect(0, 4, 6, 10), &image.Uniform{cyan}, image.Point{}, draw.Src)
	draw.Draw(backdrop, image.Rect(4, 0, 10, 6), &image.Uniform{magenta}, image.Point{}, draw.Src)

	cases := []struct {
		op                           string
		topRight, bottomLeft, center color.NRGBA
	}{
		{Clear, transparent, transparent, transparent},
		{Copy, transparent, cyan, cyan},
		{Dst, magenta, transparent, magenta},
		{SrcOver, magenta, cyan, cyan},
		{DstOver, magenta, cyan, magenta},
		{SrcIn, transparent, transparent, cyan},
		{DstIn, transparent, transparent, magenta},
		{SrcOut, transparent, cyan, transparent},
		{DstOut, magenta, transparent, transparent},
		{SrcAtop, magenta, transparent, cyan},
		{DstAtop, transparent, cyan, magenta},
		{Xor, magenta, cyan, transparent},
	}

	for _, c := range cases {
		assert.NoError(op.Set(c.op))
		op.Draw(bmp, source, backdrop, nil)

		assert.Equal(c.topRight, bmp.Img.NRGBAAt(9, 0), c.op)
		assert.Equal(c.bottomLeft, bmp.Img.NRGBAAt(0, 9), c.op)
		assert.Equal(c.center, bmp.Img.NRGBAAt(5, 5), c.op)
	}
}

func TestComp_TranslucentSourceOver(t *testing.T) {
	assert := assert.New(t)
	op := InitOp()

	red := color.NRGBA{R: 255, A: 128}
	blue := color.NRGBA{B: 255, A: 255}

	assert.Equal(color.NRGBA{R: 128, B: 127, A: 255}, op.Apply(red, blue))
	assert.Equal(red, op.Apply(red, color.NRGBA{}))
	assert.Equal(blue, op.Apply(color.NRGBA{}, blue))
}

func TestComp_DrawWithNilBitmap(t *testing.T) {
	assert := assert.New(t)
	op := InitOp()

	rect := image.Rect(0, 0, 4, 4)
	src := image.NewNRGBA(rect)
	dst := image.NewNRGBA(rect)
	src.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	bmp := op.Draw(nil, src, dst, nil)
	assert.Equal(rect, bmp.Img.Bounds())
	assert.Equal(color.NRGBA{R: 10, G: 20, B: 30, A: 255}, bmp.Img.NRGBAAt(1, 1))
	assert.Equal(color.NRGBA{}, bmp.Img.NRGBAAt(0, 0))
}
