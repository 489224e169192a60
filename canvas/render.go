package canvas

import (
	"image"
	"image/color"
)

// CheckerSize is the side of a checkerboard square, in pixels.
const CheckerSize = 8

// Checkerboard tones used for transparent areas of the display buffer.
var (
	CheckerLight = color.NRGBA{R: 200, G: 200, B: 200, A: 0xff}
	CheckerDark  = color.NRGBA{R: 160, G: 160, B: 160, A: 0xff}
)

// Checker returns the checkerboard tone shown at (x, y).
func Checker(x, y int) color.NRGBA {
	if (x/CheckerSize+y/CheckerSize)%2 == 0 {
		return CheckerLight
	}
	return CheckerDark
}

// Display allocates a new display buffer and renders the canvas into it.
func (c *Canvas) Display() *image.NRGBA {
	dst := image.NewNRGBA(c.Bounds())
	c.Render(dst)
	return dst
}

// Render draws the composited canvas into dst, showing transparent pixels as a
// checkerboard. Pixels of dst outside the canvas are painted with the checkerboard too.
func (c *Canvas) Render(dst *image.NRGBA) {
	c.compose(dst, true)
}

// Flatten returns the composited canvas where transparent pixels stay fully transparent.
func (c *Canvas) Flatten() *image.NRGBA {
	dst := image.NewNRGBA(c.Bounds())
	c.compose(dst, false)
	return dst
}

func (c *Canvas) compose(dst *image.NRGBA, checker bool) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		di := dst.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			col, ok := c.Get(x, y).Color()
			if !ok && checker {
				col = Checker(x, y)
			}
			dst.Pix[di+0] = col.R
			dst.Pix[di+1] = col.G
			dst.Pix[di+2] = col.B
			dst.Pix[di+3] = col.A
			di += 4
		}
	}
}
