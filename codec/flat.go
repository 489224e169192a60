package codec

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/esimov/pigment/canvas"
	"github.com/esimov/pigment/imop"
	"golang.org/x/image/bmp"
)

// EncodeFlat writes the composite of c as a single image. Empty pixels stay
// transparent, except for JPEG which has no alpha channel: the composite is
// laid over a white background instead.
func EncodeFlat(w io.Writer, c *canvas.Canvas, format Format) error {
	img := c.Flatten()

	var err error
	switch format {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, opaque(img), &jpeg.Options{Quality: 100})
	case BMP:
		err = bmp.Encode(w, img)
	case GIF:
		err = imaging.Encode(w, img, imaging.GIF)
	case TIFF:
		err = imaging.Encode(w, img, imaging.TIFF)
	default:
		err = fmt.Errorf("unsupported image format: %q", format)
	}
	if err != nil {
		return &Error{Op: "encode", Err: err}
	}
	return nil
}

// opaque composes img over a white background.
func opaque(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imop.InitOp().Draw(nil, img, bg, nil).Img
}

// DecodeFlat reads an image into a canvas with a single "Background" layer.
// Fully transparent pixels become empty, every other pixel keeps its color
// and alpha.
func DecodeFlat(r io.Reader) (*canvas.Canvas, error) {
	src, err := imaging.Decode(r)
	if err != nil {
		return nil, &Error{Op: "decode", Err: fmt.Errorf("%w: %w", ErrMalformed, err)}
	}
	img := imaging.Clone(src)
	b := img.Bounds()
	if b.Empty() {
		return nil, &Error{Op: "decode", Err: fmt.Errorf("%w: empty image", ErrMalformed)}
	}

	w, h := b.Dx(), b.Dy()
	pix := make([]canvas.Pixel, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c := img.NRGBAAt(x, y); c.A > 0 {
				pix[y*w+x] = canvas.Fill(c)
			}
		}
	}

	layer := canvas.NewLayerFromPixels(canvas.DefaultLayerName, true, w, h, pix)
	c, _ := canvas.NewFromLayers(w, h, []*canvas.Layer{layer}, 0)

	return c, nil
}
