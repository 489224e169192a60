package imop

import (
	"fmt"
	"image"
	"image/color"
)

// Porter-Duff composition operations.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Bitmap is the destination of an image level composition.
type Bitmap struct {
	Img *image.NRGBA
}

// NewBitmap allocates a transparent bitmap.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// Composite holds the active composition operation.
type Composite struct {
	current string
	ops     []string
}

// InitOp returns a Composite using the SrcOver operation.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Clear,
			Copy,
			Dst,
			SrcOver,
			DstOver,
			SrcIn,
			DstIn,
			SrcOut,
			DstOut,
			SrcAtop,
			DstAtop,
			Xor,
		},
	}
}

// Set changes the active composition operation.
func (op *Composite) Set(cop string) error {
	if !contains(op.ops, cop) {
		return fmt.Errorf("unsupported composite operation: %q", cop)
	}
	op.current = cop
	return nil
}

// Get returns the active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// factors returns the Porter-Duff source and backdrop fractions.
func (op *Composite) factors(as, ab float64) (fa, fb float64) {
	switch op.current {
	case Clear:
		return 0, 0
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case SrcOver:
		return 1, 1 - as
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	return 1, 1 - as
}

// Apply composes a single non-premultiplied source pixel with its backdrop.
func (op *Composite) Apply(src, dst color.NRGBA) color.NRGBA {
	as := float64(src.A) / 255
	ab := float64(dst.A) / 255
	fa, fb := op.factors(as, ab)

	ao := as*fa + ab*fb
	if ao <= 0 {
		return color.NRGBA{}
	}
	channel := func(cs, cb uint8) uint8 {
		co := as*fa*float64(cs)/255 + ab*fb*float64(cb)/255
		return toUint8(co / ao)
	}
	return color.NRGBA{
		R: channel(src.R, dst.R),
		G: channel(src.G, dst.G),
		B: channel(src.B, dst.B),
		A: toUint8(ao),
	}
}

// Draw composes src over the backdrop dst into the bitmap. When blend is not nil
// the source colors are first mixed with the backdrop using the blend mode.
// Only the intersection of the three rectangles is processed.
func (op *Composite) Draw(bitmap *Bitmap, src, dst *image.NRGBA, blend *Blend) *Bitmap {
	if bitmap == nil {
		bitmap = NewBitmap(dst.Bounds())
	}
	r := bitmap.Img.Bounds().Intersect(src.Bounds()).Intersect(dst.Bounds())

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s, d := src.NRGBAAt(x, y), dst.NRGBAAt(x, y)
			if blend != nil {
				s = blend.Mix(s, d)
			}
			bitmap.Img.SetNRGBA(x, y, op.Apply(s, d))
		}
	}
	return bitmap
}
