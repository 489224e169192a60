package preview

import (
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/esimov/pigment/utils"
)

// drawCursor outlines the footprint of the active brush under the pointer.
func (g *Gui) drawCursor(gtx layout.Context) {
	b := g.editor.Brushes()
	p := b.Active()
	d := float32(b.Diameter())
	w, h := p.Extent(b.Angle(), d/utils.Max(p.Size, 1))
	w, h = utils.Min(w, d), utils.Min(h, d)

	x, y := float32(math.Floor(float64(g.input.hover.X))), float32(math.Floor(float64(g.input.hover.Y)))
	g.drawEllipse(gtx, x+0.5, y+0.5, utils.Max(w/2, 0.5), utils.Max(h/2, 0.5))
}

// drawEllipse strokes an axis aligned ellipse centered at (cx, cy).
func (g *Gui) drawEllipse(gtx layout.Context, cx, cy, rx, ry float32) {
	var (
		path clip.Path
		orig = f32.Pt(cx-rx, cy)
	)
	f1, f2 := foci(rx, ry)

	path.Begin(gtx.Ops)
	path.Move(orig)
	path.Arc(f1, f2, 2*math.Pi)
	path.Close()

	// Keep the outline one screen pixel wide whatever the zoom.
	width := 1 / utils.Max(g.view.scale, 0.01)
	defer clip.Stroke{Path: path.End(), Width: width}.Op().Push(gtx.Ops).Pop()
	paint.ColorOp{Color: g.cfg.color.cursor}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

// foci returns the focus points of the ellipse with radii rx and ry,
// relative to its leftmost point.
func foci(rx, ry float32) (f32.Point, f32.Point) {
	if rx >= ry {
		c := float32(math.Sqrt(float64(rx*rx - ry*ry)))
		return f32.Pt(rx-c, 0), f32.Pt(rx+c, 0)
	}
	c := float32(math.Sqrt(float64(ry*ry - rx*rx)))
	return f32.Pt(rx, -c), f32.Pt(rx, c)
}

// getRatio returns the scale factor fitting a w×h surface into maxW×maxH.
// Surfaces already fitting are never enlarged.
func getRatio(w, h, maxW, maxH float32) float32 {
	var r float32 = 1
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return r
	}
	if w > maxW || h > maxH {
		wr := maxW / w // width ratio
		hr := maxH / h // height ratio

		r = utils.Min(wr, hr)
	}
	return r
}
