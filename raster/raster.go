// Package raster turns pointer positions into brush stamps on the active layer.
package raster

import (
	"image"
	"image/color"

	"github.com/esimov/pigment/brush"
	"github.com/esimov/pigment/canvas"
	"github.com/esimov/pigment/imop"
	"github.com/esimov/pigment/utils"
	"go.uber.org/zap"
)

// Recorder applies a pixel change and records it for undo.
type Recorder interface {
	RecordChange(x, y int, p canvas.Pixel) bool
}

// Rasterizer stamps the active brush of a manager onto a canvas.
type Rasterizer struct {
	canvas   *canvas.Canvas
	recorder Recorder
	brushes  *brush.Manager

	blend  *imop.Blend
	comp   *imop.Composite
	logger *zap.Logger
}

// Option customizes a Rasterizer.
type Option func(*Rasterizer)

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Rasterizer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a rasterizer writing through rec.
func New(c *canvas.Canvas, rec Recorder, brushes *brush.Manager, opts ...Option) *Rasterizer {
	r := &Rasterizer{
		canvas:   c,
		recorder: rec,
		brushes:  brushes,
		blend:    imop.NewBlend(),
		comp:     imop.InitOp(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DrawPoint stamps the active brush centered on (x, y). The eraser clears every
// pixel covered by the stamp. Nothing is drawn on a hidden layer.
func (r *Rasterizer) DrawPoint(x, y int, col color.NRGBA, erase bool) {
	if !r.canvas.ActiveLayer().Visible {
		return
	}
	r.brushes.UpdateAngle(float32(x), float32(y))

	mask := r.brushes.Mask()
	mode := r.blendMode()
	center := mask.Size / 2

	for dy := 0; dy < mask.Size; dy++ {
		for dx := 0; dx < mask.Size; dx++ {
			v := mask.Values[dy*mask.Size+dx]
			nx, ny := x+dx-center, y+dy-center
			if v <= 0 || !r.canvas.InBounds(nx, ny) {
				continue
			}
			if erase {
				r.recorder.RecordChange(nx, ny, canvas.Empty)
				continue
			}
			r.recorder.RecordChange(nx, ny, r.stamp(nx, ny, col, v, mode))
		}
	}
}

// blendMode activates the blend operation of the active brush.
// Unsupported modes are reported and painted as Normal.
func (r *Rasterizer) blendMode() brush.BlendMode {
	mode := r.brushes.Active().Blend
	if err := r.blend.Set(mode.Op()); err != nil {
		r.logger.Warn("falling back to normal blending",
			zap.Stringer("mode", mode),
			zap.Error(err),
		)
		mode = brush.Normal
		r.blend.OpType = imop.Normal
	}
	return mode
}

// stamp computes the pixel produced by a mask cell of coverage v.
func (r *Rasterizer) stamp(x, y int, col color.NRGBA, v float32, mode brush.BlendMode) canvas.Pixel {
	alpha := uint8(float32(col.A) * v)
	if alpha == 0 {
		return canvas.Empty
	}
	src := color.NRGBA{R: col.R, G: col.G, B: col.B, A: alpha}
	if mode == brush.Normal {
		return canvas.Fill(src)
	}

	dst, ok := r.canvas.GetActive(x, y).Color()
	if !ok {
		return canvas.Fill(src)
	}
	out := r.comp.Apply(r.blend.Mix(src, dst), dst)
	if out.A == 0 {
		return canvas.Empty
	}
	return canvas.Fill(out)
}

// DrawLine stamps the active brush along the segment from start to end.
func (r *Rasterizer) DrawLine(start, end image.Point, col color.NRGBA, erase bool) {
	for _, p := range StampPoints(start, end, r.brushes.Spacing()) {
		r.DrawPoint(p.X, p.Y, col, erase)
	}
}

// StampPoints walks the segment with Bresenham's algorithm and returns the
// positions where a stamp is placed. The squared length of every step is
// accumulated and a stamp is emitted once it reaches spacing. Both endpoints
// are always stamped.
func StampPoints(start, end image.Point, spacing float32) []image.Point {
	points := []image.Point{start}
	var acc float32

	walk(start, end, func(prev, p image.Point) {
		d := p.Sub(prev)
		acc += float32(d.X*d.X + d.Y*d.Y)
		if acc >= spacing {
			points = append(points, p)
			acc = 0
		}
	})
	if points[len(points)-1] != end {
		points = append(points, end)
	}
	return points
}

// Line returns every pixel of the segment from start to end, both included.
func Line(start, end image.Point) []image.Point {
	points := []image.Point{start}
	walk(start, end, func(_, p image.Point) {
		points = append(points, p)
	})
	return points
}

// walk calls step for every Bresenham move from start towards end.
func walk(start, end image.Point, step func(prev, p image.Point)) {
	dx := utils.Abs(end.X - start.X)
	dy := -utils.Abs(end.Y - start.Y)
	sx, sy := 1, 1
	if start.X > end.X {
		sx = -1
	}
	if start.Y > end.Y {
		sy = -1
	}
	err := dx + dy
	p := start

	for p != end {
		prev := p
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
		step(prev, p)
	}
}
