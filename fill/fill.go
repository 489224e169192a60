// Package fill implements the paint bucket.
package fill

import (
	"image"

	"github.com/esimov/pigment/canvas"
)

// Recorder applies a pixel change and records it for undo.
type Recorder interface {
	RecordChange(x, y int, p canvas.Pixel) bool
}

// Flood replaces the 4-connected region of the active layer holding the same
// pixel as (x, y) with p. Every write goes through rec, so the whole fill is
// undone as a single stroke. It returns the number of recorded changes.
//
// Nothing happens when the seed is out of bounds, when the active layer is
// hidden or when the region already holds p.
func Flood(c *canvas.Canvas, rec Recorder, x, y int, p canvas.Pixel) int {
	if !c.InBounds(x, y) || !c.ActiveLayer().Visible {
		return 0
	}
	target := c.GetActive(x, y)
	if target == p {
		return 0
	}

	w := c.Width()
	visited := make([]bool, w*c.Height())
	queue := []image.Point{{X: x, Y: y}}
	visited[y*w+x] = true

	var changes int
	for len(queue) > 0 {
		pt := queue[0]
		queue = queue[1:]

		if c.GetActive(pt.X, pt.Y) != target {
			continue
		}
		if rec.RecordChange(pt.X, pt.Y, p) {
			changes++
		}

		for _, n := range [4]image.Point{
			{X: pt.X + 1, Y: pt.Y},
			{X: pt.X - 1, Y: pt.Y},
			{X: pt.X, Y: pt.Y + 1},
			{X: pt.X, Y: pt.Y - 1},
		} {
			if !c.InBounds(n.X, n.Y) || visited[n.Y*w+n.X] {
				continue
			}
			visited[n.Y*w+n.X] = true
			queue = append(queue, n)
		}
	}
	return changes
}
