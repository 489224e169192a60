package fill

import (
	"image/color"
	"testing"

	"github.com/esimov/pigment/canvas"
	"github.com/esimov/pigment/history"
	"github.com/stretchr/testify/assert"
)

var (
	red  = canvas.Fill(color.NRGBA{R: 255, A: 255})
	blue = canvas.Fill(color.NRGBA{B: 255, A: 255})
)

func TestFlood_Connectivity(t *testing.T) {
	assert := assert.New(t)

	c := canvas.New(5, 5)
	hist := history.New(c)
	c.Set(2, 2, blue)

	n := Flood(c, hist, 0, 0, red)
	assert.Equal(24, n)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if x == 2 && y == 2 {
				assert.Equal(blue, c.Get(x, y))
				continue
			}
			assert.Equal(red, c.Get(x, y))
		}
	}

	hist.Flush()
	assert.Equal(1, hist.UndoLen())
	hist.Undo()
	assert.Equal(canvas.Empty, c.Get(0, 0))
	assert.Equal(blue, c.Get(2, 2))
}

func TestFlood_StopsAtBoundaries(t *testing.T) {
	assert := assert.New(t)

	// A vertical wall splits the canvas in two regions.
	c := canvas.New(5, 3)
	hist := history.New(c)
	for y := 0; y < 3; y++ {
		c.Set(2, y, blue)
	}

	assert.Equal(6, Flood(c, hist, 0, 1, red))
	assert.Equal(red, c.Get(1, 2))
	assert.Equal(canvas.Empty, c.Get(3, 0))
	assert.Equal(canvas.Empty, c.Get(4, 2))
}

func TestFlood_Idempotent(t *testing.T) {
	assert := assert.New(t)

	c := canvas.New(6, 6)
	hist := history.New(c)

	assert.Equal(36, Flood(c, hist, 3, 3, red))
	hist.Flush()

	assert.Equal(0, Flood(c, hist, 3, 3, red))
	assert.Equal(0, hist.Pending())
	assert.False(hist.Flush())
	assert.Equal(1, hist.UndoLen())
}

func TestFlood_SkippedCases(t *testing.T) {
	assert := assert.New(t)

	c := canvas.New(4, 4)
	hist := history.New(c)

	assert.Equal(0, Flood(c, hist, -1, 0, red))
	assert.Equal(0, Flood(c, hist, 4, 4, red))

	c.ToggleVisibility(0)
	assert.Equal(0, Flood(c, hist, 1, 1, red))
	assert.Equal(canvas.Empty, c.GetActive(1, 1))
}

func TestFlood_ActiveLayerOnly(t *testing.T) {
	assert := assert.New(t)

	c := canvas.New(3, 3)
	hist := history.New(c)
	c.Set(1, 1, blue)

	c.AddLayer("top")
	// The top layer is empty everywhere, the blue pixel below does not split it.
	assert.Equal(9, Flood(c, hist, 0, 0, red))
	assert.Equal(blue, c.GetAt(0, 1, 1))
	assert.Equal(red, c.GetAt(1, 1, 1))
}
