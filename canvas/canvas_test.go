package canvas

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	green = color.NRGBA{G: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
)

func TestCanvas_NewHasBackgroundLayer(t *testing.T) {
	assert := assert.New(t)

	c := New(10, 5)
	assert.Equal(10, c.Width())
	assert.Equal(5, c.Height())
	assert.Equal(1, c.LayerCount())
	assert.Equal(DefaultLayerName, c.ActiveLayer().Name)
	assert.True(c.ActiveLayer().Visible)
	assert.Equal(Empty, c.Get(3, 3))
	assert.False(c.Unsaved())
}

func TestCanvas_OutOfBoundsIsTolerated(t *testing.T) {
	assert := assert.New(t)

	c := New(4, 4)
	assert.NotPanics(func() {
		c.Set(-1, 0, Fill(red))
		c.Set(4, 0, Fill(red))
		c.Set(0, 10, Fill(red))
		c.SetAt(7, 0, 0, Fill(red))
	})
	assert.Equal(Empty, c.Get(-1, 0))
	assert.Equal(Empty, c.GetActive(4, 4))
	assert.Equal(Empty, c.GetAt(3, 0, 0))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(Empty, c.GetActive(x, y))
		}
	}
}

func TestCanvas_CompositeRead(t *testing.T) {
	assert := assert.New(t)

	c := New(3, 3)
	c.Set(1, 1, Fill(red))
	c.AddLayer("top")
	assert.Equal(1, c.ActiveIndex())
	c.Set(1, 1, Fill(blue))
	c.Set(0, 0, Fill(green))

	assert.Equal(Fill(blue), c.Get(1, 1))
	assert.Equal(Fill(green), c.Get(0, 0))

	// A hidden layer is skipped by the composite read but not by the active read.
	c.ToggleVisibility(1)
	assert.Equal(Fill(red), c.Get(1, 1))
	assert.Equal(Empty, c.Get(0, 0))
	assert.Equal(Fill(blue), c.GetActive(1, 1))

	// Empty pixels on the top layer reveal the layer below.
	c.ToggleVisibility(1)
	c.Set(1, 1, Empty)
	assert.Equal(Fill(red), c.Get(1, 1))
}

func TestCanvas_RemoveLayer(t *testing.T) {
	assert := assert.New(t)

	c := New(2, 2)
	assert.False(c.RemoveLayer(0), "the last layer can't be removed")
	assert.Equal(1, c.LayerCount())

	c.AddLayer("one")
	c.AddLayer("two")
	assert.Equal(2, c.ActiveIndex())

	assert.False(c.RemoveLayer(5))
	assert.True(c.RemoveLayer(2))
	assert.Equal(2, c.LayerCount())
	assert.Equal(1, c.ActiveIndex())
	assert.Equal("one", c.ActiveLayer().Name)

	// Removing a layer below the active one keeps the same layer active.
	c.AddLayer("three")
	assert.True(c.RemoveLayer(0))
	assert.Equal("three", c.ActiveLayer().Name)

	// Removing a layer above the active one doesn't move the active index.
	c.SetActiveLayer(0)
	assert.True(c.RemoveLayer(1))
	assert.Equal(0, c.ActiveIndex())
	assert.Equal("one", c.ActiveLayer().Name)
	assert.True(c.Unsaved())
}

func TestCanvas_MoveLayers(t *testing.T) {
	assert := assert.New(t)

	c := New(2, 2)
	c.AddLayer("one")
	c.AddLayer("two")

	assert.False(c.MoveLayerUp(0))
	assert.False(c.MoveLayerDown(2))

	// Active layer follows the swap.
	assert.True(c.MoveLayerUp(2))
	assert.Equal("two", c.Layer(1).Name)
	assert.Equal("one", c.Layer(2).Name)
	assert.Equal(1, c.ActiveIndex())

	// Swapping the slot adjacent to the active layer moves the active index too.
	assert.True(c.MoveLayerDown(0))
	assert.Equal("two", c.Layer(0).Name)
	assert.Equal(DefaultLayerName, c.Layer(1).Name)
	assert.Equal(0, c.ActiveIndex())
	assert.Equal("two", c.ActiveLayer().Name)
}

func TestCanvas_LayerAttributes(t *testing.T) {
	assert := assert.New(t)

	c := New(2, 2)
	c.ConsumeDirty()

	assert.True(c.RenameLayer(0, "Paper"))
	assert.Equal("Paper", c.Layer(0).Name)
	assert.False(c.RenameLayer(1, "nope"))
	assert.True(c.Dirty())
	assert.True(c.Unsaved())

	assert.False(c.SetActiveLayer(3))
	assert.False(c.SetActiveLayer(-1))
	assert.Equal(0, c.ActiveIndex())

	assert.True(c.ConsumeDirty())
	assert.False(c.Dirty())
	c.MarkSaved()
	assert.False(c.Unsaved())
}

func TestCanvas_DisplayAndFlatten(t *testing.T) {
	assert := assert.New(t)

	c := New(20, 20)
	c.Set(0, 0, Fill(red))

	disp := c.Display()
	assert.Equal(color.NRGBA(red), disp.NRGBAAt(0, 0))
	assert.Equal(CheckerLight, disp.NRGBAAt(1, 0))
	assert.Equal(CheckerDark, disp.NRGBAAt(8, 0))
	assert.Equal(CheckerDark, disp.NRGBAAt(0, 8))
	assert.Equal(CheckerLight, disp.NRGBAAt(8, 8))

	flat := c.Flatten()
	assert.Equal(red, flat.NRGBAAt(0, 0))
	assert.Equal(color.NRGBA{}, flat.NRGBAAt(1, 0))
}

func TestCanvas_NewFromLayers(t *testing.T) {
	assert := assert.New(t)

	pix := make([]Pixel, 4)
	pix[3] = Fill(green)
	l := NewLayerFromPixels("a", false, 2, 2, pix)
	assert.NotNil(l)
	assert.Nil(NewLayerFromPixels("b", true, 2, 2, pix[:3]))

	c, ok := NewFromLayers(2, 2, []*Layer{l, NewLayer("b", 2, 2)}, 0)
	assert.True(ok)
	assert.Equal(0, c.ActiveIndex())
	assert.Equal(Fill(green), c.GetActive(1, 1))
	assert.Equal(Empty, c.Get(1, 1), "the layer is hidden")

	_, ok = NewFromLayers(3, 2, []*Layer{l}, 0)
	assert.False(ok)
	_, ok = NewFromLayers(2, 2, nil, 0)
	assert.False(ok)
}
