// Package canvas implements the layered pixel store of the paint engine.
//
// A Canvas has a fixed size and holds an ordered stack of layers, the last one
// being the topmost. Every coordinate based accessor tolerates out of bounds
// coordinates: reads return the Empty pixel and writes are silently dropped,
// since brush geometry routinely produces candidates outside the canvas.
package canvas

import "image"

// DefaultLayerName is the name of the layer every new canvas starts with.
const DefaultLayerName = "Background"

// Canvas is a fixed size stack of layers with one active layer.
type Canvas struct {
	width  int
	height int
	layers []*Layer
	active int

	dirty   bool
	unsaved bool
}

// New creates a width x height canvas with a single transparent "Background" layer.
func New(width, height int) *Canvas {
	width, height = max(width, 1), max(height, 1)
	return &Canvas{
		width:  width,
		height: height,
		layers: []*Layer{NewLayer(DefaultLayerName, width, height)},
		dirty:  true,
	}
}

// NewFromLayers assembles a canvas from existing layers. Layers whose size does
// not match the canvas are rejected, as is an empty layer list.
func NewFromLayers(width, height int, layers []*Layer, active int) (*Canvas, bool) {
	if width <= 0 || height <= 0 || len(layers) == 0 {
		return nil, false
	}
	for _, l := range layers {
		if l == nil || l.width != width || l.height != height {
			return nil, false
		}
	}
	if active < 0 || active >= len(layers) {
		active = len(layers) - 1
	}
	return &Canvas{
		width:  width,
		height: height,
		layers: layers,
		active: active,
		dirty:  true,
	}, true
}

// Width returns the canvas width.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height.
func (c *Canvas) Height() int { return c.height }

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.width, c.height) }

// InBounds reports whether (x, y) lies on the canvas.
func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// Get resolves the visible color at (x, y): the layers are scanned from the
// topmost down and the first filled pixel of a visible layer wins.
func (c *Canvas) Get(x, y int) Pixel {
	if !c.InBounds(x, y) {
		return Empty
	}
	idx := y*c.width + x
	for i := len(c.layers) - 1; i >= 0; i-- {
		l := c.layers[i]
		if l.Visible && l.pix[idx].Filled {
			return l.pix[idx]
		}
	}
	return Empty
}

// GetActive reads the active layer only, regardless of its visibility.
func (c *Canvas) GetActive(x, y int) Pixel {
	return c.GetAt(c.active, x, y)
}

// Set writes p into the active layer.
func (c *Canvas) Set(x, y int, p Pixel) {
	c.SetAt(c.active, x, y, p)
}

// GetAt reads the pixel of the layer at index layer.
func (c *Canvas) GetAt(layer, x, y int) Pixel {
	if layer < 0 || layer >= len(c.layers) {
		return Empty
	}
	return c.layers[layer].At(x, y)
}

// SetAt writes p into the layer at index layer.
func (c *Canvas) SetAt(layer, x, y int, p Pixel) {
	if layer < 0 || layer >= len(c.layers) || !c.InBounds(x, y) {
		return
	}
	c.layers[layer].set(x, y, p)
	c.dirty = true
}

// LayerCount returns the number of layers, always at least one.
func (c *Canvas) LayerCount() int { return len(c.layers) }

// Layer returns the layer at index i or nil when out of range.
func (c *Canvas) Layer(i int) *Layer {
	if i < 0 || i >= len(c.layers) {
		return nil
	}
	return c.layers[i]
}

// Layers returns the layer stack, bottom first. The slice must not be modified.
func (c *Canvas) Layers() []*Layer { return c.layers }

// ActiveIndex returns the index of the active layer.
func (c *Canvas) ActiveIndex() int { return c.active }

// ActiveLayer returns the active layer.
func (c *Canvas) ActiveLayer() *Layer { return c.layers[c.active] }

// AddLayer appends a new transparent layer on top of the stack and activates it.
func (c *Canvas) AddLayer(name string) *Layer {
	l := NewLayer(name, c.width, c.height)
	c.layers = append(c.layers, l)
	c.active = len(c.layers) - 1
	c.touch()
	return l
}

// RemoveLayer deletes the layer at index i. The last remaining layer can't be removed.
// When the active layer was at or above the removed slot it moves one step down.
func (c *Canvas) RemoveLayer(i int) bool {
	if len(c.layers) <= 1 || i < 0 || i >= len(c.layers) {
		return false
	}
	c.layers = append(c.layers[:i], c.layers[i+1:]...)
	if c.active >= i && c.active > 0 {
		c.active--
	}
	c.touch()
	return true
}

// MoveLayerUp swaps the layer at index i with the one below it (index i-1).
func (c *Canvas) MoveLayerUp(i int) bool {
	if i <= 0 || i >= len(c.layers) {
		return false
	}
	c.swap(i, i-1)
	return true
}

// MoveLayerDown swaps the layer at index i with the one above it (index i+1).
func (c *Canvas) MoveLayerDown(i int) bool {
	if i < 0 || i >= len(c.layers)-1 {
		return false
	}
	c.swap(i, i+1)
	return true
}

func (c *Canvas) swap(i, j int) {
	c.layers[i], c.layers[j] = c.layers[j], c.layers[i]
	switch c.active {
	case i:
		c.active = j
	case j:
		c.active = i
	}
	c.touch()
}

// ToggleVisibility flips the visibility of the layer at index i.
func (c *Canvas) ToggleVisibility(i int) bool {
	if i < 0 || i >= len(c.layers) {
		return false
	}
	c.layers[i].Visible = !c.layers[i].Visible
	c.touch()
	return true
}

// RenameLayer renames the layer at index i.
func (c *Canvas) RenameLayer(i int, name string) bool {
	if i < 0 || i >= len(c.layers) {
		return false
	}
	c.layers[i].Name = name
	c.touch()
	return true
}

// SetActiveLayer activates the layer at index i. Out of range indices are ignored.
func (c *Canvas) SetActiveLayer(i int) bool {
	if i < 0 || i >= len(c.layers) {
		return false
	}
	c.active = i
	c.touch()
	return true
}

// Dirty reports whether the canvas changed since the display buffer was last consumed.
func (c *Canvas) Dirty() bool { return c.dirty }

// MarkDirty requests a redraw.
func (c *Canvas) MarkDirty() { c.dirty = true }

// ConsumeDirty returns the dirty flag and clears it.
func (c *Canvas) ConsumeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}

// Unsaved reports whether the canvas has modifications not yet persisted.
func (c *Canvas) Unsaved() bool { return c.unsaved }

// MarkUnsaved flags the canvas as modified.
func (c *Canvas) MarkUnsaved() { c.unsaved = true }

// MarkSaved clears the unsaved flag, typically after a successful save.
func (c *Canvas) MarkSaved() { c.unsaved = false }

func (c *Canvas) touch() {
	c.dirty = true
	c.unsaved = true
}
