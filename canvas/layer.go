package canvas

// Layer is a named, optionally hidden pixel grid.
// Its size always matches the size of the owning canvas.
type Layer struct {
	Name    string
	Visible bool

	width  int
	height int
	pix    []Pixel
}

// NewLayer creates a visible, fully transparent layer.
func NewLayer(name string, width, height int) *Layer {
	return &Layer{
		Name:    name,
		Visible: true,
		width:   width,
		height:  height,
		pix:     make([]Pixel, width*height),
	}
}

// NewLayerFromPixels creates a layer backed by a copy of pix, stored in row-major order.
// It returns nil if the pixel count does not match the layer size.
func NewLayerFromPixels(name string, visible bool, width, height int, pix []Pixel) *Layer {
	if len(pix) != width*height {
		return nil
	}
	l := NewLayer(name, width, height)
	l.Visible = visible
	copy(l.pix, pix)
	return l
}

// At returns the pixel at (x, y) or Empty when out of bounds.
func (l *Layer) At(x, y int) Pixel {
	if !l.inBounds(x, y) {
		return Empty
	}
	return l.pix[y*l.width+x]
}

// Pixels returns a copy of the layer pixels in row-major order.
func (l *Layer) Pixels() []Pixel {
	pix := make([]Pixel, len(l.pix))
	copy(pix, l.pix)
	return pix
}

func (l *Layer) set(x, y int, p Pixel) {
	if !l.inBounds(x, y) {
		return
	}
	if !p.Filled {
		p = Empty
	}
	l.pix[y*l.width+x] = p
}

func (l *Layer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.width && y < l.height
}
