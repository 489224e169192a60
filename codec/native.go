package codec

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"

	"github.com/esimov/pigment/canvas"
)

// rgba is a color serialized as a four element array.
type rgba [4]uint8

func toRGBA(c color.NRGBA) rgba {
	return rgba{c.R, c.G, c.B, c.A}
}

func (c rgba) nrgba() color.NRGBA {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

type nativeLayer struct {
	Name    string  `json:"name"`
	Data    []*rgba `json:"data"`
	Visible *bool   `json:"visible,omitempty"`
}

type nativeDocument struct {
	Width            int           `json:"width"`
	Height           int           `json:"height"`
	Layers           []nativeLayer `json:"layers"`
	ActiveLayerIndex int           `json:"active_layer_index"`
	PrimaryColor     rgba          `json:"primary_color"`
	SecondaryColor   rgba          `json:"secondary_color"`
	SavedColors      []rgba        `json:"saved_colors"`
	BrushSize        int           `json:"brush_size"`
	EraserSize       int           `json:"eraser_size"`
}

// EncodeNative writes doc as a native JSON document.
// Empty pixels are stored as null.
func EncodeNative(w io.Writer, doc *Document) error {
	c := doc.Canvas
	nd := nativeDocument{
		Width:            c.Width(),
		Height:           c.Height(),
		Layers:           make([]nativeLayer, 0, c.LayerCount()),
		ActiveLayerIndex: c.ActiveIndex(),
		PrimaryColor:     toRGBA(doc.Primary),
		SecondaryColor:   toRGBA(doc.Secondary),
		SavedColors:      make([]rgba, 0, len(doc.Saved)),
		BrushSize:        doc.BrushSize,
		EraserSize:       doc.EraserSize,
	}
	for _, l := range c.Layers() {
		pix := l.Pixels()
		data := make([]*rgba, len(pix))
		for i, p := range pix {
			if col, ok := p.Color(); ok {
				v := toRGBA(col)
				data[i] = &v
			}
		}
		visible := l.Visible
		nd.Layers = append(nd.Layers, nativeLayer{Name: l.Name, Data: data, Visible: &visible})
	}
	for _, col := range doc.Saved {
		nd.SavedColors = append(nd.SavedColors, toRGBA(col))
	}

	if err := json.NewEncoder(w).Encode(nd); err != nil {
		return &Error{Op: "encode", Err: err}
	}
	return nil
}

// DecodeNative reads a native JSON document.
func DecodeNative(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Op: "decode", Err: fmt.Errorf("%w: %w", ErrRead, err)}
	}

	var nd nativeDocument
	if err := json.Unmarshal(data, &nd); err != nil {
		return nil, &Error{Op: "decode", Err: fmt.Errorf("%w: %w", ErrMalformed, err)}
	}
	malformed := func(format string, args ...any) error {
		return &Error{Op: "decode", Err: fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))}
	}
	if nd.Width <= 0 || nd.Height <= 0 {
		return nil, malformed("invalid canvas size %dx%d", nd.Width, nd.Height)
	}
	if len(nd.Layers) == 0 {
		return nil, malformed("document has no layers")
	}

	size := nd.Width * nd.Height
	layers := make([]*canvas.Layer, 0, len(nd.Layers))
	for i, nl := range nd.Layers {
		if len(nl.Data) != size {
			return nil, malformed("layer %d holds %d pixels, expected %d", i, len(nl.Data), size)
		}
		pix := make([]canvas.Pixel, size)
		for j, v := range nl.Data {
			if v != nil {
				pix[j] = canvas.Fill(v.nrgba())
			}
		}
		visible := nl.Visible == nil || *nl.Visible
		layers = append(layers, canvas.NewLayerFromPixels(nl.Name, visible, nd.Width, nd.Height, pix))
	}

	c, ok := canvas.NewFromLayers(nd.Width, nd.Height, layers, nd.ActiveLayerIndex)
	if !ok {
		return nil, malformed("inconsistent layers")
	}

	doc := &Document{
		Canvas:     c,
		Primary:    nd.PrimaryColor.nrgba(),
		Secondary:  nd.SecondaryColor.nrgba(),
		BrushSize:  nd.BrushSize,
		EraserSize: nd.EraserSize,
	}
	for _, col := range nd.SavedColors {
		doc.Saved = append(doc.Saved, col.nrgba())
	}
	return doc, nil
}
