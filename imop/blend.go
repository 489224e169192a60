// Package imop implements the Porter-Duff composition operations and the
// separable blend modes used for mixing a brush stamp with its backdrop.
// Porter and Duff presented in their paper 12 different composition operations,
// but the image/draw core package implements only the source-over-destination and source.
// This package is aimed to overcome the missing composite operations and to work
// on single pixels, which is how the stroke rasterizer applies brush stamps.
package imop

import (
	"fmt"
	"image/color"

	"github.com/esimov/pigment/utils"
)

// Supported blend modes.
const (
	Normal   = "normal"
	Add      = "add"
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

var blendModes = []string{Normal, Add, Darken, Lighten, Multiply, Screen, Overlay}

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend using the Normal mode.
func NewBlend() *Blend {
	return &Blend{OpType: Normal}
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(opType string) error {
	if !contains(blendModes, opType) {
		return fmt.Errorf("unsupported blend mode: %q", opType)
	}
	o.OpType = opType
	return nil
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	if len(o.OpType) > 0 {
		return o.OpType
	}
	return Normal
}

// Mix blends the color channels of src with the backdrop dst and returns the
// mixed color carrying the source alpha. The result still has to be composited
// over the backdrop, e.g. with the SrcOver operation.
// Where the backdrop is transparent the source color is left untouched.
func (o *Blend) Mix(src, dst color.NRGBA) color.NRGBA {
	mode := o.Get()
	if mode == Normal || dst.A == 0 {
		return src
	}

	ab := float64(dst.A) / 255
	mix := func(cs, cb uint8) uint8 {
		s, b := float64(cs)/255, float64(cb)/255
		return toUint8((1-ab)*s + ab*blendChannel(mode, s, b))
	}
	return color.NRGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: src.A,
	}
}

// blendChannel applies the blend function to normalized source and backdrop channels.
func blendChannel(mode string, cs, cb float64) float64 {
	switch mode {
	case Add:
		return utils.Min(cs+cb, 1)
	case Darken:
		return utils.Min(cs, cb)
	case Lighten:
		return utils.Max(cs, cb)
	case Multiply:
		return cs * cb
	case Screen:
		return 1 - (1-cs)*(1-cb)
	case Overlay:
		if cb <= 0.5 {
			return 2 * cs * cb
		}
		return 1 - 2*(1-cs)*(1-cb)
	}
	return cs
}

func toUint8(v float64) uint8 {
	return uint8(utils.Clamp(v, 0, 1)*255 + 0.5)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
