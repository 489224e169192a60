package brush

import (
	"github.com/chewxy/math32"
	"github.com/esimov/pigment/utils"
)

// Mask is a square grid of coverage values in the [0, 1] range.
type Mask struct {
	Size   int
	Values []float32
}

// At returns the coverage at (x, y), or zero outside the mask.
func (m Mask) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= m.Size || y >= m.Size {
		return 0
	}
	return m.Values[y*m.Size+x]
}

// Coverage returns the number of cells with a non zero value.
func (m Mask) Coverage() int {
	var n int
	for _, v := range m.Values {
		if v > 0 {
			n++
		}
	}
	return n
}

// GenerateMask computes the size x size mask of a brush oriented along angle.
func GenerateMask(p Properties, angle float32, size int, tex *Texture) Mask {
	size = max(size, 1)
	mask := Mask{
		Size:   size,
		Values: make([]float32, size*size),
	}
	center := float32(size) / 2
	radius := center
	shape := ShapeFor(p, angle, tex)

	for y := 0; y < size; y++ {
		ry := (float32(y) - center) / radius
		for x := 0; x < size; x++ {
			rx := (float32(x) - center) / radius
			v := harden(shape.Coverage(rx, ry), p.Hardness)
			mask.Values[y*size+x] = utils.Clamp(v, 0, 1)
		}
	}
	return mask
}

// harden sharpens partial coverage values of soft brushes.
func harden(v, hardness float32) float32 {
	if v > 0 && hardness < 1 {
		return math32.Pow(v, 1/utils.Max(hardness, 0.1))
	}
	return v
}
