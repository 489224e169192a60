package brush

import "github.com/chewxy/math32"

// Shape returns the coverage of a brush at the normalized coordinates (rx, ry).
type Shape interface {
	Coverage(rx, ry float32) float32
}

// ShapeFor resolves the shape of a brush rotated by angle. Custom brushes
// sample tex, falling back to procedural noise when tex is nil.
func ShapeFor(p Properties, angle float32, tex *Texture) Shape {
	rot := newRotation(angle + p.BaseRotation)

	switch p.Type {
	case Round, Mop:
		return disc{}
	case Flat:
		return band{rotation: rot, w: 0.2, h: 1}
	case Bright:
		return band{rotation: rot, w: 0.3, h: 0.8}
	case Rigger:
		return band{rotation: rot, w: 0.08, h: 0.9}
	case Filbert:
		return ellipse{rotation: rot, a: 0.6}
	case Fan:
		return fan{}
	case Angle:
		return bevel{rotation: rot}
	case Custom:
		if tex != nil {
			return textured{rotation: rot, tex: tex, strength: p.TextureStrength}
		}
		return noise{rotation: rot}
	}
	return disc{}
}

type rotation struct {
	cos, sin float32
}

func newRotation(angle float32) rotation {
	return rotation{cos: math32.Cos(angle), sin: math32.Sin(angle)}
}

func (r rotation) apply(rx, ry float32) (float32, float32) {
	return rx*r.cos - ry*r.sin, rx*r.sin + ry*r.cos
}

func inside(ok bool) float32 {
	if ok {
		return 1
	}
	return 0
}

// disc is the round and mop brush.
type disc struct{}

func (disc) Coverage(rx, ry float32) float32 {
	return inside(rx*rx+ry*ry <= 1)
}

// band is a rotated rectangle of half width w and half height h.
type band struct {
	rotation
	w, h float32
}

func (b band) Coverage(rx, ry float32) float32 {
	x, y := b.apply(rx, ry)
	return inside(math32.Abs(x) <= b.w && math32.Abs(y) <= b.h)
}

// ellipse is a rotated ellipse with horizontal semi axis a and unit vertical semi axis.
type ellipse struct {
	rotation
	a float32
}

func (e ellipse) Coverage(rx, ry float32) float32 {
	x, y := e.apply(rx, ry)
	return inside(x*x/(e.a*e.a)+y*y <= 1)
}

const fanSegments = 5

// fan draws five angular teeth inside the unit circle.
type fan struct{}

func (fan) Coverage(rx, ry float32) float32 {
	if rx*rx+ry*ry > 1 {
		return 0
	}
	width := math32.Pi * 0.9 / fanSegments
	angle := math32.Mod(math32.Atan2(ry, rx)+math32.Pi, 2*math32.Pi) - math32.Pi*0.55

	for i := 0; i < fanSegments; i++ {
		if math32.Abs(angle-float32(i)*width) < width*0.4 {
			return 1
		}
	}
	return 0
}

// bevel is the angled brush: a rotated rectangle cut short on one side.
type bevel struct {
	rotation
}

func (b bevel) Coverage(rx, ry float32) float32 {
	x, y := b.apply(rx, ry)
	return inside(math32.Abs(y) <= 0.7 && x >= -0.8 && x <= 0.4)
}

// textured samples the inverted luminance of a texture, fading out towards
// the border of the unit circle.
type textured struct {
	rotation
	tex      *Texture
	strength float32
}

func (t textured) Coverage(rx, ry float32) float32 {
	dist := math32.Sqrt(rx*rx + ry*ry)
	if dist > 1 {
		return 0
	}
	x, y := t.apply(rx, ry)
	sample := t.tex.Sample((x+1)/2, (y+1)/2)

	return (1 - dist) * ((1 - t.strength) + t.strength*sample)
}

// noiseScale is the number of noise cells across the stamp diameter.
const noiseScale = 4

// noise is a deterministic value noise used by custom brushes without a texture.
type noise struct {
	rotation
}

func (n noise) Coverage(rx, ry float32) float32 {
	dist := math32.Sqrt(rx*rx + ry*ry)
	if dist > 1 {
		return 0
	}
	x, y := n.apply(rx, ry)
	return (1 - dist) * valueNoise((x+1)*noiseScale/2, (y+1)*noiseScale/2)
}

// valueNoise interpolates pseudo random lattice values with a smoothstep curve.
func valueNoise(x, y float32) float32 {
	x0, y0 := math32.Floor(x), math32.Floor(y)
	ix, iy := int32(x0), int32(y0)
	fx, fy := smoothstep(x-x0), smoothstep(y-y0)

	top := lerp(lattice(ix, iy), lattice(ix+1, iy), fx)
	bottom := lerp(lattice(ix, iy+1), lattice(ix+1, iy+1), fx)
	return lerp(top, bottom, fy)
}

func lattice(x, y int32) float32 {
	h := uint32(x)*374761393 + uint32(y)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float32(h&0xffff) / 0xffff
}

func smoothstep(t float32) float32 { return t * t * (3 - 2*t) }

func lerp(a, b, t float32) float32 { return a + (b-a)*t }
