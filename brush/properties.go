package brush

import "github.com/chewxy/math32"

// Properties describes a brush.
type Properties struct {
	Type                Type
	Size                float32
	Stretch             float32
	AngleSensitivity    float32
	PressureSensitivity float32
	Blend               BlendMode
	Spacing             float32
	Hardness            float32
	BaseRotation        float32

	// Texture is the image used by custom brushes.
	// An empty path selects procedural noise.
	Texture         string
	TextureStrength float32
}

func defaults() Properties {
	return Properties{
		Type:                Round,
		Size:                10,
		Stretch:             1,
		PressureSensitivity: 0.5,
		Blend:               Normal,
		Spacing:             0.05,
		Hardness:            1,
		TextureStrength:     1,
	}
}

// FromType returns the default properties of a brush archetype.
func FromType(t Type) Properties {
	p := defaults()
	p.Type = t

	switch t {
	case Flat:
		p.Stretch = 4
		p.AngleSensitivity = 0.8
	case Bright:
		p.Stretch = 3
		p.AngleSensitivity = 0.7
	case Filbert:
		p.Stretch = 2.5
		p.AngleSensitivity = 0.6
		p.Hardness = 0.8
	case Fan:
		p.Stretch = 3
		p.AngleSensitivity = 0.8
		p.Spacing = 0.08
	case Angle:
		p.Stretch = 2
		p.AngleSensitivity = 0.8
		p.BaseRotation = math32.Pi / 4
	case Mop:
		p.Stretch = 1.2
		p.AngleSensitivity = 0.1
		p.Hardness = 0.5
		p.Spacing = 0.03
	case Rigger:
		p.Stretch = 0.5
		p.AngleSensitivity = 0.2
		p.Spacing = 0.02
	case Custom:
		p.Hardness = 0.8
	}
	return p
}

// Presets returns the preset variants offered for an archetype.
// The first element is always the archetype default.
func Presets(t Type) []Properties {
	base := FromType(t)

	switch t {
	case Round:
		soft := base
		soft.Hardness = 0.4
		return []Properties{base, soft}
	case Flat:
		extra := base
		extra.Stretch = 6
		soft := base
		soft.Hardness = 0.5
		return []Properties{base, extra, soft}
	}
	return []Properties{base}
}

// Extent returns the width and height of the brush footprint for the given
// stroke angle and size multiplier. It is used to draw the cursor outline.
func (p Properties) Extent(angle, size float32) (width, height float32) {
	eff := angle + p.BaseRotation
	stretch := 1 + (p.Stretch-1)*p.AngleSensitivity

	factor := math32.Abs(math32.Sin(eff)) * math32.Abs(math32.Cos(eff)) * 2
	wf := 1 + (stretch-1)*factor
	hf := 1 / wf

	base := size * p.Size
	return base * wf, base * hf * p.Stretch
}
