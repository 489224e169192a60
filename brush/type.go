// Package brush generates the coverage masks stamped by the stroke rasterizer.
//
// Each brush archetype is a pure function of normalized coordinates centered
// on the stamp, where (0, 0) is the stamp center and the unit circle touches
// the mask borders. The Manager keeps the brush presets, the smoothed stroke
// direction used to orient the stamp and the current brush size.
package brush

import (
	"fmt"
	"strings"

	"github.com/esimov/pigment/imop"
)

// Type is the brush archetype.
type Type int

// Brush archetypes.
const (
	Round Type = iota
	Flat
	Bright
	Filbert
	Fan
	Angle
	Mop
	Rigger
	Custom
)

var typeNames = [...]string{
	Round:   "round",
	Flat:    "flat",
	Bright:  "bright",
	Filbert: "filbert",
	Fan:     "fan",
	Angle:   "angle",
	Mop:     "mop",
	Rigger:  "rigger",
	Custom:  "custom",
}

// Types returns every brush archetype in display order.
func Types() []Type {
	return []Type{Round, Flat, Bright, Filbert, Fan, Angle, Mop, Rigger, Custom}
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType returns the archetype with the given name.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return Round, fmt.Errorf("unknown brush type: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(typeNames) {
		return nil, fmt.Errorf("invalid brush type: %d", int(t))
	}
	return []byte(typeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// BlendMode defines how a stamp is mixed with the pixels underneath.
type BlendMode int

// Blend modes. Normal replaces the destination pixel.
const (
	Normal BlendMode = iota
	Add
	Multiply
	Screen
	Overlay
)

// Op returns the name of the matching pixel blend operation.
// Unknown modes yield a name no blend operation accepts.
func (b BlendMode) Op() string {
	switch b {
	case Normal:
		return imop.Normal
	case Add:
		return imop.Add
	case Multiply:
		return imop.Multiply
	case Screen:
		return imop.Screen
	case Overlay:
		return imop.Overlay
	}
	return fmt.Sprintf("BlendMode(%d)", int(b))
}

func (b BlendMode) String() string {
	return b.Op()
}
