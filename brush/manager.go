package brush

import (
	"github.com/chewxy/math32"
	"github.com/esimov/pigment/utils"
	"go.uber.org/zap"
)

const (
	// MinSize and MaxSize bound the brush radius in pixels.
	MinSize = 1
	MaxSize = 500
	// DefaultSize is the brush radius of a new manager.
	DefaultSize = 3

	// angleThreshold is the minimum squared displacement in pixels
	// required to update the stroke direction.
	angleThreshold = 0.25
	// angleSmoothing is the fraction of the direction change applied per update.
	angleSmoothing = 0.2
)

// Manager holds the available brushes, the active one and the state of the
// stroke being drawn.
type Manager struct {
	brushes []Properties
	active  int

	angle   float32
	lastX   float32
	lastY   float32
	hasLast bool

	size     float32
	textures *TextureCache
	logger   *zap.Logger
}

// Option customizes a Manager.
type Option func(*Manager)

// WithTextures sets the cache used to resolve custom brush textures.
func WithTextures(tc *TextureCache) Option {
	return func(m *Manager) {
		m.textures = tc
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager returns a manager holding the default brush of every archetype,
// with the round brush active.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		size:   DefaultSize,
		logger: zap.NewNop(),
	}
	for _, t := range Types() {
		m.brushes = append(m.brushes, FromType(t))
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Brushes returns a copy of the available brushes.
func (m *Manager) Brushes() []Properties {
	return append([]Properties(nil), m.brushes...)
}

// Add appends a brush and returns its index.
func (m *Manager) Add(p Properties) int {
	m.brushes = append(m.brushes, p)
	return len(m.brushes) - 1
}

// Active returns the active brush.
func (m *Manager) Active() Properties {
	return m.brushes[m.active]
}

// ActiveIndex returns the index of the active brush.
func (m *Manager) ActiveIndex() int {
	return m.active
}

// SetActive activates the brush at index i. Out of range indices are ignored.
func (m *Manager) SetActive(i int) bool {
	if i < 0 || i >= len(m.brushes) {
		return false
	}
	m.active = i
	return true
}

// SetActiveType activates the first brush of type t.
func (m *Manager) SetActiveType(t Type) bool {
	for i, b := range m.brushes {
		if b.Type == t {
			m.active = i
			return true
		}
	}
	return false
}

// Angle returns the smoothed stroke direction in radians.
func (m *Manager) Angle() float32 {
	return m.angle
}

// UpdateAngle moves the stroke direction towards the direction of travel from
// the previous position to (x, y). Displacements below half a pixel only
// update the position.
func (m *Manager) UpdateAngle(x, y float32) {
	if m.hasLast {
		dx, dy := x-m.lastX, y-m.lastY
		if dx*dx+dy*dy > angleThreshold {
			diff := math32.Atan2(dy, dx) - m.angle
			if diff > math32.Pi {
				diff -= 2 * math32.Pi
			} else if diff < -math32.Pi {
				diff += 2 * math32.Pi
			}
			m.angle += diff * angleSmoothing
		}
	}
	m.lastX, m.lastY = x, y
	m.hasLast = true
}

// ResetPosition forgets the previous position at the end of a stroke.
func (m *Manager) ResetPosition() {
	m.hasLast = false
}

// SetSize sets the brush radius, clamped to [MinSize, MaxSize].
func (m *Manager) SetSize(size float32) {
	m.size = utils.Clamp(size, MinSize, MaxSize)
}

// Size returns the brush radius.
func (m *Manager) Size() float32 {
	return m.size
}

// Diameter returns the side of the stamp mask, always odd.
func (m *Manager) Diameter() int {
	return int(m.size)*2 + 1
}

// Spacing returns the squared distance in pixels walked between two stamps.
func (m *Manager) Spacing() float32 {
	return utils.Max(m.Active().Spacing*m.size, 1)
}

// Mask generates the stamp of the active brush at the current size and angle.
func (m *Manager) Mask() Mask {
	p := m.Active()
	return GenerateMask(p, m.angle, m.Diameter(), m.texture(p))
}

func (m *Manager) texture(p Properties) *Texture {
	if p.Type != Custom || p.Texture == "" || m.textures == nil {
		return nil
	}
	tex, err := m.textures.Load(p.Texture)
	if err != nil {
		m.logger.Warn("falling back to procedural brush texture",
			zap.String("texture", p.Texture),
			zap.Error(err),
		)
		return nil
	}
	return tex
}
