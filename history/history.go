// Package history records per-pixel edits of a canvas and groups them into
// undoable strokes.
//
// Every edit goes through RecordChange, which applies the new color right away
// and keeps the previous one in a pending buffer. The pending buffer becomes a
// single stroke once the user has been idle for the commit delay, or when the
// caller flushes it explicitly at the end of a gesture.
package history

import (
	"time"

	"github.com/esimov/pigment/canvas"
	"go.uber.org/zap"
)

const (
	// DefaultDepth is the maximum number of strokes kept on the undo stack.
	DefaultDepth = 20
	// DefaultDelay is the idle time after which a pending stroke is committed.
	DefaultDelay = 300 * time.Millisecond
)

// Change is a single pixel edit on a given layer.
type Change struct {
	X, Y  int
	Layer int
	Old   canvas.Pixel
	New   canvas.Pixel
}

// Stroke is an ordered group of changes undone and redone as a unit.
type Stroke []Change

// History is the undo engine bound to a single canvas.
type History struct {
	canvas *canvas.Canvas

	undo    []Stroke
	redo    []Stroke
	pending Stroke

	depth      int
	delay      time.Duration
	lastChange time.Time

	now    func() time.Time
	logger *zap.Logger
}

// Option customizes a History.
type Option func(*History)

// WithDepth sets the undo stack depth. Values below 1 are ignored.
func WithDepth(depth int) Option {
	return func(h *History) {
		if depth > 0 {
			h.depth = depth
		}
	}
}

// WithDelay sets the idle time after which a pending stroke is committed.
func WithDelay(d time.Duration) Option {
	return func(h *History) {
		if d >= 0 {
			h.delay = d
		}
	}
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		if now != nil {
			h.now = now
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.logger = l
		}
	}
}

// New creates an empty history for c.
func New(c *canvas.Canvas, opts ...Option) *History {
	h := &History{
		canvas: c,
		depth:  DefaultDepth,
		delay:  DefaultDelay,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RecordChange writes p into the active layer at (x, y) and records the edit.
// Writes which would not change anything, as well as out of bounds
// coordinates, are ignored and reported by a false return value.
func (h *History) RecordChange(x, y int, p canvas.Pixel) bool {
	if !h.canvas.InBounds(x, y) {
		return false
	}
	old := h.canvas.GetActive(x, y)
	if old == p {
		return false
	}
	now := h.now()
	// A change arriving after a quiet period starts a new stroke.
	if len(h.pending) > 0 && now.Sub(h.lastChange) >= h.delay {
		h.commit()
	}

	h.pending = append(h.pending, Change{
		X:     x,
		Y:     y,
		Layer: h.canvas.ActiveIndex(),
		Old:   old,
		New:   p,
	})
	h.canvas.Set(x, y, p)
	h.canvas.MarkUnsaved()
	h.lastChange = now

	return true
}

// CommitIfIdle commits the pending stroke when no change has been recorded
// for at least the commit delay. It is meant to be called once per frame.
func (h *History) CommitIfIdle() bool {
	if len(h.pending) == 0 || h.now().Sub(h.lastChange) < h.delay {
		return false
	}
	return h.commit()
}

// Flush commits the pending stroke regardless of the elapsed time.
func (h *History) Flush() bool {
	return h.commit()
}

func (h *History) commit() bool {
	if len(h.pending) == 0 {
		return false
	}
	h.push(h.pending)
	h.logger.Debug("stroke committed",
		zap.Int("changes", len(h.pending)),
		zap.Int("undo", len(h.undo)),
	)
	h.pending = nil
	h.redo = nil

	return true
}

// push appends a stroke to the undo stack, evicting the oldest one when the
// stack grows beyond its depth.
func (h *History) push(s Stroke) {
	h.undo = append(h.undo, s)
	if n := len(h.undo) - h.depth; n > 0 {
		h.undo = append(h.undo[:0:0], h.undo[n:]...)
	}
}

// Undo reverts the most recent stroke. A pending stroke is committed first.
func (h *History) Undo() bool {
	h.commit()
	if len(h.undo) == 0 {
		return false
	}
	s := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	h.redo = append(h.redo, h.restore(s))
	h.logger.Debug("undo", zap.Int("changes", len(s)), zap.Int("redo", len(h.redo)))

	return true
}

// Redo reapplies the most recently undone stroke.
func (h *History) Redo() bool {
	h.commit()
	if len(h.redo) == 0 {
		return false
	}
	s := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	// The redo stack holds the strokes built while undoing, so restoring
	// their old colors brings back the painted pixels.
	h.push(h.restore(s))
	h.logger.Debug("redo", zap.Int("changes", len(s)), zap.Int("undo", len(h.undo)))

	return true
}

// restore walks the stroke in reverse order and writes back the old color of
// every change on the layer it was recorded on. It returns the stroke reverting
// the restoration: its changes hold the colors read just before each write,
// appended in traversal order, so that restoring it walks them back again.
func (h *History) restore(s Stroke) Stroke {
	out := make(Stroke, 0, len(s))
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		cur := h.canvas.GetAt(c.Layer, c.X, c.Y)
		h.canvas.SetAt(c.Layer, c.X, c.Y, c.Old)
		out = append(out, Change{X: c.X, Y: c.Y, Layer: c.Layer, Old: cur, New: c.Old})
	}
	h.canvas.MarkDirty()
	h.canvas.MarkUnsaved()

	return out
}

// CanUndo reports whether there is something to undo, pending edits included.
func (h *History) CanUndo() bool { return len(h.undo) > 0 || len(h.pending) > 0 }

// CanRedo reports whether there is something to redo.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoLen returns the number of committed strokes.
func (h *History) UndoLen() int { return len(h.undo) }

// RedoLen returns the number of undone strokes.
func (h *History) RedoLen() int { return len(h.redo) }

// Pending returns the number of uncommitted changes.
func (h *History) Pending() int { return len(h.pending) }

// UndoStack returns a copy of the committed strokes, oldest first.
func (h *History) UndoStack() []Stroke {
	out := make([]Stroke, len(h.undo))
	for i, s := range h.undo {
		out[i] = append(Stroke(nil), s...)
	}
	return out
}
