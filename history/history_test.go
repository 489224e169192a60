package history

import (
	"image/color"
	"testing"
	"time"

	"github.com/esimov/pigment/canvas"
	"github.com/stretchr/testify/assert"
)

var (
	red  = canvas.Fill(color.NRGBA{R: 255, A: 255})
	blue = canvas.Fill(color.NRGBA{B: 255, A: 255})
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestHistory(c *canvas.Canvas, opts ...Option) (*History, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return New(c, append([]Option{WithClock(clock.now)}, opts...)...), clock
}

func TestHistory_NoOpSuppression(t *testing.T) {
	assert := assert.New(t)

	c := canvas.New(4, 4)
	h, _ := newTestHistory(c)

	assert.False(h.RecordChange(1, 1, canvas.Empty))
	assert.False(h.RecordChange(-1, 0, red))
	assert.False(h.RecordChange(4, 4, red))
	assert.Equal(0, h.Pending())

	assert.True(h.RecordChange(1, 1, red))
	assert.False(h.RecordChange(1, 1, red))
	assert.Equal(1, h.Pending())
	assert.True(c.Unsaved())
}

func TestHistory_UndoRedoInverse(t *testing.T) {
	assert := assert.New(t)

	c := canvas.New(4, 4)
	h, _ := newTestHistory(c)

	h.RecordChange(0, 0, red)
	h.RecordChange(1, 0, red)
	h.RecordChange(0, 0, blue)
	assert.True(h.Flush())
	assert.False(h.Flush())
	assert.Equal(1, h.UndoLen())

	assert.True(h.Undo())
	assert.Equal(canvas.Empty, c.Get(0, 0))
	assert.Equal(canvas.Empty, c.Get(1, 0))
	assert.Equal(0, h.UndoLen())
	assert.Equal(1, h.RedoLen())

	assert.True(h.Redo())
	assert.Equal(blue, c.Get(0, 0))
	assert.Equal(red, c.Get(1, 0))
	assert.Equal(1, h.UndoLen())
	assert.Equal(0, h.RedoLen())

	assert.True(h.Undo())
	assert.False(h.Undo())
	assert.False(h.CanUndo())
	assert.True(h.CanRedo())
}

func TestHistory_RedoRepeatedPixelKeepsLastColor(t *testing.T) {
	assert := assert.New(t)

	c := canvas.New(2, 2)
	h, _ := newTestHistory(c)

	h.RecordChange(0, 0, red)
	h.RecordChange(0, 0, blue)
	assert.True(h.Flush())

	for i := 0; i < 3; i++ {
		assert.True(h.Undo())
		assert.Equal(canvas.Empty, c.Get(0, 0))

		assert.True(h.Redo())
		assert.Equal(blue, c.Get(0, 0))
	}
	assert.Equal(1, h.UndoLen())
	assert.Equal(0, h.RedoLen())
}

func TestHistory_UndoOnEmptyStackIsNoOp(t *testing.T) {
	assert := assert.New(t)

	c := canvas.New(2, 2)
	c.ConsumeDirty()
	h, _ := newTestHistory(c)

	assert.False(h.Undo())
	assert.False(h.Redo())
	assert.False(c.Dirty())
	assert.False(c.Unsaved())
}

func TestHistory_UndoIsLayerScoped(t *testing.T) {
	assert := assert.New(t)

	c := canvas.New(3, 3)
	h, _ := newTestHistory(c)

	h.RecordChange(1, 1, red)
	h.Flush()

	c.AddLayer("top")
	h.RecordChange(1, 1, blue)
	h.Flush()

	// Undo the bottom stroke while the top layer is active.
	assert.True(h.Undo())
	assert.Equal(canvas.Empty, c.GetAt(1, 1, 1))
	assert.True(h.Undo())
	assert.Equal(canvas.Empty, c.GetAt(0, 1, 1))

	c.SetActiveLayer(0)
	assert.True(h.Redo())
	assert.Equal(red, c.GetAt(0, 1, 1))
	assert.Equal(canvas.Empty, c.GetAt(1, 1, 1))
	assert.True(h.Redo())
	assert.Equal(blue, c.GetAt(1, 1, 1))
}

func TestHistory_BoundedDepth(t *testing.T) {
	assert := assert.New(t)

	c := canvas.New(30, 1)
	h, _ := newTestHistory(c)

	for i := 0; i < 25; i++ {
		h.RecordChange(i, 0, red)
		h.Flush()
	}
	assert.Equal(DefaultDepth, h.UndoLen())

	stack := h.UndoStack()
	assert.Len(stack, DefaultDepth)
	for i, s := range stack {
		assert.Len(s, 1)
		assert.Equal(i+5, s[0].X)
	}

	for h.Undo() {
	}
	// The first five strokes were evicted and can no longer be undone.
	for i := 0; i < 5; i++ {
		assert.Equal(red, c.Get(i, 0))
	}
	for i := 5; i < 25; i++ {
		assert.Equal(canvas.Empty, c.Get(i, 0))
	}
}

func TestHistory_NewStrokeClearsRedo(t *testing.T) {
	assert := assert.New(t)

	c := canvas.New(2, 2)
	h, _ := newTestHistory(c)

	h.RecordChange(0, 0, red)
	h.Flush()
	h.Undo()
	assert.Equal(1, h.RedoLen())

	h.RecordChange(1, 1, blue)
	h.Flush()
	assert.Equal(0, h.RedoLen())
	assert.False(h.Redo())
}

func TestHistory_Debounce(t *testing.T) {
	assert := assert.New(t)

	c := canvas.New(8, 8)
	h, clock := newTestHistory(c)

	h.RecordChange(0, 0, red)
	clock.advance(100 * time.Millisecond)
	h.RecordChange(1, 0, red)
	clock.advance(299 * time.Millisecond)
	assert.False(h.CommitIfIdle())
	assert.Equal(2, h.Pending())

	clock.advance(time.Millisecond)
	assert.True(h.CommitIfIdle())
	assert.Equal(0, h.Pending())
	assert.Equal(1, h.UndoLen())

	// A change arriving after a quiet period starts a separate stroke even
	// when nobody polled in between.
	h.RecordChange(2, 0, red)
	clock.advance(time.Second)
	h.RecordChange(3, 0, red)
	assert.Equal(2, h.UndoLen())
	assert.Equal(1, h.Pending())
	assert.True(h.CanUndo())
}

func TestHistory_Options(t *testing.T) {
	assert := assert.New(t)

	c := canvas.New(10, 1)
	h, clock := newTestHistory(c, WithDepth(3), WithDelay(time.Second), WithDepth(0))

	for i := 0; i < 5; i++ {
		h.RecordChange(i, 0, red)
		h.Flush()
	}
	assert.Equal(3, h.UndoLen())

	h.RecordChange(9, 0, red)
	clock.advance(500 * time.Millisecond)
	assert.False(h.CommitIfIdle())
	clock.advance(500 * time.Millisecond)
	assert.True(h.CommitIfIdle())
}
