// Package preview opens an interactive Gio window over an editing session.
// It acts as the display surface of the editor and translates the window
// pointer and keyboard events into editor operations.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/esimov/pigment"
	"go.uber.org/zap"
)

const (
	maxScreenX = 1366
	maxScreenY = 768
)

var (
	defaultBkgColor    = color.NRGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}
	defaultCursorColor = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xc0}
)

// Gui is the window driving an editing session.
type Gui struct {
	cfg struct {
		window struct {
			w     float32
			h     float32
			title string
		}
		color struct {
			background color.NRGBA
			cursor     color.NRGBA
		}
	}
	view struct {
		img    *image.NRGBA
		imgOp  paint.ImageOp
		scale  float32
		offset f32.Point
	}
	input struct {
		button  pigment.Button
		pressed bool
		hover   f32.Point
		inside  bool
	}

	editor   *pigment.Editor
	savePath string
	logger   *zap.Logger
}

// Option customizes the window.
type Option func(*Gui)

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(g *Gui) {
		g.cfg.window.title = title
	}
}

// WithSavePath sets the file used by the save shortcut
// when the document has never been saved before.
func WithSavePath(path string) Option {
	return func(g *Gui) {
		g.savePath = path
	}
}

// WithLogger sets the logger used to report user actions.
func WithLogger(l *zap.Logger) Option {
	return func(g *Gui) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGUI initializes the window over the editor.
func NewGUI(e *pigment.Editor, opts ...Option) *Gui {
	g := &Gui{
		editor: e,
		logger: zap.NewNop(),
	}
	g.cfg.window.title = "pigment"
	for _, opt := range opts {
		opt(g)
	}
	g.initWindow(e.Canvas().Width(), e.Canvas().Height())

	return g
}

// initWindow sets up the window defaults.
func (g *Gui) initWindow(w, h int) {
	g.cfg.window.w, g.cfg.window.h = float32(w), float32(h)
	g.cfg.color.background = defaultBkgColor
	g.cfg.color.cursor = defaultCursorColor
	g.cfg.window.w, g.cfg.window.h = g.getWindowSize()
	g.view.scale = 1
}

// getWindowSize returns the canvas dimension scaled down to the maximum screen size.
func (g *Gui) getWindowSize() (float32, float32) {
	w, h := g.cfg.window.w, g.cfg.window.h

	r := getRatio(w, h, maxScreenX, maxScreenY)
	return w * r, h * r
}

// Run opens the window and processes its events until it gets closed.
func (g *Gui) Run() error {
	w := app.NewWindow(app.Title(g.title()))

	var (
		ops   op.Ops
		title = g.title()
	)
	for e := range w.Events() {
		switch e := e.(type) {
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			g.draw(gtx)
			e.Frame(gtx.Ops)
			w.Invalidate()

			if t := g.title(); t != title {
				title = t
				w.Option(app.Title(title))
			}
		case key.Event:
			if e.State != key.Press {
				break
			}
			if g.handleKey(e) {
				w.Close()
			}
		case system.DestroyEvent:
			if g.editor.Canvas().Unsaved() {
				g.logger.Warn("window closed with unsaved changes")
			}
			return e.Err
		}
	}
	return nil
}

// title returns the window title, flagged when the document has unsaved changes.
func (g *Gui) title() string {
	title := g.cfg.window.title
	if g.editor.Path() != "" {
		title = fmt.Sprintf("%s - %s", title, g.editor.Path())
	}
	if g.editor.Canvas().Unsaved() {
		title += " *"
	}
	return title
}

// draw renders a single frame: the editor display buffer scaled to fit the
// window and the brush outline under the cursor.
func (g *Gui) draw(gtx layout.Context) {
	g.handlePointer(gtx)
	g.editor.Tick()

	paint.Fill(gtx.Ops, g.cfg.color.background)

	c := g.editor.Canvas()
	if g.editor.Canvas().ConsumeDirty() || g.view.img == nil {
		g.view.img = g.editor.Display()
		g.view.imgOp = paint.NewImageOp(g.view.img)
	}

	// Fit the canvas into the window keeping its aspect ratio.
	size := gtx.Constraints.Max
	cw, ch := float32(c.Width()), float32(c.Height())
	g.view.scale = getRatio(cw, ch, float32(size.X), float32(size.Y))
	g.view.offset = f32.Pt(
		(float32(size.X)-cw*g.view.scale)/2,
		(float32(size.Y)-ch*g.view.scale)/2,
	)

	// The pointer area spans the whole window so that strokes
	// leaving the canvas keep being tracked.
	area := clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops)
	pointer.InputOp{
		Tag:   g,
		Types: pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Enter | pointer.Leave,
	}.Add(gtx.Ops)
	area.Pop()

	tr := f32.Affine2D{}.
		Scale(f32.Pt(0, 0), f32.Pt(g.view.scale, g.view.scale)).
		Offset(g.view.offset)
	defer op.Affine(tr).Push(gtx.Ops).Pop()

	img := clip.Rect(image.Rectangle{Max: image.Pt(c.Width(), c.Height())}).Push(gtx.Ops)
	g.view.imgOp.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	img.Pop()

	if g.input.inside && g.editor.Tool() != pigment.PaintBucket && g.editor.Tool() != pigment.ColorPicker {
		g.drawCursor(gtx)
	}
}

// toCanvas converts a window position to canvas coordinates.
func (g *Gui) toCanvas(pos f32.Point) f32.Point {
	return toCanvas(pos, g.view.offset, g.view.scale)
}

func toCanvas(pos, offset f32.Point, scale float32) f32.Point {
	if scale <= 0 {
		scale = 1
	}
	p := pos.Sub(offset)
	return f32.Pt(p.X/scale, p.Y/scale)
}

// handlePointer forwards the pointer events received since the last frame.
func (g *Gui) handlePointer(gtx layout.Context) {
	for _, ev := range gtx.Events(g) {
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		pos := g.toCanvas(e.Position)
		g.input.hover = pos

		switch e.Type {
		case pointer.Enter, pointer.Move:
			g.input.inside = true
		case pointer.Leave:
			g.input.inside = false
		case pointer.Press:
			g.input.inside = true
			g.input.pressed = true
			g.input.button = buttonOf(e.Buttons)
			g.editor.Pointer(pigment.PointerEvent{
				Pos:    pigment.PointAt(pos.X, pos.Y),
				Button: g.input.button,
				Phase:  pigment.Press,
			})
		case pointer.Drag:
			if !g.input.pressed {
				break
			}
			g.editor.Pointer(pigment.PointerEvent{
				Pos:    pigment.PointAt(pos.X, pos.Y),
				Button: g.input.button,
				Phase:  pigment.Drag,
			})
		case pointer.Release, pointer.Cancel:
			if !g.input.pressed {
				break
			}
			g.input.pressed = false
			g.editor.Pointer(pigment.PointerEvent{
				Pos:    pigment.PointAt(pos.X, pos.Y),
				Button: g.input.button,
				Phase:  pigment.Release,
			})
		}
	}
}

// buttonOf maps the pressed mouse buttons to the editor button.
func buttonOf(b pointer.Buttons) pigment.Button {
	if b.Contain(pointer.ButtonSecondary) && !b.Contain(pointer.ButtonPrimary) {
		return pigment.Secondary
	}
	return pigment.Primary
}

// save writes the document to its last location, falling back to the
// configured save path for documents that were never saved.
func (g *Gui) save() {
	err := g.editor.QuickSave()
	if errors.Is(err, pigment.ErrNoSavePath) {
		if g.savePath == "" {
			g.logger.Warn("no save location for the document")
			return
		}
		err = g.editor.Save(g.savePath)
	}
	if err != nil {
		g.logger.Error("could not save the document", zap.Error(err))
	}
}
