package pigment

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/esimov/pigment/brush"
	"github.com/esimov/pigment/canvas"
	"github.com/esimov/pigment/codec"
	"github.com/esimov/pigment/fill"
	"github.com/esimov/pigment/history"
	"github.com/esimov/pigment/imop"
	"github.com/esimov/pigment/raster"
	"github.com/esimov/pigment/utils"
	"go.uber.org/zap"
)

// ErrNoSavePath is returned by QuickSave when the document was never saved.
var ErrNoSavePath = errors.New("no previous save path")

// Tool is the active editing tool.
type Tool int

// Editing tools.
const (
	Brush Tool = iota
	Eraser
	PaintBucket
	ColorPicker
	Line
)

func (t Tool) String() string {
	switch t {
	case Brush:
		return "brush"
	case Eraser:
		return "eraser"
	case PaintBucket:
		return "bucket"
	case ColorPicker:
		return "picker"
	case Line:
		return "line"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Button is the pointer button driving an action.
// The primary button paints with the primary color, the secondary one with
// the secondary color.
type Button int

// Pointer buttons.
const (
	Primary Button = iota
	Secondary
)

// Phase is the stage of a pointer gesture.
type Phase int

// Gesture phases.
const (
	Press Phase = iota
	Drag
	Release
)

// PointerEvent is a pointer action in canvas coordinates.
type PointerEvent struct {
	Pos    image.Point
	Button Button
	Phase  Phase
}

// PointAt converts floating point canvas coordinates to a pixel position.
// Coordinates are floored, so that negative positions stay outside the canvas.
func PointAt(x, y float32) image.Point {
	return image.Pt(int(math.Floor(float64(x))), int(math.Floor(float64(y))))
}

// Editor is an editing session over a single document.
type Editor struct {
	canvas  *canvas.Canvas
	history *history.History
	brushes *brush.Manager
	raster  *raster.Rasterizer

	tool       Tool
	primary    color.NRGBA
	secondary  color.NRGBA
	palette    *Palette
	brushSize  int
	eraserSize int

	drawing bool
	lastPos image.Point

	line       bool
	lineButton Button
	lineStart  image.Point
	lineEnd    image.Point

	path   string
	logger *zap.Logger
}

type options struct {
	logger  *zap.Logger
	clock   func() time.Time
	brushes *brush.Manager
}

// Option customizes an Editor.
type Option func(*options)

// WithLogger attaches a logger to the editor and its components.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithClock replaces the clock used for grouping strokes.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithBrushes replaces the brush manager built from the configuration.
func WithBrushes(m *brush.Manager) Option {
	return func(o *options) {
		o.brushes = m
	}
}

// NewEditor starts a session on a blank canvas sized after conf.
// A nil conf selects DefaultConfig.
func NewEditor(conf *Config, opts ...Option) (*Editor, error) {
	if conf == nil {
		conf = DefaultConfig()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	doc := codec.NewDocument(canvas.New(conf.Width, conf.Height))
	doc.Primary, doc.Secondary, _ = conf.Colors()
	doc.BrushSize = conf.BrushSize
	doc.EraserSize = conf.EraserSize

	return newEditor(doc, conf, opts...)
}

// Open starts a session on the document stored at path.
func Open(path string, conf *Config, opts ...Option) (*Editor, error) {
	if conf == nil {
		conf = DefaultConfig()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	doc, err := codec.LoadFile(path)
	if err != nil {
		return nil, err
	}
	e, err := newEditor(doc, conf, opts...)
	if err != nil {
		return nil, err
	}
	e.path = path
	e.logger.Info("document opened",
		zap.String("path", path),
		zap.Int("width", doc.Canvas.Width()),
		zap.Int("height", doc.Canvas.Height()),
		zap.Int("layers", doc.Canvas.LayerCount()),
	)
	return e, nil
}

func newEditor(doc *codec.Document, conf *Config, opts ...Option) (*Editor, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	if o.brushes == nil {
		textures, err := brush.NewTextureCache(conf.TextureCacheSize, o.logger)
		if err != nil {
			return nil, err
		}
		o.brushes = brush.NewManager(brush.WithTextures(textures), brush.WithLogger(o.logger))
		bt, _ := brush.ParseType(conf.BrushType)
		o.brushes.SetActiveType(bt)
	}

	hopts := []history.Option{
		history.WithDepth(conf.UndoDepth),
		history.WithDelay(conf.Delay()),
		history.WithLogger(o.logger),
	}
	if o.clock != nil {
		hopts = append(hopts, history.WithClock(o.clock))
	}
	hist := history.New(doc.Canvas, hopts...)

	e := &Editor{
		canvas:    doc.Canvas,
		history:   hist,
		brushes:   o.brushes,
		raster:    raster.New(doc.Canvas, hist, o.brushes, raster.WithLogger(o.logger)),
		primary:   doc.Primary,
		secondary: doc.Secondary,
		palette:   NewPalette(MaxSavedColors),
		logger:    o.logger,
	}
	for _, c := range doc.Saved {
		e.palette.Add(c)
	}
	e.SetBrushSize(doc.BrushSize)
	e.SetEraserSize(doc.EraserSize)
	e.SetTool(Brush)

	return e, nil
}

// Canvas returns the edited canvas.
func (e *Editor) Canvas() *canvas.Canvas { return e.canvas }

// History returns the undo engine of the session.
func (e *Editor) History() *history.History { return e.history }

// Brushes returns the brush manager.
func (e *Editor) Brushes() *brush.Manager { return e.brushes }

// Path returns the location the document was last saved to or opened from.
func (e *Editor) Path() string { return e.path }

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// SetTool activates t. Any line preview in progress is discarded.
func (e *Editor) SetTool(t Tool) {
	e.tool = t
	e.CancelLine()
	e.syncBrushSize()
}

// Pointer feeds a pointer event to the active tool.
func (e *Editor) Pointer(ev PointerEvent) {
	switch ev.Phase {
	case Press, Drag:
		e.pointerDown(ev)
	case Release:
		e.pointerUp(ev)
	}
}

func (e *Editor) pointerDown(ev PointerEvent) {
	switch e.tool {
	case Line:
		if ev.Phase == Press || !e.line {
			e.line = true
			e.lineButton = ev.Button
			e.lineStart = ev.Pos
		}
		e.lineEnd = ev.Pos
		e.canvas.MarkDirty()
	case PaintBucket:
		fill.Flood(e.canvas, e.history, ev.Pos.X, ev.Pos.Y, canvas.Fill(e.color(ev.Button)))
	case ColorPicker:
		e.pick(ev.Pos, ev.Button)
	case Brush, Eraser:
		erase := e.tool == Eraser
		if e.drawing {
			e.raster.DrawLine(e.lastPos, ev.Pos, e.color(ev.Button), erase)
		} else {
			e.raster.DrawPoint(ev.Pos.X, ev.Pos.Y, e.color(ev.Button), erase)
		}
		e.drawing = true
		e.lastPos = ev.Pos
	}
}

func (e *Editor) pointerUp(ev PointerEvent) {
	if e.tool == Line && e.line {
		e.lineEnd = ev.Pos
		e.raster.DrawLine(e.lineStart, e.lineEnd, e.color(e.lineButton), false)
		e.line = false
	}
	e.drawing = false
	e.brushes.ResetPosition()
	e.history.Flush()
}

func (e *Editor) pick(pos image.Point, b Button) {
	c, ok := e.canvas.Get(pos.X, pos.Y).Color()
	if !ok {
		return
	}
	if b == Secondary {
		e.secondary = c
	} else {
		e.primary = c
	}
}

func (e *Editor) color(b Button) color.NRGBA {
	if b == Secondary {
		return e.secondary
	}
	return e.primary
}

// CancelLine discards the line being previewed without touching the canvas.
func (e *Editor) CancelLine() {
	if e.line {
		e.line = false
		e.canvas.MarkDirty()
	}
}

// LinePreview returns the endpoints of the line being drawn, if any.
func (e *Editor) LinePreview() (start, end image.Point, ok bool) {
	return e.lineStart, e.lineEnd, e.line
}

// Tick commits the pending stroke once the user has been idle long enough.
// It is meant to be called on every frame.
func (e *Editor) Tick() bool {
	return e.history.CommitIfIdle()
}

// Undo reverts the last stroke.
func (e *Editor) Undo() bool { return e.history.Undo() }

// Redo reapplies the last undone stroke.
func (e *Editor) Redo() bool { return e.history.Redo() }

// Primary returns the primary color.
func (e *Editor) Primary() color.NRGBA { return e.primary }

// Secondary returns the secondary color.
func (e *Editor) Secondary() color.NRGBA { return e.secondary }

// SetPrimaryColor changes the primary color.
func (e *Editor) SetPrimaryColor(c color.NRGBA) { e.primary = c }

// SetSecondaryColor changes the secondary color.
func (e *Editor) SetSecondaryColor(c color.NRGBA) { e.secondary = c }

// SavedColors returns the saved palette, oldest first.
func (e *Editor) SavedColors() []color.NRGBA { return e.palette.Colors() }

// AddSavedColor stores c in the palette.
func (e *Editor) AddSavedColor(c color.NRGBA) bool { return e.palette.Add(c) }

// RemoveSavedColor deletes the saved color at index i.
func (e *Editor) RemoveSavedColor(i int) bool { return e.palette.Remove(i) }

// UsePrimaryFromSaved sets the primary color from the palette.
func (e *Editor) UsePrimaryFromSaved(i int) bool {
	c, ok := e.palette.At(i)
	if ok {
		e.primary = c
	}
	return ok
}

// UseSecondaryFromSaved sets the secondary color from the palette.
func (e *Editor) UseSecondaryFromSaved(i int) bool {
	c, ok := e.palette.At(i)
	if ok {
		e.secondary = c
	}
	return ok
}

// BrushSize returns the radius used by painting tools.
func (e *Editor) BrushSize() int { return e.brushSize }

// EraserSize returns the radius used by the eraser.
func (e *Editor) EraserSize() int { return e.eraserSize }

// SetBrushSize sets the radius of painting tools.
func (e *Editor) SetBrushSize(size int) {
	e.brushSize = utils.Clamp(size, brush.MinSize, brush.MaxSize)
	e.syncBrushSize()
}

// SetEraserSize sets the radius of the eraser.
func (e *Editor) SetEraserSize(size int) {
	e.eraserSize = utils.Clamp(size, brush.MinSize, brush.MaxSize)
	e.syncBrushSize()
}

func (e *Editor) syncBrushSize() {
	if e.tool == Eraser {
		e.brushes.SetSize(float32(e.eraserSize))
		return
	}
	e.brushes.SetSize(float32(e.brushSize))
}

// SetBrush activates the brush at index i of the brush manager.
func (e *Editor) SetBrush(i int) bool {
	return e.brushes.SetActive(i)
}

// AddLayer appends a new layer named after its position and activates it.
func (e *Editor) AddLayer() string {
	e.history.Flush()
	name := fmt.Sprintf("Layer %d", e.canvas.LayerCount()+1)
	e.canvas.AddLayer(name)
	return name
}

// RemoveLayer deletes the layer at index i, unless it is the last one.
func (e *Editor) RemoveLayer(i int) bool {
	e.history.Flush()
	return e.canvas.RemoveLayer(i)
}

// MoveLayerUp swaps the layer at index i with the one below it.
func (e *Editor) MoveLayerUp(i int) bool {
	e.history.Flush()
	return e.canvas.MoveLayerUp(i)
}

// MoveLayerDown swaps the layer at index i with the one above it.
func (e *Editor) MoveLayerDown(i int) bool {
	e.history.Flush()
	return e.canvas.MoveLayerDown(i)
}

// ToggleLayerVisibility shows or hides the layer at index i.
func (e *Editor) ToggleLayerVisibility(i int) bool { return e.canvas.ToggleVisibility(i) }

// RenameLayer renames the layer at index i.
func (e *Editor) RenameLayer(i int, name string) bool { return e.canvas.RenameLayer(i, name) }

// SetActiveLayer selects the layer receiving the edits.
func (e *Editor) SetActiveLayer(i int) bool {
	e.history.Flush()
	return e.canvas.SetActiveLayer(i)
}

// Display renders the canvas for the screen, the line being drawn included.
func (e *Editor) Display() *image.NRGBA {
	img := e.canvas.Display()
	if !e.line {
		return img
	}

	overlay := image.NewNRGBA(img.Bounds())
	col := e.color(e.lineButton)
	for _, p := range raster.Line(e.lineStart, e.lineEnd) {
		if p.In(overlay.Rect) {
			overlay.SetNRGBA(p.X, p.Y, col)
		}
	}
	imop.InitOp().Draw(&imop.Bitmap{Img: img}, overlay, img, nil)

	return img
}

// Document snapshots the session into a persistable document.
func (e *Editor) Document() *codec.Document {
	return &codec.Document{
		Canvas:     e.canvas,
		Primary:    e.primary,
		Secondary:  e.secondary,
		Saved:      e.palette.Colors(),
		BrushSize:  e.brushSize,
		EraserSize: e.eraserSize,
	}
}

// Save writes the document to path, the format being chosen by the extension.
// On failure the document keeps its unsaved state.
func (e *Editor) Save(path string) error {
	e.history.Flush()

	written, err := codec.SaveFile(path, e.Document())
	if err != nil {
		e.logger.Error("save failed", zap.String("path", path), zap.Error(err))
		return err
	}
	e.canvas.MarkSaved()
	e.path = written
	e.logger.Info("document saved", zap.String("path", written))

	return nil
}

// QuickSave saves the document to the location it was last saved to.
func (e *Editor) QuickSave() error {
	if e.path == "" {
		return ErrNoSavePath
	}
	return e.Save(e.path)
}
