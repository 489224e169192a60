package preview

import (
	"gioui.org/io/key"
	"github.com/esimov/pigment"
	"go.uber.org/zap"
)

// sizeStep is the brush size increment of the size shortcuts.
const sizeStep = 1

var toolKeys = map[string]pigment.Tool{
	"B": pigment.Brush,
	"E": pigment.Eraser,
	"G": pigment.PaintBucket,
	"I": pigment.ColorPicker,
	"L": pigment.Line,
}

// handleKey applies the keyboard shortcut carried by e.
// It reports whether the window should be closed.
func (g *Gui) handleKey(e key.Event) bool {
	if e.Modifiers.Contain(key.ModShortcut) {
		switch e.Name {
		case "Z":
			if e.Modifiers.Contain(key.ModShift) {
				g.redo()
			} else {
				g.undo()
			}
		case "Y":
			g.redo()
		case "S":
			g.save()
		case "N":
			name := g.editor.AddLayer()
			g.logger.Debug("layer added", zap.String("name", name))
		}
		return false
	}

	switch e.Name {
	case key.NameEscape:
		if _, _, ok := g.editor.LinePreview(); ok {
			g.editor.CancelLine()
			return false
		}
		return true
	case "[":
		g.resize(-sizeStep)
	case "]":
		g.resize(sizeStep)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		g.editor.SetBrush(int(e.Name[0] - '1'))
	default:
		if t, ok := toolKeys[e.Name]; ok {
			g.editor.SetTool(t)
			g.logger.Debug("tool selected", zap.Stringer("tool", t))
		}
	}
	return false
}

func (g *Gui) undo() {
	if !g.editor.Undo() {
		g.logger.Debug("nothing to undo")
	}
}

func (g *Gui) redo() {
	if !g.editor.Redo() {
		g.logger.Debug("nothing to redo")
	}
}

// resize changes the size of the active tool.
func (g *Gui) resize(delta int) {
	if g.editor.Tool() == pigment.Eraser {
		g.editor.SetEraserSize(g.editor.EraserSize() + delta)
		return
	}
	g.editor.SetBrushSize(g.editor.BrushSize() + delta)
}
