package modehandler

import (
	"github.com/bethropolis/doodle/internal/canvas"
	"github.com/bethropolis/doodle/internal/input"
	"github.com/bethropolis/doodle/internal/palette"
)

const sizeStep = 1.0

// executeAction handles actions in draw mode.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent) bool {
	if actionEvent.Action != input.ActionReset && mh.resetPending {
		mh.resetPending = false
		mh.statusBar.ResetTemporaryMessage()
	}

	c := mh.canvas
	switch actionEvent.Action {
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = ""
		mh.statusBar.SetMode(ModeCommand.String())
		mh.statusBar.SetCommandLine(":")

	case input.ActionQuit, input.ActionForceQuit:
		mh.Quit()
		return false

	case input.ActionExport:
		if err := mh.RunCommand("export", nil); err != nil {
			mh.statusBar.SetTemporaryMessage("%v", err)
		}

	case input.ActionUndo:
		if !c.Undo() {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		if !c.Redo() {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	case input.ActionReset:
		if !mh.resetPending {
			mh.resetPending = true
			mh.statusBar.SetTemporaryMessage("Clear the canvas? Press x again to confirm.")
			return true
		}
		mh.resetPending = false
		c.ResetCanvas()
		mh.statusBar.SetTemporaryMessage("Canvas cleared")

	case input.ActionToolPencil:
		c.SetTool(canvas.ToolPencil)
	case input.ActionToolEraser:
		c.SetTool(canvas.ToolEraser)
	case input.ActionShapeRect:
		mh.toggleShape(canvas.ShapeRect)
	case input.ActionShapeCircle:
		mh.toggleShape(canvas.ShapeCircle)
	case input.ActionShapeLine:
		mh.toggleShape(canvas.ShapeLine)

	case input.ActionSizeUp:
		c.SetSize(c.State().Size + sizeStep)
	case input.ActionSizeDown:
		c.SetSize(c.State().Size - sizeStep)

	case input.ActionPaletteColor:
		idx := int(actionEvent.Rune - '1')
		if idx < 0 || idx >= len(palette.Default) {
			return false
		}
		c.SetColor(palette.Default[idx])

	case input.ActionCycleBackground:
		c.SetBackgroundColor(palette.Next(palette.Backgrounds, c.State().Background))

	default:
		return false
	}
	return true
}

// toggleShape selects s, or returns to freehand if s is already active.
func (mh *ModeHandler) toggleShape(s canvas.Shape) {
	if mh.canvas.State().Shape == s {
		mh.canvas.SetShape(canvas.ShapeNone)
		return
	}
	mh.canvas.SetShape(s)
}
