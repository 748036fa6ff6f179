package modehandler

import (
	"unicode/utf8"

	"github.com/bethropolis/doodle/internal/input"
	"github.com/bethropolis/doodle/internal/logger"
)

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionDeleteCharBackward:
		if mh.cmdBuffer == "" {
			mh.exitCommandMode()
			logger.DebugTagf("command", "Exiting command mode via backspace")
			return true
		}
		_, size := utf8.DecodeLastRuneInString(mh.cmdBuffer)
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-size]

	case input.ActionEnter:
		cmd := mh.cmdBuffer
		mh.exitCommandMode()
		mh.cmdBuffer = cmd
		mh.executeCommand()
		return true

	case input.ActionQuit:
		mh.exitCommandMode()
		return true

	case input.ActionForceQuit:
		mh.Quit()
		return false

	default:
		if actionEvent.Rune == 0 {
			return false
		}
		mh.cmdBuffer += string(actionEvent.Rune)
	}

	mh.statusBar.SetCommandLine(":" + mh.cmdBuffer)
	return true
}

func (mh *ModeHandler) exitCommandMode() {
	mh.currentMode = ModeDraw
	mh.cmdBuffer = ""
	mh.statusBar.SetCommandLine("")
	mh.statusBar.SetMode(ModeDraw.String())
}
