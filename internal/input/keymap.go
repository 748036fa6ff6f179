// Package input translates tcell key and mouse events into doodle actions
// and canvas pointer input.
package input

import (
	"github.com/gdamore/tcell/v2"
)

type Keymap map[tcell.Key]Action        // Special keys (Enter, Esc, Backspace)
type RuneKeymap map[rune]Action         // Plain rune bindings
type ModKeymap map[tcell.ModMask]Keymap // Keys combined with modifiers

// InputProcessor translates tcell key events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyEnter] = ActionEnter
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward

	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlS] = ActionExport
	ctrlMap[tcell.KeyCtrlQ] = ActionForceQuit
	ctrlMap[tcell.KeyCtrlC] = ActionForceQuit
	ctrlMap[tcell.KeyCtrlZ] = ActionUndo
	ctrlMap[tcell.KeyCtrlY] = ActionRedo
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	p.runeKeymap[':'] = ActionEnterCommandMode
	p.runeKeymap['p'] = ActionToolPencil
	p.runeKeymap['e'] = ActionToolEraser
	p.runeKeymap['r'] = ActionShapeRect
	p.runeKeymap['c'] = ActionShapeCircle
	p.runeKeymap['l'] = ActionShapeLine
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['U'] = ActionRedo
	p.runeKeymap[']'] = ActionSizeUp
	p.runeKeymap['['] = ActionSizeDown
	p.runeKeymap['b'] = ActionCycleBackground
	p.runeKeymap['x'] = ActionReset
	for r := '1'; r <= '9'; r++ {
		p.runeKeymap[r] = ActionPaletteColor
	}
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
// The mode handler decides what an action means in the current mode.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return ActionEvent{Action: action}
		}
	}
	// Some terminals report Ctrl+letter without the modifier bit.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ && key != tcell.KeyBackspace {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return ActionEvent{Action: action}
		}
	}

	if key == tcell.KeyRune {
		// Shifted runes arrive with ModShift on some terminals.
		if mod != tcell.ModNone && mod != tcell.ModShift {
			return ActionEvent{Action: ActionUnknown}
		}
		if action, ok := p.runeKeymap[runeVal]; ok {
			return ActionEvent{Action: action, Rune: runeVal}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: runeVal}
	}

	if action, ok := p.keymap[key]; ok {
		return ActionEvent{Action: action}
	}
	return ActionEvent{Action: ActionUnknown}
}
