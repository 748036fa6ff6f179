package input

// Action represents an operation requested from the keyboard.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit
	ActionExport

	// --- History ---
	ActionUndo
	ActionRedo
	ActionReset // needs confirmation

	// --- Tools ---
	ActionToolPencil
	ActionToolEraser
	ActionShapeRect
	ActionShapeCircle
	ActionShapeLine
	ActionSizeUp
	ActionSizeDown
	ActionPaletteColor // Rune carries '1'-'9'
	ActionCycleBackground

	// --- Command line ---
	ActionEnterCommandMode
	ActionInsertRune
	ActionEnter
	ActionDeleteCharBackward
)

// ActionEvent represents a decoded key event. Rune is set for every
// printable key so command mode can echo it whatever it is bound to.
type ActionEvent struct {
	Action Action
	Rune   rune
}
