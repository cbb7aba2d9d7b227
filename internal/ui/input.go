package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
	isKeyJustPressed     = inpututil.IsKeyJustPressed
	setTPS               = ebiten.SetTPS
)

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(
	cursor func() (int, int),
	mouse func(ebiten.MouseButton) bool,
	justPressed func(ebiten.Key) bool,
) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldJust := isKeyJustPressed
	cursorPosition = cursor
	isMouseButtonPressed = mouse
	isKeyJustPressed = justPressed
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isKeyJustPressed = oldJust
	}
}
