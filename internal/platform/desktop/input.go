package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/vitron-bros/internal/core"
)

// Keyboard bindings for the game page. Keys are read as held, not as
// repeats, so releasing a key stops the player on the next tick.
var heldBindings = []struct {
	action core.Action
	keys   []ebiten.Key
}{
	{core.ActionLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{core.ActionRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
	{core.ActionJump, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeySpace}},
}

var pauseKeys = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP}

// keyboardFrame builds the scene input for one tick. pressed reports
// whether a key is down; justPressed whether it went down this tick.
func keyboardFrame(pressed, justPressed func(ebiten.Key) bool) core.InputFrame {
	frame := core.NewInputFrame()
	for _, b := range heldBindings {
		for _, k := range b.keys {
			if pressed(k) {
				frame.Hold(b.action)
				break
			}
		}
	}
	for _, k := range pauseKeys {
		if justPressed(k) {
			frame.Set(core.ActionPause)
		}
	}
	return frame
}

// command is a menu or modal input.
type command int

const (
	cmdNone command = iota
	cmdUp
	cmdDown
	cmdLeft
	cmdRight
	cmdSelect
	cmdBack
)

var commandKeys = []struct {
	cmd  command
	keys []ebiten.Key
}{
	{cmdUp, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}},
	{cmdDown, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
	{cmdLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{cmdRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
	{cmdSelect, []ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace}},
	{cmdBack, []ebiten.Key{ebiten.KeyEscape, ebiten.KeyBackspace}},
}

// readCommand returns the first command whose key went down this tick.
func readCommand(justPressed func(ebiten.Key) bool) command {
	for _, c := range commandKeys {
		for _, k := range c.keys {
			if justPressed(k) {
				return c.cmd
			}
		}
	}
	return cmdNone
}

// touchButton is an on-screen control in logical screen pixels.
type touchButton struct {
	Action core.Action
	Label  string
	X, Y   int
	W, H   int
}

func (b touchButton) contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

const (
	buttonSize   = 72
	buttonMargin = 16
)

// touchButtons lays out the control surface for a w×h screen: left and
// right at the bottom-left, jump at the bottom-right, pause at the
// top-right.
func touchButtons(w, h int) []touchButton {
	y := h - buttonSize - buttonMargin
	return []touchButton{
		{Action: core.ActionLeft, Label: "<", X: buttonMargin, Y: y, W: buttonSize, H: buttonSize},
		{Action: core.ActionRight, Label: ">", X: 2*buttonMargin + buttonSize, Y: y, W: buttonSize, H: buttonSize},
		{Action: core.ActionJump, Label: "^", X: w - buttonSize - buttonMargin, Y: y, W: buttonSize, H: buttonSize},
		{Action: core.ActionPause, Label: "II", X: w - 48 - buttonMargin, Y: buttonMargin, W: 48, H: 40},
	}
}

// hitButton finds the button under (x, y).
func hitButton(buttons []touchButton, x, y int) (core.Action, bool) {
	for _, b := range buttons {
		if b.contains(x, y) {
			return b.Action, true
		}
	}
	return core.ActionNone, false
}

// mousePointer is the pointer id used for the mouse; touch ids are >= 0.
const mousePointer = -1

// pointerEvent is a press or release of a mouse button or finger.
type pointerEvent struct {
	ID      int
	X, Y    int
	Pressed bool
}

// pollPointers collects this tick's pointer presses and releases. Releases
// carry no position; the caller remembers what each pointer pressed.
func pollPointers(touchIDs []ebiten.TouchID) ([]pointerEvent, []ebiten.TouchID) {
	var events []pointerEvent
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		events = append(events, pointerEvent{ID: mousePointer, X: x, Y: y, Pressed: true})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		events = append(events, pointerEvent{ID: mousePointer})
	}

	touchIDs = inpututil.AppendJustPressedTouchIDs(touchIDs[:0])
	for _, id := range touchIDs {
		x, y := ebiten.TouchPosition(id)
		events = append(events, pointerEvent{ID: int(id), X: x, Y: y, Pressed: true})
	}
	touchIDs = inpututil.AppendJustReleasedTouchIDs(touchIDs[:0])
	for _, id := range touchIDs {
		events = append(events, pointerEvent{ID: int(id)})
	}
	return events, touchIDs
}
