package game

import (
	"github.com/golangdaddy/mode7racer/pkg/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Key bindings per action. Actions in edgeTriggered fire once per press.
var (
	bindings = map[input.Action][]ebiten.Key{
		input.Accelerate:   {ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW},
		input.Brake:        {ebiten.KeyS, ebiten.KeyArrowDown},
		input.SteerLeft:    {ebiten.KeyA, ebiten.KeyArrowLeft},
		input.SteerRight:   {ebiten.KeyD, ebiten.KeyArrowRight},
		input.Boost:        {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
		input.Confirm:      {ebiten.KeyEnter},
		input.DebugRestart: {ebiten.KeyR},
	}
	edgeTriggered = map[input.Action]bool{
		input.Confirm:      true,
		input.DebugRestart: true,
	}
)

// sampleKeyboard reads the held actions of this tick.
func sampleKeyboard() input.State {
	var s input.State
	for action, keys := range bindings {
		for _, k := range keys {
			pressed := ebiten.IsKeyPressed(k)
			if edgeTriggered[action] {
				pressed = inpututil.IsKeyJustPressed(k)
			}
			if pressed {
				s.Set(action, true)
				break
			}
		}
	}
	return s
}
