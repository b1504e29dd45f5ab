package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/matchstrike/ecs/component"
)

// deviceInput samples mouse and keyboard. HUD buttons queue resets that are
// delivered with the next sample.
type deviceInput struct {
	pendingMatchReset  bool
	pendingCandleReset bool
}

func newDeviceInput() *deviceInput {
	return &deviceInput{}
}

func (d *deviceInput) QueueMatchReset()  { d.pendingMatchReset = true }
func (d *deviceInput) QueueCandleReset() { d.pendingCandleReset = true }

func (d *deviceInput) Sample() component.Input {
	x, y := ebiten.CursorPosition()
	in := component.Input{
		PointerX:            float64(x),
		PointerY:            float64(y),
		Held:                ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		ResetPressed:        inpututil.IsKeyJustPressed(ebiten.KeyR) || d.pendingMatchReset,
		ResetCandlesPressed: inpututil.IsKeyJustPressed(ebiten.KeyC) || d.pendingCandleReset,
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		in.Held = in.Held || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	d.pendingMatchReset = false
	d.pendingCandleReset = false
	return in
}

// ebitenCursor is the OS cursor.
type ebitenCursor struct{}

func (ebitenCursor) Visible() bool {
	return ebiten.CursorMode() == ebiten.CursorModeVisible
}

func (ebitenCursor) SetVisible(v bool) {
	if v {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeHidden)
}
