package system

import (
	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
)

// CandleResetSystem puts every candle out when the reset-candles trigger
// was pressed this tick.
type CandleResetSystem struct{}

func NewCandleResetSystem() *CandleResetSystem {
	return &CandleResetSystem{}
}

func (c *CandleResetSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pressed := false
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		pressed = pressed || in.ResetCandlesPressed
	})
	if pressed {
		ResetCandles(w)
	}
}

// ResetCandles resets every wick in the world and returns how many there
// were.
func ResetCandles(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.CandleComponent.Kind(), func(_ ecs.Entity, c *component.Candle) {
		if c.Wick == nil {
			return
		}
		c.Wick.ResetCandle()
		n++
	})
	return n
}

// ResetMatches puts every match back to unlit.
func ResetMatches(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.MatchControllerComponent.Kind(), func(_ ecs.Entity, mc *component.MatchController) {
		if mc.Match == nil {
			return
		}
		mc.Match.ResetUnlit()
		n++
	})
	return n
}

// Shutdown disables every match so the cursor is restored. It is safe to
// call more than once.
func Shutdown(w *ecs.World) {
	ecs.ForEach(w, component.MatchControllerComponent.Kind(), func(_ ecs.Entity, mc *component.MatchController) {
		if mc.Match == nil || !mc.Activated {
			return
		}
		mc.Match.Disable()
		mc.Activated = false
	})
}
