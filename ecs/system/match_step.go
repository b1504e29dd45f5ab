package system

import (
	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
	"github.com/milk9111/matchstrike/ignition"
)

// MatchStepSystem advances every activated match and mirrors its position
// into the entity transform.
type MatchStepSystem struct{}

func NewMatchStepSystem() *MatchStepSystem {
	return &MatchStepSystem{}
}

func (s *MatchStepSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.MatchControllerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, mc *component.MatchController, in *component.Input) {
		if !mc.Activated || mc.Match == nil {
			return
		}
		mc.Match.Step(dt, ignition.TickInput{
			Pointer:      ignition.Point{X: in.PointerX, Y: in.PointerY},
			Held:         in.Held,
			ResetPressed: in.ResetPressed,
		})

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			pos := mc.Match.Position()
			t.X = pos.X
			t.Y = pos.Y
			t.Z = pos.Z
		}
	})
}
