package system

import (
	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
)

// InputSource samples the device once per tick.
type InputSource interface {
	Sample() component.Input
}

type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.source == nil {
		return
	}

	sample := i.source.Sample()
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = sample
	})
}

// ScriptedInput replays a fixed list of samples, one per tick. Once the
// script runs out it repeats the last sample with the edge triggers cleared.
type ScriptedInput struct {
	Frames []component.Input
	next   int
}

func (s *ScriptedInput) Sample() component.Input {
	if s == nil || len(s.Frames) == 0 {
		return component.Input{}
	}
	if s.next < len(s.Frames) {
		in := s.Frames[s.next]
		s.next++
		return in
	}
	last := s.Frames[len(s.Frames)-1]
	last.ResetPressed = false
	last.ResetCandlesPressed = false
	return last
}

// Done reports whether every scripted frame has been consumed.
func (s *ScriptedInput) Done() bool {
	return s == nil || s.next >= len(s.Frames)
}
