package entity

import (
	"fmt"

	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
	"github.com/milk9111/matchstrike/ignition"
	"github.com/milk9111/matchstrike/prefabs"
	"github.com/rs/zerolog"
)

// MatchConfig converts the prefab tuning into the state machine config.
func MatchConfig(spec *prefabs.MatchSpec) ignition.MatchConfig {
	t := spec.Tuning
	return ignition.MatchConfig{
		MinStrikeSpeed:        t.MinStrikeSpeed,
		StrikeProgressNeeded:  t.StrikeProgressNeeded,
		RequireInputForStrike: t.RequireInputForStrike,
		RequireInputToHeat:    t.RequireInputToHeat,
		BurnDurationSeconds:   t.BurnDurationSeconds,
		FollowPlaneOffset:     t.FollowPlaneOffset,
		StrikeSpeedFactor:     t.StrikeSpeedFactor,
		HeatPerSecond:         t.HeatPerSecond,
		DebugLogs:             spec.Debug.Logs,
		LogSpeedEveryTick:     spec.Debug.LogSpeedEveryTick,
	}
}

// NewMatch builds a player-driven match. pointer may be nil, in which case
// the match sits at the origin.
func NewMatch(w *ecs.World, spec *prefabs.MatchSpec, pointer ignition.PointerProvider, log zerolog.Logger) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("match: nil spec")
	}
	name := nameOr(spec.Name, "match")

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LabelComponent.Kind(), &component.Label{Name: name}); err != nil {
		return 0, fmt.Errorf("match: add label: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), toTransform(spec.Transform)); err != nil {
		return 0, fmt.Errorf("match: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("match: add input: %w", err)
	}

	flame := &component.Flame{
		Radius:  spec.Flame.Radius,
		OffsetX: spec.Flame.OffsetX,
		OffsetY: spec.Flame.OffsetY,
		Color:   spec.Flame.Color.Color,
	}
	if err := ecs.Add(w, e, component.FlameComponent.Kind(), flame); err != nil {
		return 0, fmt.Errorf("match: add flame: %w", err)
	}

	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius: spec.Head.Radius,
		Sensor: spec.Head.Sensor,
	}); err != nil {
		return 0, fmt.Errorf("match: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerMatchHead,
		Mask:     component.LayerStriker | component.LayerWickZone,
	}); err != nil {
		return 0, fmt.Errorf("match: add collision layer: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index}); err != nil {
		return 0, fmt.Errorf("match: add render layer: %w", err)
	}

	m := ignition.NewMatch(name, MatchConfig(spec), pointer, flame, log)
	m.OnTransition = func(m *ignition.Match, from, to ignition.State) {
		w.Events().Push(ecs.Event{
			Type: ecs.EventMatchTransition,
			Data: ecs.MatchTransition{Entity: e, Name: m.Name, From: from.String(), To: to.String(), Tick: w.Tick()},
		})
	}
	if err := ecs.Add(w, e, component.MatchControllerComponent.Kind(), &component.MatchController{Match: m}); err != nil {
		return 0, fmt.Errorf("match: add controller: %w", err)
	}
	return e, nil
}
