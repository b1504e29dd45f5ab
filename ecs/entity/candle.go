package entity

import (
	"fmt"

	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
	"github.com/milk9111/matchstrike/ignition"
	"github.com/milk9111/matchstrike/prefabs"
	"github.com/rs/zerolog"
)

// NewCandle builds a candle and its wick zone as a child entity. The zone
// binds to the candle through the parent chain.
func NewCandle(w *ecs.World, spec *prefabs.CandleSpec, log zerolog.Logger) (candle, zone ecs.Entity, err error) {
	if spec == nil {
		return 0, 0, fmt.Errorf("candle: nil spec")
	}
	name := nameOr(spec.Name, "candle")
	t := toTransform(spec.Transform)

	candle = ecs.CreateEntity(w)
	if err := ecs.Add(w, candle, component.LabelComponent.Kind(), &component.Label{Name: name}); err != nil {
		return 0, 0, fmt.Errorf("candle: add label: %w", err)
	}
	if err := ecs.Add(w, candle, component.TransformComponent.Kind(), t); err != nil {
		return 0, 0, fmt.Errorf("candle: add transform: %w", err)
	}
	if err := ecs.Add(w, candle, component.TintComponent.Kind(), &component.Tint{Color: spec.Color.Color}); err != nil {
		return 0, 0, fmt.Errorf("candle: add tint: %w", err)
	}
	if err := ecs.Add(w, candle, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index}); err != nil {
		return 0, 0, fmt.Errorf("candle: add render layer: %w", err)
	}

	flame := &component.Flame{
		Radius:  spec.Flame.Radius,
		OffsetX: spec.Flame.OffsetX,
		OffsetY: spec.Flame.OffsetY,
		Color:   spec.Flame.Color.Color,
	}
	if err := ecs.Add(w, candle, component.FlameComponent.Kind(), flame); err != nil {
		return 0, 0, fmt.Errorf("candle: add flame: %w", err)
	}

	wick := ignition.NewWick(name, ignition.WickConfig{
		SecondsToIgnite: spec.Wick.SecondsToIgnite,
		DebugLogs:       spec.Debug.Logs,
		LogHeatEveryAdd: spec.Debug.LogHeatEveryAdd,
	}, flame, log)
	wick.OnIgnite = wickHook(w, candle, ecs.EventWickIgnited)
	wick.OnReset = wickHook(w, candle, ecs.EventWickReset)
	if err := ecs.Add(w, candle, component.CandleComponent.Kind(), &component.Candle{Wick: wick, ZoneRadius: spec.Zone.Radius}); err != nil {
		return 0, 0, fmt.Errorf("candle: add candle: %w", err)
	}

	// The body is drawn only; it takes no part in overlaps.
	if spec.Body.Width > 0 && spec.Body.Height > 0 {
		if err := ecs.Add(w, candle, component.BodyShapeComponent.Kind(), &component.BodyShape{
			Width:   spec.Body.Width,
			Height:  spec.Body.Height,
			OffsetX: spec.Body.OffsetX,
			OffsetY: spec.Body.OffsetY,
		}); err != nil {
			return 0, 0, fmt.Errorf("candle: add body shape: %w", err)
		}
	}

	zoneSpec := spec.Zone
	zoneSpec.Name = nameOr(zoneSpec.Name, "wick_zone")
	zoneSpec.Name = name + "/" + zoneSpec.Name
	at := prefabs.TransformSpec{
		X:      t.X + spec.Zone.OffsetX*t.ScaleX,
		Y:      t.Y + spec.Zone.OffsetY*t.ScaleY,
		ScaleX: t.ScaleX,
		ScaleY: t.ScaleY,
	}
	zone, err = newZone(w, zoneSpec, at, spec.Debug.Logs)
	if err != nil {
		return 0, 0, err
	}
	if err := ecs.SetParent(w, zone, candle); err != nil {
		return 0, 0, fmt.Errorf("candle: parent zone: %w", err)
	}
	return candle, zone, nil
}

// NewZone builds a free standing wick zone. A non-zero candle binds it
// explicitly; otherwise it searches its parent chain when bound.
func NewZone(w *ecs.World, spec prefabs.ZoneSpec, at prefabs.TransformSpec, candle ecs.Entity, debugLogs bool) (ecs.Entity, error) {
	zone, err := newZone(w, spec, at, debugLogs)
	if err != nil {
		return 0, err
	}
	if candle != 0 {
		wz, _ := ecs.Get(w, zone, component.WickZoneComponent.Kind())
		wz.Candle = uint64(candle)
	}
	return zone, nil
}

func newZone(w *ecs.World, spec prefabs.ZoneSpec, at prefabs.TransformSpec, debugLogs bool) (ecs.Entity, error) {
	if spec.Radius <= 0 {
		return 0, fmt.Errorf("zone %q: radius must be positive", spec.Name)
	}
	zone := ecs.CreateEntity(w)
	if err := ecs.Add(w, zone, component.LabelComponent.Kind(), &component.Label{Name: nameOr(spec.Name, "wick_zone")}); err != nil {
		return 0, fmt.Errorf("zone: add label: %w", err)
	}
	if err := ecs.Add(w, zone, component.TransformComponent.Kind(), toTransform(at)); err != nil {
		return 0, fmt.Errorf("zone: add transform: %w", err)
	}
	if err := ecs.Add(w, zone, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius: spec.Radius,
		Sensor: true,
		Static: true,
	}); err != nil {
		return 0, fmt.Errorf("zone: add physics body: %w", err)
	}
	if err := ecs.Add(w, zone, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerWickZone,
		Mask:     component.LayerMatchHead,
	}); err != nil {
		return 0, fmt.Errorf("zone: add collision layer: %w", err)
	}
	if err := ecs.Add(w, zone, component.WickZoneComponent.Kind(), &component.WickZone{DebugLogs: debugLogs}); err != nil {
		return 0, fmt.Errorf("zone: add wick zone: %w", err)
	}
	return zone, nil
}

func wickHook(w *ecs.World, candle ecs.Entity, eventType string) func(*ignition.Wick) {
	return func(wick *ignition.Wick) {
		w.Events().Push(ecs.Event{
			Type: eventType,
			Data: ecs.WickChange{Entity: candle, Name: wick.Name, Heat: wick.Heat(), Tick: w.Tick()},
		})
	}
}
