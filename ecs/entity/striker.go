package entity

import (
	"fmt"

	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
	"github.com/milk9111/matchstrike/prefabs"
)

// NewStriker builds a static strike surface.
func NewStriker(w *ecs.World, spec *prefabs.StrikerSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("striker: nil spec")
	}
	if spec.Collider.Width <= 0 || spec.Collider.Height <= 0 {
		return 0, fmt.Errorf("striker %q: collider size must be positive", spec.Name)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LabelComponent.Kind(), &component.Label{Name: nameOr(spec.Name, "striker")}); err != nil {
		return 0, fmt.Errorf("striker: add label: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), toTransform(spec.Transform)); err != nil {
		return 0, fmt.Errorf("striker: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.StrikeSurfaceComponent.Kind(), &component.StrikeSurface{}); err != nil {
		return 0, fmt.Errorf("striker: add strike surface: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:   spec.Collider.Width,
		Height:  spec.Collider.Height,
		OffsetX: spec.Collider.OffsetX,
		OffsetY: spec.Collider.OffsetY,
		Sensor:  true,
		Static:  true,
	}); err != nil {
		return 0, fmt.Errorf("striker: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerStriker,
		Mask:     component.LayerMatchHead,
	}); err != nil {
		return 0, fmt.Errorf("striker: add collision layer: %w", err)
	}
	if err := ecs.Add(w, e, component.TintComponent.Kind(), &component.Tint{Color: spec.Color.Color}); err != nil {
		return 0, fmt.Errorf("striker: add tint: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index}); err != nil {
		return 0, fmt.Errorf("striker: add render layer: %w", err)
	}
	return e, nil
}
