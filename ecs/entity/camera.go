package entity

import (
	"fmt"

	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
	"github.com/milk9111/matchstrike/prefabs"
)

const defaultZoom = 100.0

func NewCamera(w *ecs.World, spec prefabs.CameraSpec, screenW, screenH float64) (ecs.Entity, *component.Camera, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, nil, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.LabelComponent.Kind(), &component.Label{Name: "camera"}); err != nil {
		return 0, nil, fmt.Errorf("camera: add label: %w", err)
	}
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, nil, fmt.Errorf("camera: add transform: %w", err)
	}

	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = defaultZoom
	}
	cam := &component.Camera{PosX: spec.X, PosY: spec.Y, Zoom: zoom, ScreenW: screenW, ScreenH: screenH}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), cam); err != nil {
		return 0, nil, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, cam, nil
}
