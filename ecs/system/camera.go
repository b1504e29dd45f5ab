package system

import (
	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
)

// CameraSystem keeps the camera component in sync with its transform and
// the current viewport so pointer mapping and drawing agree.
type CameraSystem struct {
	camEntity ecs.Entity
	screenW   float64
	screenH   float64
}

func NewCameraSystem(screenW, screenH float64) *CameraSystem {
	return &CameraSystem{screenW: screenW, screenH: screenH}
}

// SetViewport records the logical screen size reported by the game layout.
func (cs *CameraSystem) SetViewport(w, h float64) {
	if cs == nil || w <= 0 || h <= 0 {
		return
	}
	cs.screenW = w
	cs.screenH = h
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	if !cs.camEntity.Valid() || !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	if t, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind()); ok {
		cam.PosX = t.X
		cam.PosY = t.Y
	}
	if cs.screenW > 0 && cs.screenH > 0 {
		cam.ScreenW = cs.screenW
		cam.ScreenH = cs.screenH
	}
	if cam.Zoom <= 0 {
		cam.Zoom = 1
	}
}
