package entity

import (
	"github.com/milk9111/matchstrike/ecs/component"
	"github.com/milk9111/matchstrike/prefabs"
)

// placed applies a scene placement on top of a prefab's own transform. The
// placement position always wins; its scale only when set.
func placed(base, at prefabs.TransformSpec) prefabs.TransformSpec {
	out := base
	out.X = at.X
	out.Y = at.Y
	if at.ScaleX != 0 {
		out.ScaleX = at.ScaleX
	}
	if at.ScaleY != 0 {
		out.ScaleY = at.ScaleY
	}
	if at.Rotation != 0 {
		out.Rotation = at.Rotation
	}
	return out
}

func toTransform(spec prefabs.TransformSpec) *component.Transform {
	t := &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	}
	if t.ScaleX == 0 {
		t.ScaleX = 1
	}
	if t.ScaleY == 0 {
		t.ScaleY = 1
	}
	return t
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
