package system

import (
	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
)

// ContactSystem feeds the overlaps found this tick to each match, and to
// the wick zones involved for diagnostics.
type ContactSystem struct{}

func NewContactSystem() *ContactSystem {
	return &ContactSystem{}
}

func (c *ContactSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.MatchControllerComponent.Kind(), component.OverlapsComponent.Kind(), func(e ecs.Entity, mc *component.MatchController, ov *component.Overlaps) {
		m := mc.Match
		if m == nil || !mc.Activated {
			return
		}

		for _, id := range ov.Entered {
			region, ok := regionOf(w, id)
			if !ok {
				continue
			}
			m.OverlapEnter(region)
			region.Zone.OverlapEnter(m.Name)
		}
		for _, id := range ov.Stayed {
			region, ok := regionOf(w, id)
			if !ok {
				continue
			}
			m.OverlapStay(region, dt)
		}
		for _, id := range ov.Exited {
			region, ok := regionOf(w, id)
			if !ok {
				continue
			}
			m.OverlapExit(region)
			region.Zone.OverlapExit(m.Name)
		}
	})
}

func regionOf(w *ecs.World, id uint64) (*component.Region, bool) {
	return ecs.Get(w, ecs.Entity(id), component.RegionComponent.Kind())
}
