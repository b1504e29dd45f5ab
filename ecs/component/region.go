package component

import "github.com/milk9111/matchstrike/ignition"

// Region is the resolved view of an overlappable entity, built once by the
// binding system. It implements ignition.Region.
type Region struct {
	Label   string
	Striker bool
	Zone    *ignition.HeatZone
}

var RegionComponent = NewComponent[Region]()

func (r *Region) Name() string {
	if r == nil {
		return ""
	}
	return r.Label
}

func (r *Region) IsStrikeSurface() bool {
	return r != nil && r.Striker
}

func (r *Region) HeatZone() *ignition.HeatZone {
	if r == nil {
		return nil
	}
	return r.Zone
}

// Overlaps lists, for one tick, the entities whose regions the owner
// started, kept or stopped touching. Values are ecs.Entity handles.
type Overlaps struct {
	Entered []uint64
	Stayed  []uint64
	Exited  []uint64
}

var OverlapsComponent = NewComponent[Overlaps]()
