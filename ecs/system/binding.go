package system

import (
	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
	"github.com/milk9111/matchstrike/ignition"
	"github.com/rs/zerolog"
)

// BindingSystem performs the one-time wiring of freshly built entities:
// wick zones bind to their candle, overlappable entities get a resolved
// Region, and matches are initialised and enabled.
type BindingSystem struct {
	cursor ignition.Cursor
	log    zerolog.Logger
}

func NewBindingSystem(cursor ignition.Cursor, log zerolog.Logger) *BindingSystem {
	return &BindingSystem{cursor: cursor, log: log}
}

func (b *BindingSystem) Update(w *ecs.World) {
	if b == nil || w == nil {
		return
	}
	b.bindZones(w)
	b.resolveRegions(w)
	b.activateMatches(w)
}

func (b *BindingSystem) bindZones(w *ecs.World) {
	ecs.ForEach(w, component.WickZoneComponent.Kind(), func(e ecs.Entity, wz *component.WickZone) {
		if wz.Zone != nil {
			return
		}

		var explicit *ignition.Wick
		if wz.Candle != 0 {
			target := ecs.Entity(wz.Candle)
			if c, ok := ecs.Get(w, target, component.CandleComponent.Kind()); ok {
				explicit = c.Wick
			} else {
				b.log.Warn().Str("zone", labelOf(w, e)).Stringer("candle", target).Msg("explicit candle missing, searching parents")
			}
		}

		resolve := func() *ignition.Wick {
			_, c, ok := ecs.FindInParents(w, e, component.CandleComponent.Kind())
			if !ok {
				return nil
			}
			return c.Wick
		}
		wz.Zone = ignition.NewHeatZone(labelOf(w, e), explicit, resolve, wz.DebugLogs, b.log)
	})
}

func (b *BindingSystem) resolveRegions(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, _ *component.PhysicsBody) {
		if ecs.Has(w, e, component.MatchControllerComponent.Kind()) || ecs.Has(w, e, component.RegionComponent.Kind()) {
			return
		}

		region := &component.Region{
			Label:   labelOf(w, e),
			Striker: ecs.Has(w, e, component.StrikeSurfaceComponent.Kind()),
		}
		if _, wz, ok := ecs.FindInHierarchy(w, e, component.WickZoneComponent.Kind()); ok {
			region.Zone = wz.Zone
		}
		if err := ecs.Add(w, e, component.RegionComponent.Kind(), region); err != nil {
			b.log.Error().Err(err).Str("entity", e.String()).Msg("add region")
		}
	})
}

func (b *BindingSystem) activateMatches(w *ecs.World) {
	ecs.ForEach(w, component.MatchControllerComponent.Kind(), func(e ecs.Entity, mc *component.MatchController) {
		if mc.Activated || mc.Match == nil {
			return
		}

		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Sensor {
			b.log.Warn().Str("match", mc.Match.Name).Msg("head collider was a sensor, switching it to solid")
			body.Sensor = false
			if body.Shape != nil {
				body.Shape.SetSensor(false)
			}
		}

		mc.Match.Init()
		mc.Match.Enable(b.cursor)
		mc.Activated = true
	})
}

func labelOf(w *ecs.World, e ecs.Entity) string {
	if l, ok := ecs.Get(w, e, component.LabelComponent.Kind()); ok && l.Name != "" {
		return l.Name
	}
	return e.String()
}
