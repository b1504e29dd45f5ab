package entity

import (
	"fmt"

	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
	"github.com/milk9111/matchstrike/ignition"
	"github.com/milk9111/matchstrike/prefabs"
	"github.com/rs/zerolog"
)

// Scene lists the entities built from a scene prefab.
type Scene struct {
	Name     string
	Camera   ecs.Entity
	Match    ecs.Entity
	Candles  map[string]ecs.Entity
	Strikers []ecs.Entity
	Zones    []ecs.Entity
}

// BuildScene loads the scene prefab and every prefab it places. The camera
// doubles as the match's pointer provider.
func BuildScene(w *ecs.World, filename string, screenW, screenH float64, log zerolog.Logger) (*Scene, error) {
	spec, err := prefabs.LoadSceneSpec(filename)
	if err != nil {
		return nil, err
	}

	scene := &Scene{Name: spec.Name, Candles: make(map[string]ecs.Entity)}

	var cam *component.Camera
	scene.Camera, cam, err = NewCamera(w, spec.Camera, screenW, screenH)
	if err != nil {
		return nil, err
	}

	for _, p := range spec.Strikers {
		s, err := prefabs.LoadSpec[prefabs.StrikerSpec](nameOr(p.Prefab, "striker.yaml"))
		if err != nil {
			return nil, err
		}
		s.Name = nameOr(p.Name, s.Name)
		s.Transform = placed(s.Transform, p.Transform)
		e, err := NewStriker(w, &s)
		if err != nil {
			return nil, err
		}
		scene.Strikers = append(scene.Strikers, e)
	}

	for _, p := range spec.Candles {
		c, err := prefabs.LoadSpec[prefabs.CandleSpec](nameOr(p.Prefab, "candle.yaml"))
		if err != nil {
			return nil, err
		}
		c.Name = nameOr(p.Name, c.Name)
		if _, dup := scene.Candles[c.Name]; dup {
			return nil, fmt.Errorf("scene %s: duplicate candle %q", filename, c.Name)
		}
		c.Transform = placed(c.Transform, p.Transform)
		candle, zone, err := NewCandle(w, &c, log)
		if err != nil {
			return nil, err
		}
		scene.Candles[c.Name] = candle
		scene.Zones = append(scene.Zones, zone)
	}

	for _, z := range spec.Zones {
		var target ecs.Entity
		if z.Zone.Candle != "" {
			var ok bool
			if target, ok = scene.Candles[z.Zone.Candle]; !ok {
				log.Warn().Str("zone", z.Zone.Name).Str("candle", z.Zone.Candle).Msg("zone names an unknown candle")
			}
		}
		zone, err := NewZone(w, z.Zone, z.Transform, target, true)
		if err != nil {
			return nil, err
		}
		scene.Zones = append(scene.Zones, zone)
	}

	m, err := prefabs.LoadSpec[prefabs.MatchSpec](nameOr(spec.Match.Prefab, "match.yaml"))
	if err != nil {
		return nil, err
	}
	m.Name = nameOr(spec.Match.Name, m.Name)
	var pointer ignition.PointerProvider
	if cam != nil {
		pointer = cam
	}
	scene.Match, err = NewMatch(w, &m, pointer, log)
	if err != nil {
		return nil, err
	}

	return scene, nil
}
