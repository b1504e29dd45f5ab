// Command strikesim runs a scene headless with a scripted pointer: strike the
// match on the first striker, then hold it in every candle's wick zone. It
// exits non-zero when no candle lights.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/milk9111/matchstrike/config"
	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
	"github.com/milk9111/matchstrike/ecs/entity"
	"github.com/milk9111/matchstrike/ecs/system"
	"github.com/milk9111/matchstrike/ignition"
	"github.com/milk9111/matchstrike/journal"
	"github.com/milk9111/matchstrike/logging"
	"github.com/milk9111/matchstrike/prefabs"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const tps = 60

// printSink logs every journal entry as it is recorded.
type printSink struct {
	log zerolog.Logger
}

func (p printSink) Record(_ context.Context, entries []journal.Entry) error {
	for _, e := range entries {
		evt := p.log.Info().Uint64("tick", e.Tick).Str("kind", e.Kind).Str("name", e.Name)
		if e.From != "" || e.To != "" {
			evt = evt.Str("from", e.From).Str("to", e.To)
		}
		if e.Kind != journal.KindMatchTransition {
			evt = evt.Float64("heat", e.Heat)
		}
		evt.Msg("event")
	}
	return nil
}

func main() {
	fs := config.Flags("strikesim")
	maxTicks := fs.Int("ticks", 0, "tick limit, 0 runs the script to the end")
	hold := fs.Float64("hold", 1.5, "seconds to hold the match in each wick zone")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	settings, err := config.Load("", fs)
	log := logging.New(logging.Options{Level: settings.LogLevel, Debug: settings.Debug, Console: true})
	if err != nil {
		log.Fatal().Err(err).Msg("load settings")
	}
	prefabs.SetDir(settings.PrefabDir)

	lit, err := run(settings, *maxTicks, *hold, log)
	if err != nil {
		log.Error().Err(err).Msg("simulation failed")
		os.Exit(1)
	}
	if lit == 0 {
		log.Error().Msg("no candle lit")
		os.Exit(1)
	}
	fmt.Printf("%d candle(s) lit\n", lit)
}

func run(settings config.Settings, maxTicks int, holdSeconds float64, log zerolog.Logger) (int, error) {
	sinks := []system.EventSink{printSink{log: log}}
	if settings.Journal.Enabled {
		store, err := journal.Open(settings.Journal.Path, log)
		if err != nil {
			return 0, err
		}
		defer store.Close()
		sinks = append(sinks, store)
	}

	w := ecs.NewWorld()
	screenW, screenH := float64(settings.Window.Width), float64(settings.Window.Height)
	scene, err := entity.BuildScene(w, settings.Scene, screenW, screenH, log)
	if err != nil {
		return 0, err
	}
	if len(scene.Strikers) == 0 {
		return 0, fmt.Errorf("scene %q has no striker", scene.Name)
	}

	cam, ok := ecs.Get(w, scene.Camera, component.CameraComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("scene %q has no camera", scene.Name)
	}
	cam.ScreenW, cam.ScreenH = screenW, screenH

	striker := scene.Strikers[0]
	st, _ := ecs.Get(w, striker, component.TransformComponent.Kind())
	sb, _ := ecs.Get(w, striker, component.PhysicsBodyComponent.Kind())
	if st == nil || sb == nil {
		return 0, fmt.Errorf("striker has no transform or body")
	}
	from, to := sweepBounds(sb.Width, st)

	input := strikeAndLight(cam, from, to, zoneTargets(w, scene), scriptOptions{
		Sweeps:    2,
		Step:      0.1,
		HoldTicks: int(holdSeconds * tps),
	})

	pipeline := system.NewPipeline(system.PipelineOptions{
		Input:   input,
		Sinks:   sinks,
		ScreenW: screenW,
		ScreenH: screenH,
		Log:     log,
	})
	defer system.Shutdown(w)

	for tick := 0; !input.Done() && (maxTicks == 0 || tick < maxTicks); tick++ {
		pipeline.Tick(w, 1.0/tps)
	}
	// One more tick drains events pushed by the last scripted frame.
	pipeline.Tick(w, 1.0/tps)

	lit := 0
	for name, e := range scene.Candles {
		c, ok := ecs.Get(w, e, component.CandleComponent.Kind())
		if !ok {
			continue
		}
		log.Info().Str("candle", name).Bool("lit", c.Wick.Lit()).Float64("heat", c.Wick.Heat()).Msg("result")
		if c.Wick.Lit() {
			lit++
		}
	}
	return lit, nil
}

// zoneTargets lists wick zone centers sorted by name so runs are repeatable.
func zoneTargets(w *ecs.World, scene *entity.Scene) []ignition.Point {
	type target struct {
		name string
		at   ignition.Point
	}
	var targets []target
	ecs.ForEach2(w, component.WickZoneComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.WickZone, t *component.Transform) {
		name := ""
		if l, ok := ecs.Get(w, e, component.LabelComponent.Kind()); ok {
			name = l.Name
		}
		targets = append(targets, target{name: name, at: zoneCenter(t)})
	})
	sort.Slice(targets, func(i, j int) bool { return targets[i].name < targets[j].name })

	out := make([]ignition.Point, 0, len(targets))
	for _, t := range targets {
		out = append(out, t.at)
	}
	return out
}
