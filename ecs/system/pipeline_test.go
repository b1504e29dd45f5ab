package system

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/ecs/component"
	"github.com/milk9111/matchstrike/ecs/entity"
	"github.com/milk9111/matchstrike/ignition"
	"github.com/milk9111/matchstrike/journal"
	"github.com/milk9111/matchstrike/prefabs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 0.1

type recordingSink struct {
	entries []journal.Entry
	err     error
}

func (r *recordingSink) Record(_ context.Context, entries []journal.Entry) error {
	r.entries = append(r.entries, entries...)
	return r.err
}

func (r *recordingSink) transitions() []string {
	var out []string
	for _, e := range r.entries {
		if e.Kind == journal.KindMatchTransition {
			out = append(out, e.From+"->"+e.To)
		}
	}
	return out
}

func (r *recordingSink) count(kind string) int {
	n := 0
	for _, e := range r.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

type fakeCursor struct{ visible bool }

func (c *fakeCursor) Visible() bool     { return c.visible }
func (c *fakeCursor) SetVisible(v bool) { c.visible = v }

func testMatchSpec() *prefabs.MatchSpec {
	return &prefabs.MatchSpec{
		Name: "match",
		Head: prefabs.HeadSpec{Radius: 0.1},
		Tuning: prefabs.MatchTuningSpec{
			MinStrikeSpeed:        2,
			StrikeProgressNeeded:  0.35,
			RequireInputForStrike: true,
			RequireInputToHeat:    true,
			BurnDurationSeconds:   6,
		},
	}
}

func testCandleSpec(name string, x float64) *prefabs.CandleSpec {
	return &prefabs.CandleSpec{
		Name:      name,
		Transform: prefabs.TransformSpec{X: x, Y: 1},
		Wick:      prefabs.WickSpec{SecondsToIgnite: 0.5},
		Zone:      prefabs.ZoneSpec{Radius: 1, OffsetY: -1},
	}
}

// bench is a striker spanning x in [-5, 5] and a candle whose zone is
// centred on (20, 0), seen through an identity camera.
type bench struct {
	w       *ecs.World
	p       *Pipeline
	input   *ScriptedInput
	sink    *recordingSink
	cursor  *fakeCursor
	match   ecs.Entity
	striker ecs.Entity
	candle  ecs.Entity
	zone    ecs.Entity
	logs    *bytes.Buffer
}

func newBench(t *testing.T, matchSpec *prefabs.MatchSpec) *bench {
	t.Helper()
	b := &bench{
		w:      ecs.NewWorld(),
		input:  &ScriptedInput{},
		sink:   &recordingSink{},
		cursor: &fakeCursor{visible: true},
		logs:   &bytes.Buffer{},
	}
	log := zerolog.New(b.logs)

	_, cam, err := entity.NewCamera(b.w, prefabs.CameraSpec{Zoom: 1}, 0, 0)
	require.NoError(t, err)

	b.striker, err = entity.NewStriker(b.w, &prefabs.StrikerSpec{
		Name:     "striker",
		Collider: prefabs.ColliderSpec{Width: 10, Height: 2},
	})
	require.NoError(t, err)

	b.candle, b.zone, err = entity.NewCandle(b.w, testCandleSpec("candle", 20), log)
	require.NoError(t, err)

	b.match, err = entity.NewMatch(b.w, matchSpec, cam, log)
	require.NoError(t, err)

	b.p = NewPipeline(PipelineOptions{
		Input:  b.input,
		Cursor: b.cursor,
		Sinks:  []EventSink{b.sink},
		Log:    log,
	})
	return b
}

func (b *bench) run(frames ...component.Input) {
	b.input.Frames = append(b.input.Frames, frames...)
	for !b.input.Done() {
		b.p.Tick(b.w, dt)
	}
}

func (b *bench) matchState(t *testing.T) *ignition.Match {
	t.Helper()
	mc, ok := ecs.Get(b.w, b.match, component.MatchControllerComponent.Kind())
	require.True(t, ok)
	return mc.Match
}

func (b *bench) wick(t *testing.T) *ignition.Wick {
	t.Helper()
	c, ok := ecs.Get(b.w, b.candle, component.CandleComponent.Kind())
	require.True(t, ok)
	return c.Wick
}

func at(x, y float64, held bool) component.Input {
	return component.Input{PointerX: x, PointerY: y, Held: held}
}

// strokes drags the pointer along the striker at 10 wu/s.
func strokes(n int) []component.Input {
	out := make([]component.Input, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, at(float64(i)-2, 0, true))
	}
	return out
}

func TestStrikeThenLightCandle(t *testing.T) {
	b := newBench(t, testMatchSpec())

	b.run(strokes(2)...)
	m := b.matchState(t)
	assert.Equal(t, ignition.Unlit, m.State(), "first tick only seeds the speed")
	assert.InDelta(t, 0.2, m.StrikeProgress(), 1e-9)

	b.run(strokes(3)[2])
	require.Equal(t, ignition.Lit, m.State())
	assert.Zero(t, m.StrikeProgress())

	flame, ok := ecs.Get(b.w, b.match, component.FlameComponent.Kind())
	require.True(t, ok)
	assert.True(t, flame.Visible)

	for i := 0; i < 3; i++ {
		b.run(at(20, 0, true))
	}
	assert.False(t, b.wick(t).Lit())
	assert.InDelta(t, 0.3, b.wick(t).Heat(), 1e-9)

	for i := 0; i < 4; i++ {
		b.run(at(20, 0, true))
	}
	assert.True(t, b.wick(t).Lit())

	candleFlame, ok := ecs.Get(b.w, b.candle, component.FlameComponent.Kind())
	require.True(t, ok)
	assert.True(t, candleFlame.Visible)

	assert.Equal(t, []string{"unlit->unlit", "unlit->lit"}, b.sink.transitions())
	assert.Equal(t, 1, b.sink.count(journal.KindWickIgnited))
}

func TestHeatNeedsHeldInput(t *testing.T) {
	b := newBench(t, testMatchSpec())
	b.run(strokes(3)...)
	require.True(t, b.matchState(t).IsLit())

	for i := 0; i < 10; i++ {
		b.run(at(20, 0, false))
	}
	assert.Zero(t, b.wick(t).Heat())
	assert.False(t, b.wick(t).Lit())
}

func TestOverlapEnterStayExit(t *testing.T) {
	b := newBench(t, testMatchSpec())

	overlaps := func() *component.Overlaps {
		ov, ok := ecs.Get(b.w, b.match, component.OverlapsComponent.Kind())
		require.True(t, ok)
		return ov
	}
	striker := uint64(b.striker)

	b.run(at(0, 0, false))
	assert.Equal(t, []uint64{striker}, overlaps().Entered)
	assert.Equal(t, []uint64{striker}, overlaps().Stayed)
	assert.Empty(t, overlaps().Exited)

	b.run(at(1, 0, false))
	assert.Empty(t, overlaps().Entered)
	assert.Equal(t, []uint64{striker}, overlaps().Stayed)

	b.run(at(0, 10, false))
	assert.Empty(t, overlaps().Stayed)
	assert.Equal(t, []uint64{striker}, overlaps().Exited)

	b.run(at(0, 10, false))
	assert.Empty(t, overlaps().Exited)
}

func TestRegionsAreResolvedOnce(t *testing.T) {
	b := newBench(t, testMatchSpec())
	b.run(at(0, 0, false))

	striker, ok := ecs.Get(b.w, b.striker, component.RegionComponent.Kind())
	require.True(t, ok)
	assert.True(t, striker.IsStrikeSurface())
	assert.Nil(t, striker.HeatZone())
	assert.Equal(t, "striker", striker.Name())

	zone, ok := ecs.Get(b.w, b.zone, component.RegionComponent.Kind())
	require.True(t, ok)
	assert.False(t, zone.IsStrikeSurface())
	require.NotNil(t, zone.HeatZone())
	assert.Same(t, b.wick(t), zone.HeatZone().Wick())

	assert.False(t, ecs.Has(b.w, b.match, component.RegionComponent.Kind()))
}

func TestSensorHeadIsRepaired(t *testing.T) {
	spec := testMatchSpec()
	spec.Head.Sensor = true
	b := newBench(t, spec)

	b.run(strokes(3)...)

	body, ok := ecs.Get(b.w, b.match, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	assert.False(t, body.Sensor)
	require.NotNil(t, body.Shape)
	assert.False(t, body.Shape.Sensor())
	assert.Contains(t, b.logs.String(), "head collider was a sensor")
	assert.True(t, b.matchState(t).IsLit(), "a repaired head still strikes")
}

func TestResetKeys(t *testing.T) {
	b := newBench(t, testMatchSpec())
	b.run(strokes(3)...)
	for i := 0; i < 8; i++ {
		b.run(at(20, 0, true))
	}
	require.True(t, b.matchState(t).IsLit())
	require.True(t, b.wick(t).Lit())

	reset := at(20, 0, false)
	reset.ResetCandlesPressed = true
	b.run(reset)
	assert.False(t, b.wick(t).Lit())
	assert.Zero(t, b.wick(t).Heat())
	assert.True(t, b.matchState(t).IsLit())
	assert.Equal(t, 1, b.sink.count(journal.KindWickReset))

	reset = at(0, 10, false)
	reset.ResetPressed = true
	b.run(reset)
	assert.Equal(t, ignition.Unlit, b.matchState(t).State())
	assert.Equal(t, []string{"unlit->unlit", "unlit->lit", "lit->unlit"}, b.sink.transitions())

	// The edge is consumed; the repeated sample does not reset again.
	b.p.Tick(b.w, dt)
	assert.Len(t, b.sink.transitions(), 3)
}

func TestBurnOutAndRestrike(t *testing.T) {
	spec := testMatchSpec()
	spec.Tuning.BurnDurationSeconds = 0.3
	b := newBench(t, spec)

	b.run(strokes(3)...)
	require.True(t, b.matchState(t).IsLit())
	for i := 0; i < 4; i++ {
		b.run(at(0, 10, false))
	}
	require.Equal(t, ignition.BurnedOut, b.matchState(t).State())

	b.run(strokes(3)...)
	assert.True(t, b.matchState(t).IsLit())
	assert.Equal(t, []string{"unlit->unlit", "unlit->lit", "lit->burned_out", "burned_out->lit"}, b.sink.transitions())
}

func TestShutdownRestoresCursor(t *testing.T) {
	b := newBench(t, testMatchSpec())
	b.run(at(0, 0, false))
	assert.False(t, b.cursor.visible)

	Shutdown(b.w)
	assert.True(t, b.cursor.visible)
	Shutdown(b.w)
	assert.True(t, b.cursor.visible)
}

func TestExplicitAndOrphanZones(t *testing.T) {
	b := newBench(t, testMatchSpec())

	bound, err := entity.NewZone(b.w, prefabs.ZoneSpec{Name: "brazier", Radius: 1}, prefabs.TransformSpec{X: -20}, b.candle, false)
	require.NoError(t, err)
	orphan, err := entity.NewZone(b.w, prefabs.ZoneSpec{Name: "orphan", Radius: 1}, prefabs.TransformSpec{X: 40}, 0, false)
	require.NoError(t, err)

	b.run(strokes(3)...)
	require.True(t, b.matchState(t).IsLit())

	wz, ok := ecs.Get(b.w, orphan, component.WickZoneComponent.Kind())
	require.True(t, ok)
	assert.False(t, wz.Zone.Bound())
	assert.Contains(t, b.logs.String(), "no candle found in parent chain")

	assert.NotPanics(t, func() {
		for i := 0; i < 3; i++ {
			b.run(at(40, 0, true))
		}
	})

	wz, ok = ecs.Get(b.w, bound, component.WickZoneComponent.Kind())
	require.True(t, ok)
	assert.Same(t, b.wick(t), wz.Zone.Wick())
	for i := 0; i < 3; i++ {
		b.run(at(-20, 0, true))
	}
	assert.InDelta(t, 0.3, b.wick(t).Heat(), 1e-9)
}

func TestJournalFailureDoesNotStopTheGame(t *testing.T) {
	b := newBench(t, testMatchSpec())
	b.sink.err = errors.New("disk full")

	assert.NotPanics(t, func() { b.run(strokes(3)...) })
	assert.True(t, b.matchState(t).IsLit())
	assert.Contains(t, b.logs.String(), "journal write failed")
}

func TestJournalStoreSink(t *testing.T) {
	store, err := journal.Open("", zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	w := ecs.NewWorld()
	_, _, err = entity.NewCamera(w, prefabs.CameraSpec{Zoom: 1}, 0, 0)
	require.NoError(t, err)
	_, err = entity.NewMatch(w, testMatchSpec(), nil, zerolog.Nop())
	require.NoError(t, err)

	p := NewPipeline(PipelineOptions{Sinks: []EventSink{store}, Log: zerolog.Nop()})
	p.Tick(w, dt)
	ResetMatches(w)
	p.Tick(w, dt)

	events, err := store.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(1), events[0].Tick)
	assert.Equal(t, "unlit", events[1].ToState)
}
