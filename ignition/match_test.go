package ignition

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sweep drives a match along +X at a constant speed.
type sweep struct {
	m *Match
	x float64
}

func newSweep(m *Match) *sweep {
	s := &sweep{m: m}
	// seed the previous position so the first measured tick has a real speed
	m.Step(0.1, TickInput{Pointer: Point{X: s.x}})
	return s
}

func (s *sweep) tick(dt, speed float64, held bool, regions ...Region) {
	s.x += speed * dt
	s.m.Step(dt, TickInput{Pointer: Point{X: s.x}, Held: held})
	for _, r := range regions {
		s.m.OverlapStay(r, dt)
	}
}

func newTestMatch(cfg MatchConfig) (*Match, *fakeVisual) {
	flame := &fakeVisual{}
	m := NewMatch("match", cfg, identityPointer{}, flame, zerolog.Nop())
	m.Init()
	return m, flame
}

var striker = fakeRegion{name: "striker", striker: true}

func TestMatchIgnitesAfterFourStrikeTicks(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.MinStrikeSpeed = 2.0
	cfg.StrikeProgressNeeded = 0.35
	m, flame := newTestMatch(cfg)
	s := newSweep(m)

	for i := 1; i <= 3; i++ {
		s.tick(0.1, 5.0, true, striker)
		assert.InDelta(t, 5.0, m.LastSpeed(), 1e-9)
		assert.InDelta(t, 0.1*float64(i), m.StrikeProgress(), 1e-9)
		require.Equal(t, Unlit, m.State(), "tick %d", i)
	}

	s.tick(0.1, 5.0, true, striker)
	assert.Equal(t, Lit, m.State())
	assert.True(t, m.IsLit())
	assert.True(t, flame.visible)
	assert.Zero(t, m.BurnTimer())
	assert.Zero(t, m.StrikeProgress())
}

func TestMatchStrikeNeedsHeldInput(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.RequireInputForStrike = true
	m, _ := newTestMatch(cfg)
	s := newSweep(m)

	for i := 0; i < 10; i++ {
		s.tick(0.1, 10, false, striker)
		assert.Zero(t, m.StrikeProgress())
	}
	assert.Equal(t, Unlit, m.State())
}

func TestMatchStrikeGates(t *testing.T) {
	tests := []struct {
		name         string
		requireInput bool
		held         bool
		speed        float64
		region       Region
		wantProgress bool
	}{
		{name: "too_slow", requireInput: true, held: true, speed: 1.9, region: striker},
		{name: "exactly_min_speed", requireInput: true, held: true, speed: 2.0, region: striker, wantProgress: true},
		{name: "not_held", requireInput: true, held: false, speed: 8, region: striker},
		{name: "gate_disabled", requireInput: false, held: false, speed: 8, region: striker, wantProgress: true},
		{name: "not_a_striker", requireInput: false, held: true, speed: 8, region: fakeRegion{name: "table"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMatchConfig()
			cfg.RequireInputForStrike = tc.requireInput
			cfg.StrikeProgressNeeded = 100
			m, _ := newTestMatch(cfg)
			s := newSweep(m)

			s.tick(0.5, tc.speed, tc.held, tc.region)
			if tc.wantProgress {
				assert.InDelta(t, tc.speed*0.5*DefaultStrikeSpeedFactor, m.StrikeProgress(), 1e-9)
			} else {
				assert.Zero(t, m.StrikeProgress())
			}
		})
	}
}

func TestMatchStrikeSpeedFactorIsConfigurable(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.StrikeSpeedFactor = 0.5
	cfg.StrikeProgressNeeded = 100
	m, _ := newTestMatch(cfg)
	s := newSweep(m)

	s.tick(0.1, 4, true, striker)
	assert.InDelta(t, 4*0.1*0.5, m.StrikeProgress(), 1e-9)
}

func litMatch(t *testing.T, cfg MatchConfig) (*Match, *fakeVisual, *sweep) {
	t.Helper()
	cfg.StrikeProgressNeeded = 0.01
	cfg.RequireInputForStrike = false
	m, flame := newTestMatch(cfg)
	s := newSweep(m)
	s.tick(0.1, 5, false, striker)
	require.Equal(t, Lit, m.State())
	return m, flame, s
}

func TestMatchBurnsOutAtDuration(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.BurnDurationSeconds = 6
	m, flame, s := litMatch(t, cfg)

	for i := 1; i <= 5; i++ {
		s.tick(1, 0, false)
		require.Equal(t, Lit, m.State(), "tick %d", i)
	}
	s.tick(1, 0, false)
	assert.Equal(t, BurnedOut, m.State())
	assert.False(t, flame.visible)
}

func TestMatchNeverBurnsOutWhenDisabled(t *testing.T) {
	for _, d := range []float64{0, -1} {
		cfg := DefaultMatchConfig()
		cfg.BurnDurationSeconds = d
		m, _, s := litMatch(t, cfg)
		for i := 0; i < 1000; i++ {
			s.tick(1, 0, false)
		}
		assert.Equal(t, Lit, m.State())
		assert.Zero(t, m.BurnTimer())
	}
}

func TestMatchRestrikeAfterBurnout(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.BurnDurationSeconds = 1
	m, flame, s := litMatch(t, cfg)

	s.tick(1, 0, false)
	require.Equal(t, BurnedOut, m.State())

	s.tick(0.1, 5, false, striker)
	assert.Equal(t, Lit, m.State())
	assert.True(t, flame.visible)
	assert.Zero(t, m.BurnTimer())
}

func TestMatchLitIgnoresStrikers(t *testing.T) {
	cfg := DefaultMatchConfig()
	m, _, s := litMatch(t, cfg)
	s.tick(0.1, 50, true, striker)
	assert.Zero(t, m.StrikeProgress())
	assert.Equal(t, Lit, m.State())
}

func TestMatchHeatsZoneOnlyWhileLit(t *testing.T) {
	tests := []struct {
		name         string
		requireInput bool
		held         bool
		lit          bool
		wantHeat     float64
	}{
		{name: "lit_held", requireInput: true, held: true, lit: true, wantHeat: 0.5},
		{name: "lit_not_held", requireInput: true, held: false, lit: true},
		{name: "lit_gate_disabled", requireInput: false, held: false, lit: true, wantHeat: 0.5},
		{name: "unlit", requireInput: false, held: true, lit: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMatchConfig()
			cfg.RequireInputToHeat = tc.requireInput
			cfg.BurnDurationSeconds = 0

			var m *Match
			var s *sweep
			if tc.lit {
				m, _, s = litMatch(t, cfg)
			} else {
				m, _ = newTestMatch(cfg)
				s = newSweep(m)
			}

			w, _ := newTestWick(10)
			zone := NewHeatZone("zone", w, nil, false, zerolog.Nop())
			for i := 0; i < 5; i++ {
				s.tick(0.1, 0, tc.held, fakeRegion{name: "wick", zone: zone})
			}
			assert.InDelta(t, tc.wantHeat, w.Heat(), 1e-9)
		})
	}
}

func TestMatchStrikeAndHeatSameTick(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.StrikeProgressNeeded = 0.01
	cfg.RequireInputToHeat = false
	m, _ := newTestMatch(cfg)
	s := newSweep(m)

	w, _ := newTestWick(10)
	zone := NewHeatZone("zone", w, nil, false, zerolog.Nop())
	s.tick(0.1, 5, true, striker, fakeRegion{name: "wick", zone: zone})

	assert.Equal(t, Lit, m.State())
	assert.InDelta(t, 0.1, w.Heat(), 1e-9)
}

func TestMatchLightsCandle(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.BurnDurationSeconds = 0
	m, _, s := litMatch(t, cfg)

	w, candleFlame := newTestWick(1)
	zone := NewHeatZone("zone", w, nil, false, zerolog.Nop())
	for i := 0; i < 9; i++ {
		s.tick(0.1, 0, true, fakeRegion{name: "wick", zone: zone})
	}
	assert.False(t, w.Lit())
	s.tick(0.1, 0, true, fakeRegion{name: "wick", zone: zone})
	s.tick(0.1, 0, true, fakeRegion{name: "wick", zone: zone})
	assert.True(t, w.Lit())
	assert.True(t, candleFlame.visible)
	assert.True(t, m.IsLit())
}

func TestMatchResetUnlit(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) (*Match, *fakeVisual, *sweep)
	}{
		{
			name: "from_unlit_with_progress",
			setup: func(t *testing.T) (*Match, *fakeVisual, *sweep) {
				cfg := DefaultMatchConfig()
				cfg.StrikeProgressNeeded = 100
				m, f := newTestMatch(cfg)
				s := newSweep(m)
				s.tick(0.1, 5, true, striker)
				require.NotZero(t, m.StrikeProgress())
				return m, f, s
			},
		},
		{
			name: "from_lit",
			setup: func(t *testing.T) (*Match, *fakeVisual, *sweep) {
				m, f, s := litMatch(t, DefaultMatchConfig())
				s.tick(1, 0, false)
				require.NotZero(t, m.BurnTimer())
				return m, f, s
			},
		},
		{
			name: "from_burned_out",
			setup: func(t *testing.T) (*Match, *fakeVisual, *sweep) {
				cfg := DefaultMatchConfig()
				cfg.BurnDurationSeconds = 0.5
				m, f, s := litMatch(t, cfg)
				s.tick(1, 0, false)
				require.Equal(t, BurnedOut, m.State())
				return m, f, s
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name+"/method", func(t *testing.T) {
			m, flame, _ := tc.setup(t)
			m.ResetUnlit()
			assertUnlit(t, m, flame)
		})
		t.Run(tc.name+"/key_edge", func(t *testing.T) {
			m, flame, s := tc.setup(t)
			m.Step(0.1, TickInput{Pointer: Point{X: s.x}, ResetPressed: true})
			assertUnlit(t, m, flame)
		})
	}
}

func assertUnlit(t *testing.T, m *Match, flame *fakeVisual) {
	t.Helper()
	assert.Equal(t, Unlit, m.State())
	assert.Zero(t, m.StrikeProgress())
	assert.Zero(t, m.BurnTimer())
	assert.False(t, flame.visible)
}

func TestMatchTransitionsAreLegal(t *testing.T) {
	legal := map[[2]State]bool{
		{Unlit, Lit}:       true,
		{BurnedOut, Lit}:   true,
		{Lit, BurnedOut}:   true,
		{Unlit, Unlit}:     true,
		{Lit, Unlit}:       true,
		{BurnedOut, Unlit}: true,
	}

	cfg := DefaultMatchConfig()
	cfg.BurnDurationSeconds = 0.7
	cfg.StrikeProgressNeeded = 0.2
	m, _ := newTestMatch(cfg)

	var seen [][2]State
	m.OnTransition = func(_ *Match, from, to State) { seen = append(seen, [2]State{from, to}) }

	s := newSweep(m)
	for i := 0; i < 200; i++ {
		speed := float64(i%7) * 1.5
		held := i%3 != 0
		regions := []Region{}
		if i%5 < 3 {
			regions = append(regions, striker)
		}
		s.tick(0.1, speed, held, regions...)
		if i%37 == 0 {
			m.Step(0.1, TickInput{Pointer: Point{X: s.x}, ResetPressed: true})
		}
	}

	require.NotEmpty(t, seen)
	for _, tr := range seen {
		assert.True(t, legal[tr], "illegal transition %s -> %s", tr[0], tr[1])
	}
}

func TestMatchFallsBackToOriginWithoutPointer(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultMatchConfig()
	cfg.FollowPlaneOffset = 3
	m := NewMatch("match", cfg, nil, nil, zerolog.New(&buf))

	m.Init()
	m.Step(0.1, TickInput{Pointer: Point{X: 400, Y: 300}})
	m.Step(0.1, TickInput{Pointer: Point{X: 500, Y: 300}})

	assert.Equal(t, Point{Z: 3}, m.Position())
	assert.Zero(t, m.LastSpeed())
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("no camera found")))
}

func TestMatchProjectsOntoFollowPlane(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.FollowPlaneOffset = -2
	m, _ := newTestMatch(cfg)
	m.Step(0.1, TickInput{Pointer: Point{X: 1, Y: 2, Z: 99}})
	assert.Equal(t, Point{X: 1, Y: 2, Z: -2}, m.Position())
}

func TestMatchZeroDeltaSpeedIsFinite(t *testing.T) {
	m, _ := newTestMatch(DefaultMatchConfig())
	m.Step(0, TickInput{})
	m.Step(0, TickInput{Pointer: Point{X: 1}})
	assert.InDelta(t, 1/minDelta, m.LastSpeed(), 1e-6)
}

func TestMatchEnableDisableCursor(t *testing.T) {
	c := &fakeCursor{visible: true}
	m, flame, _ := litMatch(t, DefaultMatchConfig())

	m.Enable(c)
	assert.False(t, c.visible)
	assertUnlit(t, m, flame)

	m.Disable()
	assert.True(t, c.visible)
	m.Disable()
	assert.True(t, c.visible)
}

func TestMatchLoggingDoesNotAlterState(t *testing.T) {
	run := func(log zerolog.Logger, debug bool) (State, float64, float64, float64) {
		cfg := DefaultMatchConfig()
		cfg.DebugLogs = debug
		cfg.LogSpeedEveryTick = debug
		cfg.BurnDurationSeconds = 2
		m := NewMatch("match", cfg, identityPointer{}, &fakeVisual{}, log)
		wcfg := DefaultWickConfig()
		wcfg.DebugLogs = debug
		w := NewWick("candle", wcfg, &fakeVisual{}, log)
		zone := NewHeatZone("zone", w, nil, debug, log)
		s := newSweep(m)
		for i := 0; i < 60; i++ {
			regions := []Region{striker}
			if i > 10 {
				regions = []Region{fakeRegion{name: "wick", zone: zone}}
			}
			s.tick(0.05, float64(i%9), i%4 != 0, regions...)
		}
		return m.State(), m.StrikeProgress(), m.BurnTimer(), w.Heat()
	}

	var buf bytes.Buffer
	loud := zerolog.New(&buf).Level(zerolog.DebugLevel)
	s1, p1, b1, h1 := run(zerolog.Nop(), false)
	s2, p2, b2, h2 := run(loud, true)

	assert.NotZero(t, buf.Len())
	assert.Equal(t, s1, s2)
	assert.Equal(t, p1, p2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, h1, h2)
}
