package ignition

import (
	"math"

	"github.com/rs/zerolog"
)

// State is the match lifecycle state.
type State int

const (
	Unlit State = iota
	Lit
	BurnedOut
)

func (s State) String() string {
	switch s {
	case Unlit:
		return "unlit"
	case Lit:
		return "lit"
	case BurnedOut:
		return "burned_out"
	default:
		return "unknown"
	}
}

const (
	// DefaultStrikeSpeedFactor converts speed*dt on a striker into strike progress.
	DefaultStrikeSpeedFactor = 0.2
	// DefaultHeatPerSecond is the wick heat delivered per second of lit overlap.
	DefaultHeatPerSecond = 1.0

	// minDelta keeps the speed estimate finite on zero-length ticks.
	minDelta = 0.0001
)

// MatchConfig is fixed for the lifetime of a Match.
type MatchConfig struct {
	MinStrikeSpeed        float64
	StrikeProgressNeeded  float64
	RequireInputForStrike bool
	RequireInputToHeat    bool
	// BurnDurationSeconds <= 0 disables burnout.
	BurnDurationSeconds float64
	FollowPlaneOffset   float64

	StrikeSpeedFactor float64
	HeatPerSecond     float64

	DebugLogs         bool
	LogSpeedEveryTick bool
}

// DefaultMatchConfig mirrors the match prefab defaults.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		MinStrikeSpeed:        2.0,
		StrikeProgressNeeded:  0.35,
		RequireInputForStrike: true,
		RequireInputToHeat:    true,
		BurnDurationSeconds:   6,
		StrikeSpeedFactor:     DefaultStrikeSpeedFactor,
		HeatPerSecond:         DefaultHeatPerSecond,
		DebugLogs:             true,
	}
}

// TickInput is the input sampled for one tick.
type TickInput struct {
	// Pointer is the raw screen/device position of the pointer.
	Pointer      Point
	Held         bool
	ResetPressed bool
}

// Match follows the pointer, ignites when struck fast enough across a
// striking surface, heats any wick zone it overlaps while lit, and burns out
// after BurnDurationSeconds.
type Match struct {
	Name  string
	Flame Visual

	// OnTransition is called after every state change, including a manual
	// reset from Unlit to Unlit.
	OnTransition func(m *Match, from, to State)

	cfg     MatchConfig
	pointer PointerProvider
	log     zerolog.Logger

	state          State
	strikeProgress float64
	burnTimer      float64
	lastSpeed      float64
	position       Point
	prevPosition   Point
	hasPrev        bool
	held           bool

	warnedNoPointer bool
	cursor          *CursorGuard
}

// NewMatch creates an unlit match. pointer and flame may be nil.
func NewMatch(name string, cfg MatchConfig, pointer PointerProvider, flame Visual, log zerolog.Logger) *Match {
	if cfg.StrikeSpeedFactor == 0 {
		cfg.StrikeSpeedFactor = DefaultStrikeSpeedFactor
	}
	if cfg.HeatPerSecond == 0 {
		cfg.HeatPerSecond = DefaultHeatPerSecond
	}
	if isNil(pointer) {
		pointer = nil
	}
	return &Match{
		Name:    name,
		Flame:   flame,
		cfg:     cfg,
		pointer: pointer,
		log:     log.With().Str("component", "match").Str("name", name).Logger(),
	}
}

func (m *Match) debugf(format string, args ...any) {
	if !m.cfg.DebugLogs {
		return
	}
	m.log.Debug().Msgf(format, args...)
}

// Config returns the match configuration.
func (m *Match) Config() MatchConfig { return m.cfg }

// State returns the current state.
func (m *Match) State() State { return m.state }

// IsLit reports whether the match is burning.
func (m *Match) IsLit() bool { return m.state == Lit }

// StrikeProgress returns the accumulated strike progress.
func (m *Match) StrikeProgress() float64 { return m.strikeProgress }

// BurnTimer returns the seconds spent lit since the last ignition.
func (m *Match) BurnTimer() float64 { return m.burnTimer }

// LastSpeed returns the speed computed on the last Step, in world units/sec.
func (m *Match) LastSpeed() float64 { return m.lastSpeed }

// Position returns the head position computed on the last Step.
func (m *Match) Position() Point { return m.position }

// Held reports whether the trigger input was held on the last Step.
func (m *Match) Held() bool { return m.held }

// Init runs once when the match is created in a scene.
func (m *Match) Init() {
	if m.pointer == nil {
		m.warnNoPointer()
	}
	hide(m.Flame)
}

// Enable hides the cursor and puts the match back to Unlit. Any previous
// guard is released first.
func (m *Match) Enable(cursor Cursor) {
	m.cursor.Release()
	m.cursor = AcquireCursor(cursor)
	m.resetUnlit()
	m.debugf("enabled, state=%s", m.state)
}

// Disable restores the cursor visibility captured by Enable.
func (m *Match) Disable() {
	m.cursor.Release()
	m.cursor = nil
	m.debugf("disabled")
}

// ResetUnlit returns the match to Unlit from any state.
func (m *Match) ResetUnlit() {
	m.resetUnlit()
}

func (m *Match) resetUnlit() {
	from := m.state
	m.state = Unlit
	m.strikeProgress = 0
	m.burnTimer = 0
	hide(m.Flame)
	m.transitioned(from, Unlit)
}

func (m *Match) warnNoPointer() {
	if m.warnedNoPointer {
		return
	}
	m.warnedNoPointer = true
	m.log.Warn().Msg("no camera found, match stays at the world origin")
}

// Step advances the match by dt seconds: follow the pointer, update speed,
// run the burnout timer and honour a reset edge.
func (m *Match) Step(dt float64, in TickInput) {
	if dt < 0 {
		dt = 0
	}
	m.held = in.Held

	world := Point{Z: m.cfg.FollowPlaneOffset}
	if m.pointer != nil {
		world = m.pointer.WorldPosition(in.Pointer, m.cfg.FollowPlaneOffset)
	} else {
		m.warnNoPointer()
	}
	world.Z = m.cfg.FollowPlaneOffset
	m.position = world

	if !m.hasPrev {
		m.prevPosition = m.position
		m.hasPrev = true
	}
	m.lastSpeed = m.position.Sub(m.prevPosition).Len() / math.Max(dt, minDelta)
	m.prevPosition = m.position

	if m.cfg.DebugLogs && m.cfg.LogSpeedEveryTick {
		m.log.Debug().Msgf("speed=%.2f wu/s", m.lastSpeed)
	}

	if m.state == Lit && m.cfg.BurnDurationSeconds > 0 {
		m.burnTimer += dt
		if m.burnTimer >= m.cfg.BurnDurationSeconds {
			m.state = BurnedOut
			hide(m.Flame)
			m.debugf("match burned out")
			m.transitioned(Lit, BurnedOut)
		}
	}

	if in.ResetPressed {
		m.resetUnlit()
		m.debugf("manual reset to unlit")
	}
}

// OverlapEnter is diagnostic only.
func (m *Match) OverlapEnter(r Region) {
	if isNil(r) {
		return
	}
	m.debugf("ENTER -> %s (state=%s)", r.Name(), m.state)
}

// OverlapExit is diagnostic only.
func (m *Match) OverlapExit(r Region) {
	if isNil(r) {
		return
	}
	m.debugf("EXIT -> %s (state=%s)", r.Name(), m.state)
}

// OverlapStay handles one tick of the head touching r: striking while
// Unlit or BurnedOut, and heating a wick zone while Lit.
func (m *Match) OverlapStay(r Region, dt float64) {
	if isNil(r) || dt < 0 {
		return
	}

	if (m.state == Unlit || m.state == BurnedOut) && r.IsStrikeSurface() {
		m.strike(r, dt)
	}

	zone := r.HeatZone()
	if zone == nil {
		return
	}
	m.debugf("over wick '%s' (state=%s, held=%v)", r.Name(), m.state, m.held)
	if m.state == Lit && (!m.cfg.RequireInputToHeat || m.held) {
		heat := dt * m.cfg.HeatPerSecond
		zone.AddHeat(heat)
		m.debugf("heating wick +%.3fs", heat)
	}
}

func (m *Match) strike(r Region, dt float64) {
	if m.cfg.RequireInputForStrike && !m.held {
		m.debugf("on striker but input not held")
		return
	}

	m.debugf("on striker '%s' | speed=%.2f, need>=%.2f", r.Name(), m.lastSpeed, m.cfg.MinStrikeSpeed)
	if m.lastSpeed < m.cfg.MinStrikeSpeed {
		m.debugf("on striker but too slow")
		return
	}

	m.strikeProgress += m.lastSpeed * dt * m.cfg.StrikeSpeedFactor
	m.debugf("striking... progress=%.3f/%.3f", m.strikeProgress, m.cfg.StrikeProgressNeeded)
	if m.strikeProgress >= m.cfg.StrikeProgressNeeded {
		m.ignite()
	}
}

func (m *Match) ignite() {
	from := m.state
	m.state = Lit
	m.burnTimer = 0
	m.strikeProgress = 0
	show(m.Flame)
	m.debugf("match lit")
	m.transitioned(from, Lit)
}

func (m *Match) transitioned(from, to State) {
	if m.OnTransition != nil {
		m.OnTransition(m, from, to)
	}
}
