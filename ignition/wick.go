package ignition

import "github.com/rs/zerolog"

// WickConfig holds the tunables of a candle wick.
type WickConfig struct {
	SecondsToIgnite float64
	DebugLogs       bool
	LogHeatEveryAdd bool
}

// DefaultWickConfig mirrors the candle prefab defaults.
func DefaultWickConfig() WickConfig {
	return WickConfig{SecondsToIgnite: 1.0, DebugLogs: true, LogHeatEveryAdd: true}
}

// Wick accumulates heat until it reaches its ignition threshold, then stays
// lit until ResetCandle.
type Wick struct {
	Name  string
	Flame Visual

	OnIgnite func(w *Wick)
	OnReset  func(w *Wick)

	cfg  WickConfig
	log  zerolog.Logger
	heat float64
	lit  bool
}

// NewWick creates an unlit wick. flame may be nil.
func NewWick(name string, cfg WickConfig, flame Visual, log zerolog.Logger) *Wick {
	return &Wick{
		Name:  name,
		Flame: flame,
		cfg:   cfg,
		log:   log.With().Str("component", "wick").Str("name", name).Logger(),
	}
}

// Config returns the wick's configuration.
func (w *Wick) Config() WickConfig {
	if w == nil {
		return WickConfig{}
	}
	return w.cfg
}

// Heat returns the accumulated heat in seconds of exposure.
func (w *Wick) Heat() float64 {
	if w == nil {
		return 0
	}
	return w.heat
}

// Lit reports whether the wick has ignited.
func (w *Wick) Lit() bool {
	return w != nil && w.lit
}

// AddHeat adds dt seconds of exposure. Ignored once lit and for negative dt.
func (w *Wick) AddHeat(dt float64) {
	if w == nil || w.lit || dt < 0 {
		return
	}

	w.heat += dt
	if w.cfg.DebugLogs && w.cfg.LogHeatEveryAdd {
		w.log.Debug().Msgf("+%.3fs heat -> total=%.3f/%.3f (lit=%v)", dt, w.heat, w.cfg.SecondsToIgnite, w.lit)
	}

	if w.heat >= w.cfg.SecondsToIgnite {
		w.Ignite()
	}
}

// Ignite lights the wick. Calling it on a lit wick does nothing.
func (w *Wick) Ignite() {
	if w == nil || w.lit {
		return
	}
	w.lit = true
	show(w.Flame)
	if w.cfg.DebugLogs {
		w.log.Debug().Msgf("candle lit (needed %.3fs, had %.3fs)", w.cfg.SecondsToIgnite, w.heat)
	}
	if w.OnIgnite != nil {
		w.OnIgnite(w)
	}
}

// ResetCandle clears heat and extinguishes the wick.
func (w *Wick) ResetCandle() {
	if w == nil {
		return
	}
	w.heat = 0
	w.lit = false
	hide(w.Flame)
	if w.cfg.DebugLogs {
		w.log.Debug().Msg("reset candle -> heat=0, lit=false, flame hidden")
	}
	if w.OnReset != nil {
		w.OnReset(w)
	}
}
