package ignition

import "github.com/rs/zerolog"

// HeatZone forwards heat from a lit match to the wick it is bound to.
// The binding is fixed when the zone is created.
type HeatZone struct {
	Name string

	wick      *Wick
	debugLogs bool
	log       zerolog.Logger
}

// NewHeatZone binds a zone to explicit, or, when explicit is nil, to the
// first wick returned by resolve (an ancestor lookup). A zone that ends up
// unbound logs a warning and ignores AddHeat for its whole lifetime.
func NewHeatZone(name string, explicit *Wick, resolve func() *Wick, debugLogs bool, log zerolog.Logger) *HeatZone {
	z := &HeatZone{
		Name:      name,
		debugLogs: debugLogs,
		log:       log.With().Str("component", "wick_zone").Str("name", name).Logger(),
	}

	z.wick = explicit
	if z.wick == nil && resolve != nil {
		z.wick = resolve()
	}
	if z.wick == nil {
		z.log.Warn().Msg("no candle found in parent chain")
	}
	return z
}

// Wick returns the bound wick, or nil.
func (z *HeatZone) Wick() *Wick {
	if z == nil {
		return nil
	}
	return z.wick
}

// Bound reports whether the zone has a wick.
func (z *HeatZone) Bound() bool {
	return z != nil && z.wick != nil
}

// AddHeat forwards dt to the bound wick.
func (z *HeatZone) AddHeat(dt float64) {
	if z == nil || z.wick == nil {
		return
	}
	z.wick.AddHeat(dt)
}

// OverlapEnter is diagnostic only.
func (z *HeatZone) OverlapEnter(other string) {
	if z == nil || !z.debugLogs {
		return
	}
	z.log.Debug().Msgf("ENTER by '%s'", other)
}

// OverlapExit is diagnostic only.
func (z *HeatZone) OverlapExit(other string) {
	if z == nil || !z.debugLogs {
		return
	}
	z.log.Debug().Msgf("EXIT by '%s'", other)
}
