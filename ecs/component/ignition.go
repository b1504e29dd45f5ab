package component

import "github.com/milk9111/matchstrike/ignition"

// MatchController holds the match state machine of a player-driven match.
type MatchController struct {
	Match *ignition.Match
	// Activated is set once the binding system has run Init and Enable.
	Activated bool
}

var MatchControllerComponent = NewComponent[MatchController]()

// Candle holds the wick heat accumulator of a candle.
type Candle struct {
	Wick *ignition.Wick
	// ZoneRadius is the wick zone radius used for the debug gizmo.
	ZoneRadius float64
}

var CandleComponent = NewComponent[Candle]()

// WickZone is a heat transfer region. Candle is an explicit ecs.Entity
// binding; zero means "search the parent chain".
type WickZone struct {
	Candle    uint64
	DebugLogs bool
	Zone      *ignition.HeatZone
}

var WickZoneComponent = NewComponent[WickZone]()
