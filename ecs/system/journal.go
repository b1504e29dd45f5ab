package system

import (
	"context"
	"time"

	"github.com/milk9111/matchstrike/ecs"
	"github.com/milk9111/matchstrike/journal"
	"github.com/rs/zerolog"
)

const journalTimeout = 2 * time.Second

// EventSink receives the ignition events of each tick.
type EventSink interface {
	Record(ctx context.Context, entries []journal.Entry) error
}

// JournalSystem drains the world event queue into the configured sinks.
// A failing sink is logged and never stops the game.
type JournalSystem struct {
	sinks []EventSink
	log   zerolog.Logger
}

func NewJournalSystem(log zerolog.Logger, sinks ...EventSink) *JournalSystem {
	j := &JournalSystem{log: log.With().Str("component", "journal").Logger()}
	for _, s := range sinks {
		if s != nil {
			j.sinks = append(j.sinks, s)
		}
	}
	return j
}

func (j *JournalSystem) Update(w *ecs.World) {
	if j == nil || w == nil {
		return
	}
	events := w.Events().Drain()
	if len(events) == 0 || len(j.sinks) == 0 {
		return
	}

	entries := make([]journal.Entry, 0, len(events))
	for _, evt := range events {
		if entry, ok := toEntry(evt); ok {
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	for _, s := range j.sinks {
		if err := s.Record(ctx, entries); err != nil {
			j.log.Error().Err(err).Int("events", len(entries)).Msg("journal write failed")
		}
	}
}

func toEntry(evt ecs.Event) (journal.Entry, bool) {
	switch data := evt.Data.(type) {
	case ecs.MatchTransition:
		return journal.Entry{
			Tick: data.Tick,
			Kind: journal.KindMatchTransition,
			Name: data.Name,
			From: data.From,
			To:   data.To,
		}, true
	case ecs.WickChange:
		kind := journal.KindWickIgnited
		if evt.Type == ecs.EventWickReset {
			kind = journal.KindWickReset
		}
		return journal.Entry{Tick: data.Tick, Kind: kind, Name: data.Name, Heat: data.Heat}, true
	default:
		return journal.Entry{}, false
	}
}
