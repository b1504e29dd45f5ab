package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	KindMatchTransition = "match_transition"
	KindWickIgnited     = "wick_ignited"
	KindWickReset       = "wick_reset"
)

// IgnitionEvent is one journal row: a match state transition or a wick
// lighting or resetting.
type IgnitionEvent struct {
	ID        uint      `gorm:"primarykey;autoIncrement;"`
	SessionID string    `gorm:"size:36;index:idx_ignition_events_session"`
	Time      time.Time `gorm:"index"`
	Tick      uint64
	Kind      string `gorm:"size:32"`
	Name      string `gorm:"size:64"`
	FromState string `gorm:"size:16"`
	ToState   string `gorm:"size:16"`
	Heat      float64
}

func (e *IgnitionEvent) TableName() string {
	return "ignition_events"
}

// Entry is what callers hand to Record; the store stamps session and time.
type Entry struct {
	Tick uint64
	Kind string
	Name string
	From string
	To   string
	Heat float64
}

var ErrClosed = errors.New("journal: store closed")

// Store persists ignition events for one play session.
type Store struct {
	db        *gorm.DB
	sessionID string
	log       zerolog.Logger
	now       func() time.Time
}

// Open connects to the sqlite file at path and migrates the schema. An
// empty path opens a private in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", dsn, err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("journal: set pragma: %w", err)
		}
	}

	if err := db.AutoMigrate(&IgnitionEvent{}); err != nil {
		return nil, fmt.Errorf("journal: migrate: %w", err)
	}

	s := &Store{
		db:        db,
		sessionID: uuid.NewString(),
		log:       log.With().Str("component", "journal").Logger(),
		now:       time.Now,
	}
	s.log.Info().Str("path", path).Str("session", s.sessionID).Msg("journal opened")
	return s, nil
}

// SessionID identifies the rows written by this store.
func (s *Store) SessionID() string {
	if s == nil {
		return ""
	}
	return s.sessionID
}

// Record writes entries in one batch.
func (s *Store) Record(ctx context.Context, entries []Entry) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	if len(entries) == 0 {
		return nil
	}

	now := s.now()
	rows := make([]IgnitionEvent, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, IgnitionEvent{
			SessionID: s.sessionID,
			Time:      now,
			Tick:      e.Tick,
			Kind:      e.Kind,
			Name:      e.Name,
			FromState: e.From,
			ToState:   e.To,
			Heat:      e.Heat,
		})
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("journal: record %d events: %w", len(rows), err)
	}
	return nil
}

// Events returns this session's rows in insertion order.
func (s *Store) Events(ctx context.Context) ([]IgnitionEvent, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	var out []IgnitionEvent
	err := s.db.WithContext(ctx).
		Where("session_id = ?", s.sessionID).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("journal: list events: %w", err)
	}
	return out, nil
}

// Ignitions counts match ignitions per session, the headline playtest number.
func (s *Store) Ignitions(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrClosed
	}
	var n int64
	err := s.db.WithContext(ctx).Model(&IgnitionEvent{}).
		Where("session_id = ? AND kind = ? AND to_state = ?", s.sessionID, KindMatchTransition, "lit").
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("journal: count ignitions: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return fmt.Errorf("journal: close: %w", err)
	}
	return sqlDB.Close()
}
