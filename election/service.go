// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/danielhkuo/votio/auth"
	"github.com/danielhkuo/votio/db"
	"github.com/danielhkuo/votio/metrics"
	"github.com/danielhkuo/votio/models"
	"github.com/danielhkuo/votio/timepolicy"
	"github.com/danielhkuo/votio/uploads"
)

// Service owns elections, candidates and votes. It is safe for concurrent
// use; the only shared state is the connection pool.
type Service struct {
	conn    *sql.DB
	dialect db.Dialect
	now     func() time.Time
	store   uploads.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	newCode func() (string, error)
}

type Option func(*Service)

// WithClock replaces the wall clock, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithUploads sets where candidate files are saved. Without a store,
// attached files are ignored.
func WithUploads(store uploads.Store) Option {
	return func(s *Service) { s.store = store }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *Service) { s.newCode = gen }
}

func New(conn *sql.DB, d db.Dialect, opts ...Option) *Service {
	s := &Service{
		conn:    conn,
		dialect: d,
		now:     timepolicy.Now,
		logger:  slog.Default(),
		newCode: auth.GenerateElectionCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().In(timepolicy.Location)
}

// evaluate derives the window state of e, logging unparseable end times
func (s *Service) evaluate(e models.Election) (timepolicy.State, time.Time, bool) {
	state, end, ok := timepolicy.Evaluate(s.clock(), e.EndTime)
	if !ok {
		s.logger.Warn("unparseable election end time, treating as open",
			"election_id", e.ID,
			"end_time", e.EndTime,
		)
	}
	return state, end, ok
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
