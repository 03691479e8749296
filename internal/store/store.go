// Package store holds the record currently open in a view and the last
// fetched collection. It is the single source of truth for the UI layer.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/blockedby/applio/internal/events"
	"github.com/blockedby/applio/internal/inflight"
	"github.com/blockedby/applio/internal/logger"
	"github.com/blockedby/applio/internal/models"
)

// ErrNoRecord is returned by record operations when nothing is loaded.
var ErrNoRecord = errors.New("no application loaded")

// Remote is the part of the gateway the store needs.
type Remote interface {
	GetApplication(ctx context.Context, id string) (*models.JobApplication, error)
	ListApplications(ctx context.Context, status string) ([]models.JobApplication, error)
	CreateFromLink(ctx context.Context, payload models.FromLinkPayload) (*models.JobApplication, error)
	CreateManual(ctx context.Context, payload models.ManualPayload) (*models.JobApplication, error)
	DeleteApplication(ctx context.Context, id string) (string, error)
	AddNote(ctx context.Context, id, text string) (*models.JobApplication, error)
	UpdateNote(ctx context.Context, id, noteID, text string) (*models.JobApplication, error)
	DeleteNote(ctx context.Context, id, noteID string) (*models.JobApplication, error)
}

// Store owns the loaded record and the collection snapshot.
type Store struct {
	remote    Remote
	publisher events.Publisher
	log       *logger.Logger
	pending   inflight.Guard

	mu      sync.Mutex
	current *models.JobApplication

	coll collection
}

// New creates a store backed by remote.
func New(remote Remote) *Store {
	return &Store{
		remote:    remote,
		publisher: events.Nop{},
		log:       logger.Get().Component("store"),
	}
}

// SetPublisher sets the lifecycle event publisher.
func (s *Store) SetPublisher(p events.Publisher) {
	if p == nil {
		p = events.Nop{}
	}
	s.publisher = p
}

// SetLogger replaces the logger.
func (s *Store) SetLogger(l *logger.Logger) {
	s.log = l.Component("store")
}

// Load fetches a record and makes it the current one.
// On failure the previous current record is kept.
func (s *Store) Load(ctx context.Context, id string) (*models.JobApplication, error) {
	app, err := s.remote.GetApplication(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("record_id", id).Str("op", "load").Msg("failed to load application")
		return nil, fmt.Errorf("load application: %w", err)
	}

	s.mu.Lock()
	s.current = app.Clone()
	s.mu.Unlock()

	return app, nil
}

// Current returns a copy of the loaded record, or nil.
func (s *Store) Current() *models.JobApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// CurrentID returns the loaded record's id, or "".
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.ID
}

// UpdateIf applies fn to the loaded record when it is still record id.
// It reports false when the view has moved on; the result is then discarded.
func (s *Store) UpdateIf(id string, fn func(*models.JobApplication)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.ID != id {
		s.log.Debug().Str("record_id", id).Msg("discarding result for a record that is no longer open")
		return false
	}
	fn(s.current)
	return true
}

// Replace swaps the loaded record for the server copy if ids match.
func (s *Store) Replace(app *models.JobApplication) bool {
	if app == nil {
		return false
	}
	next := app.Clone()
	return s.UpdateIf(app.ID, func(cur *models.JobApplication) { *cur = *next })
}

// Release forgets the loaded record (the view was closed).
func (s *Store) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

func (s *Store) emit(ctx context.Context, t events.Type, id string, payload map[string]string) {
	if err := s.publisher.Publish(ctx, events.New(t, id, payload)); err != nil {
		s.log.Warn().Err(err).Str("event", string(t)).Msg("failed to publish event")
	}
}
