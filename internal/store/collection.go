package store

import (
	"context"
	"fmt"

	"github.com/blockedby/applio/internal/models"
)

// CollectionState is the load state of the record list.
type CollectionState string

// Collection states.
const (
	CollectionIdle    CollectionState = "idle"
	CollectionLoading CollectionState = "loading"
	CollectionLoaded  CollectionState = "loaded"
	CollectionFailed  CollectionState = "failed"
)

type collection struct {
	state   CollectionState
	records []models.JobApplication
	err     error
	stale   bool
}

// Snapshot is a read-only view of the collection.
type Snapshot struct {
	State   CollectionState
	Records []models.JobApplication
	Err     error
	// Stale is set after a create or delete; the list must be fetched again.
	Stale bool
}

// Refresh fetches the collection, optionally filtered by status server-side.
func (s *Store) Refresh(ctx context.Context, status string) error {
	s.mu.Lock()
	s.coll.state = CollectionLoading
	s.coll.err = nil
	s.mu.Unlock()

	apps, err := s.remote.ListApplications(ctx, status)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.coll.state = CollectionFailed
		s.coll.err = err
		s.log.Error().Err(err).Str("op", "list").Msg("failed to load applications")
		return fmt.Errorf("load applications: %w", err)
	}

	s.coll.state = CollectionLoaded
	s.coll.records = apps
	s.coll.stale = false
	return nil
}

// Collection returns the current snapshot. Records are deep copies.
func (s *Store) Collection() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.coll.state
	if state == "" {
		state = CollectionIdle
	}
	out := make([]models.JobApplication, len(s.coll.records))
	for i := range s.coll.records {
		out[i] = *s.coll.records[i].Clone()
	}
	return Snapshot{State: state, Records: out, Err: s.coll.err, Stale: s.coll.stale}
}

// Invalidate marks the collection stale. Mutations never patch it in place.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coll.stale = true
}
