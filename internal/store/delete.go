package store

import (
	"context"
	"fmt"

	"github.com/blockedby/applio/internal/events"
	"github.com/blockedby/applio/internal/models"
)

// Delete removes the loaded record. On success the record is released, the
// collection is marked stale and the confirmation toast is returned.
func (s *Store) Delete(ctx context.Context) (string, error) {
	id := s.CurrentID()
	if id == "" {
		return "", ErrNoRecord
	}

	release, err := s.pending.Acquire("delete")
	if err != nil {
		return "", err
	}
	defer release()

	msg, err := s.remote.DeleteApplication(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("record_id", id).Str("op", "delete").Msg("failed to delete application")
		return "", fmt.Errorf("delete application: %w", err)
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.mu.Unlock()

	s.Invalidate()
	s.emit(ctx, events.ApplicationDeleted, id, nil)
	s.log.Info().Str("record_id", id).Str("message", msg).Msg("application deleted")

	return models.DeletedToastText, nil
}

// Deleting reports whether a delete call is in flight.
func (s *Store) Deleting() bool {
	return s.pending.Busy("delete")
}
