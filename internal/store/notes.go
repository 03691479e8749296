package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/blockedby/applio/internal/errs"
	"github.com/blockedby/applio/internal/events"
	"github.com/blockedby/applio/internal/models"
)

// AddNote appends a note to the loaded record.
func (s *Store) AddNote(ctx context.Context, text string) (*models.JobApplication, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.Validation("note", "Note cannot be empty")
	}
	return s.noteOp(ctx, "add_note", events.NoteAdded, func(id string) (*models.JobApplication, error) {
		return s.remote.AddNote(ctx, id, text)
	})
}

// UpdateNote replaces the text of one note.
func (s *Store) UpdateNote(ctx context.Context, noteID, text string) (*models.JobApplication, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.Validation("note", "Note cannot be empty")
	}
	if noteID == "" {
		return nil, errs.Validation("noteId", "No note selected")
	}
	return s.noteOp(ctx, "update_note", events.NoteUpdated, func(id string) (*models.JobApplication, error) {
		return s.remote.UpdateNote(ctx, id, noteID, text)
	})
}

// DeleteNote removes one note.
func (s *Store) DeleteNote(ctx context.Context, noteID string) (*models.JobApplication, error) {
	if noteID == "" {
		return nil, errs.Validation("noteId", "No note selected")
	}
	return s.noteOp(ctx, "delete_note", events.NoteDeleted, func(id string) (*models.JobApplication, error) {
		return s.remote.DeleteNote(ctx, id, noteID)
	})
}

// NotesPending reports whether a note call is in flight.
func (s *Store) NotesPending() bool {
	return s.pending.Busy("notes")
}

// noteOp runs one note call and replaces the loaded record with the server copy.
func (s *Store) noteOp(ctx context.Context, op string, evt events.Type, call func(id string) (*models.JobApplication, error)) (*models.JobApplication, error) {
	id := s.CurrentID()
	if id == "" {
		return nil, ErrNoRecord
	}

	release, err := s.pending.Acquire("notes")
	if err != nil {
		return nil, err
	}
	defer release()

	app, err := call(id)
	if err != nil {
		s.log.Error().Err(err).Str("record_id", id).Str("op", op).Msg("note operation failed")
		return nil, fmt.Errorf("%s: %w", strings.ReplaceAll(op, "_", " "), err)
	}

	s.Replace(app)
	s.emit(ctx, evt, id, nil)
	return app.Clone(), nil
}
