// Package events publishes record lifecycle notifications.
package events

import (
	"context"
	"time"
)

// Type names a lifecycle event. It doubles as the NATS subject suffix.
type Type string

// Event types emitted by the core.
const (
	ApplicationCreated   Type = "application.created"
	ApplicationDeleted   Type = "application.deleted"
	StatusChanged        Type = "application.status_changed"
	NoteAdded            Type = "note.added"
	NoteUpdated          Type = "note.updated"
	NoteDeleted          Type = "note.deleted"
	CoverLetterGenerated Type = "cover_letter.generated"
	CoverLetterSaved     Type = "cover_letter.saved"
	CvGenerated          Type = "ai_cv.generated"
	CvSaved              Type = "ai_cv.saved"
	CvExported           Type = "ai_cv.exported"
	ProfileSaved         Type = "profile.saved"
	ProfileExtracted     Type = "profile.extracted"
)

// Event is one lifecycle notification.
type Event struct {
	Type     Type              `json:"type"`
	RecordID string            `json:"record_id,omitempty"`
	Payload  map[string]string `json:"payload,omitempty"`
	At       time.Time         `json:"at"`
}

// New builds an event stamped with the current time.
func New(t Type, recordID string, payload map[string]string) Event {
	return Event{Type: t, RecordID: recordID, Payload: payload, At: time.Now().UTC()}
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }
