// Package status drives status transitions of the loaded record.
//
// Any status may move to any other status. A transition to the current
// status is a no-op and never reaches the network. While a transition is
// pending further transitions are rejected with errs.ErrInFlight.
package status

import (
	"context"
	"fmt"

	"github.com/blockedby/applio/internal/errs"
	"github.com/blockedby/applio/internal/events"
	"github.com/blockedby/applio/internal/inflight"
	"github.com/blockedby/applio/internal/logger"
	"github.com/blockedby/applio/internal/models"
)

// Remote patches a record's status and returns the updated record.
type Remote interface {
	UpdateStatus(ctx context.Context, id string, status models.Status) (*models.JobApplication, error)
}

// Records is the part of the record store the machine mutates.
type Records interface {
	Current() *models.JobApplication
	UpdateIf(id string, fn func(*models.JobApplication)) bool
}

// Result describes a completed SetStatus call.
type Result struct {
	From    models.Status
	To      models.Status
	Changed bool
}

// Machine applies status transitions to the loaded record.
type Machine struct {
	remote    Remote
	records   Records
	publisher events.Publisher
	log       *logger.Logger
	pending   inflight.Guard
}

// New creates a status machine.
func New(remote Remote, records Records) *Machine {
	return &Machine{
		remote:    remote,
		records:   records,
		publisher: events.Nop{},
		log:       logger.Get().Component("status"),
	}
}

// SetPublisher sets the lifecycle event publisher.
func (m *Machine) SetPublisher(p events.Publisher) {
	if p != nil {
		m.publisher = p
	}
}

// Updating reports whether a transition is in flight.
func (m *Machine) Updating() bool {
	return m.pending.Busy("status")
}

// Options returns the statuses offered as write targets.
// Unknown statuses that arrived from the store are never offered.
func Options() []models.Status {
	return models.Statuses()
}

// SetStatus moves the loaded record to next.
// On success the record carries the status returned by the remote store.
// On failure the record keeps its previous status.
func (m *Machine) SetStatus(ctx context.Context, next models.Status) (*Result, error) {
	parsed, ok := models.ParseStatus(string(next))
	if !ok {
		return nil, errs.Validation("status", fmt.Sprintf("Unknown status %q", string(next)))
	}

	app := m.records.Current()
	if app == nil {
		return nil, errs.Validation("status", "No application loaded")
	}
	from := app.DisplayStatus()

	if from == parsed {
		return &Result{From: from, To: from}, nil
	}

	release, err := m.pending.Acquire("status")
	if err != nil {
		return nil, err
	}
	defer release()

	updated, err := m.remote.UpdateStatus(ctx, app.ID, parsed)
	if err != nil {
		m.log.Error().Err(err).
			Str("record_id", app.ID).
			Str("op", "set_status").
			Str("from", string(from)).
			Str("to", string(parsed)).
			Msg("failed to update status")
		return nil, fmt.Errorf("update status: %w", err)
	}

	to, known := models.ParseStatus(string(updated.Status))
	if !known {
		err := &errs.ProtocolError{Op: "update status", Reason: fmt.Sprintf("response has unknown status %q", string(updated.Status))}
		m.log.Error().Err(err).Str("record_id", app.ID).Msg("discarding status response")
		return nil, fmt.Errorf("update status: %w", err)
	}
	m.records.UpdateIf(app.ID, func(cur *models.JobApplication) {
		cur.Status = to
		if !updated.UpdatedAt.IsZero() {
			cur.UpdatedAt = updated.UpdatedAt
		}
	})

	if err := m.publisher.Publish(ctx, events.New(events.StatusChanged, app.ID, map[string]string{
		"from": string(from),
		"to":   string(to),
	})); err != nil {
		m.log.Warn().Err(err).Msg("failed to publish status event")
	}
	m.log.Info().Str("record_id", app.ID).Str("from", string(from)).Str("to", string(to)).Msg("status changed")

	return &Result{From: from, To: to, Changed: true}, nil
}
