// Package pipeline drives the generate, edit, save and export lifecycle of
// generated artifacts. Each artifact kind of each record gets its own
// Pipeline; pipelines share no mutable state.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/blockedby/applio/internal/events"
	"github.com/blockedby/applio/internal/inflight"
	"github.com/blockedby/applio/internal/logger"
	"github.com/blockedby/applio/internal/models"
)

// State is the generation state of an artifact.
type State string

// Pipeline states. Saving and exporting are tracked separately.
const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateReady      State = "ready"
	StateFailed     State = "failed"
)

// Kind names an artifact kind.
type Kind string

// Artifact kinds.
const (
	KindCoverLetter Kind = "cover_letter"
	KindAiCv        Kind = "ai_cv"
)

// Backend performs the remote calls for one artifact kind.
type Backend[T any] interface {
	Generate(ctx context.Context, recordID string) (T, error)
	Save(ctx context.Context, recordID string, value T) (T, error)
}

// Records is the record store the pipeline writes authoritative values to.
type Records interface {
	UpdateIf(id string, fn func(*models.JobApplication)) bool
}

// Definition wires a Pipeline to its artifact kind.
type Definition[T any] struct {
	Kind    Kind
	Backend Backend[T]
	Records Records
	// Clone returns an independent copy of a value.
	Clone func(T) T
	// Apply writes a value into the stored record.
	Apply func(*models.JobApplication, T)
	// Validate runs before Save; a non-nil error blocks the call.
	Validate func(value T, present bool) error

	GeneratedEvent events.Type
	SavedEvent     events.Type
}

// Pipeline holds the local, possibly unsaved, value of one artifact.
type Pipeline[T any] struct {
	def       Definition[T]
	recordID  string
	publisher events.Publisher
	log       *logger.Logger

	generating inflight.Guard
	saving     inflight.Counter

	mu      sync.Mutex
	state   State
	value   T
	present bool
	lastErr error
	closed  bool
}

// New creates a pipeline for recordID seeded with the persisted value, if any.
func New[T any](def Definition[T], recordID string, initial T, present bool) *Pipeline[T] {
	if def.Clone == nil {
		def.Clone = func(v T) T { return v }
	}
	p := &Pipeline[T]{
		def:       def,
		recordID:  recordID,
		publisher: events.Nop{},
		log:       logger.Get().Component("pipeline").Tag("kind", string(def.Kind)).Tag("record_id", recordID),
		state:     StateIdle,
	}
	if present {
		p.value = def.Clone(initial)
		p.present = true
		p.state = StateReady
	}
	return p
}

// SetPublisher sets the lifecycle event publisher.
func (p *Pipeline[T]) SetPublisher(pub events.Publisher) {
	if pub != nil {
		p.publisher = pub
	}
}

// RecordID returns the record this pipeline belongs to.
func (p *Pipeline[T]) RecordID() string { return p.recordID }

// State returns the generation state.
func (p *Pipeline[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Value returns a copy of the local value and whether one exists.
func (p *Pipeline[T]) Value() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.def.Clone(p.value), p.present
}

// Err returns the last surfaced error.
func (p *Pipeline[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Generating reports whether a generate call is in flight.
func (p *Pipeline[T]) Generating() bool { return p.generating.Busy("generate") }

// Saving reports whether any save call is in flight.
func (p *Pipeline[T]) Saving() bool { return p.saving.Active() }

// Close detaches the pipeline from its view. Calls already in flight run to
// completion but their results are no longer applied.
func (p *Pipeline[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Generate replaces the local value with a freshly generated one.
// Unsaved local edits are discarded. On failure the previous value is kept.
func (p *Pipeline[T]) Generate(ctx context.Context) error {
	release, err := p.generating.Acquire("generate")
	if err != nil {
		return err
	}
	defer release()

	p.mu.Lock()
	p.state = StateGenerating
	p.lastErr = nil
	p.mu.Unlock()

	v, err := p.def.Backend.Generate(ctx, p.recordID)
	if err != nil {
		p.fail("generate", err)
		return fmt.Errorf("generate %s: %w", p.def.Kind, err)
	}

	if !p.accept(v, StateReady) {
		return nil
	}
	p.emit(ctx, p.def.GeneratedEvent)
	p.log.Info().Msg("artifact generated")
	return nil
}

// Edit mutates the local value without contacting the remote store.
func (p *Pipeline[T]) Edit(fn func(*T)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.def.Clone(p.value)
	fn(&next)
	p.value = next
	p.present = true
	if p.state == StateIdle {
		p.state = StateReady
	}
}

// Save persists the local value. The stored version returned by the remote
// becomes the local value. Overlapping saves are not deduplicated; the last
// response to arrive wins.
func (p *Pipeline[T]) Save(ctx context.Context) error {
	p.mu.Lock()
	value, present := p.def.Clone(p.value), p.present
	p.mu.Unlock()

	if p.def.Validate != nil {
		if err := p.def.Validate(value, present); err != nil {
			p.setErr(err)
			return err
		}
	}

	exit := p.saving.Enter()
	defer exit()

	saved, err := p.def.Backend.Save(ctx, p.recordID, value)
	if err != nil {
		p.log.Error().Err(err).Str("op", "save").Msg("failed to save artifact")
		p.setErr(err)
		return fmt.Errorf("save %s: %w", p.def.Kind, err)
	}

	if !p.accept(saved, "") {
		return nil
	}
	p.emit(ctx, p.def.SavedEvent)
	p.log.Info().Msg("artifact saved")
	return nil
}

// accept stores an authoritative value locally and in the record store.
// An empty state leaves the generation state untouched.
func (p *Pipeline[T]) accept(v T, state State) bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.log.Debug().Msg("discarding result for a closed view")
		return false
	}
	p.value = p.def.Clone(v)
	p.present = true
	if state != "" {
		p.state = state
	} else if p.state == StateIdle || p.state == StateFailed {
		p.state = StateReady
	}
	p.lastErr = nil
	p.mu.Unlock()

	if p.def.Records != nil && p.def.Apply != nil {
		stored := p.def.Clone(v)
		p.def.Records.UpdateIf(p.recordID, func(app *models.JobApplication) {
			p.def.Apply(app, stored)
		})
	}
	return true
}

func (p *Pipeline[T]) fail(op string, err error) {
	p.log.Error().Err(err).Str("op", op).Msg("artifact operation failed")

	p.mu.Lock()
	defer p.mu.Unlock()
	// a retained value stays usable after a failed regenerate
	if p.present {
		p.state = StateReady
	} else {
		p.state = StateFailed
	}
	p.lastErr = err
}

func (p *Pipeline[T]) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastErr = err
}

// clearErr drops err if it is still the surfaced error.
func (p *Pipeline[T]) clearErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastErr == err {
		p.lastErr = nil
	}
}

func (p *Pipeline[T]) emit(ctx context.Context, t events.Type) {
	if t == "" {
		return
	}
	if err := p.publisher.Publish(ctx, events.New(t, p.recordID, map[string]string{"kind": string(p.def.Kind)})); err != nil {
		p.log.Warn().Err(err).Msg("failed to publish event")
	}
}
