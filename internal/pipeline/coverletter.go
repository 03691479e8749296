package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"github.com/blockedby/applio/internal/errs"
	"github.com/blockedby/applio/internal/events"
	"github.com/blockedby/applio/internal/gateway"
	"github.com/blockedby/applio/internal/models"
)

// CopiedFor is how long the "copied" acknowledgment stays on.
const CopiedFor = 2 * time.Second

// CopyFailedMessage is surfaced when the clipboard write fails.
const CopyFailedMessage = "Failed to copy to clipboard"

// CoverLetterRemote is the part of the gateway used for cover letters.
type CoverLetterRemote interface {
	GenerateCoverLetter(ctx context.Context, id string) (*gateway.CoverLetterResult, error)
	UpdateCoverLetter(ctx context.Context, id, text string) (*models.JobApplication, error)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard uses the OS clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

type coverLetterBackend struct {
	remote CoverLetterRemote
}

func (b coverLetterBackend) Generate(ctx context.Context, id string) (string, error) {
	res, err := b.remote.GenerateCoverLetter(ctx, id)
	if err != nil {
		return "", err
	}
	return res.CoverLetter, nil
}

func (b coverLetterBackend) Save(ctx context.Context, id, text string) (string, error) {
	app, err := b.remote.UpdateCoverLetter(ctx, id, text)
	if err != nil {
		return "", err
	}
	return app.CoverLetter, nil
}

// CoverLetter is the pipeline for a record's cover letter.
type CoverLetter struct {
	*Pipeline[string]

	clipboard Clipboard
	copiedFor time.Duration

	copyMu      sync.Mutex
	copied      bool
	copiedTimer *time.Timer
	copyGen     int
}

// NewCoverLetter creates the cover letter pipeline for app.
func NewCoverLetter(remote CoverLetterRemote, records Records, app *models.JobApplication) *CoverLetter {
	def := Definition[string]{
		Kind:    KindCoverLetter,
		Backend: coverLetterBackend{remote: remote},
		Records: records,
		Apply:   func(a *models.JobApplication, text string) { a.CoverLetter = text },
		Validate: func(text string, _ bool) error {
			if strings.TrimSpace(text) == "" {
				return errs.Validation("coverLetter", "Cover letter is empty")
			}
			return nil
		},
		GeneratedEvent: events.CoverLetterGenerated,
		SavedEvent:     events.CoverLetterSaved,
	}
	return &CoverLetter{
		Pipeline:  New(def, app.ID, app.CoverLetter, app.CoverLetter != ""),
		clipboard: SystemClipboard{},
		copiedFor: CopiedFor,
	}
}

// SetClipboard replaces the clipboard used by Copy.
func (c *CoverLetter) SetClipboard(cb Clipboard) { c.clipboard = cb }

// SetCopiedFor changes how long the copied flag stays on.
func (c *CoverLetter) SetCopiedFor(d time.Duration) { c.copiedFor = d }

// Text returns the local text.
func (c *CoverLetter) Text() string {
	v, _ := c.Value()
	return v
}

// SetText replaces the local text. Nothing is persisted until Save.
func (c *CoverLetter) SetText(text string) {
	c.Edit(func(v *string) { *v = text })
}

// Copy writes the local text to the clipboard and raises the copied flag,
// which drops again after CopiedFor. An empty letter is not copied.
// A clipboard failure is surfaced through Err for CopiedFor as well.
func (c *CoverLetter) Copy() error {
	text := c.Text()
	if text == "" {
		return nil
	}

	if err := c.clipboard.WriteAll(text); err != nil {
		c.log.Error().Err(err).Str("op", "copy").Msg("clipboard write failed")
		var wrapped error = &copyError{err: err}
		c.setErr(wrapped)
		time.AfterFunc(c.copiedFor, func() { c.clearErr(wrapped) })
		return wrapped
	}

	c.copyMu.Lock()
	defer c.copyMu.Unlock()

	c.copied = true
	c.copyGen++
	gen := c.copyGen
	if c.copiedTimer != nil {
		c.copiedTimer.Stop()
	}
	c.copiedTimer = time.AfterFunc(c.copiedFor, func() {
		c.copyMu.Lock()
		defer c.copyMu.Unlock()
		if c.copyGen == gen {
			c.copied = false
		}
	})
	return nil
}

// Copied reports whether the copied acknowledgment is showing.
func (c *CoverLetter) Copied() bool {
	c.copyMu.Lock()
	defer c.copyMu.Unlock()
	return c.copied
}

// copyError is a transient clipboard failure.
type copyError struct {
	err error
}

func (e *copyError) Error() string { return CopyFailedMessage + ": " + e.err.Error() }

func (e *copyError) Unwrap() error { return e.err }
