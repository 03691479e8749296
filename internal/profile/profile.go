// Package profile manages the user's profile form: load, edit, save and
// filling it from an uploaded CV.
package profile

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/blockedby/applio/internal/editor"
	"github.com/blockedby/applio/internal/errs"
	"github.com/blockedby/applio/internal/events"
	"github.com/blockedby/applio/internal/inflight"
	"github.com/blockedby/applio/internal/logger"
	"github.com/blockedby/applio/internal/models"
)

// Remote is the part of the gateway used for profiles.
type Remote interface {
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, p *models.UserProfile) (*models.UserProfile, error)
	UploadCV(ctx context.Context, filename string, r io.Reader) (*models.UserProfile, error)
}

// Service holds the profile draft.
type Service struct {
	remote    Remote
	publisher events.Publisher
	log       *logger.Logger
	pending   inflight.Guard

	mu     sync.Mutex
	draft  *models.UserProfile
	exists bool
}

// New creates a profile service with an empty draft.
func New(remote Remote) *Service {
	return &Service{
		remote:    remote,
		publisher: events.Nop{},
		log:       logger.Get().Component("profile"),
		draft:     &models.UserProfile{},
	}
}

// SetPublisher sets the lifecycle event publisher.
func (s *Service) SetPublisher(p events.Publisher) {
	if p != nil {
		s.publisher = p
	}
}

// Load fetches the profile. A missing profile is not an error: the draft is
// reset to an empty form and Exists reports false.
func (s *Service) Load(ctx context.Context) (*models.UserProfile, error) {
	p, err := s.remote.GetProfile(ctx)
	if err != nil {
		if errs.IsNotFound(err) {
			s.mu.Lock()
			s.draft = &models.UserProfile{}
			s.exists = false
			s.mu.Unlock()
			s.log.Debug().Msg("no profile yet")
			return &models.UserProfile{}, nil
		}
		s.log.Error().Err(err).Str("op", "load").Msg("failed to load profile")
		return nil, fmt.Errorf("load profile: %w", err)
	}

	s.mu.Lock()
	s.draft = p.Clone()
	s.exists = true
	s.mu.Unlock()
	return p, nil
}

// Exists reports whether the remote store has a profile.
func (s *Service) Exists() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exists
}

// Draft returns a copy of the local form.
func (s *Service) Draft() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// Apply runs local edits against the draft.
func (s *Service) Apply(edits ...editor.ProfileEdit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.draft.Clone()
	for _, e := range edits {
		e(next)
	}
	s.draft = next
}

// SetYearsOfExperience parses the form value. Blank clears the field.
func (s *Service) SetYearsOfExperience(text string) error {
	years, err := ParseYears(text)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.YearsOfExperience = years
	return nil
}

// ParseYears parses a non-negative whole number; blank means absent.
func ParseYears(text string) (*int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return nil, errs.Validation("yearsOfExperience", "Years of experience must be a non-negative whole number")
	}
	return &n, nil
}

// Save persists the draft; the stored version becomes the draft.
func (s *Service) Save(ctx context.Context) (*models.UserProfile, error) {
	release, err := s.pending.Acquire("save")
	if err != nil {
		return nil, err
	}
	defer release()

	payload := s.Draft()
	saved, err := s.remote.SaveProfile(ctx, payload)
	if err != nil {
		s.log.Error().Err(err).Str("op", "save").Msg("failed to save profile")
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.mu.Lock()
	s.draft = saved.Clone()
	s.exists = true
	s.mu.Unlock()

	s.emit(ctx, events.ProfileSaved)
	return saved, nil
}

// Saving reports whether a save is in flight.
func (s *Service) Saving() bool { return s.pending.Busy("save") }

// UseCV uploads a CV and merges the extracted profile into the draft.
func (s *Service) UseCV(ctx context.Context, filename string, r io.Reader) (*models.UserProfile, error) {
	release, err := s.pending.Acquire("cv")
	if err != nil {
		return nil, err
	}
	defer release()

	extracted, err := s.remote.UploadCV(ctx, filename, r)
	if err != nil {
		s.log.Error().Err(err).Str("op", "use_cv").Msg("failed to extract profile from cv")
		return nil, fmt.Errorf("use cv: %w", err)
	}

	s.mu.Lock()
	s.draft = Merge(s.draft, extracted)
	merged := s.draft.Clone()
	s.mu.Unlock()

	s.emit(ctx, events.ProfileExtracted)
	return merged, nil
}

// ExtractingCV reports whether a CV upload is in flight.
func (s *Service) ExtractingCV() bool { return s.pending.Busy("cv") }

// Merge fills prev from an extracted profile. Scalars, links and skills keep
// the previous value when the extracted one is empty; experience and
// education are replaced by the extracted lists.
func Merge(prev, extracted *models.UserProfile) *models.UserProfile {
	if prev == nil {
		prev = &models.UserProfile{}
	}
	out := prev.Clone()
	if extracted == nil {
		return out
	}
	x := extracted.Clone()

	out.FullName = pick(x.FullName, prev.FullName)
	out.Headline = pick(x.Headline, prev.Headline)
	out.Location = pick(x.Location, prev.Location)
	out.Summary = pick(x.Summary, prev.Summary)
	out.Links.LinkedIn = pick(x.Links.LinkedIn, prev.Links.LinkedIn)
	out.Links.GitHub = pick(x.Links.GitHub, prev.Links.GitHub)
	out.Links.Portfolio = pick(x.Links.Portfolio, prev.Links.Portfolio)

	if len(x.PrimarySkills) > 0 {
		out.PrimarySkills = x.PrimarySkills
	}
	if x.YearsOfExperience != nil && *x.YearsOfExperience > 0 {
		out.YearsOfExperience = x.YearsOfExperience
	}

	out.Experience = x.Experience
	if out.Experience == nil {
		out.Experience = []models.Experience{}
	}
	out.Education = x.Education
	if out.Education == nil {
		out.Education = []models.Education{}
	}
	return out
}

func pick(next, prev string) string {
	if strings.TrimSpace(next) != "" {
		return next
	}
	return prev
}

func (s *Service) emit(ctx context.Context, t events.Type) {
	if err := s.publisher.Publish(ctx, events.New(t, "", nil)); err != nil {
		s.log.Warn().Err(err).Str("event", string(t)).Msg("failed to publish event")
	}
}
