package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/blockedby/applio/internal/editor"
	"github.com/blockedby/applio/internal/errs"
	"github.com/blockedby/applio/internal/events"
	"github.com/blockedby/applio/internal/models"
)

// LinkResult is the outcome of CreateFromLink.
type LinkResult struct {
	Record *models.JobApplication
	// OpenManual asks the caller to switch to the manual form after a failure.
	OpenManual bool
}

// CreateFromLink asks the remote store to extract a record from a job URL.
func (s *Store) CreateFromLink(ctx context.Context, jobURL string, status models.Status) (*LinkResult, error) {
	jobURL = strings.TrimSpace(jobURL)
	if err := validateURL(jobURL); err != nil {
		return &LinkResult{}, err
	}
	status, err := writableStatus(status)
	if err != nil {
		return &LinkResult{}, err
	}

	release, err := s.pending.Acquire("create")
	if err != nil {
		return &LinkResult{}, err
	}
	defer release()

	app, err := s.remote.CreateFromLink(ctx, models.FromLinkPayload{JobURL: jobURL, Status: status})
	if err != nil {
		s.log.Error().Err(err).Str("op", "create_from_link").Str("url", jobURL).Msg("failed to create application from link")
		return &LinkResult{OpenManual: true}, fmt.Errorf("create from link: %w", err)
	}

	s.Invalidate()
	s.emit(ctx, events.ApplicationCreated, app.ID, map[string]string{"source": string(models.SourceLink)})
	s.log.Info().Str("record_id", app.ID).Msg("application created from link")

	return &LinkResult{Record: app}, nil
}

// ManualForm is the manual entry form. List fields are line-delimited text
// as typed into multi-line controls.
type ManualForm struct {
	JobTitle         string        `yaml:"jobTitle"`
	CompanyName      string        `yaml:"companyName"`
	Location         string        `yaml:"location"`
	EmploymentType   string        `yaml:"employmentType"`
	SalaryInfo       string        `yaml:"salaryInfo"`
	SeniorityLevel   string        `yaml:"seniorityLevel"`
	Summary          string        `yaml:"summary"`
	Responsibilities string        `yaml:"responsibilities"`
	Requirements     string        `yaml:"requirements"`
	NiceToHave       string        `yaml:"niceToHave"`
	PerksAndBenefits string        `yaml:"perksAndBenefits"`
	Status           models.Status `yaml:"status"`
}

// Payload converts the form to the wire payload with defaults applied.
func (f ManualForm) Payload() (models.ManualPayload, error) {
	status, err := writableStatus(f.Status)
	if err != nil {
		return models.ManualPayload{}, err
	}
	return models.ManualPayload{
		JobTitle:         orDefault(f.JobTitle, models.UntitledRole),
		CompanyName:      orDefault(f.CompanyName, models.UnknownCompany),
		Location:         strings.TrimSpace(f.Location),
		EmploymentType:   strings.TrimSpace(f.EmploymentType),
		SalaryInfo:       strings.TrimSpace(f.SalaryInfo),
		SeniorityLevel:   strings.TrimSpace(f.SeniorityLevel),
		Summary:          strings.TrimSpace(f.Summary),
		Responsibilities: editor.FromLines(f.Responsibilities),
		Requirements:     editor.FromLines(f.Requirements),
		NiceToHave:       editor.FromLines(f.NiceToHave),
		PerksAndBenefits: editor.FromLines(f.PerksAndBenefits),
		Status:           status,
		Source:           models.SourceManual,
	}, nil
}

// CreateManual creates a record from the manual form.
func (s *Store) CreateManual(ctx context.Context, form ManualForm) (*models.JobApplication, error) {
	payload, err := form.Payload()
	if err != nil {
		return nil, err
	}

	release, err := s.pending.Acquire("create")
	if err != nil {
		return nil, err
	}
	defer release()

	app, err := s.remote.CreateManual(ctx, payload)
	if err != nil {
		s.log.Error().Err(err).Str("op", "create_manual").Msg("failed to create application")
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.Invalidate()
	s.emit(ctx, events.ApplicationCreated, app.ID, map[string]string{"source": string(models.SourceManual)})
	s.log.Info().Str("record_id", app.ID).Msg("application created manually")

	return app, nil
}

// Creating reports whether a create call is pending.
func (s *Store) Creating() bool {
	return s.pending.Busy("create")
}

func validateURL(raw string) error {
	if raw == "" {
		return errs.Validation("jobUrl", "Please paste a job link")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.Validation("jobUrl", "Please enter a valid http(s) link")
	}
	return nil
}

// writableStatus defaults an empty status and rejects unknown ones.
func writableStatus(s models.Status) (models.Status, error) {
	if s == "" {
		return models.DefaultStatus, nil
	}
	parsed, ok := models.ParseStatus(string(s))
	if !ok {
		return "", errs.Validation("status", fmt.Sprintf("Unknown status %q", string(s)))
	}
	return parsed, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
