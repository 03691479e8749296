// Package models defines shared data types for the application.
package models

import (
	"strings"
	"time"
)

// Source represents how a record was created.
type Source string

// Source constants define the supported creation paths.
const (
	SourceManual Source = "Manual"
	SourceLink   Source = "Link"
)

// Display fallbacks for empty scalar fields.
const (
	UntitledRole     = "Untitled role"
	UnknownCompany   = "Unknown company"
	UntitledRecord   = "Job Application"
	DeletedToastText = "Application Deleted"
)

// Note is a user-authored comment attached to an application.
type Note struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// JobApplication is the root aggregate tracked per job opportunity.
type JobApplication struct {
	ID string `json:"_id"`

	// scalar fields
	JobTitle       string `json:"jobTitle"`
	CompanyName    string `json:"companyName"`
	Location       string `json:"location,omitempty"`
	EmploymentType string `json:"employmentType,omitempty"`
	SalaryInfo     string `json:"salaryInfo,omitempty"`
	SeniorityLevel string `json:"seniorityLevel,omitempty"`
	JobURL         string `json:"jobUrl,omitempty"`
	Source         Source `json:"source,omitempty"`
	Summary        string `json:"summary,omitempty"`

	Status Status `json:"status"`

	// ordered text lists
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	NiceToHave       []string `json:"niceToHave"`
	PerksAndBenefits []string `json:"perksAndBenefits"`

	Notes []Note `json:"notes"`

	// generated artifacts
	CoverLetter string    `json:"coverLetter,omitempty"`
	AiCvData    *AiCvData `json:"aiCvData,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DisplayTitle returns the title or the generic record fallback.
func (a *JobApplication) DisplayTitle() string {
	if strings.TrimSpace(a.JobTitle) == "" {
		return UntitledRecord
	}
	return a.JobTitle
}

// DisplayCompany returns the company or the unknown-company fallback.
func (a *JobApplication) DisplayCompany() string {
	if strings.TrimSpace(a.CompanyName) == "" {
		return UnknownCompany
	}
	return a.CompanyName
}

// DisplayStatus returns the status, defaulting to Idea when unset.
func (a *JobApplication) DisplayStatus() Status {
	if a.Status == "" {
		return DefaultStatus
	}
	return a.Status
}

// NotesNewestFirst returns notes in display order (most recent first).
// Storage order is never changed.
func (a *JobApplication) NotesNewestFirst() []Note {
	out := make([]Note, len(a.Notes))
	for i, n := range a.Notes {
		out[len(a.Notes)-1-i] = n
	}
	return out
}

// Clone returns a deep copy so views never share slices with the cache.
func (a *JobApplication) Clone() *JobApplication {
	if a == nil {
		return nil
	}
	c := *a
	c.Responsibilities = cloneStrings(a.Responsibilities)
	c.Requirements = cloneStrings(a.Requirements)
	c.NiceToHave = cloneStrings(a.NiceToHave)
	c.PerksAndBenefits = cloneStrings(a.PerksAndBenefits)
	if a.Notes != nil {
		c.Notes = make([]Note, len(a.Notes))
		copy(c.Notes, a.Notes)
	}
	c.AiCvData = a.AiCvData.Clone()
	return &c
}

// ManualPayload is the body of POST /job-applications.
type ManualPayload struct {
	JobTitle         string   `json:"jobTitle"`
	CompanyName      string   `json:"companyName"`
	Location         string   `json:"location"`
	EmploymentType   string   `json:"employmentType"`
	SalaryInfo       string   `json:"salaryInfo"`
	SeniorityLevel   string   `json:"seniorityLevel"`
	Summary          string   `json:"summary"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	NiceToHave       []string `json:"niceToHave"`
	PerksAndBenefits []string `json:"perksAndBenefits"`
	Status           Status   `json:"status"`
	Source           Source   `json:"source"`
}

// FromLinkPayload is the body of POST /job-applications/from-link.
type FromLinkPayload struct {
	JobURL string `json:"jobUrl"`
	Status Status `json:"status"`
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
