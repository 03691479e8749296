package models

import "sort"

// Experience is one role in a CV or profile.
// StartDate and EndDate are display strings; an empty EndDate means "present".
type Experience struct {
	JobTitle  string   `json:"jobTitle"`
	Company   string   `json:"company"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Bullets   []string `json:"bullets,omitempty"`
}

// Experience field names accepted by Set.
const (
	FieldJobTitle  = "jobTitle"
	FieldCompany   = "company"
	FieldLocation  = "location"
	FieldStartDate = "startDate"
	FieldEndDate   = "endDate"
)

// Set replaces one string field. It reports false for unknown fields.
func (e *Experience) Set(field, value string) bool {
	switch field {
	case FieldJobTitle:
		e.JobTitle = value
	case FieldCompany:
		e.Company = value
	case FieldLocation:
		e.Location = value
	case FieldStartDate:
		e.StartDate = value
	case FieldEndDate:
		e.EndDate = value
	default:
		return false
	}
	return true
}

// IsPresent reports whether the role is ongoing.
func (e Experience) IsPresent() bool {
	return e.EndDate == ""
}

// Education is one degree in a CV or profile.
type Education struct {
	FieldOfStudy string `json:"fieldOfStudy"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
}

// Education field names accepted by Set.
const (
	FieldFieldOfStudy = "fieldOfStudy"
	FieldInstitution  = "institution"
	FieldDegree       = "degree"
)

// Set replaces one string field. It reports false for unknown fields.
func (e *Education) Set(field, value string) bool {
	switch field {
	case FieldFieldOfStudy:
		e.FieldOfStudy = value
	case FieldInstitution:
		e.Institution = value
	case FieldDegree:
		e.Degree = value
	case FieldStartDate:
		e.StartDate = value
	case FieldEndDate:
		e.EndDate = value
	default:
		return false
	}
	return true
}

// Project is a side or portfolio project.
type Project struct {
	Name    string   `json:"name"`
	Tech    string   `json:"tech,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// Project field names accepted by Set.
const (
	FieldName = "name"
	FieldTech = "tech"
)

// Set replaces one string field. It reports false for unknown fields.
func (p *Project) Set(field, value string) bool {
	switch field {
	case FieldName:
		p.Name = value
	case FieldTech:
		p.Tech = value
	default:
		return false
	}
	return true
}

// Skills maps a category (frontend, backend, ...) to ordered skill names.
type Skills map[string][]string

// AiCvData is a tailored CV generated for one application.
// Every field is optional on the wire; zero values are the defaults.
type AiCvData struct {
	FullName   string       `json:"fullName"`
	Headline   string       `json:"headline"`
	Summary    string       `json:"summary"`
	Skills     Skills       `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Projects   []Project    `json:"projects"`
	Interests  []string     `json:"interests"`
}

// CV scalar field names.
const (
	FieldFullName = "fullName"
	FieldHeadline = "headline"
	FieldSummary  = "summary"
)

// SetScalar replaces one top-level string field.
func (c *AiCvData) SetScalar(field, value string) bool {
	switch field {
	case FieldFullName:
		c.FullName = value
	case FieldHeadline:
		c.Headline = value
	case FieldSummary:
		c.Summary = value
	default:
		return false
	}
	return true
}

// SkillCategories returns category keys in a stable order.
func (s Skills) SkillCategories() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a fully independent copy.
func (c *AiCvData) Clone() *AiCvData {
	if c == nil {
		return nil
	}
	out := *c
	if c.Skills != nil {
		out.Skills = make(Skills, len(c.Skills))
		for k, v := range c.Skills {
			out.Skills[k] = cloneStrings(v)
		}
	}
	out.Experience = cloneExperience(c.Experience)
	out.Education = cloneEducation(c.Education)
	out.Projects = cloneProjects(c.Projects)
	out.Interests = cloneStrings(c.Interests)
	return &out
}

func cloneExperience(in []Experience) []Experience {
	if in == nil {
		return nil
	}
	out := make([]Experience, len(in))
	for i, e := range in {
		e.Bullets = cloneStrings(e.Bullets)
		out[i] = e
	}
	return out
}

func cloneEducation(in []Education) []Education {
	if in == nil {
		return nil
	}
	out := make([]Education, len(in))
	copy(out, in)
	return out
}

func cloneProjects(in []Project) []Project {
	if in == nil {
		return nil
	}
	out := make([]Project, len(in))
	for i, p := range in {
		p.Bullets = cloneStrings(p.Bullets)
		out[i] = p
	}
	return out
}
