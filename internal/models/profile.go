package models

// Links holds optional profile URLs.
type Links struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// UserProfile is the per-user source for CV generation.
type UserProfile struct {
	FullName          string       `json:"fullName"`
	Headline          string       `json:"headline"`
	Location          string       `json:"location"`
	Summary           string       `json:"summary"`
	YearsOfExperience *int         `json:"yearsOfExperience,omitempty"`
	PrimarySkills     []string     `json:"primarySkills"`
	Links             Links        `json:"links"`
	Experience        []Experience `json:"experience"`
	Education         []Education  `json:"education"`
	Projects          []Project    `json:"projects"`
	Interests         []string     `json:"interests"`
}

// Clone returns a deep copy.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	out := *p
	if p.YearsOfExperience != nil {
		y := *p.YearsOfExperience
		out.YearsOfExperience = &y
	}
	out.PrimarySkills = cloneStrings(p.PrimarySkills)
	out.Experience = cloneExperience(p.Experience)
	out.Education = cloneEducation(p.Education)
	out.Projects = cloneProjects(p.Projects)
	out.Interests = cloneStrings(p.Interests)
	return &out
}
