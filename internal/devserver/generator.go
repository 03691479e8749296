package devserver

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/blockedby/applio/internal/models"
)

// Generator produces the artifacts served by the generation routes.
// *llm.Generator satisfies it.
type Generator interface {
	CoverLetter(ctx context.Context, app *models.JobApplication, profile *models.UserProfile) (string, error)
	AiCv(ctx context.Context, app *models.JobApplication, profile *models.UserProfile) (*models.AiCvData, error)
	ProfileFromCV(ctx context.Context, cvText string) (*models.UserProfile, error)
}

// TemplateGenerator fills fixed templates from the record and profile.
// It is deterministic and needs no model.
type TemplateGenerator struct{}

// CoverLetter implements Generator.
func (TemplateGenerator) CoverLetter(_ context.Context, app *models.JobApplication, profile *models.UserProfile) (string, error) {
	if profile == nil {
		profile = &models.UserProfile{}
	}
	name := profile.FullName
	if name == "" {
		name = "Applicant"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s hiring team,\n\n", app.DisplayCompany())
	fmt.Fprintf(&b, "I am writing to apply for the %s position.", app.DisplayTitle())
	if profile.Headline != "" {
		fmt.Fprintf(&b, " As a %s", profile.Headline)
		if profile.YearsOfExperience != nil {
			fmt.Fprintf(&b, " with %d years of experience", *profile.YearsOfExperience)
		}
		b.WriteString(", I believe I can contribute from day one.")
	}
	b.WriteString("\n\n")

	if matched := matchingSkills(app, profile); len(matched) > 0 {
		fmt.Fprintf(&b, "My background in %s lines up with what you are looking for.\n\n", strings.Join(matched, ", "))
	}

	fmt.Fprintf(&b, "Kind regards,\n%s", name)
	return b.String(), nil
}

// AiCv implements Generator. The result never shares memory with profile.
func (TemplateGenerator) AiCv(_ context.Context, app *models.JobApplication, profile *models.UserProfile) (*models.AiCvData, error) {
	p := profile.Clone()
	if p == nil {
		p = &models.UserProfile{}
	}

	headline := p.Headline
	if headline == "" {
		headline = app.DisplayTitle()
	}

	cv := &models.AiCvData{
		FullName:   p.FullName,
		Headline:   headline,
		Summary:    p.Summary,
		Skills:     models.Skills{},
		Experience: p.Experience,
		Education:  p.Education,
		Projects:   p.Projects,
		Interests:  p.Interests,
	}
	if matched := matchingSkills(app, p); len(matched) > 0 {
		cv.Skills["relevant"] = matched
	}
	if len(p.PrimarySkills) > 0 {
		cv.Skills["core"] = p.PrimarySkills
	}
	return cv, nil
}

// matchingSkills lists profile skills mentioned in the record's requirements.
func matchingSkills(app *models.JobApplication, profile *models.UserProfile) []string {
	text := strings.ToLower(strings.Join(append(append([]string{}, app.Requirements...), app.NiceToHave...), " "))
	var out []string
	for _, skill := range profile.PrimarySkills {
		if skill != "" && strings.Contains(text, strings.ToLower(skill)) {
			out = append(out, skill)
		}
	}
	return out
}

// ProfileFromCV implements Generator over plain text: the first line is the
// name, the second the headline, and "Key: value" lines fill known fields.
func (TemplateGenerator) ProfileFromCV(_ context.Context, cvText string) (*models.UserProfile, error) {
	p := &models.UserProfile{}

	var free []string
	for _, raw := range strings.Split(strings.ReplaceAll(cvText, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			free = append(free, line)
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "name":
			p.FullName = value
		case "headline", "title":
			p.Headline = value
		case "location":
			p.Location = value
		case "summary":
			p.Summary = value
		case "skills":
			for _, s := range strings.Split(value, ",") {
				if s = strings.TrimSpace(s); s != "" {
					p.PrimarySkills = append(p.PrimarySkills, s)
				}
			}
		case "years", "experience years":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				p.YearsOfExperience = &n
			}
		case "linkedin":
			p.Links.LinkedIn = value
		case "github":
			p.Links.GitHub = value
		default:
			free = append(free, line)
		}
	}

	if p.FullName == "" && len(free) > 0 {
		p.FullName, free = free[0], free[1:]
	}
	if p.Headline == "" && len(free) > 0 {
		p.Headline = free[0]
	}
	return p, nil
}
