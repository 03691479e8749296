package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blockedby/applio/internal/models"
)

// Completer is satisfied by *Client.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Generator produces artifacts with an LLM.
type Generator struct {
	llm Completer
}

// NewGenerator wraps a completer.
func NewGenerator(c Completer) *Generator {
	return &Generator{llm: c}
}

// CoverLetter writes a cover letter for app using the candidate profile.
func (g *Generator) CoverLetter(ctx context.Context, app *models.JobApplication, profile *models.UserProfile) (string, error) {
	prompt, err := LoadPrompt(PromptCoverLetter)
	if err != nil {
		return "", err
	}

	out, err := g.llm.Complete(ctx, prompt.System, prompt.BuildUserPrompt(map[string]string{
		"JOB":     FormatJob(app),
		"PROFILE": FormatProfile(profile),
	}))
	if err != nil {
		return "", fmt.Errorf("generate cover letter: %w", err)
	}

	text := strings.TrimSpace(out)
	if text == "" {
		return "", fmt.Errorf("generate cover letter: empty reply")
	}
	return text, nil
}

// AiCv tailors the profile into a CV for app.
func (g *Generator) AiCv(ctx context.Context, app *models.JobApplication, profile *models.UserProfile) (*models.AiCvData, error) {
	prompt, err := LoadPrompt(PromptAiCv)
	if err != nil {
		return nil, err
	}

	out, err := g.llm.Complete(ctx, prompt.System, prompt.BuildUserPrompt(map[string]string{
		"JOB":     FormatJob(app),
		"PROFILE": FormatProfile(profile),
	}))
	if err != nil {
		return nil, fmt.Errorf("generate cv: %w", err)
	}

	var cv models.AiCvData
	if err := json.Unmarshal([]byte(ExtractJSON(out)), &cv); err != nil {
		return nil, fmt.Errorf("parse cv reply: %w", err)
	}
	return &cv, nil
}

// ProfileFromCV extracts a profile from CV text.
func (g *Generator) ProfileFromCV(ctx context.Context, cvText string) (*models.UserProfile, error) {
	prompt, err := LoadPrompt(PromptProfileFromCV)
	if err != nil {
		return nil, err
	}

	out, err := g.llm.Complete(ctx, prompt.System, prompt.BuildUserPrompt(map[string]string{
		"CV_TEXT": cvText,
	}))
	if err != nil {
		return nil, fmt.Errorf("extract profile: %w", err)
	}

	var p models.UserProfile
	if err := json.Unmarshal([]byte(ExtractJSON(out)), &p); err != nil {
		return nil, fmt.Errorf("parse profile reply: %w", err)
	}
	return &p, nil
}

// ExtractJSON strips code fences and prose around the first JSON object.
func ExtractJSON(reply string) string {
	s := strings.TrimSpace(reply)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return strings.TrimSpace(s)
	}
	return s[start : end+1]
}

// FormatJob renders the parts of a record a model needs.
func FormatJob(app *models.JobApplication) string {
	if app == nil {
		return ""
	}
	var b strings.Builder
	line := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&b, "%s: %s\n", k, v)
		}
	}
	list := func(k string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s:\n", k)
		for _, it := range items {
			fmt.Fprintf(&b, "- %s\n", it)
		}
	}

	line("Title", app.DisplayTitle())
	line("Company", app.DisplayCompany())
	line("Location", app.Location)
	line("Employment type", app.EmploymentType)
	line("Seniority", app.SeniorityLevel)
	line("Salary", app.SalaryInfo)
	line("Summary", app.Summary)
	list("Responsibilities", app.Responsibilities)
	list("Requirements", app.Requirements)
	list("Nice to have", app.NiceToHave)
	return strings.TrimSpace(b.String())
}

// FormatProfile renders a profile as JSON for prompting.
func FormatProfile(p *models.UserProfile) string {
	if p == nil {
		return "{}"
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
