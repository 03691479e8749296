package llm

import (
	"embed"
	"encoding/xml"
	"fmt"
	"strings"
)

//go:embed prompts/*.xml
var promptFS embed.FS

// Prompt names shipped with the binary.
const (
	PromptCoverLetter   = "cover-letter"
	PromptAiCv          = "ai-cv"
	PromptProfileFromCV = "profile-from-cv"
)

// PromptConfig is a prompt loaded from XML: a system prompt and a user
// template with {{KEY}} placeholders.
type PromptConfig struct {
	XMLName xml.Name `xml:"prompt"`
	System  string   `xml:"system"`
	User    string   `xml:"user"`
}

// LoadPrompt parses one of the embedded prompts.
func LoadPrompt(name string) (*PromptConfig, error) {
	data, err := promptFS.ReadFile("prompts/" + name + ".xml")
	if err != nil {
		return nil, fmt.Errorf("read prompt %s: %w", name, err)
	}

	var config PromptConfig
	if err := xml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse prompt xml: %w", err)
	}

	config.System = strings.TrimSpace(config.System)
	config.User = strings.TrimSpace(config.User)
	return &config, nil
}

// BuildUserPrompt replaces every {{KEY}} in the user template.
func (p *PromptConfig) BuildUserPrompt(vars map[string]string) string {
	out := p.User
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{{"+k+"}}", v)
	}
	return out
}
