//go:build integration

package llm_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/blockedby/applio/internal/llm"
	"github.com/blockedby/applio/internal/models"
	"github.com/joho/godotenv"
)

func TestIntegration_CoverLetter(t *testing.T) {
	// Load .env from project root
	_ = godotenv.Load("../../.env")

	baseURL := os.Getenv("LLM_BASE_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: LLM_BASE_URL not set")
	}

	cfg := llm.Config{
		BaseURL:     baseURL,
		Model:       os.Getenv("LLM_MODEL"),
		APIKey:      os.Getenv("LLM_API_KEY"),
		MaxTokens:   1000,
		Temperature: 0.1,
		Timeout:     60 * time.Second,
	}

	client := llm.NewClient(cfg)
	gen := llm.NewGenerator(client)

	app := &models.JobApplication{
		JobTitle:     "Senior Go Developer",
		CompanyName:  "Acme",
		Requirements: []string{"Go", "PostgreSQL", "Kafka"},
	}
	profile := &models.UserProfile{
		FullName:      "John Doe",
		Headline:      "Backend engineer",
		PrimarySkills: []string{"Go", "PostgreSQL"},
	}

	t.Logf("Sending request to LLM at %s...", baseURL)
	letter, err := gen.CoverLetter(context.Background(), app, profile)
	if err != nil {
		t.Fatalf("LLM Request failed: %v", err)
	}

	t.Logf("LLM Response:\n%s", letter)

	if len(letter) == 0 {
		t.Error("Received empty response from LLM")
	}
}
