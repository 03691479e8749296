package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	cfg := Config{
		BaseURL:     "http://localhost:1234/v1",
		Model:       "gpt-4o-mini",
		APIKey:      "test-key",
		MaxTokens:   1000,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
	}

	client := NewClient(cfg)
	if client == nil {
		t.Fatal("NewClient returned nil")
	}
	if client.client == nil {
		t.Error("Underlying openai client is nil")
	}
}

// chatServer answers every chat completion with reply.
func chatServer(t *testing.T, reply string) (*httptest.Server, *[]map[string]any) {
	t.Helper()
	var requests []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		requests = append(requests, body)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"model":  "test",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": reply},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestClient_Complete(t *testing.T) {
	srv, requests := chatServer(t, "hello there")
	c := NewClient(Config{BaseURL: srv.URL, Model: "test-model", MaxTokens: 50, Timeout: 5 * time.Second})

	out, err := c.Complete(context.Background(), "system text", "user text")
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)

	require.Len(t, *requests, 1)
	assert.Equal(t, "test-model", (*requests)[0]["model"])
	msgs := (*requests)[0]["messages"].([]any)
	assert.Len(t, msgs, 2)
}

func TestClient_CompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Model: "m", Timeout: time.Second})
	_, err := c.Complete(context.Background(), "s", "u")
	assert.Error(t, err)
}

func TestLoadPrompt_Embedded(t *testing.T) {
	for _, name := range []string{PromptCoverLetter, PromptAiCv, PromptProfileFromCV} {
		p, err := LoadPrompt(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, p.System, name)
		assert.NotEmpty(t, p.User, name)
	}

	_, err := LoadPrompt("missing")
	assert.Error(t, err)
}

func TestBuildUserPrompt(t *testing.T) {
	p := &PromptConfig{User: "job={{JOB}} profile={{PROFILE}} job again={{JOB}}"}
	got := p.BuildUserPrompt(map[string]string{"JOB": "j", "PROFILE": "p"})
	assert.Equal(t, "job=j profile=p job again=j", got)
}
