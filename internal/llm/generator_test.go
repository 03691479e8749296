package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockedby/applio/internal/models"
)

// MockCompleter returns a canned reply.
type MockCompleter struct {
	Reply      string
	Err        error
	LastSystem string
	LastUser   string
}

func (m *MockCompleter) Complete(_ context.Context, system, user string) (string, error) {
	m.LastSystem = system
	m.LastUser = user
	return m.Reply, m.Err
}

func TestGenerator_CoverLetter(t *testing.T) {
	mock := &MockCompleter{Reply: "  Dear Acme team,\n\nI am writing...  "}
	g := NewGenerator(mock)

	app := &models.JobApplication{JobTitle: "Backend Engineer", CompanyName: "Acme", Requirements: []string{"Go"}}
	out, err := g.CoverLetter(context.Background(), app, &models.UserProfile{FullName: "Ada"})
	require.NoError(t, err)

	assert.Equal(t, "Dear Acme team,\n\nI am writing...", out)
	assert.Contains(t, mock.LastUser, "Title: Backend Engineer")
	assert.Contains(t, mock.LastUser, "- Go")
	assert.Contains(t, mock.LastUser, `"fullName": "Ada"`)
}

func TestGenerator_CoverLetterEmptyReply(t *testing.T) {
	g := NewGenerator(&MockCompleter{Reply: "  "})
	_, err := g.CoverLetter(context.Background(), &models.JobApplication{}, nil)
	assert.Error(t, err)
}

func TestGenerator_AiCv(t *testing.T) {
	mock := &MockCompleter{Reply: "Here you go:\n```json\n{\"fullName\":\"Ada\",\"skills\":{\"backend\":[\"Go\"]},\"experience\":[{\"company\":\"Acme\"}]}\n```"}
	g := NewGenerator(mock)

	cv, err := g.AiCv(context.Background(), &models.JobApplication{}, &models.UserProfile{})
	require.NoError(t, err)
	assert.Equal(t, "Ada", cv.FullName)
	assert.Equal(t, []string{"Go"}, cv.Skills["backend"])
	assert.Equal(t, "Acme", cv.Experience[0].Company)
}

func TestGenerator_AiCvBadJSON(t *testing.T) {
	g := NewGenerator(&MockCompleter{Reply: "sorry, I cannot"})
	_, err := g.AiCv(context.Background(), &models.JobApplication{}, nil)
	assert.Error(t, err)
}

func TestGenerator_ProfileFromCV(t *testing.T) {
	mock := &MockCompleter{Reply: `{"fullName":"Ada","yearsOfExperience":6,"primarySkills":["Go","SQL"]}`}
	g := NewGenerator(mock)

	p, err := g.ProfileFromCV(context.Background(), "Ada Lovelace - Engineer")
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FullName)
	assert.Equal(t, 6, *p.YearsOfExperience)
	assert.Contains(t, mock.LastUser, "Ada Lovelace - Engineer")
}

func TestGenerator_PropagatesErrors(t *testing.T) {
	g := NewGenerator(&MockCompleter{Err: errors.New("timeout")})
	_, err := g.ProfileFromCV(context.Background(), "x")
	assert.ErrorContains(t, err, "timeout")
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, ExtractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":{"b":2}}`, ExtractJSON(`prefix {"a":{"b":2}} suffix`))
	assert.Equal(t, "no json", ExtractJSON("no json"))
}
