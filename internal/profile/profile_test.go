package profile

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockedby/applio/internal/editor"
	"github.com/blockedby/applio/internal/errs"
	"github.com/blockedby/applio/internal/models"
)

// MockRemote is an in-memory profile backend.
type MockRemote struct {
	Stored    *models.UserProfile
	Extracted *models.UserProfile
	LoadErr   error
	SaveErr   error
	Uploaded  string
}

func (m *MockRemote) GetProfile(context.Context) (*models.UserProfile, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Stored == nil {
		return nil, &errs.NotFoundError{Op: "load profile", Resource: "profile"}
	}
	return m.Stored.Clone(), nil
}

func (m *MockRemote) SaveProfile(_ context.Context, p *models.UserProfile) (*models.UserProfile, error) {
	if m.SaveErr != nil {
		return nil, m.SaveErr
	}
	m.Stored = p.Clone()
	return p.Clone(), nil
}

func (m *MockRemote) UploadCV(_ context.Context, _ string, r io.Reader) (*models.UserProfile, error) {
	data, _ := io.ReadAll(r)
	m.Uploaded = string(data)
	return m.Extracted.Clone(), nil
}

func intPtr(v int) *int { return &v }

func TestLoad_NotFoundIsEmptyForm(t *testing.T) {
	s := New(&MockRemote{})

	p, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.UserProfile{}, p)
	assert.False(t, s.Exists())
}

func TestLoad_OtherErrorsSurface(t *testing.T) {
	s := New(&MockRemote{LoadErr: &errs.RemoteError{Message: "Database unavailable"}})

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Database unavailable", errs.UserMessage(err, ""))
}

func TestSave(t *testing.T) {
	remote := &MockRemote{}
	s := New(remote)

	s.Apply(
		editor.SetProfileField(models.FieldFullName, "Ada"),
		editor.SetPrimarySkills("Go,  SQL , "),
	)
	require.NoError(t, s.SetYearsOfExperience(" 7 "))

	saved, err := s.Save(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Ada", saved.FullName)
	assert.Equal(t, []string{"Go", "SQL"}, remote.Stored.PrimarySkills)
	assert.Equal(t, 7, *remote.Stored.YearsOfExperience)
	assert.True(t, s.Exists())
}

func TestSetYearsOfExperience(t *testing.T) {
	s := New(&MockRemote{})

	assert.True(t, errs.IsValidation(s.SetYearsOfExperience("-1")))
	assert.True(t, errs.IsValidation(s.SetYearsOfExperience("five")))

	require.NoError(t, s.SetYearsOfExperience("3"))
	assert.Equal(t, 3, *s.Draft().YearsOfExperience)

	require.NoError(t, s.SetYearsOfExperience(""))
	assert.Nil(t, s.Draft().YearsOfExperience)
}

func TestMerge(t *testing.T) {
	prev := &models.UserProfile{
		FullName:          "Ada",
		Headline:          "Engineer",
		Location:          "London",
		YearsOfExperience: intPtr(4),
		PrimarySkills:     []string{"Go"},
		Links:             models.Links{GitHub: "https://github.com/ada"},
		Experience:        []models.Experience{{Company: "Old"}},
		Interests:         []string{"chess"},
	}
	extracted := &models.UserProfile{
		FullName:          "Ada Lovelace",
		Location:          "  ",
		YearsOfExperience: intPtr(0),
		Links:             models.Links{LinkedIn: "https://linkedin.com/in/ada"},
		Experience:        []models.Experience{{Company: "Acme"}, {Company: "Globex"}},
	}

	got := Merge(prev, extracted)

	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.Equal(t, "Engineer", got.Headline)
	assert.Equal(t, "London", got.Location)
	assert.Equal(t, 4, *got.YearsOfExperience)
	assert.Equal(t, []string{"Go"}, got.PrimarySkills)
	assert.Equal(t, "https://github.com/ada", got.Links.GitHub)
	assert.Equal(t, "https://linkedin.com/in/ada", got.Links.LinkedIn)
	assert.Equal(t, []models.Experience{{Company: "Acme"}, {Company: "Globex"}}, got.Experience)
	assert.Equal(t, []models.Education{}, got.Education)
	assert.Equal(t, []string{"chess"}, got.Interests)

	assert.Equal(t, "Old", prev.Experience[0].Company, "prev must not change")
}

func TestUseCV(t *testing.T) {
	remote := &MockRemote{Extracted: &models.UserProfile{
		Headline:   "Staff Engineer",
		Experience: []models.Experience{{Company: "Acme"}},
	}}
	s := New(remote)
	s.Apply(editor.SetProfileField(models.FieldFullName, "Ada"))

	merged, err := s.UseCV(context.Background(), "cv.pdf", strings.NewReader("resume body"))
	require.NoError(t, err)

	assert.Equal(t, "resume body", remote.Uploaded)
	assert.Equal(t, "Ada", merged.FullName)
	assert.Equal(t, "Staff Engineer", s.Draft().Headline)
	assert.Len(t, s.Draft().Experience, 1)
	assert.False(t, s.ExtractingCV())
}

func TestDraftEditsDoNotLeak(t *testing.T) {
	s := New(&MockRemote{Stored: &models.UserProfile{PrimarySkills: []string{"Go"}}})
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	d := s.Draft()
	d.PrimarySkills[0] = "Rust"
	assert.Equal(t, "Go", s.Draft().PrimarySkills[0])
}
