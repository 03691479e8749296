package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blockedby/applio/internal/models"
)

func apply(cv *models.AiCvData, edits ...CVEdit) {
	for _, e := range edits {
		e(cv)
	}
}

func TestCVEdits(t *testing.T) {
	cv := &models.AiCvData{FullName: "Ada"}

	apply(cv,
		SetCVScalar(models.FieldHeadline, "Engineer"),
		AddExperience(),
		UpdateExperience(0, models.FieldCompany, "Acme"),
		SetExperienceBullets(0, "built things\n\nshipped things"),
		AddExperience(),
		UpdateExperience(0, models.FieldCompany, "Globex"),
		AddProject(),
		UpdateProject(0, models.FieldTech, "Go"),
		SetProjectBullets(0, "one"),
		AddEducation(),
		UpdateEducation(0, models.FieldDegree, "BSc"),
		SetInterests("chess\n climbing "),
		SetSkills("backend", "Go"),
	)

	assert.Equal(t, "Engineer", cv.Headline)
	assert.Len(t, cv.Experience, 2)
	assert.Equal(t, "Globex", cv.Experience[0].Company)
	assert.Equal(t, "Acme", cv.Experience[1].Company)
	assert.Equal(t, []string{"built things", "shipped things"}, cv.Experience[1].Bullets)
	assert.Equal(t, "Go", cv.Projects[0].Tech)
	assert.Equal(t, []string{"one"}, cv.Projects[0].Bullets)
	assert.Equal(t, "BSc", cv.Education[0].Degree)
	assert.Equal(t, []string{"chess", "climbing"}, cv.Interests)
	assert.Equal(t, []string{"Go"}, cv.Skills["backend"])

	apply(cv, RemoveExperience(0), RemoveEducation(3), RemoveProject(0))

	assert.Len(t, cv.Experience, 1)
	assert.Equal(t, "Acme", cv.Experience[0].Company)
	assert.Len(t, cv.Education, 1)
	assert.Empty(t, cv.Projects)
}

func TestProfileEdits(t *testing.T) {
	p := &models.UserProfile{}

	for _, e := range []ProfileEdit{
		SetProfileField(models.FieldFullName, "Ada"),
		SetProfileField(FieldProfileLocation, "London"),
		SetProfileField(FieldGitHub, "https://github.com/ada"),
		SetProfileField("unknown", "ignored"),
		SetPrimarySkills("Go, SQL"),
		SetProfileInterests("a\nb"),
		AddProfileExperience(),
		UpdateProfileExperience(0, models.FieldJobTitle, "Dev"),
		AddProfileEducation(),
		UpdateProfileEducation(0, models.FieldInstitution, "MIT"),
		AddProfileProject(),
		UpdateProfileProject(0, models.FieldName, "applio"),
		RemoveProfileProject(7),
	} {
		e(p)
	}

	assert.Equal(t, "Ada", p.FullName)
	assert.Equal(t, "London", p.Location)
	assert.Equal(t, "https://github.com/ada", p.Links.GitHub)
	assert.Equal(t, []string{"Go", "SQL"}, p.PrimarySkills)
	assert.Equal(t, []string{"a", "b"}, p.Interests)
	assert.Equal(t, "Dev", p.Experience[0].JobTitle)
	assert.Equal(t, "MIT", p.Education[0].Institution)
	assert.Equal(t, "applio", p.Projects[0].Name)

	RemoveProfileExperience(0)(p)
	RemoveProfileEducation(0)(p)
	assert.Empty(t, p.Experience)
	assert.Empty(t, p.Education)
}
