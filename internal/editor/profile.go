package editor

import "github.com/blockedby/applio/internal/models"

// ProfileEdit mutates a local profile form.
type ProfileEdit func(*models.UserProfile)

// profile scalar and link field names
const (
	FieldProfileLocation = "location"
	FieldLinkedIn        = "linkedin"
	FieldGitHub          = "github"
	FieldPortfolio       = "portfolio"
)

// SetProfileField sets a scalar or link field by its wire name.
// Unknown names are ignored.
func SetProfileField(field, value string) ProfileEdit {
	return func(p *models.UserProfile) {
		switch field {
		case models.FieldFullName:
			p.FullName = value
		case models.FieldHeadline:
			p.Headline = value
		case models.FieldSummary:
			p.Summary = value
		case FieldProfileLocation:
			p.Location = value
		case FieldLinkedIn:
			p.Links.LinkedIn = value
		case FieldGitHub:
			p.Links.GitHub = value
		case FieldPortfolio:
			p.Links.Portfolio = value
		}
	}
}

// SetPrimarySkills parses the comma-joined display form.
func SetPrimarySkills(text string) ProfileEdit {
	return func(p *models.UserProfile) { p.PrimarySkills = SplitComma(text) }
}

// SetProfileInterests replaces interests from multi-line text.
func SetProfileInterests(text string) ProfileEdit {
	return func(p *models.UserProfile) { p.Interests = FromLines(text) }
}

// AddProfileExperience prepends an empty role.
func AddProfileExperience() ProfileEdit {
	return func(p *models.UserProfile) { p.Experience = InsertFront(p.Experience) }
}

// UpdateProfileExperience sets one field of the role at index.
func UpdateProfileExperience(index int, field, value string) ProfileEdit {
	return func(p *models.UserProfile) {
		p.Experience = UpdateField(p.Experience, index, field, value)
	}
}

// RemoveProfileExperience drops the role at index.
func RemoveProfileExperience(index int) ProfileEdit {
	return func(p *models.UserProfile) { p.Experience = RemoveAt(p.Experience, index) }
}

// AddProfileEducation prepends an empty degree.
func AddProfileEducation() ProfileEdit {
	return func(p *models.UserProfile) { p.Education = InsertFront(p.Education) }
}

// UpdateProfileEducation sets one field of the degree at index.
func UpdateProfileEducation(index int, field, value string) ProfileEdit {
	return func(p *models.UserProfile) {
		p.Education = UpdateField(p.Education, index, field, value)
	}
}

// RemoveProfileEducation drops the degree at index.
func RemoveProfileEducation(index int) ProfileEdit {
	return func(p *models.UserProfile) { p.Education = RemoveAt(p.Education, index) }
}

// AddProfileProject prepends an empty project.
func AddProfileProject() ProfileEdit {
	return func(p *models.UserProfile) { p.Projects = InsertFront(p.Projects) }
}

// UpdateProfileProject sets name or tech of the project at index.
func UpdateProfileProject(index int, field, value string) ProfileEdit {
	return func(p *models.UserProfile) {
		p.Projects = UpdateField(p.Projects, index, field, value)
	}
}

// RemoveProfileProject drops the project at index.
func RemoveProfileProject(index int) ProfileEdit {
	return func(p *models.UserProfile) { p.Projects = RemoveAt(p.Projects, index) }
}
