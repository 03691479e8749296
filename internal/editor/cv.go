package editor

import "github.com/blockedby/applio/internal/models"

// CVEdit mutates a local CV draft. Edits never contact the remote store.
type CVEdit func(*models.AiCvData)

// SetCVScalar sets fullName, headline or summary.
func SetCVScalar(field, value string) CVEdit {
	return func(cv *models.AiCvData) { cv.SetScalar(field, value) }
}

// SetSkills replaces one skill category from multi-line text.
func SetSkills(category, text string) CVEdit {
	return func(cv *models.AiCvData) {
		cv.Skills = UpdateSkillCategory(cv.Skills, category, text)
	}
}

// SetInterests replaces the interests list from multi-line text.
func SetInterests(text string) CVEdit {
	return func(cv *models.AiCvData) { cv.Interests = FromLines(text) }
}

// AddExperience prepends an empty role.
func AddExperience() CVEdit {
	return func(cv *models.AiCvData) { cv.Experience = InsertFront(cv.Experience) }
}

// UpdateExperience sets one field of the role at index.
func UpdateExperience(index int, field, value string) CVEdit {
	return func(cv *models.AiCvData) {
		cv.Experience = UpdateField(cv.Experience, index, field, value)
	}
}

// SetExperienceBullets replaces the bullets of the role at index.
func SetExperienceBullets(index int, text string) CVEdit {
	return func(cv *models.AiCvData) {
		cv.Experience = UpdateAt(cv.Experience, index, func(e *models.Experience) {
			e.Bullets = FromLines(text)
		})
	}
}

// RemoveExperience drops the role at index.
func RemoveExperience(index int) CVEdit {
	return func(cv *models.AiCvData) { cv.Experience = RemoveAt(cv.Experience, index) }
}

// AddEducation prepends an empty degree.
func AddEducation() CVEdit {
	return func(cv *models.AiCvData) { cv.Education = InsertFront(cv.Education) }
}

// UpdateEducation sets one field of the degree at index.
func UpdateEducation(index int, field, value string) CVEdit {
	return func(cv *models.AiCvData) {
		cv.Education = UpdateField(cv.Education, index, field, value)
	}
}

// RemoveEducation drops the degree at index.
func RemoveEducation(index int) CVEdit {
	return func(cv *models.AiCvData) { cv.Education = RemoveAt(cv.Education, index) }
}

// AddProject prepends an empty project.
func AddProject() CVEdit {
	return func(cv *models.AiCvData) { cv.Projects = InsertFront(cv.Projects) }
}

// UpdateProject sets name or tech of the project at index.
func UpdateProject(index int, field, value string) CVEdit {
	return func(cv *models.AiCvData) {
		cv.Projects = UpdateField(cv.Projects, index, field, value)
	}
}

// SetProjectBullets replaces the bullets of the project at index.
func SetProjectBullets(index int, text string) CVEdit {
	return func(cv *models.AiCvData) {
		cv.Projects = UpdateAt(cv.Projects, index, func(p *models.Project) {
			p.Bullets = FromLines(text)
		})
	}
}

// RemoveProject drops the project at index.
func RemoveProject(index int) CVEdit {
	return func(cv *models.AiCvData) { cv.Projects = RemoveAt(cv.Projects, index) }
}
