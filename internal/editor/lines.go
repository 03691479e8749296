package editor

import (
	"strings"

	"github.com/blockedby/applio/internal/models"
)

// ToLines joins a list for display in a multi-line text control.
func ToLines(list []string) string {
	return strings.Join(list, "\n")
}

// FromLines splits text on newlines, trims every entry and drops blanks.
// FromLines(ToLines(FromLines(x))) == FromLines(x) for any x.
func FromLines(text string) []string {
	return splitClean(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// JoinComma renders a list in its comma-joined display form.
func JoinComma(list []string) string {
	return strings.Join(list, ", ")
}

// SplitComma parses a comma-joined list with the same trimming rules as FromLines.
func SplitComma(text string) []string {
	return splitClean(text, ",")
}

func splitClean(text, sep string) []string {
	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// UpdateSkillCategory assigns FromLines(text) to category and leaves the
// other categories untouched. The input map is not modified.
func UpdateSkillCategory(skills models.Skills, category, text string) models.Skills {
	out := make(models.Skills, len(skills)+1)
	for k, v := range skills {
		out[k] = v
	}
	out[category] = FromLines(text)
	return out
}
