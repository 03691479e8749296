package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blockedby/applio/internal/models"
)

func TestFromLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"only blanks", "\n \n\t\n", []string{}},
		{"trims entries", "  Go  \n Rust", []string{"Go", "Rust"}},
		{"drops blank lines keeps order", "c\n\nb\n   \na", []string{"c", "b", "a"}},
		{"windows line endings", "one\r\ntwo\r\n", []string{"one", "two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromLines(tt.in))
		})
	}
}

func TestFromLines_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"\n\n",
		"  leading\ntrailing  \n\n middle \n",
		"x\r\ny\r\n\r\nz",
		"tab\tinside\n\t\n",
		"ünïcode ✓\n  \n😀",
	}
	for _, in := range inputs {
		once := FromLines(in)
		twice := FromLines(ToLines(once))
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestSplitComma(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL", "Kubernetes"}, SplitComma(" Go, SQL ,, Kubernetes,"))
	assert.Equal(t, []string{}, SplitComma(""))
	assert.Equal(t, "Go, SQL", JoinComma([]string{"Go", "SQL"}))
}

func TestUpdateSkillCategory(t *testing.T) {
	in := models.Skills{
		"frontend": {"React"},
		"backend":  {"Go"},
	}

	got := UpdateSkillCategory(in, "backend", "Go\n\n Postgres ")

	assert.Equal(t, []string{"Go", "Postgres"}, got["backend"])
	assert.Equal(t, []string{"React"}, got["frontend"])
	assert.Equal(t, []string{"Go"}, in["backend"], "input must not change")
}

func TestUpdateSkillCategory_NilMap(t *testing.T) {
	got := UpdateSkillCategory(nil, "tools", "git")
	assert.Equal(t, models.Skills{"tools": {"git"}}, got)
}
