package models

import (
	"encoding/json"
	"strings"
)

// Status represents where an application sits in the user's pipeline.
type Status string

// Status constants define the closed status vocabulary.
// Capitalized values are the canonical casing on the wire and in comparisons.
const (
	StatusIdea         Status = "Idea"
	StatusApplied      Status = "Applied"
	StatusInterviewing Status = "Interviewing"
	StatusTechTest     Status = "Tech-Test"
	StatusOffer        Status = "Offer"
	StatusRejected     Status = "Rejected"
)

// DefaultStatus is assigned to records created without an explicit status.
const DefaultStatus = StatusIdea

// StatusAll is the collection filter value that matches every status.
const StatusAll = "all"

// statuses keeps display order.
var statuses = []Status{
	StatusIdea,
	StatusApplied,
	StatusInterviewing,
	StatusTechTest,
	StatusOffer,
	StatusRejected,
}

var statusLabels = map[Status]string{
	StatusIdea:         "Idea",
	StatusApplied:      "Applied",
	StatusInterviewing: "Interviewing",
	StatusTechTest:     "Tech Test",
	StatusOffer:        "Offer",
	StatusRejected:     "Rejected",
}

// Statuses returns the six writable statuses in display order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

// ParseStatus maps any casing of a known status (and the "tech test" label)
// to its canonical value. Unknown input is returned verbatim with ok=false.
func ParseStatus(raw string) (Status, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "-")
	for _, s := range statuses {
		if strings.ToLower(string(s)) == key {
			return s, true
		}
	}
	return Status(raw), false
}

// IsValid reports whether s is one of the six writable statuses.
func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display label; unknown statuses display verbatim.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ClassKey is the lower-case key used for styling hooks.
func (s Status) ClassKey() string {
	return strings.ToLower(string(s))
}

// UnmarshalJSON normalizes known statuses to canonical casing and keeps
// unknown values as they arrived.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*s = ""
		return nil
	}
	parsed, _ := ParseStatus(raw)
	*s = parsed
	return nil
}
