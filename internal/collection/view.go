// Package collection derives the filtered projection of the record list.
package collection

import (
	"strings"

	"github.com/blockedby/applio/internal/models"
	"github.com/blockedby/applio/internal/store"
)

// Filter returns the records matching searchTerm and statusFilter, in input order.
// The term is trimmed and matched case-insensitively as a substring of the
// title or the company. statusFilter is "all" (or empty) or an exact status.
func Filter(records []models.JobApplication, searchTerm, statusFilter string) []models.JobApplication {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	out := make([]models.JobApplication, 0, len(records))
	for _, r := range records {
		if !matchesTerm(r, term) || !matchesStatus(r, statusFilter) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesTerm(r models.JobApplication, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.JobTitle), term) ||
		strings.Contains(strings.ToLower(r.CompanyName), term)
}

func matchesStatus(r models.JobApplication, filter string) bool {
	if filter == "" || filter == models.StatusAll {
		return true
	}
	return string(r.Status) == filter
}

// Phase is what the list area should render.
type Phase string

// Projection phases. Empty is distinct from loading and from failed.
const (
	PhaseLoading Phase = "loading"
	PhaseFailed  Phase = "failed"
	PhaseEmpty   Phase = "empty"
	PhaseReady   Phase = "ready"
)

// Source is the collection state consumed by Project.
type Source struct {
	Loading bool
	Err     error
	Records []models.JobApplication
}

// FromStore reads the record store's collection snapshot.
func FromStore(snap store.Snapshot) Source {
	src := Source{Records: snap.Records}
	switch snap.State {
	case store.CollectionIdle, store.CollectionLoading:
		src.Loading = true
	case store.CollectionFailed:
		src.Err = snap.Err
	}
	return src
}

// Projection is the renderable result of a filter pass.
type Projection struct {
	Phase   Phase
	Records []models.JobApplication
	Total   int
	Err     error
}

// Project filters src and picks the phase to render.
func Project(src Source, searchTerm, statusFilter string) Projection {
	switch {
	case src.Loading:
		return Projection{Phase: PhaseLoading}
	case src.Err != nil:
		return Projection{Phase: PhaseFailed, Err: src.Err}
	}

	rows := Filter(src.Records, searchTerm, statusFilter)
	if len(rows) == 0 {
		return Projection{Phase: PhaseEmpty, Records: rows, Total: len(src.Records)}
	}
	return Projection{Phase: PhaseReady, Records: rows, Total: len(src.Records)}
}

// CountByStatus tallies records per status. Every writable status is present,
// unknown statuses are counted under their own value.
func CountByStatus(records []models.JobApplication) map[models.Status]int {
	counts := make(map[models.Status]int, 6)
	for _, s := range models.Statuses() {
		counts[s] = 0
	}
	for _, r := range records {
		counts[r.DisplayStatus()]++
	}
	return counts
}
