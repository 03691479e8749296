package collection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blockedby/applio/internal/models"
	"github.com/blockedby/applio/internal/store"
)

func sample() []models.JobApplication {
	return []models.JobApplication{
		{ID: "1", JobTitle: "Backend Engineer", CompanyName: "Acme Corp", Status: models.StatusApplied},
		{ID: "2", JobTitle: "Frontend Developer", CompanyName: "Globex", Status: models.StatusIdea},
		{ID: "3", JobTitle: "Platform Engineer", CompanyName: "ACME Labs", Status: models.StatusOffer},
		{ID: "4", JobTitle: "Data Analyst", CompanyName: "Initech", Status: "Ghosted"},
	}
}

func ids(records []models.JobApplication) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestFilter_AllAndEmptySearchReturnsEverythingInOrder(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(Filter(sample(), "", models.StatusAll)))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(Filter(sample(), "   ", "")))
}

func TestFilter_Search(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"company substring any case", "acme", []string{"1", "3"}},
		{"upper case term", "ACME", []string{"1", "3"}},
		{"title substring", "engineer", []string{"1", "3"}},
		{"title or company", "glob", []string{"2"}},
		{"trimmed", "  initech ", []string{"4"}},
		{"no match", "zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(sample(), tt.term, models.StatusAll)))
		})
	}
}

func TestFilter_Status(t *testing.T) {
	assert.Equal(t, []string{"3"}, ids(Filter(sample(), "", string(models.StatusOffer))))
	assert.Equal(t, []string{"4"}, ids(Filter(sample(), "", "Ghosted")))
	assert.Equal(t, []string{}, ids(Filter(sample(), "", "offer")), "status matches exactly")
	assert.Equal(t, []string{"1"}, ids(Filter(sample(), "acme", string(models.StatusApplied))))
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	in := sample()
	_ = Filter(in, "acme", models.StatusAll)
	assert.Equal(t, sample(), in)
}

func TestProject(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		p := Project(Source{Loading: true, Records: sample()}, "", "all")
		assert.Equal(t, PhaseLoading, p.Phase)
	})

	t.Run("failed", func(t *testing.T) {
		p := Project(Source{Err: errors.New("boom")}, "", "all")
		assert.Equal(t, PhaseFailed, p.Phase)
		assert.Error(t, p.Err)
	})

	t.Run("empty collection", func(t *testing.T) {
		p := Project(Source{}, "", "all")
		assert.Equal(t, PhaseEmpty, p.Phase)
	})

	t.Run("no results", func(t *testing.T) {
		p := Project(Source{Records: sample()}, "nothing", "all")
		assert.Equal(t, PhaseEmpty, p.Phase)
		assert.Equal(t, 4, p.Total)
	})

	t.Run("ready", func(t *testing.T) {
		p := Project(Source{Records: sample()}, "acme", "all")
		assert.Equal(t, PhaseReady, p.Phase)
		assert.Len(t, p.Records, 2)
	})
}

func TestCountByStatus(t *testing.T) {
	records := append(sample(), models.JobApplication{ID: "5", Status: ""})
	counts := CountByStatus(records)

	assert.Equal(t, 2, counts[models.StatusIdea])
	assert.Equal(t, 1, counts[models.StatusApplied])
	assert.Equal(t, 1, counts[models.StatusOffer])
	assert.Equal(t, 0, counts[models.StatusRejected])
	assert.Equal(t, 1, counts["Ghosted"])
}

func TestFromStore(t *testing.T) {
	assert.True(t, FromStore(store.Snapshot{State: store.CollectionLoading}).Loading)
	assert.True(t, FromStore(store.Snapshot{State: store.CollectionIdle}).Loading)

	failed := FromStore(store.Snapshot{State: store.CollectionFailed, Err: errors.New("x")})
	assert.Error(t, failed.Err)

	loaded := FromStore(store.Snapshot{State: store.CollectionLoaded, Records: sample()})
	assert.False(t, loaded.Loading)
	assert.Len(t, loaded.Records, 4)
}
