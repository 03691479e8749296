package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/blockedby/applio/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveLoad_KeepsOrder(t *testing.T) {
	db := openTestDB(t)

	records := []models.JobApplication{
		{ID: "b", JobTitle: "Backend", CompanyName: "Acme", Status: models.StatusApplied,
			Notes: []models.Note{{ID: "n1", Text: "called"}}},
		{ID: "a", JobTitle: "Frontend", Status: models.StatusIdea},
	}
	require.NoError(t, db.Save(records))

	got, fetchedAt, err := db.Load()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "called", got[0].Notes[0].Text)
	assert.False(t, fetchedAt.IsZero())
}

func TestSave_ReplacesSnapshot(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Save([]models.JobApplication{{ID: "1"}, {ID: "2"}}))
	require.NoError(t, db.Save([]models.JobApplication{{ID: "3"}}))

	got, _, err := db.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestLoad_Empty(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Save(nil))
	got, fetchedAt, err := db.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, fetchedAt.IsZero())
}

func TestGet(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Save([]models.JobApplication{{ID: "x", JobTitle: "SRE"}}))

	r, err := db.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "SRE", r.JobTitle)

	_, err = db.Get("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
