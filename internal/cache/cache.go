// Package cache keeps a local sqlite snapshot of the last fetched collection
// so the CLI can list applications offline.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/blockedby/applio/internal/models"
)

// Entry is one cached record row.
type Entry struct {
	ID          string `gorm:"primaryKey"`
	Position    int    `gorm:"index"`
	Status      string `gorm:"index"`
	JobTitle    string
	CompanyName string
	Payload     []byte
	FetchedAt   time.Time
}

// TableName pins the table name.
func (Entry) TableName() string {
	return "cached_applications"
}

// DB wraps the GORM handle of the snapshot database.
type DB struct {
	GORM *gorm.DB
}

// Open creates (or opens) the snapshot database at path.
// ":memory:" is accepted for tests.
func Open(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	if err := gormDB.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate cache: %w", err)
	}

	return &DB{GORM: gormDB}, nil
}

// Close releases the underlying connection.
func (db *DB) Close() error {
	sqlDB, err := db.GORM.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save replaces the snapshot with records, keeping their order.
func (db *DB) Save(records []models.JobApplication) error {
	now := time.Now().UTC()

	entries := make([]Entry, 0, len(records))
	for i, r := range records {
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal record %s: %w", r.ID, err)
		}
		entries = append(entries, Entry{
			ID:          r.ID,
			Position:    i,
			Status:      string(r.Status),
			JobTitle:    r.JobTitle,
			CompanyName: r.CompanyName,
			Payload:     payload,
			FetchedAt:   now,
		})
	}

	return db.GORM.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Entry{}).Error; err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}
		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		return nil
	})
}

// Load returns the snapshot in its saved order and when it was taken.
// An empty snapshot returns a zero time.
func (db *DB) Load() ([]models.JobApplication, time.Time, error) {
	var entries []Entry
	if err := db.GORM.Order("position").Find(&entries).Error; err != nil {
		return nil, time.Time{}, fmt.Errorf("read snapshot: %w", err)
	}

	records := make([]models.JobApplication, 0, len(entries))
	var fetchedAt time.Time
	for _, e := range entries {
		var r models.JobApplication
		if err := json.Unmarshal(e.Payload, &r); err != nil {
			return nil, time.Time{}, fmt.Errorf("decode record %s: %w", e.ID, err)
		}
		records = append(records, r)
		fetchedAt = e.FetchedAt
	}
	return records, fetchedAt, nil
}

// Get returns one cached record.
func (db *DB) Get(id string) (*models.JobApplication, error) {
	var e Entry
	if err := db.GORM.First(&e, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("find cached record %s: %w", id, err)
	}

	var r models.JobApplication
	if err := json.Unmarshal(e.Payload, &r); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	return &r, nil
}
