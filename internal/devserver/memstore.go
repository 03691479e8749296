package devserver

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blockedby/applio/internal/models"
)

var errNoApplication = errors.New("job application not found")

// memStore keeps records and profiles per user, newest record first.
type memStore struct {
	mu       sync.Mutex
	apps     map[string][]*models.JobApplication
	profiles map[string]*models.UserProfile
	now      func() time.Time
}

func newMemStore() *memStore {
	return &memStore{
		apps:     make(map[string][]*models.JobApplication),
		profiles: make(map[string]*models.UserProfile),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (m *memStore) create(user string, app *models.JobApplication) *models.JobApplication {
	m.mu.Lock()
	defer m.mu.Unlock()

	app.ID = uuid.NewString()
	app.CreatedAt = m.now()
	app.UpdatedAt = app.CreatedAt
	if app.Notes == nil {
		app.Notes = []models.Note{}
	}

	m.apps[user] = append([]*models.JobApplication{app}, m.apps[user]...)
	return app.Clone()
}

func (m *memStore) list(user string, status models.Status) []models.JobApplication {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.JobApplication, 0, len(m.apps[user]))
	for _, a := range m.apps[user] {
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, *a.Clone())
	}
	return out
}

func (m *memStore) get(user, id string) (*models.JobApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.apps[user] {
		if a.ID == id {
			return a.Clone(), nil
		}
	}
	return nil, errNoApplication
}

// update applies fn to the stored record. Errors from fn leave it unchanged.
func (m *memStore) update(user, id string, fn func(*models.JobApplication) error) (*models.JobApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, a := range m.apps[user] {
		if a.ID != id {
			continue
		}
		next := a.Clone()
		if err := fn(next); err != nil {
			return nil, err
		}
		next.UpdatedAt = m.now()
		m.apps[user][i] = next
		return next.Clone(), nil
	}
	return nil, errNoApplication
}

func (m *memStore) remove(user, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	apps := m.apps[user]
	for i, a := range apps {
		if a.ID == id {
			m.apps[user] = append(apps[:i:i], apps[i+1:]...)
			return nil
		}
	}
	return errNoApplication
}

func (m *memStore) profile(user string) (*models.UserProfile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[user]
	return p.Clone(), ok
}

func (m *memStore) saveProfile(user string, p *models.UserProfile) *models.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profiles[user] = p.Clone()
	return p.Clone()
}
