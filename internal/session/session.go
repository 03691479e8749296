// Package session holds the signed-in user's credential for the lifetime of
// a session. It replaces ambient globals with an explicit provider that is
// created at sign-in and cleared at sign-out.
package session

import (
	"strings"
	"sync"
)

// User identifies the signed-in account. Only the username is displayed.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// Provider supplies the bearer token to the gateway.
type Provider struct {
	mu    sync.RWMutex
	token string
	user  *User
}

// New creates an empty provider (signed out).
func New() *Provider {
	return &Provider{}
}

// Start begins a session. An empty token leaves the provider signed out.
func (p *Provider) Start(token string, user *User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = strings.TrimSpace(token)
	p.user = user
}

// End clears the credential and the user.
func (p *Provider) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	p.user = nil
}

// Token returns the opaque bearer credential, if any.
func (p *Provider) Token() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token, p.token != ""
}

// User returns the signed-in user or nil.
func (p *Provider) User() *User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.user == nil {
		return nil
	}
	u := *p.user
	return &u
}

// Active reports whether a credential is present.
func (p *Provider) Active() bool {
	_, ok := p.Token()
	return ok
}
