package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvider_Lifecycle(t *testing.T) {
	p := New()
	_, ok := p.Token()
	assert.False(t, ok)
	assert.False(t, p.Active())
	assert.Nil(t, p.User())

	p.Start("  tok  ", &User{ID: "1", Username: "ada"})
	tok, ok := p.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok", tok)
	assert.Equal(t, "ada", p.User().Username)

	p.End()
	assert.False(t, p.Active())
	assert.Nil(t, p.User())
}

func TestProvider_BlankTokenStaysSignedOut(t *testing.T) {
	p := New()
	p.Start("   ", nil)
	assert.False(t, p.Active())
}

func TestProvider_UserIsACopy(t *testing.T) {
	p := New()
	p.Start("tok", &User{Username: "ada"})

	u := p.User()
	u.Username = "mallory"
	assert.Equal(t, "ada", p.User().Username)
}
