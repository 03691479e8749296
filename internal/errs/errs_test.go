package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicates_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("save cover letter: %w", &RemoteError{Op: "save", Status: 400, Message: "Too long"})

	assert.True(t, IsRemote(wrapped))
	assert.False(t, IsProtocol(wrapped))
	assert.True(t, IsAuth(fmt.Errorf("x: %w", &AuthError{Op: "get", Reason: "no token"})))
	assert.True(t, IsNotFound(&NotFoundError{Op: "profile", Resource: "profile"}))
	assert.True(t, IsProtocol(&ProtocolError{Op: "get", Status: 200, Reason: "not json"}))
	assert.True(t, IsValidation(Validation("note", "Note cannot be empty")))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"remote verbatim", &RemoteError{Message: "Job not found"}, "Job not found"},
		{"remote without message", &RemoteError{}, "fallback"},
		{"validation", Validation("coverLetter", "Cover letter is empty"), "Cover letter is empty"},
		{"auth", &AuthError{Op: "x", Reason: "No auth token found - please sign in again."}, "No auth token found - please sign in again."},
		{"in flight", fmt.Errorf("generate: %w", ErrInFlight), "Please wait for the current request to finish"},
		{"protocol", &ProtocolError{Reason: "Server did not return JSON"}, "fallback"},
		{"plain", errors.New("boom"), "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err, "fallback"))
		})
	}
}
