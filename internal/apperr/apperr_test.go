package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessages(t *testing.T) {
	assert.Equal(t, "No name parameter provided", MissingParameter("name").Message)
	assert.Equal(t, "Invalid platform: YOUTUBE", InvalidEnumValue("platform", "YOUTUBE").Message)
	assert.Equal(t, "Invalid next_token", InvalidToken(errors.New("bad")).Message)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{MissingParameter("x"), http.StatusBadRequest},
		{InvalidEnumValue("gender", "x"), http.StatusBadRequest},
		{InvalidToken(nil), http.StatusBadRequest},
		{InvalidArgument("Invalid limit: x", nil), http.StatusBadRequest},
		{NotFound("Post not found"), http.StatusNotFound},
		{Upstream("Failed to search by name", errors.New("boom")), http.StatusInternalServerError},
		{&Error{}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Status(), tt.err.Kind.String())
	}
}

func TestFrom(t *testing.T) {
	cause := errors.New("throttled")
	e := From(fmt.Errorf("query: %w", cause), "Failed to search by location")
	assert.Equal(t, KindUpstream, e.Kind)
	assert.Equal(t, "Failed to search by location", e.Message)
	assert.ErrorIs(t, e, cause)

	wrapped := fmt.Errorf("ctx: %w", NotFound("Post not found"))
	e = From(wrapped, "ignored")
	require.Equal(t, KindNotFound, e.Kind)
	assert.Equal(t, "Post not found", e.Message)
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", MissingParameter("url"))
	assert.True(t, Is(err, KindMissingParameter))
	assert.False(t, Is(err, KindNotFound))
	assert.False(t, Is(errors.New("plain"), KindUpstream))
}

func TestError_String(t *testing.T) {
	assert.Equal(t, "NotFound: Post not found", NotFound("Post not found").Error())
	assert.Equal(t, "UpstreamFailure: Failed: boom", Upstream("Failed", errors.New("boom")).Error())
}
