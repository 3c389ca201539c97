package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindInternal:     http.StatusInternalServerError,
		KindNotFound:     http.StatusNotFound,
		KindPrecondition: http.StatusBadRequest,
		KindForbidden:    http.StatusForbidden,
		KindUnauthorized: http.StatusUnauthorized,
	}
	for k, want := range cases {
		assert.Equal(t, want, k.Status(), "kind %d", k)
	}
}

func TestSentinelSurvivesWrapping(t *testing.T) {
	errPostNotFound := NotFound("No post found")

	wrapped := fmt.Errorf("loading feed: %w", errPostNotFound.Wrap(errors.New("mongo: no documents")))

	assert.ErrorIs(t, wrapped, errPostNotFound)
	assert.Equal(t, KindNotFound, KindOf(wrapped))

	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "No post found", e.Message)
	assert.Contains(t, e.Error(), "mongo: no documents")
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, errors.Is(Precondition("a"), Precondition("b")))
	assert.True(t, errors.Is(Preconditionf("user %s", "x"), Precondition("user x")))
}
