package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsAndMessage(t *testing.T) {
	cause := errors.New("xref table broken")
	err := NewContentFault("extract", cause)

	assert.True(t, errors.Is(err, ErrContentFault))
	assert.True(t, errors.Is(err, ErrExtraction))
	assert.False(t, errors.Is(err, ErrEnvironmentFault))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "content fault")
	assert.Contains(t, err.Error(), "xref table broken")

	wrapped := fmt.Errorf("parse upload: %w", err)
	assert.True(t, errors.Is(wrapped, ErrExtraction))
	assert.Equal(t, ErrContentFault, Category(wrapped))
}

func TestCategory_NonPipelineError(t *testing.T) {
	assert.Nil(t, Category(errors.New("boom")))
	assert.Nil(t, Category(nil))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid format", NewInvalidFormatError("parse", "text/plain"), http.StatusBadRequest},
		{"insufficient", NewInsufficientContentError("parse", 12), http.StatusBadRequest},
		{"content fault", NewContentFault("extract", nil), http.StatusBadRequest},
		{"environment fault", NewEnvironmentFault("extract", nil), http.StatusInternalServerError},
		{"oracle", NewOracleError("structure", "empty response", nil), http.StatusBadGateway},
		{"render", NewRenderError("render", "contact missing", nil), http.StatusInternalServerError},
		{"unauthorized", NewUnauthorizedError("login", "bad password"), http.StatusUnauthorized},
		{"deadline during extraction", NewEnvironmentFault("extract", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"deadline during structuring", NewOracleError("structure", "", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"canceled", NewEnvironmentFault("extract", context.Canceled), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"nil", nil, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestUserMessage_DistinguishesCategories(t *testing.T) {
	errs := []error{
		NewInvalidFormatError("parse", ""),
		NewInsufficientContentError("parse", 0),
		NewEnvironmentFault("extract", nil),
		NewContentFault("extract", nil),
		NewOracleError("structure", "", nil),
		NewRenderError("render", "", nil),
		NewUnauthorizedError("login", ""),
	}
	seen := map[string]bool{}
	for _, err := range errs {
		msg := UserMessage(err)
		assert.NotEmpty(t, msg)
		assert.False(t, seen[msg], "duplicate message %q", msg)
		seen[msg] = true
	}
}

func TestUserRetryable(t *testing.T) {
	assert.True(t, UserRetryable(NewOracleError("structure", "", nil)))
	assert.False(t, UserRetryable(NewContentFault("extract", nil)))
	assert.False(t, UserRetryable(NewInsufficientContentError("parse", 3)))
	assert.True(t, UserRetryable(NewEnvironmentFault("extract", context.DeadlineExceeded)))
}

func TestUserMessage_Deadline(t *testing.T) {
	err := fmt.Errorf("parse: %w", NewEnvironmentFault("extract.pdf", context.DeadlineExceeded))
	assert.Equal(t, "Processing took too long. Please try again.", UserMessage(err))
	assert.Equal(t, ErrEnvironmentFault, Category(err))
}

func TestFormatJob_Lifecycle(t *testing.T) {
	j := NewFormatJob("resume.pdf")
	assert.Equal(t, JobPending, j.Status)

	j.Advance(JobExtracting)
	assert.Equal(t, JobExtracting, j.Status)
	assert.False(t, j.UpdatedAt.Before(j.CreatedAt))

	j.Fail(errors.New("boom"))
	assert.Equal(t, JobFailed, j.Status)
	assert.Equal(t, "boom", j.Error)
}
