package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Base errors, one per category. Extraction faults wrap ErrExtraction so
// errors.Is(err, ErrExtraction) holds for both of them.
var (
	ErrInvalidFormat       = errors.New("invalid format")
	ErrInsufficientContent = errors.New("insufficient content")
	ErrExtraction          = errors.New("extraction failed")
	ErrEnvironmentFault    = fmt.Errorf("%w: environment fault", ErrExtraction)
	ErrContentFault        = fmt.Errorf("%w: content fault", ErrExtraction)
	ErrOracle              = errors.New("oracle failed")
	ErrRender              = errors.New("render failed")
	ErrUnauthorized        = errors.New("unauthorized")
)

// Error is a pipeline failure: the category it belongs to (BaseErr), the
// operation that failed and an optional underlying cause.
type Error struct {
	Op      string
	BaseErr error
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s (op: %s)", e.BaseErr, e.Op)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the category and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.BaseErr}
	}
	return []error{e.BaseErr, e.Err}
}

func newError(base error, op, detail string, cause error) error {
	return &Error{Op: op, BaseErr: base, Detail: detail, Err: cause}
}

func NewInvalidFormatError(op, detail string) error {
	return newError(ErrInvalidFormat, op, detail, nil)
}

func NewInsufficientContentError(op string, size int) error {
	return newError(ErrInsufficientContent, op, fmt.Sprintf("%d bytes of usable content", size), nil)
}

// NewEnvironmentFault reports an extraction failure only an operator can fix.
func NewEnvironmentFault(op string, cause error) error {
	return newError(ErrEnvironmentFault, op, "", cause)
}

// NewContentFault reports an extraction failure caused by the document itself.
func NewContentFault(op string, cause error) error {
	return newError(ErrContentFault, op, "", cause)
}

func NewOracleError(op, detail string, cause error) error {
	return newError(ErrOracle, op, detail, cause)
}

func NewRenderError(op, detail string, cause error) error {
	return newError(ErrRender, op, detail, cause)
}

func NewUnauthorizedError(op, detail string) error {
	return newError(ErrUnauthorized, op, detail, nil)
}

// Category returns the base error err belongs to, or nil when err is not a
// pipeline error.
func Category(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.BaseErr
	}
	return nil
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrInvalidFormat), errors.Is(err, ErrInsufficientContent), errors.Is(err, ErrContentFault):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrOracle):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage is the human-readable text shown to the end user. It names the
// category without leaking internal detail.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "Processing took too long. Please try again."
	case errors.Is(err, ErrInvalidFormat):
		return "File must be a PDF"
	case errors.Is(err, ErrInsufficientContent):
		return "Could not extract sufficient text from the PDF. The file may be image-based or empty."
	case errors.Is(err, ErrEnvironmentFault):
		return "PDF parsing configuration error. Please check server logs."
	case errors.Is(err, ErrContentFault):
		return "Failed to read PDF file. The file may be corrupted or password-protected."
	case errors.Is(err, ErrOracle):
		return "The AI service could not structure this resume. Please try again."
	case errors.Is(err, ErrRender):
		return "Failed to generate PDF"
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized"
	default:
		return "An unexpected error occurred"
	}
}

// UserRetryable reports whether re-submitting the same request could succeed.
// Oracle output is non-deterministic and deadlines depend on load, so a
// resubmission may work; every other category fails the same way until the
// input or the deployment changes.
func UserRetryable(err error) bool {
	return errors.Is(err, ErrOracle) || errors.Is(err, context.DeadlineExceeded)
}
