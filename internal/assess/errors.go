package assess

import (
	"context"
	"errors"
	"net/http"
)

// Kind classifies an assessment failure for the HTTP layer.
type Kind string

const (
	KindInput       Kind = "input"
	KindScoring     Kind = "scoring"
	KindUnavailable Kind = "unavailable"
	KindInternal    Kind = "internal"
	// KindCanceled means the caller gave up before the assessment finished.
	KindCanceled Kind = "canceled"
)

// InternalMessage is the only text callers ever see for internal faults.
const InternalMessage = "internal server error"

// InputError reports a missing or syntactically invalid repository reference.
// The scorer is never invoked for these.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// ScoringError reports that the scorer could not evaluate a well-formed
// reference: the repository does not exist, is not accessible, lives on an
// unsupported platform, or the requested branch is missing.
type ScoringError struct {
	Message string
	Err     error
}

func (e *ScoringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ScoringError) Unwrap() error { return e.Err }

// UnavailableError reports that a collaborator of the scorer (the GitHub API)
// could not be reached or refused service (rate limits, timeouts).
type UnavailableError struct {
	Message string
	Err     error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Classification is the caller-facing view of an error.
type Classification struct {
	Kind       Kind
	StatusCode int
	// Message is safe to return to clients. For internal faults it is always
	// InternalMessage.
	Message string
}

// Classify maps any error returned by Service.Assess or a Scorer to a kind,
// an HTTP status code and a client-safe message.
func Classify(err error) Classification {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return Classification{Kind: KindInput, StatusCode: http.StatusBadRequest, Message: inputErr.Message}
	}
	var scoringErr *ScoringError
	if errors.As(err, &scoringErr) {
		return Classification{Kind: KindScoring, StatusCode: http.StatusBadRequest, Message: scoringErr.Message}
	}
	var unavailableErr *UnavailableError
	if errors.As(err, &unavailableErr) {
		return Classification{Kind: KindUnavailable, StatusCode: http.StatusServiceUnavailable, Message: unavailableErr.Message}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Classification{Kind: KindUnavailable, StatusCode: http.StatusServiceUnavailable, Message: "assessment timed out"}
	}
	if errors.Is(err, context.Canceled) {
		return Classification{Kind: KindCanceled, StatusCode: http.StatusServiceUnavailable, Message: "assessment canceled"}
	}
	return Classification{Kind: KindInternal, StatusCode: http.StatusInternalServerError, Message: InternalMessage}
}
