package pipeline

import (
	"errors"

	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

// Kind classifies pipeline failures for adapter layers to map onto
// transport status codes.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindValidation          Kind = "validation"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindInternal            Kind = "internal"
)

// Error is a pipeline failure tagged with its kind. The wrapped cause
// stays reachable through errors.Is/As.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// wrapError tags err with the kind derived from the domain sentinels.
func wrapError(err error) *Error {
	return &Error{
		Kind:    kindFromDomain(err),
		Message: err.Error(),
		cause:   err,
	}
}

// KindOf extracts the failure kind from any error returned by the
// pipeline. Non-pipeline errors classify as internal.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return kindFromDomain(err)
}

func kindFromDomain(err error) Kind {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return KindNotFound
	case errors.Is(err, domain.ErrValidation):
		return KindValidation
	case errors.Is(err, domain.ErrUpstream):
		return KindUpstreamUnavailable
	default:
		return KindInternal
	}
}
