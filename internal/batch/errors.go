package batch

import (
	"errors"
	"fmt"
)

// Kind classifies why a fetch failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindTransport
	KindStatus
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

var (
	ErrTransport  = errors.New("batch api unreachable")
	ErrStatus     = errors.New("batch api returned non-success status")
	ErrValidation = errors.New("batch payload failed validation")
)

// FetchError describes a failed FetchRecord call. It matches the sentinel for
// its kind under errors.Is as well as the underlying cause.
type FetchError struct {
	Kind   Kind
	ID     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("fetch batch %q: status %d", e.ID, e.Status)
	default:
		if e.Err == nil {
			return fmt.Sprintf("fetch batch %q: %s failure", e.ID, e.Kind)
		}
		return fmt.Sprintf("fetch batch %q: %v", e.ID, e.Err)
	}
}

func (e *FetchError) Unwrap() []error {
	var sentinel error
	switch e.Kind {
	case KindTransport:
		sentinel = ErrTransport
	case KindStatus:
		sentinel = ErrStatus
	case KindValidation:
		sentinel = ErrValidation
	}
	out := make([]error, 0, 2)
	if sentinel != nil {
		out = append(out, sentinel)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// KindOf extracts the failure kind from err, or KindUnknown.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	switch {
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrStatus):
		return KindStatus
	case errors.Is(err, ErrValidation):
		return KindValidation
	}
	return KindUnknown
}
