package resolver

import (
	"errors"
	"fmt"
)

// Failure reasons. Every resolution error matches exactly one via errors.Is.
var (
	ErrUnreachable = errors.New("page unreachable")
	ErrBadStatus   = errors.New("unexpected status")
	ErrNotHTML     = errors.New("response is not html")
)

// Error describes why a page could not be resolved
type Error struct {
	URL    string
	Status int   // HTTP status if a response arrived, otherwise 0
	Reason error // one of the Err* sentinels
	Err    error // underlying transport error, may be nil
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("resolve %s: %v", e.URL, e.Reason)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Reason}
	}
	return []error{e.Reason, e.Err}
}
