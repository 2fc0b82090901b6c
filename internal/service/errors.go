package service

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the services. Handlers translate these to HTTP
// status codes; everything else is a 500.
var (
	// ErrNotFound is returned when the requested incident does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for malformed input: missing required
	// fields, unknown enum values, unparseable bbox.
	ErrInvalidInput = errors.New("invalid input")
)

// RejectionError is a report that was well-formed but refused by the
// validation funnel. Reason is one of the model.Reason* constants; Detail is
// the layer-specific explanation (e.g. "foreign_keyword:ukraina").
type RejectionError struct {
	Reason string
	Detail string
}

func (e *RejectionError) Error() string {
	if e.Detail == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

// Reject builds a RejectionError.
func Reject(reason, detail string) *RejectionError {
	return &RejectionError{Reason: reason, Detail: detail}
}

// AsRejection unwraps err into a RejectionError when it is one.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
