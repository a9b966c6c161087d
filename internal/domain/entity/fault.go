package entity

import (
	"context"
	"errors"
)

// Kind classifies a catalog failure so the transport layer can pick a status.
type Kind string

const (
	KindInvalid     Kind = "invalid"
	KindNotFound    Kind = "not_found"
	KindUnavailable Kind = "unavailable"
	KindInternal    Kind = "internal"
)

// Fault is an error raised by a catalog operation.
type Fault struct {
	Kind    Kind
	Op      string // The catalog operation that failed, e.g. "browse".
	Message string
	Err     error
}

func NewFault(kind Kind, op, message string, err error) *Fault {
	return &Fault{Kind: kind, Op: op, Message: message, Err: err}
}

func (f *Fault) Error() string {
	if f.Message != "" {
		return f.Message
	}
	if f.Err != nil {
		return f.Err.Error()
	}
	return string(f.Kind)
}

func (f *Fault) Unwrap() error { return f.Err }

// Get the kind of the given error. Unclassified errors are internal.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindUnavailable
	}
	return KindInternal
}
