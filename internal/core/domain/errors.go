package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound             = errors.New("task not found")
	ErrInvalidTask              = errors.New("invalid task")
	ErrNoIdentity               = errors.New("no authenticated identity")
	ErrEmailNotConfirmed        = errors.New("email not confirmed")
	ErrInvalidCredentials       = errors.New("invalid login credentials")
	ErrNotificationsUnsupported = errors.New("notifications not supported")
	ErrPermissionDenied         = errors.New("notification permission denied")
)

type ErrorKind string

const (
	KindAuth   ErrorKind = "auth"
	KindData   ErrorKind = "data"
	KindExport ErrorKind = "export"
)

// Error tags a failure with the component family that produced it.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func AuthError(op string, err error) error {
	return &Error{Kind: KindAuth, Op: op, Err: err}
}

func DataError(op string, err error) error {
	return &Error{Kind: KindData, Op: op, Err: err}
}

func ExportError(op string, err error) error {
	return &Error{Kind: KindExport, Op: op, Err: err}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
