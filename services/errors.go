package services

import (
	"errors"

	"juris_control_go/services/tablestore"
)

// Record errors. The typed NotFound variants all satisfy
// errors.Is(err, ErrNotFound).
var (
	ErrNotFound            = errors.New("not found")
	ErrCaseNotFound        = notFound("case not found")
	ErrClientNotFound      = notFound("client not found")
	ErrInstallmentNotFound = notFound("installment not found or already paid")

	ErrParseFailure = errors.New("unparsable value")
	ErrInvalidInput = errors.New("invalid input")

	ErrIDSpaceExhausted = errors.New("no identifier left above the current maximum")

	// ErrStoreUnavailable is the table store's unavailability error.
	ErrStoreUnavailable = tablestore.ErrUnavailable
)

type notFoundError struct {
	msg string
}

func notFound(msg string) error {
	return &notFoundError{msg: msg}
}

func (e *notFoundError) Error() string {
	return e.msg
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound reports whether err is any of the NotFound errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
