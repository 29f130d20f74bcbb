package visit

import (
	"errors"
	"fmt"
)

// Rejection kinds. Every error returned by Service wraps one of these.
var (
	ErrInvalidFormat         = errors.New("invalid format")
	ErrInvalidPatientID      = fmt.Errorf("%w: patient id", ErrInvalidFormat)
	ErrOutsideOperatingHours = errors.New("outside operating hours")
	ErrImpossibleDate        = errors.New("impossible date")
	ErrUnknownDoctor         = errors.New("unknown doctor")
	ErrIDTaken               = errors.New("visit id taken")
	ErrDuplicateAppointment  = errors.New("duplicate appointment")
	ErrSlotTaken             = errors.New("slot taken")
	ErrNotFound              = errors.New("not found")
	ErrNoMatch               = errors.New("no match")
)

// Error is a rejected request. Kind is one of the Err* values above and
// Message is the text shown to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func reject(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err rejects the submitted data itself rather
// than its relation to stored visits.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrOutsideOperatingHours) ||
		errors.Is(err, ErrImpossibleDate) ||
		errors.Is(err, ErrUnknownDoctor)
}
