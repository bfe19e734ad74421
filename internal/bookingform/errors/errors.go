package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	// ErrStatusRequired marks a caller defect: a save rule set was requested
	// without knowing the booking's status.
	ErrStatusRequired = errors.New("booking status is required to select the save rule set")

	ErrUnknownIntent = errors.New("unknown booking intent")

	ErrInvalidTimeZone = errors.New("invalid time zone hint")

	ErrSubmitRejected = errors.New("submit endpoint rejected the booking")
)
