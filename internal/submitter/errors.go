package submitter

import "errors"

// Sentinel kinds for submitter errors.
var (
	ErrNoPayload      = errors.New("exactly one of -data, -symbol or -file is required")
	ErrInvalidPayload = errors.New("invalid payload")
)
