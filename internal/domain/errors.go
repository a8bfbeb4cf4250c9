package domain

import "errors"

var (
	ErrAccountNotFound          = errors.New("account not found")
	ErrDuplicateEmail           = errors.New("account with this email already exists")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrNotAuthenticated         = errors.New("no active session")
	ErrMissingField             = errors.New("missing required field")
	ErrInvalidField             = errors.New("field is not valid UTF-8")
	ErrInvalidFrequency         = errors.New("invalid medicine frequency")
	ErrInvalidScheduledTime     = errors.New("invalid scheduled time")
	ErrDecodeFailure            = errors.New("decode stored value")
	ErrUnsupportedSchemaVersion = errors.New("unsupported schema version")
)
