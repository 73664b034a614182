package apperrors

import "errors"

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrNotFound                = errors.New("not found")
	ErrMalformedTimeFormat     = errors.New("malformed time format")
	ErrNotificationUnavailable = errors.New("notification unavailable")
)
