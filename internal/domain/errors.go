package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// restaurant does not exist, including when the table is empty.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails validation
// (e.g. an empty restaurant name in a seed file, an unknown strategy).
var ErrValidation = errors.New("validation error")
