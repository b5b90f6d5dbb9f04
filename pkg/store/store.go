package store

import "errors"

// ErrNotFound is returned by every repository when no record exists for the
// requested key. Callers branch with errors.Is.
var ErrNotFound = errors.New("record not found")
