package models

import "errors"

// ErrNotFound is returned when a referenced case or entity id is
// absent from the collection it was expected in. Callers treat it as
// an internal consistency check rather than a user-facing failure.
var ErrNotFound = errors.New("not found")
