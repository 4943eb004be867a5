package repositories

import "errors"

// ErrNotFound is returned when a lookup matches no record. Callers use it
// to distinguish a missing resource from a store failure.
var ErrNotFound = errors.New("record not found")
