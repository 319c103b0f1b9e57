package domain

import "errors"

// ErrGridNotFound marks a lookup of a grid id that does not exist in the
// platform database. Handlers map it to a 404; everything else coming out of
// the repositories is an infrastructure failure and maps to a 500.
var ErrGridNotFound = errors.New("grid not found")
