package driven

import "errors"

// ErrNotFound is returned by store mutations targeting an id that does not
// exist. Lookups signal absence with a nil record instead.
var ErrNotFound = errors.New("record not found")
