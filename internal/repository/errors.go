package repository

import "errors"

// ErrNotFound is returned when a requested record is not found in the
// repository. This abstracts away the underlying storage implementation
// from the service layer.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint is violated, e.g.
// registering a user name that is already taken.
var ErrDuplicate = errors.New("record already exists")
