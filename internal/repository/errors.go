package repository

import "errors"

var (
	// ErrNotFound is wrapped by repositories when a referenced record does
	// not exist in the store.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is wrapped when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("record already exists")
)
