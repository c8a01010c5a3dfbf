package lifedata

import "errors"

var (
	// ErrNotFound covers both a missing row and a row owned by someone else.
	ErrNotFound     = errors.New("not found or unauthorized")
	ErrDuplicate    = errors.New("already exists")
	ErrInvalidInput = errors.New("invalid input")
)
