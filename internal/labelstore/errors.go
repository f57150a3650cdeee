package labelstore

import "errors"

var (
	ErrNotFound        = errors.New("label file not found")
	ErrInvalidFilename = errors.New("invalid label filename")
)
