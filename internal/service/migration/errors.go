package migration

import "errors"

var (
	ErrLegacyLabelNotFound = errors.New("legacy label not found")
	ErrNotLegacyLabel      = errors.New("label reference is not a legacy url")
)
