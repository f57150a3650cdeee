package label

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNoOrderIDs    = errors.New("no order ids supplied")
	ErrNoLabelData   = errors.New("carrier returned no label document")
	ErrLabelNotFound = errors.New("label not found")
	ErrUnauthorized  = errors.New("access token is missing or invalid")
)
