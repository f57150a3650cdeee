package request

import "errors"

var (
	ErrNoOrders              = errors.New("no orders supplied")
	ErrPickupInfoMissing     = errors.New("pickup information not found")
	ErrMissingRegionalFields = errors.New("sender identity card number and content are required for RS parcels")
)
