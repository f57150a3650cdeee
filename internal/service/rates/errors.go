package rates

import "errors"

var (
	ErrEmptyRateTable   = errors.New("rate table has no usable rows")
	ErrMalformedRow     = errors.New("malformed rate table row")
	ErrUnknownMethod    = errors.New("unknown shipping method")
	ErrCountryNotServed = errors.New("destination country not served")
)
