package client

import "errors"

var (
	ErrPasswordNotSet    = errors.New("carrier password is not configured")
	ErrParcelRejected    = errors.New("carrier rejected parcel")
	ErrUnexpectedStatus  = errors.New("carrier returned unexpected http status")
	ErrMalformedResponse = errors.New("carrier response cannot be decoded")
)
