package address

import "errors"

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrMissingFields   = errors.New("name, phone, street, city, state, zipcode and country are required")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrUnauthenticated = errors.New("unauthenticated")
)
