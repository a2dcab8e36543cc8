package product

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrNameRequired      = errors.New("product name is required")
	ErrInvalidPrice      = errors.New("price must be greater than zero")
	ErrInvalidOfferPrice = errors.New("offer price must be positive and not exceed price")
	ErrInvalidStock      = errors.New("stock cannot be negative")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
	ErrUnauthorized      = errors.New("unauthorized")
)
