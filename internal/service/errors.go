package service

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("email is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrSellerNotFound    = errors.New("seller not found")
	ErrNotSeller         = errors.New("user is not a seller")
	ErrProductNotFound   = errors.New("product not found")
	ErrNotOwner          = errors.New("seller does not own the product")
	ErrPrincipalMismatch = errors.New("sellerId does not match the authenticated user")

	ErrSearchUnavailable = errors.New("search index is not configured")
)
