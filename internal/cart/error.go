package cart

import "errors"

var (
	ErrUserNotAuthenticated = errors.New("user not authenticated")

	ErrInvalidQuantity  = errors.New("invalid cart quantity")
	ErrProductNotFound  = errors.New("product not found")
	ErrExceedsStock     = errors.New("quantity exceeds available stock")
	ErrCartItemNotFound = errors.New("cart item not found")

	ErrFailedReplaceCart = errors.New("failed to replace cart")
	ErrFailedClearCart   = errors.New("failed to clear cart")
)
