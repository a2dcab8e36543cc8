package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"agrimart-be/internal/address"
	"agrimart-be/internal/cart"
	"agrimart-be/internal/category"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/order"
	"agrimart-be/internal/payment"
	"agrimart-be/internal/product"
	"agrimart-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

var (
	errInvalidBody = errors.New("invalid request body")
	errInvalidID   = errors.New("invalid id")
)

var badRequest = []error{
	errInvalidBody,
	errInvalidID,

	user.ErrEmailExists,
	user.ErrInvalidEmail,
	user.ErrWeakPassword,
	user.ErrNameRequired,

	category.ErrNameRequired,
	category.ErrCategoryExists,
	category.ErrCategoryNotFound,
	category.ErrSubcategoryNotFound,

	product.ErrNameRequired,
	product.ErrInvalidPrice,
	product.ErrInvalidOfferPrice,
	product.ErrInvalidStock,
	product.ErrNoFieldsToUpdate,

	address.ErrMissingFields,
	address.ErrInvalidEmail,

	cart.ErrInvalidQuantity,
	cart.ErrProductNotFound,
	cart.ErrExceedsStock,

	order.ErrEmptyItems,
	order.ErrAddressRequired,
	order.ErrAddressNotFound,
	order.ErrInvalidQuantity,
	order.ErrProductNotFound,
	order.ErrInsufficientStock,
	order.ErrInvalidStatus,
	order.ErrInvalidPayment,
	order.ErrInvalidTransition,
	order.ErrMissingPaymentFields,
	order.ErrOrderNotPayable,
	order.ErrGatewayOrderMismatch,

	payment.ErrSignatureMismatch,
}

var notFound = []error{
	user.ErrUserNotFound,
	product.ErrProductNotFound,
	address.ErrAddressNotFound,
	cart.ErrCartItemNotFound,
	order.ErrOrderNotFound,
}

var unauthenticated = []error{
	user.ErrInvalidCredentials,
	address.ErrUnauthenticated,
	cart.ErrUserNotAuthenticated,
}

var forbidden = []error{
	product.ErrUnauthorized,
	order.ErrUnauthorized,
}

// statusFor maps a service error to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case isAny(err, badRequest):
		return http.StatusBadRequest
	case isAny(err, notFound):
		return http.StatusNotFound
	case isAny(err, unauthenticated):
		return http.StatusUnauthorized
	case isAny(err, forbidden):
		return http.StatusForbidden
	case errors.Is(err, order.ErrStatusChanged):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func fail(c *gin.Context, method string, err error) {
	status := statusFor(err)

	log := logger.FromCtx(c.Request.Context()).With(
		zap.String("layer", "handler"),
		zap.String("method", method),
		zap.Int("status", status),
	)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Warn("request rejected", zap.Error(err))
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": err.Error()})
}

// decodeStrict rejects unknown fields and trailing data, then applies binding tags.
func decodeStrict(c *gin.Context, dst interface{}) error {
	if c.Request.Body == nil {
		return errInvalidBody
	}

	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: unexpected data after body", errInvalidBody)
	}

	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}
