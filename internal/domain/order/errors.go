package order

import (
	"fmt"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
)

var (
	ErrInvalidQuantity   = fmt.Errorf("%w: quantity must be greater than zero", apperr.ErrValidation)
	ErrInvalidStatus     = fmt.Errorf("%w: invalid order status", apperr.ErrValidation)
	ErrInvalidTransition = fmt.Errorf("%w: status transition not allowed", apperr.ErrValidation)
	ErrMissingCustomer   = fmt.Errorf("%w: customer is required", apperr.ErrValidation)
	ErrMissingField      = fmt.Errorf("%w: required field is missing", apperr.ErrValidation)
	ErrUnknownProduct    = fmt.Errorf("%w: unknown product", apperr.ErrNotFound)
	ErrStaleOrder        = fmt.Errorf("%w: order was modified concurrently", apperr.ErrConflict)
)
