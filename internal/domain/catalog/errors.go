package catalog

import (
	"fmt"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
)

var (
	ErrMissingName            = fmt.Errorf("%w: name is required", apperr.ErrValidation)
	ErrNameTooLong            = fmt.Errorf("%w: name is too long", apperr.ErrValidation)
	ErrDescriptionTooLong     = fmt.Errorf("%w: description is too long", apperr.ErrValidation)
	ErrInvalidPrice           = fmt.Errorf("%w: price must not be negative", apperr.ErrValidation)
	ErrInvalidPreparationTime = fmt.Errorf("%w: preparation time must be greater than zero", apperr.ErrValidation)
	ErrProductReferenced      = fmt.Errorf("%w: product is referenced by order items", apperr.ErrReferentialIntegrity)
)
