// Package apperr holds the error kinds shared by every domain package.
// Domain errors wrap one of these sentinels so callers can classify them with errors.Is.
package apperr

import "errors"

var (
	ErrValidation           = errors.New("validation error")
	ErrNotFound             = errors.New("not found")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrConflict             = errors.New("conflict")
)

// Kind returns the sentinel kind err wraps, or nil for unclassified errors.
func Kind(err error) error {
	for _, kind := range []error{
		ErrValidation,
		ErrNotFound,
		ErrReferentialIntegrity,
		ErrPermissionDenied,
		ErrConflict,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// NotFound builds a NotFound error naming the entity and id.
func NotFound(entity, id string) error {
	return &notFoundError{entity: entity, id: id}
}

type notFoundError struct {
	entity string
	id     string
}

func (e *notFoundError) Error() string {
	return e.entity + " " + e.id + " not found"
}

func (e *notFoundError) Unwrap() error { return ErrNotFound }
