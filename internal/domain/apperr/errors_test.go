package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "validation", err: fmt.Errorf("%w: bad quantity", ErrValidation), want: ErrValidation},
		{name: "wrapped twice", err: fmt.Errorf("add item: %w", fmt.Errorf("%w: x", ErrReferentialIntegrity)), want: ErrReferentialIntegrity},
		{name: "not found helper", err: NotFound("product", "42"), want: ErrNotFound},
		{name: "unclassified", err: errors.New("boom"), want: nil},
		{name: "nil", err: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestNotFound_Message(t *testing.T) {
	err := NotFound("order", "abc")

	assert.EqualError(t, err, "order abc not found")
	assert.ErrorIs(t, err, ErrNotFound)
}
