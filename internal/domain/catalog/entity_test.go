package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
)

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("c1", "  Appetizers ", "Small dishes before the main course", true)

	require.NoError(t, err)
	assert.Equal(t, "Appetizers", c.Name)
	assert.True(t, c.IsActive)
}

func TestNewCategory_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		catName     string
		description string
		wantErr     error
	}{
		{name: "missing name", catName: " ", wantErr: ErrMissingName},
		{name: "name too long", catName: strings.Repeat("a", CategoryNameMaxLen+1), wantErr: ErrNameTooLong},
		{name: "description too long", catName: "Drinks", description: strings.Repeat("d", CategoryDescriptionMaxLen+1), wantErr: ErrDescriptionTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCategory("c1", tt.catName, tt.description, true)

			assert.Nil(t, c)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("p1", "Coffee", "Delicious Coffee", decimal.RequireFromString("3.499"), nil, true, 5)

	require.NoError(t, err)
	assert.Equal(t, "3.5", p.Price.String())
	assert.Nil(t, p.CategoryID)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestNewProduct_Invalid(t *testing.T) {
	_, err := NewProduct("p1", "Coffee", "", decimal.NewFromInt(-1), nil, true, 5)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = NewProduct("p1", "Coffee", "", decimal.Zero, nil, true, 0)
	assert.ErrorIs(t, err, ErrInvalidPreparationTime)

	_, err = NewProduct("p1", "", "", decimal.Zero, nil, true, 3)
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestProduct_AvailabilityMessage(t *testing.T) {
	p := &Product{IsAvailable: true}
	assert.Equal(t, "Available for order", p.AvailabilityMessage())

	p.IsAvailable = false
	assert.Equal(t, "Currently unavailable", p.AvailabilityMessage())
}
