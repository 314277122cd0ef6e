package customer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
)

const PhoneMaxLen = 15

var (
	ErrMissingUser   = fmt.Errorf("%w: user id is required", apperr.ErrValidation)
	ErrPhoneTooLong  = fmt.Errorf("%w: phone is too long", apperr.ErrValidation)
	ErrMissingPhone  = fmt.Errorf("%w: phone is required", apperr.ErrValidation)
	ErrUserHasRecord = fmt.Errorf("%w: user already has a customer record", apperr.ErrConflict)
)

// Customer is the account profile of a user. One customer per user.
type Customer struct {
	ID      string `json:"id"`
	UserID  string `json:"user"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func NewCustomer(id, userID, phone, address string) (*Customer, error) {
	c := &Customer{
		ID:      id,
		UserID:  strings.TrimSpace(userID),
		Phone:   strings.TrimSpace(phone),
		Address: address,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Customer) Validate() error {
	if c.UserID == "" {
		return ErrMissingUser
	}
	if c.Phone == "" {
		return ErrMissingPhone
	}
	if utf8.RuneCountInString(c.Phone) > PhoneMaxLen {
		return ErrPhoneTooLong
	}
	return nil
}
