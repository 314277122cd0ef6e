// Package access models staff roles and the capabilities each role grants.
package access

import (
	"fmt"
	"strings"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

var ErrUnknownRole = fmt.Errorf("%w: unknown role", apperr.ErrValidation)

func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case RoleAdmin, RoleManager, RoleStaff:
		return r, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownRole, raw)
	}
}

// Capability is a named write permission held by a fixed set of roles.
type Capability struct {
	Name  string
	roles map[Role]struct{}
}

func newCapability(name string, roles ...Role) Capability {
	set := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return Capability{Name: name, roles: set}
}

var (
	WriteCatalog   = newCapability("catalog.write", RoleAdmin, RoleManager)
	WriteCustomers = newCapability("customers.write", RoleAdmin, RoleManager)
	WriteOrders    = newCapability("orders.write", RoleAdmin, RoleManager, RoleStaff)
	DeleteOrders   = newCapability("orders.delete", RoleAdmin, RoleManager)
)

func (c Capability) GrantedTo(r Role) bool {
	_, ok := c.roles[r]
	return ok
}

// Principal is the authenticated caller.
type Principal struct {
	UserID string
	Role   Role
}

// Authorize fails with ErrPermissionDenied when p does not hold c.
func (p Principal) Authorize(c Capability) error {
	if c.GrantedTo(p.Role) {
		return nil
	}
	return fmt.Errorf("%w: role %q lacks %s", apperr.ErrPermissionDenied, p.Role, c.Name)
}
