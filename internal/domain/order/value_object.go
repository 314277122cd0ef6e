package order

import (
	"fmt"
	"strings"
)

// Status is the order lifecycle label.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusPending, StatusCompleted, StatusCanceled:
		return s, nil
	default:
		return "", fmt.Errorf("%w %q", ErrInvalidStatus, raw)
	}
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// ProductAvailability is the availability every product of an order in status s gets.
// Completing consumes the products, any other status releases them.
func (s Status) ProductAvailability() bool {
	return s != StatusCompleted
}

// TransitionPolicy decides which status changes are allowed.
type TransitionPolicy string

const (
	// PolicyPermissive allows any status to follow any other.
	PolicyPermissive TransitionPolicy = "permissive"
	// PolicyStrict allows pending -> {completed, canceled} only; both are terminal.
	PolicyStrict TransitionPolicy = "strict"
)

func ParseTransitionPolicy(raw string) (TransitionPolicy, error) {
	switch p := TransitionPolicy(strings.ToLower(strings.TrimSpace(raw))); p {
	case "", PolicyPermissive:
		return PolicyPermissive, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown transition policy %q", raw)
	}
}

// Allows reports whether from -> to is permitted. Re-applying the current status is always allowed.
func (p TransitionPolicy) Allows(from, to Status) bool {
	if from == to {
		return true
	}
	if p != PolicyStrict {
		return true
	}
	return from == StatusPending && (to == StatusCompleted || to == StatusCanceled)
}
