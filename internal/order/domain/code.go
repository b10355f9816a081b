package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// OrderCodeAttempts bounds regeneration retries on a code collision.
const OrderCodeAttempts = 3

// NewOrderCode generates a human-readable order code. Uniqueness is enforced
// by the database index; callers retry generation on a collision.
func NewOrderCode() string {
	return fmt.Sprintf("ORD-%s", uuid.New().String()[:8])
}
