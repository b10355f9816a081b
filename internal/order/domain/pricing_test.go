package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricing(t *testing.T) {
	items := []OrderItem{
		{Quantity: 2, UnitPrice: 100.00},
		{Quantity: 1, UnitPrice: 49.99},
	}

	assert.Equal(t, 249.99, Subtotal(items))
	assert.Equal(t, 30.00, VAT(249.99))
	assert.Equal(t, 279.99, Total(items))
}

func TestPricing_Rounding(t *testing.T) {
	items := []OrderItem{
		{Quantity: 3, UnitPrice: 0.10},
	}

	// 0.30 subtotal, 0.036 VAT rounds to 0.04
	assert.Equal(t, 0.30, Subtotal(items))
	assert.Equal(t, 0.04, VAT(0.30))
	assert.Equal(t, 0.34, Total(items))
}

func TestPricing_Empty(t *testing.T) {
	assert.Zero(t, Subtotal(nil))
	assert.Zero(t, Total(nil))
}

func TestNewOrderCode(t *testing.T) {
	code := NewOrderCode()
	assert.True(t, strings.HasPrefix(code, "ORD-"))
	assert.Len(t, code, len("ORD-")+8)

	// Practically unique across generations
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		c := NewOrderCode()
		assert.False(t, seen[c])
		seen[c] = true
	}
}
