package domain

import "math"

// VATRate is the value-added tax applied on top of the item subtotal.
const VATRate = 0.12

// Subtotal sums unit price times quantity over the given items
func Subtotal(items []OrderItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.UnitPrice * float64(item.Quantity)
	}
	return round2(sum)
}

// VAT computes the tax portion for a subtotal
func VAT(subtotal float64) float64 {
	return round2(subtotal * VATRate)
}

// Total is the amount the customer owes: subtotal plus VAT
func Total(items []OrderItem) float64 {
	subtotal := Subtotal(items)
	return round2(subtotal + VAT(subtotal))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
