package kafka

import "time"

// StockAdjustedEvent is emitted after a committed stock mutation, carrying the
// signed delta and the resulting quantity.
type StockAdjustedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	ProductID   uint      `json:"product_id"`
	Delta       int       `json:"delta"`
	NewQuantity int       `json:"new_quantity"`
	Reason      string    `json:"reason"`
	AdjustedBy  uint      `json:"adjusted_by"`
	Timestamp   time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeStockAdjusted = "stock.adjusted"
)

// Kafka topics
const (
	TopicStockAdjusted = "stock-adjusted"
)
