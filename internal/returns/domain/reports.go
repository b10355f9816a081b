package domain

// ReasonBucket aggregates returns sharing one reason
type ReasonBucket struct {
	Reason        string `json:"reason"`
	Count         int64  `json:"count"`
	TotalQuantity int64  `json:"total_quantity"`
}

// MonthBucket aggregates records by calendar month (YYYY-MM)
type MonthBucket struct {
	Month         string `json:"month"`
	Count         int64  `json:"count"`
	TotalQuantity int64  `json:"total_quantity"`
}

// ReportRepository is the read-only aggregation side feeding dashboards.
// Results are safe to cache briefly; they never drive transactional decisions.
type ReportRepository interface {
	ReturnsByReason() ([]ReasonBucket, error)
	ReturnsByMonth() ([]MonthBucket, error)
	ReplacementsByMonth() ([]MonthBucket, error)
}
