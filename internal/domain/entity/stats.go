package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine is the flattened aggregation unit: one sold unit (or one
// single-item order) pinned to a calendar day.
type InvoiceLine struct {
	ItemCode   string
	FiatAmount decimal.Decimal
	Date       time.Time
}

// ItemStats is the sales summary of one item code.
type ItemStats struct {
	ItemCode       string          `json:"itemCode"`
	Title          string          `json:"title"`
	SalesCount     int             `json:"salesCount"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"totalFormatted"`
}

// SalesStatsItem is one day of the sales series; days without sales are
// present with a zero count.
type SalesStatsItem struct {
	Date       time.Time `json:"date"`
	Label      string    `json:"label"`
	SalesCount int       `json:"salesCount"`
}

// SalesStats is the gap-filled daily series over the requested window,
// ascending by date.
type SalesStats struct {
	SalesCount int              `json:"salesCount"`
	Series     []SalesStatsItem `json:"series"`
}
