package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Paid-order statuses that count towards statistics.
const (
	OrderStatusPaid      = "paid"
	OrderStatusConfirmed = "confirmed"
	OrderStatusComplete  = "complete"
)

// PaidOrderStatuses returns the statuses treated as settled.
func PaidOrderStatuses() []string {
	return []string{OrderStatusPaid, OrderStatusConfirmed, OrderStatusComplete}
}

// CartLine is one entry of a cart-style order with the unit price locked at
// checkout time.
type CartLine struct {
	ItemID    string          `json:"id"`
	Count     int             `json:"count"`
	UnitPrice decimal.Decimal `json:"price"`
}

// Payment is one settled payment of an order. Rate is the exchange rate
// locked for the payment method at order time.
type Payment struct {
	Method     string          `json:"method"`
	Paid       decimal.Decimal `json:"paid"`
	NetworkFee decimal.Decimal `json:"networkFee"`
	Rate       decimal.Decimal `json:"rate"`
}

// Order is a settled customer transaction. Cart is nil for single-item
// orders; those carry the bought item in ItemCode instead.
type Order struct {
	ID        string     `json:"id"`
	StoreID   string     `json:"storeId"`
	AppID     string     `json:"appId"`
	Status    string     `json:"status"`
	ItemCode  string     `json:"itemCode,omitempty"`
	Cart      []CartLine `json:"cart,omitempty"`
	Payments  []Payment  `json:"payments"`
	SettledAt time.Time  `json:"settledAt"`
}
