package entity

import "github.com/shopspring/decimal"

// PriceType is the pricing mode of a catalog item.
type PriceType string

const (
	// PriceTypeTopup lets the buyer choose the amount at checkout.
	PriceTypeTopup PriceType = "topup"
	// PriceTypeMinimum enforces a lower bound on the paid amount.
	PriceTypeMinimum PriceType = "minimum"
	// PriceTypeFixed charges an exact amount.
	PriceTypeFixed PriceType = "fixed"
)

func (t PriceType) String() string {
	return string(t)
}

// ItemPrice is the resolved price of a catalog item. Amount is nil for pure
// top-up items; Formatted is a display rendering in the catalog currency and
// is only set when Amount is.
type ItemPrice struct {
	Type      PriceType        `json:"type"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Formatted string           `json:"formatted,omitempty"`
}

// Item is one sellable catalog entry, already sanitized.
type Item struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Image          string    `json:"image,omitempty"`
	BuyButtonText  string    `json:"buyButtonText,omitempty"`
	Price          ItemPrice `json:"price"`
	Inventory      *int      `json:"inventory,omitempty"`
	PaymentMethods []string  `json:"paymentMethods,omitempty"`
	Disabled       bool      `json:"disabled"`
}
