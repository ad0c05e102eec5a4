// Package rest holds the wire models of the HTTP API.
package rest

// App is an app record as exposed over the API.
type App struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	StoreID  string `json:"storeId"`
	AppType  string `json:"appType"`
	Created  string `json:"created"`
	ViewLink string `json:"viewLink,omitempty"`
}

// CreateAppRequest creates a new app for a store with default settings.
type CreateAppRequest struct {
	Name    string `json:"name" validate:"required"`
	StoreID string `json:"storeId" validate:"required"`
	AppType string `json:"appType" validate:"required"`

	// Currency overrides the platform default, ISO-4217.
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

// UpdateTemplateRequest replaces the catalog template of an app.
type UpdateTemplateRequest struct {
	Template string `json:"template" validate:"required"`
}

// Template is the canonical serialized form of an app's catalog.
type Template struct {
	Template string `json:"template"`
}

// Item is a parsed catalog entry.
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

// ItemPrice is the resolved item price; amount is absent for top-up items.
type ItemPrice struct {
	Type      string `json:"type"`
	Amount    string `json:"amount,omitempty"`
	Formatted string `json:"formatted,omitempty"`
}

// ItemStats is the sales summary of one item code.
type ItemStats struct {
	ItemCode       string `json:"itemCode"`
	Title          string `json:"title"`
	SalesCount     int    `json:"salesCount"`
	Total          string `json:"total"`
	TotalFormatted string `json:"totalFormatted"`
}

// SalesStats is the gap-filled daily sales series.
type SalesStats struct {
	SalesCount int              `json:"salesCount"`
	Series     []SalesStatsItem `json:"series"`
}

// SalesStatsItem is one day of the series.
type SalesStatsItem struct {
	Date       string `json:"date"`
	Label      string `json:"label"`
	SalesCount int    `json:"salesCount"`
}

// Error is the error envelope.
type Error struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}
