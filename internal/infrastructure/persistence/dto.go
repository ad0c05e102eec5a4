package persistence

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"pos_catalog/internal/domain/entity"
)

// appSchema maps a row of the apps table.
type appSchema struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	StoreID   string    `db:"store_id"`
	AppType   string    `db:"app_type"`
	Settings  []byte    `db:"settings"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *appSchema) toDomain() *entity.App {
	return &entity.App{
		ID:       s.ID,
		Name:     s.Name,
		StoreID:  s.StoreID,
		AppType:  s.AppType,
		Settings: json.RawMessage(s.Settings),
		Created:  s.CreatedAt,
	}
}

func fromApp(app *entity.App) *appSchema {
	settings := []byte(app.Settings)
	if len(settings) == 0 {
		settings = []byte(`{}`)
	}

	return &appSchema{
		ID:        app.ID,
		Name:      app.Name,
		StoreID:   app.StoreID,
		AppType:   app.AppType,
		Settings:  settings,
		CreatedAt: app.Created,
	}
}

// orderSchema maps a row of the orders table; the cart payload is stored as
// JSONB.
type orderSchema struct {
	ID        string    `db:"id"`
	StoreID   string    `db:"store_id"`
	AppID     string    `db:"app_id"`
	Status    string    `db:"status"`
	ItemCode  string    `db:"item_code"`
	Cart      []byte    `db:"cart"`
	SettledAt time.Time `db:"settled_at"`
}

func (s *orderSchema) toDomain() (entity.Order, error) {
	var cart []entity.CartLine
	if len(s.Cart) > 0 {
		if err := json.Unmarshal(s.Cart, &cart); err != nil {
			return entity.Order{}, err
		}
	}

	return entity.Order{
		ID:        s.ID,
		StoreID:   s.StoreID,
		AppID:     s.AppID,
		Status:    s.Status,
		ItemCode:  s.ItemCode,
		Cart:      cart,
		SettledAt: s.SettledAt,
	}, nil
}

// paymentSchema maps a row of the order_payments table.
type paymentSchema struct {
	OrderID    string          `db:"order_id"`
	Method     string          `db:"method"`
	Paid       decimal.Decimal `db:"paid"`
	NetworkFee decimal.Decimal `db:"network_fee"`
	Rate       decimal.Decimal `db:"rate"`
}

func (s *paymentSchema) toDomain() entity.Payment {
	return entity.Payment{
		Method:     s.Method,
		Paid:       s.Paid,
		NetworkFee: s.NetworkFee,
		Rate:       s.Rate,
	}
}
