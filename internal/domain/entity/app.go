package entity

import (
	"encoding/json"
	"time"
)

// AppTypePointOfSale is the only app type implemented here; the registry
// accepts others (crowdfund and the like) registered from the outside.
const AppTypePointOfSale = "pos"

// App is a catalog-bearing application attached to a store. Settings is the
// raw per-type settings document; the app type decodes it.
type App struct {
	ID       string          `json:"id" db:"id"`
	Name     string          `json:"name" db:"name"`
	StoreID  string          `json:"storeId" db:"store_id"`
	AppType  string          `json:"appType" db:"app_type"`
	Settings json.RawMessage `json:"settings" db:"settings"`
	Created  time.Time       `json:"created" db:"created_at"`
}

// PointOfSaleSettings is the settings document of a point-of-sale app.
type PointOfSaleSettings struct {
	Title    string `json:"title"`
	Currency string `json:"currency"`
	Template string `json:"template"`
}

// PointOfSaleSettingsOf decodes the app's settings document. A missing
// document yields zero settings, not an error.
func PointOfSaleSettingsOf(app *App) (PointOfSaleSettings, error) {
	var settings PointOfSaleSettings
	if len(app.Settings) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(app.Settings, &settings); err != nil {
		return settings, err
	}
	return settings, nil
}

// SetPointOfSaleSettings encodes and stores the settings document on the app.
func SetPointOfSaleSettings(app *App, settings PointOfSaleSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	app.Settings = raw
	return nil
}
