package server

import (
	"time"

	"pos_catalog/internal/domain/entity"
	"pos_catalog/pkg/lox"
	"pos_catalog/pkg/rest"
)

const dateOnly = "2006-01-02"

func newRESTApp(app *entity.App, viewLink string) rest.App {
	return rest.App{
		ID:       app.ID,
		Name:     app.Name,
		StoreID:  app.StoreID,
		AppType:  app.AppType,
		Created:  app.Created.Format(time.RFC3339),
		ViewLink: viewLink,
	}
}

func newRESTAppList(apps []entity.App) []rest.App {
	return lox.Map(apps, func(app entity.App) rest.App {
		return newRESTApp(&app, "")
	})
}

func newRESTItems(items []entity.Item) []rest.Item {
	return lox.Map(items, func(item entity.Item) rest.Item {
		price := rest.ItemPrice{
			Type:      item.Price.Type.String(),
			Formatted: item.Price.Formatted,
		}
		if item.Price.Amount != nil {
			price.Amount = item.Price.Amount.String()
		}

		return rest.Item{
			ID:             item.ID,
			Title:          item.Title,
			Description:    item.Description,
			Image:          item.Image,
			BuyButtonText:  item.BuyButtonText,
			Price:          price,
			Inventory:      item.Inventory,
			PaymentMethods: item.PaymentMethods,
			Disabled:       item.Disabled,
		}
	})
}

func newRESTItemStatsList(stats []entity.ItemStats) []rest.ItemStats {
	return lox.Map(stats, func(item entity.ItemStats) rest.ItemStats {
		return rest.ItemStats{
			ItemCode:       item.ItemCode,
			Title:          item.Title,
			SalesCount:     item.SalesCount,
			Total:          item.Total.String(),
			TotalFormatted: item.TotalFormatted,
		}
	})
}

func newRESTSalesStats(stats entity.SalesStats) rest.SalesStats {
	return rest.SalesStats{
		SalesCount: stats.SalesCount,
		Series: lox.Map(stats.Series, func(item entity.SalesStatsItem) rest.SalesStatsItem {
			return rest.SalesStatsItem{
				Date:       item.Date.Format(dateOnly),
				Label:      item.Label,
				SalesCount: item.SalesCount,
			}
		}),
	}
}
