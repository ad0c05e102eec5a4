package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"pos_catalog/internal/domain"
	"pos_catalog/internal/domain/entity"
	"pos_catalog/internal/domain/service/catalog"
	"pos_catalog/internal/domain/service/stats"
	"pos_catalog/pkg/errcodes"
)

const parsedCatalogTTL = time.Minute

// defaultTemplate seeds a fresh point-of-sale app with a working catalog.
const defaultTemplate = `coffee:
  title: Coffee
  price: 3.50
tea:
  title: Green Tea
  price: 2.00
donation:
  title: Donation
  price_type: topup
  buyButtonText: Donate
`

// PointOfSale is the point-of-sale app type: a catalog template plus the
// sales statistics over its paid orders.
type PointOfSale struct {
	catalog         *catalog.Service
	stats           *stats.Service
	parsed          *cache.Cache
	publicURL       string
	defaultCurrency string
}

type parsedCatalog struct {
	template string
	currency string
	items    []entity.Item
}

// PointOfSaleInfo is the public view of a point-of-sale app.
type PointOfSaleInfo struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Currency string        `json:"currency"`
	Items    []entity.Item `json:"items"`
}

func NewPointOfSale(
	catalogService *catalog.Service,
	statsService *stats.Service,
	publicURL string,
	defaultCurrency string,
) *PointOfSale {
	return &PointOfSale{
		catalog:         catalogService,
		stats:           statsService,
		parsed:          cache.New(parsedCatalogTTL, 5*parsedCatalogTTL),
		publicURL:       strings.TrimRight(publicURL, "/"),
		defaultCurrency: defaultCurrency,
	}
}

func (p *PointOfSale) Name() string {
	return entity.AppTypePointOfSale
}

func (p *PointOfSale) Description() string {
	return "Point of Sale"
}

func (p *PointOfSale) GetInfo(app *entity.App) (any, error) {
	settings, items, err := p.parsedItems(app)
	if err != nil {
		return nil, err
	}

	title := settings.Title
	if title == "" {
		title = app.Name
	}

	return PointOfSaleInfo{
		ID:       app.ID,
		Title:    title,
		Currency: p.currencyOf(settings),
		Items: lo.Filter(items, func(item entity.Item, _ int) bool {
			return !item.Disabled
		}),
	}, nil
}

// POSItems returns the items a buyer can see: parsed, disabled filtered out.
func (p *PointOfSale) POSItems(app *entity.App) ([]entity.Item, error) {
	_, items, err := p.parsedItems(app)
	if err != nil {
		return nil, err
	}

	return lo.Filter(items, func(item entity.Item, _ int) bool {
		return !item.Disabled
	}), nil
}

func (p *PointOfSale) GetItemStats(app *entity.App, orders []entity.Order) ([]entity.ItemStats, error) {
	settings, items, err := p.parsedItems(app)
	if err != nil {
		return nil, err
	}

	lines := p.stats.FlattenOrders(items, orders)

	return p.stats.ItemStats(items, lines, p.currencyOf(settings)), nil
}

func (p *PointOfSale) GetSalesStats(app *entity.App, orders []entity.Order, days int) (entity.SalesStats, error) {
	_, items, err := p.parsedItems(app)
	if err != nil {
		return entity.SalesStats{}, err
	}

	return p.stats.SalesStats(p.stats.FlattenOrders(items, orders), days)
}

func (p *PointOfSale) SetDefaultSettings(app *entity.App, defaultCurrency string) error {
	if defaultCurrency == "" {
		defaultCurrency = p.defaultCurrency
	}

	settings := entity.PointOfSaleSettings{
		Title:    app.Name,
		Currency: defaultCurrency,
		Template: defaultTemplate,
	}

	if err := entity.SetPointOfSaleSettings(app, settings); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to encode settings")
	}

	p.parsed.Delete(app.ID)

	return nil
}

// Template re-serializes the parsed catalog into its canonical form:
// normalized field order, defaults made explicit, unknown fields dropped.
func (p *PointOfSale) Template(app *entity.App) (string, error) {
	_, items, err := p.parsedItems(app)
	if err != nil {
		return "", err
	}

	return p.catalog.Serialize(items)
}

// UpdateTemplate validates the new template (all-or-nothing) and stores it.
func (p *PointOfSale) UpdateTemplate(app *entity.App, template string) error {
	settings, err := entity.PointOfSaleSettingsOf(app)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to decode settings")
	}

	if _, err := p.catalog.Parse(template, p.currencyOf(settings)); err != nil {
		return err
	}

	settings.Template = template

	if err := entity.SetPointOfSaleSettings(app, settings); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to encode settings")
	}

	p.parsed.Delete(app.ID)

	return nil
}

func (p *PointOfSale) ViewLink(app *entity.App) string {
	return fmt.Sprintf("%s/apps/%s/pos", p.publicURL, app.ID)
}

// parsedItems parses the app's template, short-circuiting through a TTL
// cache so stats endpoints do not re-parse on every call.
func (p *PointOfSale) parsedItems(app *entity.App) (entity.PointOfSaleSettings, []entity.Item, error) {
	settings, err := entity.PointOfSaleSettingsOf(app)
	if err != nil {
		return settings, nil, domain.WrapError(err, errcodes.InternalServerError, "failed to decode settings")
	}

	currency := p.currencyOf(settings)

	if cached, found := p.parsed.Get(app.ID); found {
		entry, ok := cached.(parsedCatalog)
		if ok && entry.template == settings.Template && entry.currency == currency {
			return settings, entry.items, nil
		}
	}

	items, err := p.catalog.Parse(settings.Template, currency)
	if err != nil {
		return settings, nil, err
	}

	p.parsed.Set(app.ID, parsedCatalog{
		template: settings.Template,
		currency: currency,
		items:    items,
	}, cache.DefaultExpiration)

	return settings, items, nil
}

func (p *PointOfSale) currencyOf(settings entity.PointOfSaleSettings) string {
	if settings.Currency != "" {
		return settings.Currency
	}

	return p.defaultCurrency
}
