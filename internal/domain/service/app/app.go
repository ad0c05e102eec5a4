package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"pos_catalog/internal/domain"
	"pos_catalog/internal/domain/entity"
	"pos_catalog/pkg/contextx"
	"pos_catalog/pkg/errcodes"
	"pos_catalog/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Repository stores app records.
type Repository interface {
	GetByID(ctx context.Context, id string) (*entity.App, error)
	GetForStore(ctx context.Context, storeID string) ([]entity.App, error)
	UpdateOrCreate(ctx context.Context, app *entity.App) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository fetches settled orders of a store's app. A nil since means
// the whole history.
type OrderRepository interface {
	FetchPaid(ctx context.Context, storeID, appID string, since *time.Time, statuses []string) ([]entity.Order, error)
}

// Type is one registered app kind. Only point-of-sale ships here; others
// (crowdfund and the like) plug into the same registry.
type Type interface {
	Name() string
	Description() string
	GetInfo(app *entity.App) (any, error)
	GetItemStats(app *entity.App, orders []entity.Order) ([]entity.ItemStats, error)
	GetSalesStats(app *entity.App, orders []entity.Order, days int) (entity.SalesStats, error)
	SetDefaultSettings(app *entity.App, defaultCurrency string) error
	ViewLink(app *entity.App) string
}

// Service dispatches app operations to the registered type handlers and owns
// the order fetch around the pure aggregations.
type Service struct {
	types  map[string]Type
	apps   Repository
	orders OrderRepository
}

func NewService(apps Repository, orders OrderRepository, types ...Type) *Service {
	registry := make(map[string]Type, len(types))
	for _, t := range types {
		registry[t.Name()] = t
	}

	return &Service{
		types:  registry,
		apps:   apps,
		orders: orders,
	}
}

// AvailableTypes maps registered type names to their descriptions.
func (s *Service) AvailableTypes() map[string]string {
	available := make(map[string]string, len(s.types))
	for name, t := range s.types {
		available[name] = t.Description()
	}

	return available
}

func (s *Service) GetApp(ctx context.Context, id string) (*entity.App, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("apps.GetByID: %w", err)
	}

	return app, nil
}

func (s *Service) GetAppsForStore(ctx context.Context, storeID string) ([]entity.App, error) {
	apps, err := s.apps.GetForStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("apps.GetForStore: %w", err)
	}

	return apps, nil
}

// UpdateOrCreate persists the app, minting an id and creation time for new
// records.
func (s *Service) UpdateOrCreate(ctx context.Context, app *entity.App) error {
	if _, ok := s.types[app.AppType]; !ok {
		return domain.NewError(errcodes.UnsupportedAppType,
			fmt.Sprintf("app type %q is not registered", app.AppType))
	}

	if app.ID == "" {
		app.ID = xid.New().String()
		app.Created = time.Now().UTC()
	}

	if err := s.apps.UpdateOrCreate(ctx, app); err != nil {
		return fmt.Errorf("apps.UpdateOrCreate: %w", err)
	}

	logger(ctx).Info("app saved",
		slog.String(logx.FieldAppID, app.ID),
		slog.String(logx.FieldAppName, app.Name),
		slog.String(logx.FieldAppType, app.AppType),
		slog.String(logx.FieldStoreID, app.StoreID),
	)

	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.apps.Delete(ctx, id); err != nil {
		return fmt.Errorf("apps.Delete: %w", err)
	}

	logger(ctx).Info("app deleted", slog.String(logx.FieldAppID, id))

	return nil
}

func (s *Service) GetInfo(ctx context.Context, appID string) (any, error) {
	app, appType, err := s.resolve(ctx, appID)
	if err != nil {
		return nil, err
	}

	return appType.GetInfo(app)
}

// GetItemStats aggregates the full paid-order history of the app by item.
func (s *Service) GetItemStats(ctx context.Context, appID string) ([]entity.ItemStats, error) {
	app, appType, err := s.resolve(ctx, appID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.FetchPaid(ctx, app.StoreID, app.ID, nil, entity.PaidOrderStatuses())
	if err != nil {
		return nil, fmt.Errorf("orders.FetchPaid: %w", err)
	}

	logger(ctx).Debug("aggregating item stats",
		slog.String(logx.FieldAppID, app.ID),
		slog.Int(logx.FieldOrderCount, len(orders)),
	)

	return appType.GetItemStats(app, orders)
}

// GetSalesStats aggregates the trailing window of paid orders by day.
func (s *Service) GetSalesStats(ctx context.Context, appID string, days int) (entity.SalesStats, error) {
	app, appType, err := s.resolve(ctx, appID)
	if err != nil {
		return entity.SalesStats{}, err
	}

	since := time.Now().UTC().AddDate(0, 0, -days)

	orders, err := s.orders.FetchPaid(ctx, app.StoreID, app.ID, &since, entity.PaidOrderStatuses())
	if err != nil {
		return entity.SalesStats{}, fmt.Errorf("orders.FetchPaid: %w", err)
	}

	logger(ctx).Debug("aggregating sales stats",
		slog.String(logx.FieldAppID, app.ID),
		slog.Int(logx.FieldDays, days),
		slog.Int(logx.FieldOrderCount, len(orders)),
	)

	return appType.GetSalesStats(app, orders, days)
}

func (s *Service) SetDefaultSettings(ctx context.Context, appID, defaultCurrency string) error {
	app, appType, err := s.resolve(ctx, appID)
	if err != nil {
		return err
	}

	if err := appType.SetDefaultSettings(app, defaultCurrency); err != nil {
		return fmt.Errorf("appType.SetDefaultSettings: %w", err)
	}

	if err := s.apps.UpdateOrCreate(ctx, app); err != nil {
		return fmt.Errorf("apps.UpdateOrCreate: %w", err)
	}

	logger(ctx).Debug("default settings applied",
		slog.String(logx.FieldAppID, app.ID),
		slog.String(logx.FieldCurrency, defaultCurrency),
	)

	return nil
}

// ItemSource is implemented by app types that expose a buyable item list.
type ItemSource interface {
	POSItems(app *entity.App) ([]entity.Item, error)
}

// GetPOSItems returns the enabled items of an item-bearing app.
func (s *Service) GetPOSItems(ctx context.Context, appID string) ([]entity.Item, error) {
	app, appType, err := s.resolve(ctx, appID)
	if err != nil {
		return nil, err
	}

	source, ok := appType.(ItemSource)
	if !ok {
		return nil, domain.NewError(errcodes.UnsupportedAppType,
			fmt.Sprintf("app type %q has no item list", app.AppType))
	}

	items, err := source.POSItems(app)
	if err != nil {
		return nil, err
	}

	logger(ctx).Debug("catalog items listed",
		slog.String(logx.FieldAppID, app.ID),
		slog.Int(logx.FieldItemCount, len(items)),
	)

	return items, nil
}

// TemplateEditor is implemented by app types whose settings carry an
// editable catalog template. Template returns the canonical serialized
// form, not the stored source text.
type TemplateEditor interface {
	Template(app *entity.App) (string, error)
	UpdateTemplate(app *entity.App, template string) error
}

// GetTemplate returns the canonical catalog template of a template-bearing
// app.
func (s *Service) GetTemplate(ctx context.Context, appID string) (string, error) {
	app, appType, err := s.resolve(ctx, appID)
	if err != nil {
		return "", err
	}

	editor, ok := appType.(TemplateEditor)
	if !ok {
		return "", domain.NewError(errcodes.UnsupportedAppType,
			fmt.Sprintf("app type %q has no catalog template", app.AppType))
	}

	return editor.Template(app)
}

// UpdateTemplate replaces the catalog template of a template-bearing app and
// persists the result.
func (s *Service) UpdateTemplate(ctx context.Context, appID, template string) error {
	app, appType, err := s.resolve(ctx, appID)
	if err != nil {
		return err
	}

	editor, ok := appType.(TemplateEditor)
	if !ok {
		return domain.NewError(errcodes.UnsupportedAppType,
			fmt.Sprintf("app type %q has no catalog template", app.AppType))
	}

	if err := editor.UpdateTemplate(app, template); err != nil {
		return err
	}

	if err := s.apps.UpdateOrCreate(ctx, app); err != nil {
		return fmt.Errorf("apps.UpdateOrCreate: %w", err)
	}

	logger(ctx).Info("catalog template updated", slog.String(logx.FieldAppID, app.ID))

	return nil
}

func (s *Service) ViewLink(ctx context.Context, appID string) (string, error) {
	app, appType, err := s.resolve(ctx, appID)
	if err != nil {
		return "", err
	}

	return appType.ViewLink(app), nil
}

func (s *Service) resolve(ctx context.Context, appID string) (*entity.App, Type, error) {
	app, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		return nil, nil, fmt.Errorf("apps.GetByID: %w", err)
	}

	appType, ok := s.types[app.AppType]
	if !ok {
		return nil, nil, domain.NewError(errcodes.UnsupportedAppType,
			fmt.Sprintf("app type %q is not registered", app.AppType))
	}

	return app, appType, nil
}
