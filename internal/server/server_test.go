package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"pos_catalog/internal/domain"
	"pos_catalog/internal/domain/entity"
	"pos_catalog/internal/server"
	"pos_catalog/pkg/errcodes"
	"pos_catalog/pkg/rest"
)

type fakeAppService struct {
	apps map[string]*entity.App

	items      []entity.Item
	itemStats  []entity.ItemStats
	salesStats entity.SalesStats

	template      string
	lastTemplate  string
	lastSalesDays int

	updateTemplateErr error
}

func newFakeAppService() *fakeAppService {
	return &fakeAppService{apps: make(map[string]*entity.App)}
}

func (f *fakeAppService) GetApp(_ context.Context, id string) (*entity.App, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, domain.NewError(errcodes.AppNotFound, "app not found")
	}

	return app, nil
}

func (f *fakeAppService) GetAppsForStore(_ context.Context, storeID string) ([]entity.App, error) {
	var result []entity.App
	for _, app := range f.apps {
		if app.StoreID == storeID {
			result = append(result, *app)
		}
	}

	return result, nil
}

func (f *fakeAppService) GetTemplate(ctx context.Context, appID string) (string, error) {
	if _, err := f.GetApp(ctx, appID); err != nil {
		return "", err
	}

	return f.template, nil
}

func (f *fakeAppService) GetInfo(ctx context.Context, appID string) (any, error) {
	app, err := f.GetApp(ctx, appID)
	if err != nil {
		return nil, err
	}

	return map[string]any{"id": app.ID, "title": app.Name}, nil
}

func (f *fakeAppService) GetPOSItems(ctx context.Context, appID string) ([]entity.Item, error) {
	if _, err := f.GetApp(ctx, appID); err != nil {
		return nil, err
	}

	return f.items, nil
}

func (f *fakeAppService) GetItemStats(ctx context.Context, appID string) ([]entity.ItemStats, error) {
	if _, err := f.GetApp(ctx, appID); err != nil {
		return nil, err
	}

	return f.itemStats, nil
}

func (f *fakeAppService) GetSalesStats(ctx context.Context, appID string, days int) (entity.SalesStats, error) {
	if _, err := f.GetApp(ctx, appID); err != nil {
		return entity.SalesStats{}, err
	}

	f.lastSalesDays = days

	if days < 1 {
		return entity.SalesStats{}, domain.NewError(errcodes.InvalidSalesWindow, "sales window must cover at least one day")
	}

	return f.salesStats, nil
}

func (f *fakeAppService) UpdateOrCreate(_ context.Context, app *entity.App) error {
	if app.ID == "" {
		app.ID = "app-1"
		app.Created = time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	}

	f.apps[app.ID] = app

	return nil
}

func (f *fakeAppService) SetDefaultSettings(ctx context.Context, appID, _ string) error {
	_, err := f.GetApp(ctx, appID)
	return err
}

func (f *fakeAppService) UpdateTemplate(ctx context.Context, appID, template string) error {
	if _, err := f.GetApp(ctx, appID); err != nil {
		return err
	}

	if f.updateTemplateErr != nil {
		return f.updateTemplateErr
	}

	f.lastTemplate = template

	return nil
}

func (f *fakeAppService) ViewLink(_ context.Context, appID string) (string, error) {
	return "https://pay.example/apps/" + appID + "/pos", nil
}

func (f *fakeAppService) Delete(ctx context.Context, id string) error {
	if _, err := f.GetApp(ctx, id); err != nil {
		return err
	}

	delete(f.apps, id)

	return nil
}

func newTestRouter(fake *fakeAppService) http.Handler {
	r := chi.NewRouter()
	server.NewServer(fake, 7).RegisterRoutes(r)

	return r
}

func seedApp(fake *fakeAppService) *entity.App {
	app := &entity.App{ID: "app-1", Name: "Shop", StoreID: "store-1", AppType: entity.AppTypePointOfSale}
	fake.apps[app.ID] = app

	return app
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestCreateApp(t *testing.T) {
	rq := require.New(t)
	fake := newFakeAppService()

	body := `{"name":"Shop","storeId":"store-1","appType":"pos","currency":"EUR"}`
	rec := doRequest(t, newTestRouter(fake), http.MethodPost, "/v1/apps/", body)

	rq.Equal(http.StatusCreated, rec.Code)

	var created rest.App
	rq.NoError(jsoniter.Unmarshal(rec.Body.Bytes(), &created))
	rq.Equal("app-1", created.ID)
	rq.Equal("Shop", created.Name)
	rq.Equal("https://pay.example/apps/app-1/pos", created.ViewLink)
}

func TestCreateAppValidation(t *testing.T) {
	rq := require.New(t)
	fake := newFakeAppService()

	rec := doRequest(t, newTestRouter(fake), http.MethodPost, "/v1/apps/", `{"storeId":"store-1"}`)

	rq.Equal(http.StatusBadRequest, rec.Code)

	var errBody rest.Error
	rq.NoError(jsoniter.Unmarshal(rec.Body.Bytes(), &errBody))
	rq.Equal(errcodes.ValidationError.String(), errBody.Code)
	rq.Empty(fake.apps)
}

func TestGetAppNotFound(t *testing.T) {
	rq := require.New(t)
	fake := newFakeAppService()

	rec := doRequest(t, newTestRouter(fake), http.MethodGet, "/v1/apps/missing", "")

	rq.Equal(http.StatusNotFound, rec.Code)

	var errBody rest.Error
	rq.NoError(jsoniter.Unmarshal(rec.Body.Bytes(), &errBody))
	rq.Equal(errcodes.AppNotFound.String(), errBody.Code)
}

func TestGetItems(t *testing.T) {
	rq := require.New(t)
	fake := newFakeAppService()
	seedApp(fake)

	amount := decimal.RequireFromString("3.50")
	fake.items = []entity.Item{{
		ID:    "coffee",
		Title: "Coffee",
		Price: entity.ItemPrice{Type: entity.PriceTypeFixed, Amount: &amount, Formatted: "$3.50"},
	}}

	rec := doRequest(t, newTestRouter(fake), http.MethodGet, "/v1/apps/app-1/items", "")

	rq.Equal(http.StatusOK, rec.Code)

	var items []rest.Item
	rq.NoError(jsoniter.Unmarshal(rec.Body.Bytes(), &items))
	rq.Len(items, 1)
	rq.Equal("coffee", items[0].ID)
	rq.Equal("fixed", items[0].Price.Type)
	rq.Equal("3.50", items[0].Price.Amount)
	rq.Equal("$3.50", items[0].Price.Formatted)
}

func TestGetItemStats(t *testing.T) {
	rq := require.New(t)
	fake := newFakeAppService()
	seedApp(fake)

	fake.itemStats = []entity.ItemStats{{
		ItemCode:       "coffee",
		Title:          "Coffee",
		SalesCount:     2,
		Total:          decimal.RequireFromString("7.00"),
		TotalFormatted: "$7.00",
	}}

	rec := doRequest(t, newTestRouter(fake), http.MethodGet, "/v1/apps/app-1/stats/items", "")

	rq.Equal(http.StatusOK, rec.Code)

	var result []rest.ItemStats
	rq.NoError(jsoniter.Unmarshal(rec.Body.Bytes(), &result))
	rq.Len(result, 1)
	rq.Equal("coffee", result[0].ItemCode)
	rq.Equal(2, result[0].SalesCount)
	rq.Equal("$7.00", result[0].TotalFormatted)
}

func TestGetSalesStatsDaysParam(t *testing.T) {
	rq := require.New(t)
	fake := newFakeAppService()
	seedApp(fake)

	day := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	fake.salesStats = entity.SalesStats{
		SalesCount: 1,
		Series:     []entity.SalesStatsItem{{Date: day, Label: "Mar 15", SalesCount: 1}},
	}

	router := newTestRouter(fake)

	rec := doRequest(t, router, http.MethodGet, "/v1/apps/app-1/stats/sales", "")
	rq.Equal(http.StatusOK, rec.Code)
	rq.Equal(7, fake.lastSalesDays) // config default

	rec = doRequest(t, router, http.MethodGet, "/v1/apps/app-1/stats/sales?days=30", "")
	rq.Equal(http.StatusOK, rec.Code)
	rq.Equal(30, fake.lastSalesDays)

	var result rest.SalesStats
	rq.NoError(jsoniter.Unmarshal(rec.Body.Bytes(), &result))
	rq.Equal(1, result.SalesCount)
	rq.Equal("2024-03-15", result.Series[0].Date)
	rq.Equal("Mar 15", result.Series[0].Label)
}

func TestGetSalesStatsBadDays(t *testing.T) {
	rq := require.New(t)
	fake := newFakeAppService()
	seedApp(fake)

	router := newTestRouter(fake)

	rec := doRequest(t, router, http.MethodGet, "/v1/apps/app-1/stats/sales?days=week", "")
	rq.Equal(http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/v1/apps/app-1/stats/sales?days=0", "")
	rq.Equal(http.StatusBadRequest, rec.Code)
}

func TestGetStoreApps(t *testing.T) {
	rq := require.New(t)
	fake := newFakeAppService()
	seedApp(fake)

	rec := doRequest(t, newTestRouter(fake), http.MethodGet, "/v1/stores/store-1/apps", "")
	rq.Equal(http.StatusOK, rec.Code)

	var apps []rest.App
	rq.NoError(jsoniter.Unmarshal(rec.Body.Bytes(), &apps))
	rq.Len(apps, 1)
	rq.Equal("app-1", apps[0].ID)

	rec = doRequest(t, newTestRouter(fake), http.MethodGet, "/v1/stores/other/apps", "")
	rq.Equal(http.StatusOK, rec.Code)
}

func TestGetTemplate(t *testing.T) {
	rq := require.New(t)
	fake := newFakeAppService()
	seedApp(fake)

	fake.template = "coffee:\n  title: Coffee\n  price_type: fixed\n  disabled: false\n"

	rec := doRequest(t, newTestRouter(fake), http.MethodGet, "/v1/apps/app-1/template", "")
	rq.Equal(http.StatusOK, rec.Code)

	var body rest.Template
	rq.NoError(jsoniter.Unmarshal(rec.Body.Bytes(), &body))
	rq.Equal(fake.template, body.Template)
}

func TestUpdateTemplate(t *testing.T) {
	rq := require.New(t)
	fake := newFakeAppService()
	seedApp(fake)

	body := `{"template":"coffee:\n  price: 3.50\n"}`
	rec := doRequest(t, newTestRouter(fake), http.MethodPut, "/v1/apps/app-1/template", body)

	rq.Equal(http.StatusOK, rec.Code)
	rq.Equal("coffee:\n  price: 3.50\n", fake.lastTemplate)
}

func TestUpdateTemplateRejected(t *testing.T) {
	rq := require.New(t)
	fake := newFakeAppService()
	seedApp(fake)

	fake.updateTemplateErr = domain.NewError(errcodes.InvalidPrice, `item "coffee" has an invalid price`)

	rec := doRequest(t, newTestRouter(fake), http.MethodPut, "/v1/apps/app-1/template", `{"template":"x"}`)

	rq.Equal(http.StatusBadRequest, rec.Code)

	var errBody rest.Error
	rq.NoError(jsoniter.Unmarshal(rec.Body.Bytes(), &errBody))
	rq.Equal(errcodes.InvalidPrice.String(), errBody.Code)
	rq.Empty(fake.lastTemplate)
}

func TestDeleteApp(t *testing.T) {
	rq := require.New(t)
	fake := newFakeAppService()
	seedApp(fake)

	router := newTestRouter(fake)

	rec := doRequest(t, router, http.MethodDelete, "/v1/apps/app-1", "")
	rq.Equal(http.StatusOK, rec.Code)
	rq.Empty(fake.apps)

	rec = doRequest(t, router, http.MethodDelete, "/v1/apps/app-1", "")
	rq.Equal(http.StatusNotFound, rec.Code)
}
