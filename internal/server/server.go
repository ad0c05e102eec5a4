package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pos_catalog/internal/domain"
	"pos_catalog/internal/domain/entity"
	"pos_catalog/pkg/errcodes"
	"pos_catalog/pkg/httpx/reply"
	"pos_catalog/pkg/httpx/req"
	"pos_catalog/pkg/rest"
)

// AppService is the slice of the app service the HTTP layer needs.
type AppService interface {
	GetApp(ctx context.Context, id string) (*entity.App, error)
	GetAppsForStore(ctx context.Context, storeID string) ([]entity.App, error)
	GetInfo(ctx context.Context, appID string) (any, error)
	GetPOSItems(ctx context.Context, appID string) ([]entity.Item, error)
	GetItemStats(ctx context.Context, appID string) ([]entity.ItemStats, error)
	GetSalesStats(ctx context.Context, appID string, days int) (entity.SalesStats, error)
	UpdateOrCreate(ctx context.Context, app *entity.App) error
	SetDefaultSettings(ctx context.Context, appID, defaultCurrency string) error
	GetTemplate(ctx context.Context, appID string) (string, error)
	UpdateTemplate(ctx context.Context, appID, template string) error
	ViewLink(ctx context.Context, appID string) (string, error)
	Delete(ctx context.Context, id string) error
}

type Server struct {
	app              AppService
	defaultSalesDays int
}

func NewServer(app AppService, defaultSalesDays int) Server {
	return Server{
		app:              app,
		defaultSalesDays: defaultSalesDays,
	}
}

func (s Server) postV1App(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreateAppRequest
	if err := req.Read(r, &request); err != nil {
		return err
	}

	app := &entity.App{
		Name:    request.Name,
		StoreID: request.StoreID,
		AppType: request.AppType,
	}

	if err := s.app.UpdateOrCreate(ctx, app); err != nil {
		return err
	}

	if err := s.app.SetDefaultSettings(ctx, app.ID, request.Currency); err != nil {
		return err
	}

	viewLink, err := s.app.ViewLink(ctx, app.ID)
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTApp(app, viewLink))

	return nil
}

func (s Server) getV1App(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	info, err := s.app.GetInfo(ctx, chi.URLParam(r, "appID"))
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, info)

	return nil
}

func (s Server) deleteV1App(w http.ResponseWriter, r *http.Request) error {
	if err := s.app.Delete(r.Context(), chi.URLParam(r, "appID")); err != nil {
		return err
	}

	reply.OK(w)

	return nil
}

func (s Server) getV1StoreApps(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	apps, err := s.app.GetAppsForStore(ctx, chi.URLParam(r, "storeID"))
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAppList(apps))

	return nil
}

func (s Server) getV1AppTemplate(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	template, err := s.app.GetTemplate(ctx, chi.URLParam(r, "appID"))
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Template{Template: template})

	return nil
}

func (s Server) putV1AppTemplate(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.UpdateTemplateRequest
	if err := req.Read(r, &request); err != nil {
		return err
	}

	if err := s.app.UpdateTemplate(ctx, chi.URLParam(r, "appID"), request.Template); err != nil {
		return err
	}

	reply.OK(w)

	return nil
}

func (s Server) getV1AppItems(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	items, err := s.app.GetPOSItems(ctx, chi.URLParam(r, "appID"))
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTItems(items))

	return nil
}

func (s Server) getV1AppItemStats(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	stats, err := s.app.GetItemStats(ctx, chi.URLParam(r, "appID"))
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTItemStatsList(stats))

	return nil
}

func (s Server) getV1AppSalesStats(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	days := s.defaultSalesDays

	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return domain.WrapError(err, errcodes.ValidationError, "days must be an integer")
		}
		days = parsed
	}

	stats, err := s.app.GetSalesStats(ctx, chi.URLParam(r, "appID"), days)
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSalesStats(stats))

	return nil
}
