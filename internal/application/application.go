package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"pos_catalog/internal/config"
	appservice "pos_catalog/internal/domain/service/app"
	"pos_catalog/internal/domain/service/catalog"
	"pos_catalog/internal/domain/service/stats"
	"pos_catalog/internal/infrastructure/display"
	"pos_catalog/internal/infrastructure/persistence"
	"pos_catalog/internal/infrastructure/sanitize"
	"pos_catalog/internal/server"
	"pos_catalog/pkg/application/connectors"
	"pos_catalog/pkg/application/modules"
	"pos_catalog/pkg/contextx"
	"pos_catalog/pkg/logx"
	"pos_catalog/pkg/middlewarex"
)

func Run(ctx context.Context) error {
	log := contextx.LoggerFromContextOrDefault(ctx)

	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	log.Info("starting",
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)

	// 2. Database
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info("database connection OK")

	// 3. Repositories
	appRepo := persistence.NewAppRepository(db)
	orderRepo := persistence.NewOrderRepository(db)

	// 4. Domain services
	formatter := display.NewFormatter()
	catalogService := catalog.NewService(sanitize.NewHTMLSanitizer(), formatter)
	statsService := stats.NewService(formatter)

	pointOfSale := appservice.NewPointOfSale(
		catalogService,
		statsService,
		cfg.App.PublicURL,
		cfg.App.DefaultCurrency,
	)

	appService := appservice.NewService(appRepo, orderRepo, pointOfSale)

	// 5. HTTP
	router := chi.NewRouter()
	router.Use(middlewarex.TraceID, middlewarex.Logger, middlewarex.Recovery)

	server.NewServer(appService, cfg.App.SalesWindowDays).RegisterRoutes(router)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Addr:    cfg.HTTP.ListenAddress,
		Handler: router,
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricsListenAddress,
	}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
