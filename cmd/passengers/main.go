// Command passengers serves the read-only passenger query API.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/okian/titanic/internal/adapters/http/api"
	"github.com/okian/titanic/internal/adapters/http/swagger"
	app "github.com/okian/titanic/internal/app"
	"github.com/okian/titanic/internal/config"
	"github.com/okian/titanic/internal/server"
	"github.com/okian/titanic/pkg/logger"
	"github.com/okian/titanic/pkg/metrics"
)

func main() {
	started := time.Now()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := server.Setup(ctx)
	if err != nil {
		server.Fail("failed to start", err)
	}
	defer func() { _ = logger.Sync() }()
	server.ConfigureMetrics(cfg, "passengers")

	l := logger.Named("passengers")

	svc := app.NewPassengerService(
		app.WithLogger(l),
		app.WithDataPath(cfg.DataPath),
		app.WithDefaultPageLimit(cfg.DefaultPageLimit),
	)
	if err := svc.Start(ctx); err != nil {
		l.Fatal(ctx, "failed to start passenger service", logger.Error(err))
	}

	go server.StartSystemMetricsUpdater(ctx, metrics.DefaultRefreshInterval(), started)

	srv := server.New(cfg.PassengersAddr, newRouter(ctx, cfg, svc, l))
	if err := server.Run(ctx, srv, cfg.ShutdownTimeout(), l); err != nil {
		l.Fatal(ctx, "passenger server stopped with an error", logger.Error(err))
	}
}

func newRouter(ctx context.Context, cfg *config.Config, svc *app.PassengerService, l logger.Logger) *chi.Mux {
	r := api.NewPassengerRouter(svc,
		api.WithLogger(l),
		api.WithPathPrefix(cfg.PathPrefix),
		api.WithCORSOrigins(cfg.CORSAllowedOrigins),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)
	swagger.Register(ctx, r, swagger.Passengers)
	return r
}
