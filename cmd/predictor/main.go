// Command predictor serves the heuristic survival scoring API and its form.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/okian/titanic/internal/adapters/http/api"
	"github.com/okian/titanic/internal/adapters/http/site"
	"github.com/okian/titanic/internal/adapters/http/swagger"
	app "github.com/okian/titanic/internal/app"
	"github.com/okian/titanic/internal/config"
	"github.com/okian/titanic/internal/server"
	"github.com/okian/titanic/pkg/logger"
	"github.com/okian/titanic/pkg/metrics"
)

func main() {
	started := time.Now()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := server.Setup(ctx)
	if err != nil {
		server.Fail("failed to start", err)
	}
	defer func() { _ = logger.Sync() }()
	server.ConfigureMetrics(cfg, "predictor")

	l := logger.Named("predictor")

	svc := app.NewPredictorService(
		app.WithLogger(l),
		app.WithPlaceholderAccuracy(cfg.PlaceholderAccuracy),
	)
	l.Info(ctx, "predictor ready", logger.Int("sample_size", svc.Stats(ctx).Total))

	go server.StartSystemMetricsUpdater(ctx, metrics.DefaultRefreshInterval(), started)

	srv := server.New(cfg.PredictorAddr, newRouter(ctx, cfg, svc, l))
	if err := server.Run(ctx, srv, cfg.ShutdownTimeout(), l); err != nil {
		l.Fatal(ctx, "predictor server stopped with an error", logger.Error(err))
	}
}

func newRouter(ctx context.Context, cfg *config.Config, svc *app.PredictorService, l logger.Logger) *chi.Mux {
	r := api.NewPredictorRouter(svc,
		api.WithLogger(l),
		api.WithCORSOrigins(cfg.CORSAllowedOrigins),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)
	swagger.Register(ctx, r, swagger.Predictor)
	site.Register(ctx, r)
	return r
}
