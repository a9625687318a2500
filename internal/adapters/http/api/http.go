// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/titanic/internal/adapters/repository"
	service "github.com/okian/titanic/internal/app"
	"github.com/okian/titanic/internal/domain/passenger"
	"github.com/okian/titanic/pkg/logger"
	"github.com/okian/titanic/pkg/metrics"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// PassengerQueries is what the passenger routes need.
type PassengerQueries interface {
	DefaultPageLimit() int
	List(ctx context.Context, page, limit int) (repository.Page, error)
	ByID(ctx context.Context, id int) (passenger.Passenger, error)
	ByClass(ctx context.Context, class int) ([]passenger.Passenger, error)
	BySurvival(ctx context.Context, status int) ([]passenger.Passenger, error)
	SearchName(ctx context.Context, q string) ([]passenger.Passenger, error)
	Summary(ctx context.Context) (passenger.Summary, error)
}

// Predictor is what the scoring routes need.
type Predictor interface {
	PredictJSON(ctx context.Context, body []byte) (service.Prediction, error)
	Stats(ctx context.Context) service.SampleStats
	ModelInfo(ctx context.Context) service.ModelInfo
}

var (
	_ PassengerQueries = (*service.PassengerService)(nil)
	_ Predictor        = (*service.PredictorService)(nil)
)

// Option applies a configuration option to a router.
type Option func(*options)

type options struct {
	logger      logger.Logger
	prefix      string
	corsOrigins []string
	rateRPS     float64
	rateBurst   int
	now         func() time.Time
}

func newOptions(opts []Option) options {
	o := options{
		logger:      logger.NewNop(),
		prefix:      "/api/passengers",
		corsOrigins: []string{"*"},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used by the request logger and recoverer.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPathPrefix mounts the passenger routes under prefix.
func WithPathPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) Option {
	return func(o *options) {
		if len(origins) > 0 {
			o.corsOrigins = origins
		}
	}
}

// WithRateLimit enables a token bucket shared by all clients.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) {
		o.rateRPS = rps
		o.rateBurst = burst
	}
}

// WithClock overrides the time source used by the health endpoint.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// newRouter builds a chi router with the shared middleware stack, /health and /metrics.
func newRouter(o options, name string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimw.RealIP)
	r.Use(RequestLogger(o.logger))
	r.Use(MetricsMiddleware)
	r.Use(Recoverer(o.logger))
	r.Use(CORS(o.corsOrigins))
	r.Use(RateLimit(o.rateRPS, o.rateBurst))
	r.Use(chimw.RequestSize(maxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Ruta no encontrada")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Método no permitido")
	})

	r.Get("/health", NewHealthHandler(name, o.now).HandleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	return r
}

// NewPassengerRouter wires the passenger query routes under the configured prefix.
func NewPassengerRouter(deps PassengerQueries, opts ...Option) *chi.Mux {
	o := newOptions(opts)
	r := newRouter(o, "passengers")
	h := NewPassengerHandler(deps, o.logger)

	r.Route(o.prefix, func(r chi.Router) {
		// Literal segments are matched before {id}.
		r.Get("/", h.HandleList)
		r.Get("/stats/summary", h.HandleSummary)
		r.Get("/class/{class}", h.HandleByClass)
		r.Get("/survived/{status}", h.HandleBySurvival)
		r.Get("/search/{name}", h.HandleSearch)
		r.Get("/{id}", h.HandleByID)
	})
	return r
}

// NewPredictorRouter wires the scoring routes.
func NewPredictorRouter(deps Predictor, opts ...Option) *chi.Mux {
	o := newOptions(opts)
	r := newRouter(o, "predictor")
	h := NewPredictorHandler(deps, o.logger)

	r.Route("/titanic", func(r chi.Router) {
		r.Get("/health", NewHealthHandler("predictor", o.now).HandleHealth)
		r.Post("/predict", h.HandlePredict)
		r.Get("/stats", h.HandleStats)
		r.Get("/model-info", h.HandleModelInfo)
	})
	return r
}
