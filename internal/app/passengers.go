package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/titanic/internal/adapters/dataset"
	"github.com/okian/titanic/internal/adapters/repository"
	"github.com/okian/titanic/internal/domain/passenger"
	"github.com/okian/titanic/pkg/logger"
	"github.com/okian/titanic/pkg/metrics"
)

// PassengerService answers the read queries over the passenger dataset.
type PassengerService struct {
	mu sync.RWMutex

	store     repository.Store
	dataPath  string
	pageLimit int
	preloaded bool

	started bool
	logger  logger.Logger
}

// NewPassengerService constructs a PassengerService. Until Start is called it
// serves an empty repository.
func NewPassengerService(opts ...Option) *PassengerService {
	cfg := newSettings(opts)
	s := &PassengerService{
		store:     repository.NewMemoryStore(nil),
		dataPath:  cfg.dataPath,
		pageLimit: cfg.pageLimit,
		logger:    cfg.logger,
	}
	if cfg.store != nil {
		s.store = cfg.store
		s.preloaded = true
	}
	return s
}

// Start loads the dataset once. A file that cannot be read or decoded
// leaves the service running over an empty repository.
func (s *PassengerService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if !s.preloaded {
		s.store = s.load(ctx)
	}
	count := s.store.Count(ctx)
	metrics.UpdatePassengersLoaded(count)

	s.started = true
	s.logger.Info(ctx, "passenger service started", logger.Int("passengers", count))
	return nil
}

func (s *PassengerService) load(ctx context.Context) repository.Store {
	start := time.Now()
	s.logger.Info(ctx, "loading passenger dataset", logger.String("path", s.dataPath))

	ps, err := dataset.LoadFile(ctx, s.dataPath)
	if err != nil {
		metrics.RecordDatasetLoadFailure()
		s.logger.Warn(ctx, "dataset unavailable, serving an empty repository",
			logger.String("path", s.dataPath),
			logger.Error(err),
		)
		return repository.NewMemoryStore(nil)
	}

	store := repository.NewMemoryStore(ps)
	elapsed := time.Since(start)
	metrics.RecordDatasetLoadDuration(float64(elapsed.Microseconds()) / 1000)
	s.logger.Info(ctx, "passenger dataset loaded",
		logger.Int("passengers", len(ps)),
		logger.Duration("took", elapsed),
	)
	return store
}

func (s *PassengerService) current() repository.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// Started reports whether Start has completed.
func (s *PassengerService) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// DefaultPageLimit is the page size used when a client sends none.
func (s *PassengerService) DefaultPageLimit() int { return s.pageLimit }

// Count returns the number of passengers served.
func (s *PassengerService) Count(ctx context.Context) int {
	return s.current().Count(ctx)
}

// List returns one page of the passenger list.
func (s *PassengerService) List(ctx context.Context, page, limit int) (repository.Page, error) {
	p, err := s.current().List(ctx, page, limit)
	if err != nil {
		return repository.Page{}, err
	}
	metrics.RecordQueryResultSize("list", len(p.Data))
	return p, nil
}

// ByID returns the first passenger with the given id.
func (s *PassengerService) ByID(ctx context.Context, id int) (passenger.Passenger, error) {
	p, err := s.current().ByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.RecordLookupMiss()
	}
	return p, err
}

// ByClass returns the passengers travelling in class.
func (s *PassengerService) ByClass(ctx context.Context, class int) ([]passenger.Passenger, error) {
	ps, err := s.current().ByClass(ctx, class)
	if err != nil {
		return nil, err
	}
	metrics.RecordQueryResultSize("class", len(ps))
	return ps, nil
}

// BySurvival returns the passengers with the given survival flag.
func (s *PassengerService) BySurvival(ctx context.Context, status int) ([]passenger.Passenger, error) {
	ps, err := s.current().BySurvival(ctx, status)
	if err != nil {
		return nil, err
	}
	metrics.RecordQueryResultSize("survival", len(ps))
	return ps, nil
}

// SearchName returns the passengers whose name contains q, ignoring case.
func (s *PassengerService) SearchName(ctx context.Context, q string) ([]passenger.Passenger, error) {
	ps, err := s.current().SearchName(ctx, q)
	if err != nil {
		return nil, err
	}
	metrics.RecordQueryResultSize("search", len(ps))
	return ps, nil
}

// Summary computes the aggregate statistics of the dataset.
func (s *PassengerService) Summary(ctx context.Context) (passenger.Summary, error) {
	return s.current().Summary(ctx)
}
