// Package service wires the domain packages into the two application
// services the HTTP API depends on.
package service

import (
	"github.com/okian/titanic/internal/adapters/repository"
	"github.com/okian/titanic/internal/domain/passenger"
	"github.com/okian/titanic/internal/domain/scoring"
	"github.com/okian/titanic/pkg/logger"
)

// Defaults.
const (
	DefaultDataPath            = "data/passengers.json"
	DefaultPageLimit           = 20
	DefaultPlaceholderAccuracy = "82.12%"
)

type settings struct {
	logger    logger.Logger
	dataPath  string
	pageLimit int
	store     repository.Store

	scorer   scoring.Scorer
	sample   []passenger.Passenger
	accuracy string
}

func newSettings(opts []Option) settings {
	s := settings{
		dataPath:  DefaultDataPath,
		pageLimit: DefaultPageLimit,
		scorer:    scoring.NewHeuristicScorer(),
		sample:    Sample(),
		accuracy:  DefaultPlaceholderAccuracy,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option applies a configuration option to a service. Options that do not
// concern a service are ignored by it.
type Option func(*settings)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataPath sets the dataset file loaded by PassengerService.Start.
func WithDataPath(path string) Option {
	return func(s *settings) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithDefaultPageLimit sets the page size used when a client sends none.
func WithDefaultPageLimit(limit int) Option {
	return func(s *settings) {
		if limit > 0 {
			s.pageLimit = limit
		}
	}
}

// WithStore makes PassengerService serve from store instead of loading the dataset file.
func WithStore(store repository.Store) Option {
	return func(s *settings) {
		if store != nil {
			s.store = store
		}
	}
}

// WithScorer replaces the heuristic scorer.
func WithScorer(scorer scoring.Scorer) Option {
	return func(s *settings) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// WithSample replaces the records behind the static stats.
func WithSample(sample []passenger.Passenger) Option {
	return func(s *settings) {
		if sample != nil {
			s.sample = sample
		}
	}
}

// WithPlaceholderAccuracy sets the accuracy string reported by the static stats.
func WithPlaceholderAccuracy(accuracy string) Option {
	return func(s *settings) {
		if accuracy != "" {
			s.accuracy = accuracy
		}
	}
}
