// Package smoke runs end-to-end checks against running passenger and
// predictor services.
package smoke

import "time"

// Defaults.
const (
	DefaultPassengersURL = "http://localhost:3000"
	DefaultPredictorURL  = "http://localhost:5000"
	DefaultPathPrefix    = "/api/passengers"
	DefaultTimeout       = 5 * time.Second
	DefaultWorkers       = 4
	DefaultRepeats       = 20
)

// Config holds configuration for a smoke run.
type Config struct {
	PassengersURL string        // Base URL of the passenger query service
	PredictorURL  string        // Base URL of the scoring service
	PathPrefix    string        // Mount point of the passenger routes
	Timeout       time.Duration // HTTP request timeout
	Workers       int           // Concurrent prediction workers
	Repeats       int           // Predictions sent by the purity check
}

func (c Config) withDefaults() Config {
	if c.PassengersURL == "" {
		c.PassengersURL = DefaultPassengersURL
	}
	if c.PredictorURL == "" {
		c.PredictorURL = DefaultPredictorURL
	}
	if c.PathPrefix == "" {
		c.PathPrefix = DefaultPathPrefix
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Repeats <= 0 {
		c.Repeats = DefaultRepeats
	}
	return c
}

// Result is the outcome of one check.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Passed reports whether the check succeeded.
func (r Result) Passed() bool { return r.Err == nil }

// Report collects every check of a run.
type Report struct {
	Results  []Result
	Duration time.Duration
}

// Failed counts the failing checks.
func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed() {
			n++
		}
	}
	return n
}
