package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Manager.
type Option func(*Manager)

// WithService attaches a constant service label to every collector, so the
// passenger and predictor processes can share a scrape target.
func WithService(name string) Option {
	return func(m *Manager) {
		if name == "" {
			return
		}
		labels := make(map[string]string, len(m.customLabels)+1)
		for k, v := range m.customLabels {
			labels[k] = v
		}
		labels["service"] = name
		m.customLabels = labels
	}
}

// WithMetricsEnabled turns the Record and Update functions into no-ops when false.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) { m.enabled = enabled }
}

// WithRefreshInterval sets how often system gauges are refreshed. Non-positive
// values keep the default.
func WithRefreshInterval(interval time.Duration) Option {
	return func(m *Manager) {
		if interval > 0 {
			m.refreshInterval = interval
		}
	}
}

// WithPrometheusRegistry registers collectors on registry instead of the default one.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}
