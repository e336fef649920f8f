// Package metrics defines and registers all custom Prometheus metrics for
// the projects API. It is the single source of truth for metric names,
// labels, and help strings. Collectors register with the default registry
// at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "projects_api"

// RateLimitRejectedTotal counts requests rejected by the rate limiter.
// Label:
//   - path: the request path that was rejected
var RateLimitRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejected_total",
		Help:      "Total number of requests rejected with 429 by the rate limiter.",
	},
	[]string{"path"},
)

// CacheHitsTotal counts cache hits by cache name ("project" or "projects").
var CacheHitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total number of cache hits, by cache.",
	},
	[]string{"cache"},
)

// CacheMissesTotal counts cache misses by cache name.
var CacheMissesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total number of cache misses, by cache.",
	},
	[]string{"cache"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered.",
	},
)
