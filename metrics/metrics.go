// Package metrics exposes operation counters on the default Prometheus
// registerer.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"estateflow/domain"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "estateflow_operations_total",
		Help: "Completed store operations by name.",
	}, []string{"operation"})

	rejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "estateflow_rejections_total",
		Help: "Rejected store operations by name and error kind.",
	}, []string{"operation", "kind"})
)

// Operation records a successful operation.
func Operation(name string) {
	operationsTotal.WithLabelValues(name).Inc()
}

// Rejection records a failed operation, classified by error kind.
func Rejection(name string, err error) {
	rejectionsTotal.WithLabelValues(name, kind(err)).Inc()
}

func kind(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidReference):
		return "invalid_reference"
	default:
		return "invalid_input"
	}
}
