package scene

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	measureLabel   = "measure"
	errorTypeLabel = "error_type"
)

var (
	compiledDictCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kernel_dict_compiled_total",
		Help: "The total number of compiled kernel dictionaries.",
	}, []string{measureLabel})

	compiledDictErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kernel_dict_errors_total",
		Help: "The total number of failed kernel dictionary compilations.",
	}, []string{measureLabel, errorTypeLabel})

	compiledDictDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kernel_dict_compile_seconds",
		Help:    "The kernel dictionary compilation time.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{measureLabel})
)

func instrumentCompilation(measureID string, d time.Duration) {
	compiledDictCount.
		With(prometheus.Labels{measureLabel: measureID}).
		Inc()
	compiledDictDuration.
		With(prometheus.Labels{measureLabel: measureID}).
		Observe(d.Seconds())
}

func instrumentCompilationError(measureID string, err error) {
	compiledDictErrors.
		With(prometheus.Labels{
			measureLabel:   measureID,
			errorTypeLabel: errorType(err),
		}).
		Inc()
}

// errorType maps an error to its construction error type label
func errorType(err error) string {
	for _, t := range []string{
		core.ErrTypeUnknownType,
		core.ErrTypeInvalidConfig,
		core.ErrTypeDuplicateIdentifier,
		core.ErrTypeUnresolvedReference,
		core.ErrTypeEmptySpectralConfig,
		core.ErrTypeOutOfBoundsTarget,
	} {
		if errors.IsType(err, t) {
			return t
		}
	}
	return "unknown"
}
