package verifier

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/openbatch/batchadmit/pkg/errors"
)

var (
	verifyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batchadmit_verify_total",
			Help: "Total number of attribute verifications",
		},
		[]string{"attribute", "outcome"}, // outcome: accepted, rejected, or fatal
	)

	verifyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "batchadmit_verify_duration_seconds",
			Help:    "Duration of a single attribute verification in seconds",
			Buckets: []float64{.00001, .0001, .001, .01, .1, 1},
		},
	)
)

func observeVerification(attrName string, err error, d time.Duration) {
	outcome := "accepted"
	switch {
	case apperrors.IsSystem(err):
		outcome = "fatal"
	case err != nil:
		outcome = "rejected"
	}
	verifyTotal.WithLabelValues(attrName, outcome).Inc()
	verifyDuration.Observe(d.Seconds())
}
