package verify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	verificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agni_verifications_total",
		Help: "Completed verifications by classification.",
	}, []string{"classification"})

	verificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "agni_verification_duration_seconds",
		Help:    "Wall-clock time of a verification request.",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
	})

	fallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agni_fallbacks_total",
		Help: "Times a pipeline step returned its fallback value.",
	}, []string{"component", "reason"})
)

const (
	componentExtractor   = "extractor"
	componentRetriever   = "retriever"
	componentAggregator  = "aggregator"
	componentSynthesizer = "synthesizer"
	componentService     = "service"

	reasonDisabled  = "disabled"
	reasonUpstream  = "upstream_error"
	reasonMalformed = "malformed_response"
	reasonPanic     = "panic"
)
