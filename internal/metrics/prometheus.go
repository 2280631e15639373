package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	JobsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "litdebate_jobs_submitted_total",
			Help: "Total analysis jobs submitted",
		},
	)

	JobsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "litdebate_jobs_finished_total",
			Help: "Total analysis jobs reaching a terminal state",
		},
		[]string{"status"},
	)

	JobDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "litdebate_job_duration_seconds",
			Help:    "Pipeline run duration in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	GenerationCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "litdebate_generation_calls_total",
			Help: "Total calls to the text-generation service",
		},
		[]string{"status"},
	)

	FallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "litdebate_fallbacks_total",
			Help: "Total stage fallback substitutions",
		},
		[]string{"stage"},
	)

	TopicsPerRun = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "litdebate_topics_per_run",
			Help:    "Debate topics generated per pipeline run",
			Buckets: []float64{0, 1, 2, 5, 8, 12, 18},
		},
	)

	RelevanceScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "litdebate_area_relevance_score",
			Help:    "Area relevance scores across runs",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
	)

	SweepRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "litdebate_sweep_removed_total",
			Help: "Total job records removed by retention sweeps",
		},
	)
)

func Init() {
	prometheus.MustRegister(JobsSubmitted)
	prometheus.MustRegister(JobsCompleted)
	prometheus.MustRegister(JobDuration)
	prometheus.MustRegister(GenerationCalls)
	prometheus.MustRegister(FallbacksTotal)
	prometheus.MustRegister(TopicsPerRun)
	prometheus.MustRegister(RelevanceScore)
	prometheus.MustRegister(SweepRemoved)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
