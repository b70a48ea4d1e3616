// Package metrics expõe as métricas Prometheus do otimizador
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeSchemaError     = "schema_error"
	OutcomeError           = "error"
)

var (
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimizer_runs_total",
			Help: "Total number of optimizer runs by outcome",
		},
		[]string{"ad_product", "outcome"},
	)

	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "optimizer_run_duration_seconds",
			Help:    "Duration of a full optimizer run",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"ad_product"},
	)

	DirectivesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimizer_directives_total",
			Help: "Total number of directives emitted by stage",
		},
		[]string{"stage"},
	)

	EmptyStagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimizer_empty_stages_total",
			Help: "Total number of stages that produced no rows, by reason",
		},
		[]string{"stage", "reason"},
	)

	BlobsPurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "optimizer_blobs_purged_total",
			Help: "Total number of expired reports removed from the blob store",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method and status code",
		},
		[]string{"method", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// RecordRun registra o desfecho e a duração de uma execução
func RecordRun(adProduct, outcome string, started time.Time) {
	RunsTotal.WithLabelValues(adProduct, outcome).Inc()
	RunDuration.WithLabelValues(adProduct).Observe(time.Since(started).Seconds())
}

// RecordStage registra quantas linhas uma etapa produziu ou o motivo de não produzir nenhuma
func RecordStage(stage string, count int, reason string) {
	if count == 0 {
		EmptyStagesTotal.WithLabelValues(stage, reason).Inc()
		return
	}
	DirectivesTotal.WithLabelValues(stage).Add(float64(count))
}

// RecordRequest registra uma requisição HTTP concluída
func RecordRequest(method string, statusCode int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
