// Package metrics expõe contadores do pipeline no formato Prometheus
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ledger"

// Resultados possíveis de uma recarga
const (
	ReloadSuccess = "success"
	ReloadFailure = "failure"
)

// Recorder registra as métricas de cada execução do pipeline
type Recorder struct {
	registry       *prometheus.Registry
	recordsParsed  prometheus.Counter
	linesSkipped   prometheus.Counter
	reloads        *prometheus.CounterVec
	reloadDuration prometheus.Histogram
	snapshotMonths prometheus.Gauge
}

// NewRecorder cria um registry próprio para não depender do registry global
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		recordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_parsed_total",
			Help:      "Registros válidos lidos do razão de vendas.",
		}),
		linesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_skipped_total",
			Help:      "Linhas descartadas por estarem mal formadas.",
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Recargas do razão por resultado.",
		}, []string{"result"}),
		reloadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reload_duration_seconds",
			Help:      "Duração de busca + processamento do razão.",
			Buckets:   prometheus.DefBuckets,
		}),
		snapshotMonths: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_months",
			Help:      "Quantidade de meses no snapshot atual.",
		}),
	}

	r.registry.MustRegister(
		r.recordsParsed,
		r.linesSkipped,
		r.reloads,
		r.reloadDuration,
		r.snapshotMonths,
		collectors.NewGoCollector(),
	)

	return r
}

// ObserveReload registra o resultado de uma recarga
func (r *Recorder) ObserveReload(result string, duration time.Duration) {
	r.reloads.WithLabelValues(result).Inc()
	r.reloadDuration.Observe(duration.Seconds())
}

// ObserveSnapshot registra os volumes de um snapshot recém-publicado
func (r *Recorder) ObserveSnapshot(records, skipped, months int) {
	r.recordsParsed.Add(float64(records))
	r.linesSkipped.Add(float64(skipped))
	r.snapshotMonths.Set(float64(months))
}

// Handler expõe o registry em /metrics
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
