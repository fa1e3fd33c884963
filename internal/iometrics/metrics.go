// Package iometrics exports the outcome of a run in the Prometheus text
// format, for the node_exporter textfile collector.
package iometrics

import (
	"path/filepath"
	"time"

	"github.com/gnames/symbdb/internal/iofs"
	"github.com/gnames/symbdb/pkg/lifecycle"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "symbdb"

// Metrics is a registry of run gauges.
type Metrics struct {
	reg      *prometheus.Registry
	rows     *prometheus.GaugeVec
	success  *prometheus.GaugeVec
	lastRun  *prometheus.GaugeVec
	duration *prometheus.GaugeVec
	rounds   prometheus.Gauge
	batches  *prometheus.GaugeVec
}

// New creates an empty registry of run gauges.
func New() *Metrics {
	res := &Metrics{
		reg: prometheus.NewRegistry(),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows",
			Help:      "Rows inserted into the destination by the last run, per table.",
		}, []string{"command", "table"}),
		success: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 if the last run succeeded, 0 otherwise.",
		}, []string{"command"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time when the last run finished.",
		}, []string{"command"}),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the last run.",
		}, []string{"command"}),
		rounds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "closure_rounds",
			Help:      "Taxonomic closure fetch rounds of the last migration.",
		}),
		batches: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batches",
			Help:      "Occurrence batches written by the last run.",
		}, []string{"command"}),
	}
	res.reg.MustRegister(
		res.rows, res.success, res.lastRun, res.duration, res.rounds,
		res.batches,
	)
	return res
}

// Observe records a finished run. A nil summary means the run failed
// before producing one.
func (m *Metrics) Observe(
	command string,
	sum *lifecycle.Summary,
	err error,
	finished time.Time,
) {
	m.lastRun.WithLabelValues(command).Set(float64(finished.Unix()))
	if err != nil || sum == nil {
		m.success.WithLabelValues(command).Set(0)
		return
	}

	m.success.WithLabelValues(command).Set(1)
	m.duration.WithLabelValues(command).Set(sum.Duration.Seconds())
	m.batches.WithLabelValues(command).Set(float64(sum.Batches))
	for table, n := range sum.Rows {
		m.rows.WithLabelValues(command, table).Set(float64(n))
	}
	if command == "migrate" {
		m.rounds.Set(float64(sum.ClosureRounds))
	}
}

// Registry gives access to the collected gauges.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// WriteTextfile writes all gauges to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := iofs.TouchDir(filepath.Dir(path)); err != nil {
		return WriteError(path, err)
	}
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return WriteError(path, err)
	}
	return nil
}
