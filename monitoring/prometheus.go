package monitoring

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mezonai/blackball/logx"
)

type BlackballReason string

var (
	ReasonSingleMemberRing BlackballReason = "single_member_ring"
	ReasonSaturatedRing    BlackballReason = "saturated_identical_rings"
	ReasonRingIntersection BlackballReason = "ring_intersection"
	ReasonPigeonhole       BlackballReason = "pigeonhole"
	ReasonManual           BlackballReason = "manual"
)

type analysisPromMetrics struct {
	runStartUnixSeconds prometheus.Gauge
	blackballedOutputs  *prometheus.CounterVec
	scannedTxs          *prometheus.CounterVec
	sourceCheckpoint    *prometheus.GaugeVec
	propagationRounds   prometheus.Counter
	ringAnomalies       prometheus.Counter
	spentOutputs        prometheus.Gauge
	panicCount          prometheus.Counter
}

func newAnalysisPromMetrics() *analysisPromMetrics {
	return &analysisPromMetrics{
		runStartUnixSeconds: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "blackball_run_start_timestamp_unix_seconds",
				Help: "Unix timestamp of the start of the analysis run",
			},
		),
		blackballedOutputs: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blackball_outputs_total",
				Help: "The number of outputs blackballed in this run, by deduction rule",
			},
			[]string{"reason"},
		),
		scannedTxs: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blackball_transactions_scanned_total",
				Help: "The number of transactions scanned per ledger source",
			},
			[]string{"source"},
		),
		sourceCheckpoint: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "blackball_source_checkpoint",
				Help: "The next transaction sequence to scan per ledger source",
			},
			[]string{"source"},
		),
		propagationRounds: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "blackball_propagation_rounds_total",
				Help: "The number of secondary propagation rounds",
			},
		),
		ringAnomalies: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "blackball_ring_anomalies_total",
				Help: "The number of disjoint rings observed for the same key image",
			},
		),
		spentOutputs: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "blackball_spent_outputs",
				Help: "The cumulative number of outputs known to be spent",
			},
		),
		panicCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "blackball_panic_count",
				Help: "The number of recovered panics",
			},
		),
	}
}

var analysisMetrics = newAnalysisPromMetrics()

// MarkRunStart records the start time of the run.
func MarkRunStart() {
	analysisMetrics.runStartUnixSeconds.SetToCurrentTime()
}

func RecordBlackballed(reason BlackballReason) {
	analysisMetrics.blackballedOutputs.With(prometheus.Labels{
		"reason": string(reason),
	}).Inc()
}

func IncreaseScannedTxCount(source string) {
	analysisMetrics.scannedTxs.With(prometheus.Labels{
		"source": source,
	}).Inc()
}

func SetSourceCheckpoint(source string, next uint64) {
	analysisMetrics.sourceCheckpoint.With(prometheus.Labels{
		"source": source,
	}).Set(float64(next))
}

func IncreasePropagationRounds() {
	analysisMetrics.propagationRounds.Inc()
}

func IncreaseRingAnomalies() {
	analysisMetrics.ringAnomalies.Inc()
}

func SetSpentOutputs(n int) {
	analysisMetrics.spentOutputs.Set(float64(n))
}

func IncreasePanicCount() {
	analysisMetrics.panicCount.Inc()
}

// WriteTextfile dumps all registered metrics in the text exposition format,
// for pickup by a node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	logx.Info("METRICS", "Wrote metrics to ", path)
	return nil
}
