// Package metrics provides Prometheus-compatible counters for the
// history-log decoder: lines read, records decoded/skipped, missing
// code-table occurrences, and item-index lookup hit/miss rates.
//
// # Basic Usage
//
//	metrics.LinesRead.Inc()
//	metrics.RecordsDecoded.Inc()
//	metrics.ItemIndexLookups.WithLabelValues("hit").Inc()
//
//	timer := metrics.NewTimer()
//	decodeFile(path)
//	duration := timer.Stop()
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LinesRead counts every line read from a history file, including
	// ones dropped by the range gate before decoding.
	LinesRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hist2json_lines_read_total",
			Help: "Total number of lines read from history files",
		},
	)

	// LinesGated counts lines dropped by the timestamp range gate before
	// the decode cost was paid.
	LinesGated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hist2json_lines_gated_total",
			Help: "Total number of lines skipped by the timestamp range gate",
		},
	)

	// RecordsDecoded counts lines successfully decoded into a record.
	RecordsDecoded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hist2json_records_decoded_total",
			Help: "Total number of history lines decoded into records",
		},
	)

	// RecordsSkipped counts lines that failed to decode (malformed
	// header) and were skipped.
	RecordsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hist2json_records_skipped_total",
			Help: "Total number of history lines skipped due to decode errors",
		},
	)

	// MissingDataCodes counts occurrences of a data-code tag with no
	// entry in the loaded data code table.
	MissingDataCodes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hist2json_missing_data_codes_total",
			Help: "Occurrences of data-code tags absent from the loaded code table",
		},
		[]string{"tag"},
	)

	// ItemIndexLookups tracks item-index lookup outcomes, labeled "hit"
	// or "miss".
	ItemIndexLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hist2json_item_index_lookups_total",
			Help: "Item barcode index lookups, labeled by hit or miss",
		},
		[]string{"result"},
	)

	// ProcessingLatency tracks per-file decode latency in seconds.
	ProcessingLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hist2json_file_processing_seconds",
			Help:    "Time to decode a single history file",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Timer provides a simple timing mechanism for measuring operation durations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer and starts timing immediately.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop returns the elapsed duration since the timer was created.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}

// RunSummary accumulates counts for the CLI's end-of-run report. It is kept
// separate from the Prometheus counters above since the summary is per-run
// and printed once, while the Prometheus counters are process-lifetime.
type RunSummary struct {
	mu sync.Mutex

	LinesRead      int64
	LinesGated     int64
	RecordsDecoded int64
	RecordsSkipped int64
	MissingCodes   map[string]int64
}

// NewRunSummary returns an empty summary ready for accumulation.
func NewRunSummary() *RunSummary {
	return &RunSummary{MissingCodes: make(map[string]int64)}
}

// RecordMissingCode increments the occurrence count for a data-code tag
// that had no entry in the loaded code table.
func (s *RunSummary) RecordMissingCode(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MissingCodes[tag]++
}
