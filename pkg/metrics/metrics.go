package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Package-level metrics registered on the default registry via promauto.
// Embedding applications decide how (and whether) to expose them.

var (
	// WritesTotal counts records appended to the log, labeled by operation.
	WritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casklog_writes_total",
			Help: "Total number of records appended to the log",
		},
		[]string{"op"},
	)

	// CompactionsTotal counts completed log rewrites.
	CompactionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "casklog_compactions_total",
			Help: "Total number of completed log compactions",
		},
	)

	// LiveKeys tracks the number of keys currently held by the index.
	LiveKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "casklog_live_keys",
			Help: "Number of keys currently present in the index",
		},
	)

	// UncompactedBytes tracks the stale bytes a compaction would reclaim.
	UncompactedBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "casklog_uncompacted_bytes",
			Help: "Estimated stale bytes reclaimable by log compaction",
		},
	)
)
