package metrics

import (
	"time"

	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	watcherSnapshotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "watcher",
		Name:      "snapshots_total",
		Help:      "Count of portfolio snapshots taken.",
	}, []string{"network", "status"})

	watcherSnapshotDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "watcher",
		Name:      "snapshot_duration_seconds",
		Help:      "Duration of taking a portfolio snapshot.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	}, []string{"network", "status"})

	watcherCells = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "watcher",
		Name:      "cells",
		Help:      "DAO cells seen by the last successful snapshot.",
	}, []string{"network", "state"})
)

// Watcher tracks the portfolio watcher loop.
type Watcher struct {
	network string
}

func NewWatcher(network model.Network) *Watcher {
	return &Watcher{network: networkLabel(network)}
}

// ObserveSnapshot records a snapshot attempt. Cell gauges move only on success.
func (m Watcher) ObserveSnapshot(err error, deposits, requests, claimable int, started time.Time) {
	s := status(err)
	watcherSnapshotsTotal.WithLabelValues(m.network, s).Inc()
	watcherSnapshotDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	watcherCells.WithLabelValues(m.network, "deposited").Set(float64(deposits))
	watcherCells.WithLabelValues(m.network, "requested").Set(float64(requests))
	watcherCells.WithLabelValues(m.network, "claimable").Set(float64(claimable))
}
