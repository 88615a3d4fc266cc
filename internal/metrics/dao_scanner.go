package metrics

import (
	"time"

	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	daoScanPagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dao_scanner",
		Name:      "pages_total",
		Help:      "Count of indexer cell pages requested while discovering DAO cells.",
	}, []string{"kind", "network", "status"})
	daoScanPageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "dao_scanner",
		Name:      "page_duration_seconds",
		Help:      "Duration of a single indexer page request.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind", "network", "status"})
	daoScanCellsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dao_scanner",
		Name:      "cells_total",
		Help:      "Count of cells returned by the indexer, split by whether they matched.",
	}, []string{"kind", "network", "result"})
)

// DaoScanner tracks the paged DAO cell discovery of one network.
type DaoScanner struct {
	network string
}

func NewDaoScanner(network model.Network) *DaoScanner {
	return &DaoScanner{network: networkLabel(network)}
}

// ObserveScan records one page: scanned cells were returned, matched were kept.
func (m DaoScanner) ObserveScan(kind string, err error, scanned, matched int, started time.Time) {
	if kind == "" {
		kind = unknownLabel
	}
	s := status(err)
	daoScanPagesTotal.WithLabelValues(kind, m.network, s).Inc()
	daoScanPageDuration.WithLabelValues(kind, m.network, s).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	daoScanCellsTotal.WithLabelValues(kind, m.network, "matched").Add(float64(matched))
	daoScanCellsTotal.WithLabelValues(kind, m.network, "skipped").Add(float64(scanned - matched))
}
