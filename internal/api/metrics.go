package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Metrics ────────────────────────────────────────────────────────────────

var (
	// pageViews counts view resolutions per display level.
	pageViews = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "khata",
		Name:      "ledger_page_views_total",
		Help:      "Ledger view resolutions by display level.",
	}, []string{"view"})

	// mutations counts ledger writes per operation.
	mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "khata",
		Name:      "ledger_mutations_total",
		Help:      "Ledger mutations by operation.",
	}, []string{"op"})
)
