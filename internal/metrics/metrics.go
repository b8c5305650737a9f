// Package metrics exposes counters for the failures the service absorbs
// without reporting them to the caller.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreWriteFailures counts remote writes that failed after the local
	// state was already updated.
	StoreWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "levelup",
		Name:      "store_write_failures_total",
		Help:      "Remote store writes that failed and left local state diverged.",
	}, []string{"collection", "op"})

	// TextgenFallbacks counts text-generation calls answered with fallback text.
	TextgenFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "levelup",
		Name:      "textgen_fallbacks_total",
		Help:      "Text-generation calls that returned the fixed fallback text.",
	}, []string{"call", "reason"})

	// OfflineMode is 1 while the service runs on fixture data.
	OfflineMode = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "levelup",
		Name:      "offline_mode",
		Help:      "1 when the initial load fell back to fixture data.",
	})

	// SessionTransitions counts session lifecycle transitions.
	SessionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "levelup",
		Name:      "session_transitions_total",
		Help:      "Session lifecycle transitions applied to local state.",
	}, []string{"transition"})
)

// Label values.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"

	CallTips     = "tips"
	CallAnalysis = "analysis"

	ReasonError = "error"
	ReasonEmpty = "empty"

	TransitionActivate = "activate"
	TransitionAttend   = "attend"
	TransitionComplete = "complete"
	TransitionDelete   = "delete"
)
