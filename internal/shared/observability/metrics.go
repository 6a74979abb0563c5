package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "typeonly_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	FilesDiscoveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "typeonly_files_discovered_total",
		Help: "Total number of files found while walking scan paths.",
	})

	FilesCheckedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typeonly_files_checked_total",
		Help: "Total number of files passed through the scope matcher.",
	}, []string{"in_scope"})

	StatementsClassifiedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typeonly_statements_classified_total",
		Help: "Total number of top-level statements classified, by verdict.",
	}, []string{"verdict"})

	FileErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typeonly_file_errors_total",
		Help: "Total number of files that could not be read or parsed.",
	}, []string{"stage"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "typeonly_run_seconds",
		Help:    "Time spent on a full check run.",
		Buckets: prometheus.DefBuckets,
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "typeonly_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
