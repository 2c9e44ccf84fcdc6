package metrics

import "github.com/prometheus/client_golang/prometheus"

const metricPrefix = "trading_halt_"

// Line outcome labels.
const (
	StatusParsed = "parsed"
	StatusFailed = "failed"
)

// Metrics bundles the data source counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	LinesTotal   *prometheus.CounterVec
	EventsTotal  *prometheus.CounterVec
	MissingFiles prometheus.Counter
	FilesLoaded  prometheus.Counter
	ExpandedDays prometheus.Histogram
}

// New constructs the counters and registers them on reg. A nil registerer
// leaves them unregistered.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		LinesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "lines_total",
				Help: "Halt file lines read, by outcome",
			},
			[]string{"status"},
		),
		EventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "events_total",
				Help: "Halt flag events emitted, by flag",
			},
			[]string{"flag"},
		),
		MissingFiles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "missing_files_total",
			Help: "Subscriptions whose halt file does not exist",
		}),
		FilesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "files_loaded_total",
			Help: "Halt files read to completion",
		}),
		ExpandedDays: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "expanded_days",
			Help:    "Calendar days covered by one expanded halt",
			Buckets: []float64{1, 2, 3, 5, 10, 30, 90},
		}),
	}

	if reg == nil {
		return m, nil
	}

	for _, collector := range []prometheus.Collector{
		m.LinesTotal,
		m.EventsTotal,
		m.MissingFiles,
		m.FilesLoaded,
		m.ExpandedDays,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveLine records the outcome of one parsed line.
func (m *Metrics) ObserveLine(status string) {
	if m == nil {
		return
	}

	m.LinesTotal.WithLabelValues(status).Inc()
}

// ObserveEvent records one emitted flag event.
func (m *Metrics) ObserveEvent(flag string) {
	if m == nil {
		return
	}

	m.EventsTotal.WithLabelValues(flag).Inc()
}

// ObserveExpansion records how many day segments a halt produced.
func (m *Metrics) ObserveExpansion(days int) {
	if m == nil {
		return
	}

	m.ExpandedDays.Observe(float64(days))
}

// ObserveMissingFile records a subscription without data.
func (m *Metrics) ObserveMissingFile() {
	if m == nil {
		return
	}

	m.MissingFiles.Inc()
}

// ObserveFileLoaded records a fully read halt file.
func (m *Metrics) ObserveFileLoaded() {
	if m == nil {
		return
	}

	m.FilesLoaded.Inc()
}
