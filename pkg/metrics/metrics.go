// Package metrics exports picker activity as Prometheus metrics.
//
// A Collector is fed through LifecycleHooks, so any picker (or every picker a
// session.Manager creates) can be instrumented without touching the machines.
package metrics

import (
	"github.com/aretw0/picker/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector aggregates picker counters. It implements prometheus.Collector.
type Collector struct {
	commands   *prometheus.CounterVec
	selections *prometheus.CounterVec
	aborts     *prometheus.CounterVec
	points     *prometheus.HistogramVec
}

// NewCollector creates an unregistered collector.
func NewCollector() *Collector {
	return &Collector{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "picker_commands_total",
				Help: "Total number of commands emitted by selection machines",
			},
			[]string{"machine", "command"},
		),
		selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "picker_selections_total",
				Help: "Total number of completed selections",
			},
			[]string{"machine", "type"},
		),
		aborts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "picker_aborts_total",
				Help: "Total number of selections cancelled with the abort key",
			},
			[]string{"machine"},
		),
		points: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "picker_selection_points",
				Help:    "Number of points in completed selections",
				Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 16, 32},
			},
			[]string{"machine"},
		),
	}
}

// Register adds the collector to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	return reg.Register(c)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.commands.Describe(ch)
	c.selections.Describe(ch)
	c.aborts.Describe(ch)
	c.points.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.commands.Collect(ch)
	c.selections.Collect(ch)
	c.aborts.Collect(ch)
	c.points.Collect(ch)
}

// Hooks returns lifecycle hooks that record into the collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommands: func(machine string, _ domain.Event, cmds domain.Commands) {
			for cmd := range cmds.All() {
				c.commands.WithLabelValues(machine, cmd.String()).Inc()
			}
		},
		OnAbort: func(e *domain.SelectionEvent) {
			c.aborts.WithLabelValues(e.Machine).Inc()
		},
		OnSelected: func(machine string, sel domain.Selection) {
			c.selections.WithLabelValues(machine, sel.Type.String()).Inc()
			c.points.WithLabelValues(machine).Observe(float64(len(sel.Points)))
		},
	}
}
