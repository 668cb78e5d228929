package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/generator"
)

const namespace = "forage_portfwd"

// Registry holds the gauges describing one compile.
type Registry struct {
	registry *prometheus.Registry

	Rules        *prometheus.GaugeVec
	Containers   *prometheus.GaugeVec
	Interfaces   *prometheus.GaugeVec
	Reservations prometheus.Gauge
	LastRun      prometheus.Gauge
}

// New returns a Registry with all gauges registered and zeroed.
func New() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.Rules = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rules",
		Help:      "Forward rules written, by interface, protocol and status",
	}, []string{"interface", "protocol", "status"})

	r.Containers = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "containers",
		Help:      "Container blocks compiled, by interface and final state",
	}, []string{"interface", "state"})

	r.Interfaces = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "interfaces",
		Help:      "Interface blocks compiled, by status",
	}, []string{"status"})

	r.Reservations = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "port_reservations",
		Help:      "Host port and protocol pairs claimed during the run",
	})

	r.LastRun = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the last compile",
	})

	r.registry.MustRegister(r.Rules, r.Containers, r.Interfaces, r.Reservations, r.LastRun)
	return r
}

// FromReport returns a Registry describing report.
func FromReport(report *generator.Report, reservations int, now time.Time) *Registry {
	r := New()
	r.Observe(report, reservations, now)
	return r
}

// Observe replaces the gauge values with the contents of report.
func (r *Registry) Observe(report *generator.Report, reservations int, now time.Time) {
	r.Rules.Reset()
	r.Containers.Reset()
	r.Interfaces.Reset()

	for _, ir := range report.Interfaces {
		status := "ok"
		if ir.Err != nil {
			status = "failed"
		}
		r.Interfaces.WithLabelValues(status).Inc()

		for _, cr := range ir.Containers {
			r.Containers.WithLabelValues(ir.Name, cr.State.String()).Inc()
			for _, f := range cr.Forwards {
				r.Rules.WithLabelValues(ir.Name, string(f.Protocol), f.Status.String()).Inc()
			}
		}
	}

	r.Reservations.Set(float64(reservations))
	r.LastRun.Set(float64(now.Unix()))
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the metrics in text exposition format for the
// node-exporter textfile collector. The file is replaced atomically.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
