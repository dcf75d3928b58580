// Package metrics wires the reactivity core's instrumentation hooks into
// Prometheus collectors, without forcing the core itself to depend on
// prometheus/client_golang. Ground: newbpydev-bubblyui's
// pkg/bubbly/monitoring/prometheus.go (same "wrap a Registerer, expose
// Install/collectors" shape).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/riverrun/reactive/internal"
)

// Collectors holds every metric the core can report. All metrics are
// prefixed with "reactive_" to avoid collisions in a shared registry.
type Collectors struct {
	triggerEffectsTotal prometheus.Counter
	effectRunsTotal     prometheus.Counter
	depsCreatedTotal    prometheus.Counter
	registrySize        prometheus.GaugeFunc
}

// NewCollectors creates and registers the metrics against reg. Panics on a
// duplicate registration, matching the pack's fail-fast-at-startup
// convention for metrics setup.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		triggerEffectsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reactive_trigger_effects_total",
			Help: "Total number of effect reruns scheduled by a trigger.",
		}),
		effectRunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reactive_effect_runs_total",
			Help: "Total number of effect bodies actually executed.",
		}),
		depsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reactive_deps_created_total",
			Help: "Total number of (target, key) dependency cells ever created.",
		}),
		registrySize: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "reactive_registry_targets",
			Help: "Current number of targets live in the process-wide dep registry.",
		}, func() float64 { return float64(internal.RegistrySize()) }),
	}

	reg.MustRegister(c.triggerEffectsTotal, c.effectRunsTotal, c.depsCreatedTotal, c.registrySize)
	return c
}

// Install wires c into the core's instrumentation hooks. Call once at
// startup, after NewCollectors.
func Install(c *Collectors) {
	internal.SetMetricsHooks(
		func(effectCount int) { c.triggerEffectsTotal.Add(float64(effectCount)) },
		func() { c.effectRunsTotal.Inc() },
		func() { c.depsCreatedTotal.Inc() },
	)
}
