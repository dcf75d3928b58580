package internal

// Instrumentation hooks the optional metrics package installs itself into.
// nil by default so importing this package never requires prometheus.
var (
	onTriggerRecorded func(effectCount int)
	onEffectRunRecorded func()
	onDepCreatedRecorded func()
)

// SetMetricsHooks wires the core's instrumentation points. Intended to be
// called once by metrics.Install(), never directly by application code.
func SetMetricsHooks(onTrigger func(int), onEffectRun func(), onDepCreated func()) {
	onTriggerRecorded = onTrigger
	onEffectRunRecorded = onEffectRun
	onDepCreatedRecorded = onDepCreated
}
