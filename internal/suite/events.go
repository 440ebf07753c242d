package suite

import "github.com/corebench/corebench/internal/models"

// EventType identifies a progress event.
type EventType string

const (
	EventSuiteStarted   EventType = "suite_started"
	EventWarmupStarted  EventType = "warmup_started"
	EventWarmupComplete EventType = "warmup_complete"
	EventPhaseStarted   EventType = "phase_started"
	EventKernelStarted  EventType = "kernel_started"
	EventKernelComplete EventType = "kernel_complete"
	EventCooldown       EventType = "cooldown"
	EventSuiteComplete  EventType = "suite_complete"
)

// ProgressEvent reports suite progress. Index and Total count measured
// kernel slots across both suites (1 through 20); warm-up events carry
// zero values.
type ProgressEvent struct {
	Type      EventType
	Kernel    string
	Name      string
	Mode      models.ExecutionMode
	Index     int
	Total     int
	Valid     bool
	Error     string
	ElapsedMs float64
}

// ProgressListener receives progress events synchronously. Listeners
// must be fast; slow consumers should use the event channel instead.
type ProgressListener func(ProgressEvent)
