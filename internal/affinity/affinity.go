// Package affinity pins the benchmark thread to a chosen core and
// elevates scheduling priority on platforms that allow it. Failures
// here degrade measurement fidelity but never abort a run.
package affinity

import "errors"

// ErrUnsupported is returned on platforms without affinity or priority
// control. Callers log it and continue unpinned.
var ErrUnsupported = errors.New("affinity control not supported on this platform")

// Controller manipulates the calling thread's placement and priority.
// Pin and elevate calls must be paired with their reset counterparts;
// resets are safe to call even when the set call failed.
type Controller interface {
	PinToCore(core int) error
	ResetAffinity() error
	ElevatePriority() error
	ResetPriority() error
}

// NewController returns the platform controller. On unsupported
// platforms every mutating call returns ErrUnsupported.
func NewController() Controller {
	return newPlatformController()
}
