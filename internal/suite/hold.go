package suite

// PerformanceHold asks the platform to sustain clocks for the duration
// of the measured suites. The default implementation does nothing;
// embedders with a real hold API supply their own.
type PerformanceHold interface {
	Acquire() error
	Release()
}

// NoopHold is the default PerformanceHold.
type NoopHold struct{}

func (NoopHold) Acquire() error { return nil }
func (NoopHold) Release()       {}
