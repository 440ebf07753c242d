//go:build linux

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type linuxController struct {
	prevSet  unix.CPUSet
	prevNice int
	pinned   bool
	elevated bool
}

func newPlatformController() Controller {
	return &linuxController{}
}

// PinToCore restricts the calling thread to a single CPU. The caller
// must hold the OS thread (runtime.LockOSThread) for the duration of
// the pin.
func (c *linuxController) PinToCore(core int) error {
	var prev unix.CPUSet
	if err := unix.SchedGetaffinity(0, &prev); err != nil {
		return fmt.Errorf("reading current affinity: %w", err)
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("pinning to core %d: %w", core, err)
	}
	c.prevSet = prev
	c.pinned = true
	return nil
}

func (c *linuxController) ResetAffinity() error {
	if !c.pinned {
		return nil
	}
	c.pinned = false
	if err := unix.SchedSetaffinity(0, &c.prevSet); err != nil {
		return fmt.Errorf("restoring affinity: %w", err)
	}
	return nil
}

// ElevatePriority lowers the nice value as far as permissions allow.
// SCHED_FIFO would be stronger but requires CAP_SYS_NICE in practice,
// so nice is the portable degradation the run can actually get.
func (c *linuxController) ElevatePriority() error {
	raw, err := unix.Getpriority(unix.PRIO_PROCESS, 0)
	if err != nil {
		return fmt.Errorf("reading current priority: %w", err)
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, 0, -20); err != nil {
		return fmt.Errorf("elevating priority: %w", err)
	}
	// The raw getpriority syscall reports 20-nice, not nice.
	c.prevNice = 20 - raw
	c.elevated = true
	return nil
}

func (c *linuxController) ResetPriority() error {
	if !c.elevated {
		return nil
	}
	c.elevated = false
	if err := unix.Setpriority(unix.PRIO_PROCESS, 0, c.prevNice); err != nil {
		return fmt.Errorf("restoring priority: %w", err)
	}
	return nil
}
