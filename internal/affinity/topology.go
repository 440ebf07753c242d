package affinity

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// Cores above this max frequency count as "big" in an asymmetric
// (big.LITTLE) layout.
const bigCoreKHzThreshold = 2_000_000

// Topology describes the logical CPU layout the suite runs on.
type Topology struct {
	Logical     int
	BigCores    []int
	LittleCores []int
	// MaxFreqKHz maps core index to its sysfs cpuinfo_max_freq, when
	// readable.
	MaxFreqKHz map[int]int
}

// Detect probes sysfs for per-core max frequencies and falls back to a
// flat runtime.NumCPU layout when the information is unavailable
// (non-Linux, restricted sysfs).
func Detect() Topology {
	return detectWithSysfs("/sys/devices/system/cpu")
}

func detectWithSysfs(root string) Topology {
	t := Topology{
		Logical:    runtime.NumCPU(),
		MaxFreqKHz: map[int]int{},
	}
	for core := 0; core < t.Logical; core++ {
		path := fmt.Sprintf("%s/cpu%d/cpufreq/cpuinfo_max_freq", root, core)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		khz, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			continue
		}
		t.MaxFreqKHz[core] = khz
		if khz > bigCoreKHzThreshold {
			t.BigCores = append(t.BigCores, core)
		} else {
			t.LittleCores = append(t.LittleCores, core)
		}
	}
	sort.Ints(t.BigCores)
	sort.Ints(t.LittleCores)
	return t
}

// PrimeCore returns the core the single-core suite pins to: the
// highest-frequency core when frequencies are known, core 0 otherwise.
func (t Topology) PrimeCore() int {
	best, bestFreq := 0, -1
	for core, khz := range t.MaxFreqKHz {
		if khz > bestFreq || (khz == bestFreq && core < best) {
			best, bestFreq = core, khz
		}
	}
	if bestFreq < 0 {
		return 0
	}
	return best
}

// WorkerCount returns the multi-core fan-out width, one worker per
// logical core.
func (t Topology) WorkerCount() int {
	if t.Logical < 1 {
		return 1
	}
	return t.Logical
}

// Asymmetric reports whether both big and little clusters were
// detected.
func (t Topology) Asymmetric() bool {
	return len(t.BigCores) > 0 && len(t.LittleCores) > 0
}
