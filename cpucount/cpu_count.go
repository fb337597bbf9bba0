// Logical and physical CPU counts for the current process.
//
// The logical count is the number of schedulable execution contexts the
// process can actually use: the scheduler affinity mask narrowed down, where
// applicable, by the cgroup CPU quota, so that a process confined to 2 CPU
// worth of runtime inside a 64 CPU host sizes its worker pools at 2, not 64.
// The physical count is the number of physical cores; under simultaneous
// multithreading it is lower than the logical count. Either should be taken
// as a rough parallelism guide, since memory access speeds and the cache
// hierarchy weigh in as well.

package cpucount

import (
	"fmt"

	"github.com/docker/go-units"

	"github.com/eparparita/cpu-count/procfs"
)

type CpuCounter struct {
	source CpuInfoSource
}

// Build a counter for the given config, nil for all defaults. Applications
// are expected to create one and share it; GetNumCPUs/GetNumPhysicalCPUs
// below wrap a default instance for drop-in use.
func NewCpuCounter(cfg *CpuCountConfig) (*CpuCounter, error) {
	if cfg == nil {
		cfg = DefaultCpuCountConfig()
	}
	if cfg.MaxCpuinfoReadSize != "" {
		maxReadSize, err := units.RAMInBytes(cfg.MaxCpuinfoReadSize)
		if err != nil {
			return nil, fmt.Errorf("max_cpuinfo_read_size: %q: %v", cfg.MaxCpuinfoReadSize, err)
		}
		procfs.SetCpuinfoMaxReadSize(maxReadSize)
	}
	err := SetLogger(cfg.LoggerConfig)
	if err != nil {
		return nil, err
	}
	return &CpuCounter{source: NewCpuInfoSource(cfg)}, nil
}

// The number of logical CPUs available to the process, always >= 1:
func (cpuCounter *CpuCounter) NumCPUs() int {
	if count := cpuCounter.source.LogicalCPUs(); count > 0 {
		return count
	}
	return 1
}

// The number of physical cores, always >= 1. Note that physical <= logical
// does not universally hold: it does under simultaneous multithreading, but
// when the topology info is unavailable the physical count falls back on the
// logical one and the two are equal:
func (cpuCounter *CpuCounter) NumPhysicalCPUs() int {
	if count := cpuCounter.source.PhysicalCPUs(); count > 0 {
		return count
	}
	return 1
}

var defaultCpuCounter = &CpuCounter{source: NewCpuInfoSource(nil)}

func GetNumCPUs() int {
	return defaultCpuCounter.NumCPUs()
}

func GetNumPhysicalCPUs() int {
	return defaultCpuCounter.NumPhysicalCPUs()
}
