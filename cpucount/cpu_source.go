// Per platform CPU info sources

package cpucount

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/eparparita/cpu-count/cgroup"
	"github.com/eparparita/cpu-count/internal/utils"
	"github.com/eparparita/cpu-count/procfs"
)

var cpuSourceLog = NewCompLogger("cpu_source")

// The probes behind the public counts. Both are total: they always return a
// positive count, degrading to cruder signals rather than failing; any
// degradation is logged at debug level only.
type CpuInfoSource interface {
	LogicalCPUs() int
	PhysicalCPUs() int
}

// The variant is selected once, at startup, based on the runtime platform;
// the platform specific syscalls themselves are confined to internal/utils:
func NewCpuInfoSource(cfg *CpuCountConfig) CpuInfoSource {
	if utils.OSName == "linux" {
		return NewLinuxCpuInfoSource(cfg)
	}
	return NewFallbackCpuInfoSource()
}

// CPU info source for Linux: logical CPUs counted from the scheduler affinity
// mask, capped by the cgroup CPU quota when one applies (container runtimes
// routinely configure one); physical CPUs from the /proc/cpuinfo topology.
type LinuxCpuInfoSource struct {
	procfsRoot string
	pid        int

	// The effective count derived from the cgroup quota, computed at the
	// first logical count request and frozen for the life of the process, 0
	// standing for no usable quota. The affinity based count, on the other
	// hand, is re-read at every call: it is cheap and it may legitimately
	// change at runtime, whereas the quota files are treated as a fixture of
	// the process' container:
	cgroupOnce          sync.Once
	cgroupEffectiveCPUs atomic.Int32
}

func NewLinuxCpuInfoSource(cfg *CpuCountConfig) *LinuxCpuInfoSource {
	procfsRoot := DEFAULT_PROCFS_ROOT
	if cfg != nil && cfg.ProcfsRoot != "" {
		procfsRoot = cfg.ProcfsRoot
	}
	return &LinuxCpuInfoSource{
		procfsRoot: procfsRoot,
		pid:        os.Getpid(),
	}
}

func (src *LinuxCpuInfoSource) initCgroupEffectiveCPUs() {
	quota, ok := cgroup.LoadCpuQuota(src.procfsRoot, src.pid)
	if !ok || quota <= 0 {
		cpuSourceLog.Debugf(
			"no usable cgroup cpu quota (os: %s %s, btime: %s), affinity/online count applies",
			utils.OSName, utils.OSRelease, utils.OSBtime.Format("2006-01-02T15:04:05"),
		)
		return
	}
	available := utils.CountAvailableCPUs()
	effective := quota
	if available < effective {
		effective = available
	}
	src.cgroupEffectiveCPUs.Store(int32(effective))
	cpuSourceLog.Debugf(
		"cgroup cpu quota: %d, available: %d, effective: %d",
		quota, available, effective,
	)
}

func (src *LinuxCpuInfoSource) LogicalCPUs() int {
	src.cgroupOnce.Do(src.initCgroupEffectiveCPUs)
	if count := int(src.cgroupEffectiveCPUs.Load()); count > 0 {
		return count
	}
	return utils.CountAvailableCPUs()
}

func (src *LinuxCpuInfoSource) PhysicalCPUs() int {
	cpuinfo := procfs.NewCpuinfo(src.procfsRoot)
	if err := cpuinfo.Parse(); err != nil {
		cpuSourceLog.Debugf("%v, falling back on the logical count", err)
		return utils.CountAvailableCPUs()
	}
	if numCores := cpuinfo.NumCores(); numCores > 0 {
		return numCores
	}
	cpuSourceLog.Debug("no usable topology info, falling back on the logical count")
	return utils.CountAvailableCPUs()
}

// CPU info source for platforms w/o an affinity or topology probe; the
// physical count is simply the logical one:
type FallbackCpuInfoSource struct{}

func NewFallbackCpuInfoSource() *FallbackCpuInfoSource {
	return &FallbackCpuInfoSource{}
}

func (src *FallbackCpuInfoSource) LogicalCPUs() int {
	return utils.CountAvailableCPUs()
}

func (src *FallbackCpuInfoSource) PhysicalCPUs() int {
	return src.LogicalCPUs()
}
