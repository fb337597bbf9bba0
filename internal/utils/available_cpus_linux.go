// Count available CPUs based on affinity

//go:build linux

package utils

import (
	"os"
	"runtime"

	"github.com/tklauser/numcpus"

	"golang.org/x/sys/unix"
)

// For linux count available CPUs based on CPU affinity, w/ a fallback on the
// system-wide online CPU count. The affinity mask may be narrower than the
// hardware when the process was pinned (taskset, container runtimes), hence
// the preference for it. The result is always >= 1, errors notwithstanding.
func CountAvailableCPUs() int {
	cpuSet := unix.CPUSet{}
	err := unix.SchedGetaffinity(os.Getpid(), &cpuSet)
	if err == nil {
		count := 0
		for _, cpuMask := range cpuSet {
			for cpuMask != 0 {
				count++
				cpuMask &= (cpuMask - 1)
			}
		}
		if count > 0 {
			return count
		}
	}
	if count, err := numcpus.GetOnline(); err == nil && count > 0 {
		return count
	}
	if count := runtime.NumCPU(); count > 0 {
		return count
	}
	return 1
}
