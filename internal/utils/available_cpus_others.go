// Count available CPUs based on the online CPU count

//go:build !linux

package utils

import (
	"runtime"

	"github.com/tklauser/go-sysconf"
)

func CountAvailableCPUs() int {
	if count, err := sysconf.Sysconf(sysconf.SC_NPROCESSORS_ONLN); err == nil && count > 0 {
		return int(count)
	}
	if count := runtime.NumCPU(); count > 0 {
		return count
	}
	return 1
}
