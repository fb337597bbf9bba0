// cgroup v1 cpu controller quota

package cgroup

import (
	"math"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/eparparita/cpu-count/procfs"
)

// The two files under the cpu controller directory defining the CFS bandwidth
// limit: the allowed runtime per period, -1 if unlimited, and the period
// length, both in microseconds:
const (
	CFS_QUOTA_US_FILE  = "cpu.cfs_quota_us"
	CFS_PERIOD_US_FILE = "cpu.cfs_period_us"
)

// The real, host visible, directory of the cpu controller cgroup the process
// belongs to:
type CpuCgroup struct {
	Dir string
}

// Translate the namespace relative cgroup path assigned to the cpu controller
// into the real directory, via the root and mount point of the cgroup
// filesystem mount. E.g. w/ root `/docker/01abcd' mounted at
// `/sys/fs/cgroup/cpu', the subsystem path `/docker/01abcd/large' resolves to
// `/sys/fs/cgroup/cpu/large'. A subsystem path that does not have the root as
// a prefix cannot be resolved:
func TranslateMountPoint(root, mountPoint, subsysPath string) (string, bool) {
	relPath, ok := stripPathPrefix(subsysPath, root)
	if !ok {
		return "", false
	}
	return path.Join(mountPoint, relPath), true
}

// Path component aware prefix strip, i.e. `/docker/01abcd-other' does not
// have the `/docker/01abcd' prefix:
func stripPathPrefix(p, prefix string) (string, bool) {
	p, prefix = path.Clean(p), path.Clean(prefix)
	if p == prefix {
		return "", true
	}
	if prefix == "/" {
		return strings.TrimPrefix(p, "/"), true
	}
	if strings.HasPrefix(p, prefix) && len(p) > len(prefix) && p[len(prefix)] == '/' {
		return p[len(prefix)+1:], true
	}
	return "", false
}

func (cpuCgroup *CpuCgroup) param(file string) (int64, bool) {
	content, err := os.ReadFile(path.Join(cpuCgroup.Dir, file))
	if err != nil {
		return 0, false
	}
	val, err := strconv.ParseInt(strings.TrimSpace(string(content)), 10, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// The effective CPU count allowed by the CFS bandwidth limit,
// ceil(quota/period); the rounding is up such that a fractional entitlement,
// e.g. 1.5 CPU worth of runtime per period, can still be saturated by the
// rounded count, 2 in the example, rather than leaving capacity unused. The
// returned flag indicates whether the pair could be read and divided at all;
// note that 0, the result of an unlimited (negative) quota, passes the flag
// and the caller is expected to discard it:
func (cpuCgroup *CpuCgroup) CpuQuota() (int, bool) {
	quotaUs, ok := cpuCgroup.param(CFS_QUOTA_US_FILE)
	if !ok {
		return 0, false
	}
	periodUs, ok := cpuCgroup.param(CFS_PERIOD_US_FILE)
	if !ok {
		return 0, false
	}
	// Guard against dividing by zero; a 0 period is a degenerate
	// configuration, not the same as no limit:
	if periodUs == 0 {
		return 0, false
	}
	quota := int(math.Ceil(float64(quotaUs) / float64(periodUs)))
	if quota < 0 {
		quota = 0
	}
	return quota, true
}

// Resolve the effective CPU count for the process' cpu controller cgroup, in
// 3 stages: locate the controller's cgroup path, locate the cgroup filesystem
// mount, translate the former through the latter and read the quota pair. Any
// missing, unreadable or malformed link in the chain yields (0, false), never
// an error; none of the pseudo files involved is guaranteed to exist on a
// given system:
func LoadCpuQuota(procfsRoot string, pid int) (int, bool) {
	pidCgroup := procfs.NewPidCgroup(procfsRoot, pid)
	if err := pidCgroup.Parse(); err != nil || pidCgroup.CpuPath == "" {
		return 0, false
	}

	mountinfo := procfs.NewMountinfo(procfsRoot, pid)
	if err := mountinfo.Parse(); err != nil || !mountinfo.CpuCgroupFound {
		return 0, false
	}

	dir, ok := TranslateMountPoint(
		mountinfo.CpuCgroupRoot, mountinfo.CpuCgroupMountPoint, pidCgroup.CpuPath,
	)
	if !ok {
		return 0, false
	}

	cpuCgroup := CpuCgroup{Dir: dir}
	return cpuCgroup.CpuQuota()
}
