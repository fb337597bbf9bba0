// parser for /proc/pid/cgroup

package procfs

import (
	"bytes"
	"fmt"
	"path"
	"strconv"
)

// 12:cpu,cpuacct:/docker/01abcd
// 11:devices:/docker/01abcd
// ...
// 0::/
//
// One line per hierarchy the process belongs to, with colon separated fields
// `hierarchy-id:comma-separated-controllers:path'. cgroup v2 membership is
// listed with an empty controller list (the `0::...' line), so it never
// matches a controller lookup, by v1 rules.

var cgroupCpuController = []byte("cpu")

var pidCgroupReadFileBufPool = ReadFileBufPool16k

type PidCgroup struct {
	// The cgroup path assigned to the `cpu' controller, taken from the first
	// line listing the latter; empty if no line does:
	CpuPath string

	// The path of the file to read:
	path string
}

func PidCgroupPath(procfsRoot string, pid int) string {
	return path.Join(procfsRoot, strconv.Itoa(pid), "cgroup")
}

func NewPidCgroup(procfsRoot string, pid int) *PidCgroup {
	return &PidCgroup{
		path: PidCgroupPath(procfsRoot, pid),
	}
}

func (pidCgroup *PidCgroup) Parse() error {
	fBuf, err := pidCgroupReadFileBufPool.ReadFile(pidCgroup.path)
	defer pidCgroupReadFileBufPool.ReturnBuf(fBuf)
	if err != nil {
		return err
	}

	buf, l := fBuf.Bytes(), fBuf.Len()

	pidCgroup.CpuPath = ""

	for pos, lineNum := 0, 1; pos < l; lineNum++ {
		var line []byte
		if eol := bytes.IndexByte(buf[pos:], '\n'); eol >= 0 {
			line, pos = buf[pos:pos+eol], pos+eol+1
		} else {
			line, pos = buf[pos:], l
		}
		firstColon := bytes.IndexByte(line, ':')
		if firstColon < 0 {
			return fmt.Errorf(
				"%s#%d: %q: missing `hierarchy-id:controllers:path' separators",
				pidCgroup.path, lineNum, string(line),
			)
		}
		rest := line[firstColon+1:]
		secondColon := bytes.IndexByte(rest, ':')
		if secondColon < 0 {
			return fmt.Errorf(
				"%s#%d: %q: missing `hierarchy-id:controllers:path' separators",
				pidCgroup.path, lineNum, string(line),
			)
		}
		// The path itself may contain `:', hence only the first 2 separators
		// count:
		controllers, cgroupPath := rest[:secondColon], rest[secondColon+1:]
		if listHasToken(controllers, cgroupCpuController) {
			pidCgroup.CpuPath = string(cgroupPath)
			return nil
		}
	}

	return nil
}
