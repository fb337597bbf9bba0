// parser for /proc/pid/mountinfo

package procfs

import (
	"bytes"
	"fmt"
	"path"
	"strconv"
)

// Reference:
// https://man7.org/linux/man-pages/man5/proc.5.html

const (
	// 0 based indices for mountinfo file fields as well as for the parsed
	// information:
	MOUNTINFO_MOUNT_ID = iota
	MOUNTINFO_PARENT_ID
	MOUNTINFO_MAJOR_MINOR
	MOUNTINFO_ROOT
	MOUNTINFO_MOUNT_POINT
	MOUNTINFO_MOUNT_OPTIONS
	MOUNTINFO_OPTIONAL_FIELDS
	MOUNTINFO_OPTIONAL_FIELDS_SEPARATOR
	MOUNTINFO_FS_TYPE
	MOUNTINFO_MOUNT_SOURCE
	MOUNTINFO_SUPER_OPTIONS

	// Must be last:
	MOUNTINFO_NUM_FIELDS
)

// The filesystem type of cgroup v1 hierarchy mounts; v2 uses `cgroup2', which
// is deliberately not matched, its quota layout being entirely different:
var mountinfoCgroupFsType = []byte("cgroup")

// Read the entire file in one go, using a ReadFileBufPool; mount tables can
// get large inside containers:
var mountinfoReadFileBufPool = ReadFileBufPool256k

type Mountinfo struct {
	// The root and mount point of the first cgroup filesystem mount w/ the
	// `cpu' controller among its super options. The root is the mount's path
	// relative to the process' own root directory and the mount point is
	// where the hierarchy is visible on the actual filesystem:
	CpuCgroupRoot       string
	CpuCgroupMountPoint string

	// Whether such a mount was found at all; e.g. on cgroup v2 only systems
	// there is none:
	CpuCgroupFound bool

	// The path of the file to read:
	path string
}

func MountinfoPath(procfsRoot string, pid int) string {
	return path.Join(procfsRoot, strconv.Itoa(pid), "mountinfo")
}

func NewMountinfo(procfsRoot string, pid int) *Mountinfo {
	return &Mountinfo{
		path: MountinfoPath(procfsRoot, pid),
	}
}

func (mountinfo *Mountinfo) Parse() error {
	fBuf, err := mountinfoReadFileBufPool.ReadFile(mountinfo.path)
	defer mountinfoReadFileBufPool.ReturnBuf(fBuf)
	if err != nil {
		return err
	}

	buf, l := fBuf.Bytes(), fBuf.Len()

	mountinfo.CpuCgroupRoot = ""
	mountinfo.CpuCgroupMountPoint = ""
	mountinfo.CpuCgroupFound = false

	info := make([][]byte, MOUNTINFO_NUM_FIELDS)
	for pos, lineNum := 0, 1; pos < l; lineNum++ {
		lineStart, fieldIndex, eol := pos, MOUNTINFO_MOUNT_ID, false
		optionalFieldsStart, optionalFieldsEnd := -1, -1
		for ; !eol && pos < l && fieldIndex < MOUNTINFO_NUM_FIELDS; pos++ {
			// Locate the next word start:
			for ; pos < l && isWhitespace[buf[pos]]; pos++ {
			}
			wordStart := pos
			// Locate word end:
			for ; pos < l; pos++ {
				c := buf[pos]
				if eol = (c == '\n'); eol || isWhitespace[c] {
					break
				}
			}
			// Assign to parsed field:
			if fieldIndex == MOUNTINFO_OPTIONAL_FIELDS {
				if optionalFieldsStart < 0 {
					// First word of the optional fields:
					optionalFieldsStart = wordStart
					optionalFieldsEnd = wordStart
				}
				if pos == wordStart+1 && buf[wordStart] == '-' {
					// End of optional fields:
					info[fieldIndex] = buf[optionalFieldsStart:optionalFieldsEnd]
					fieldIndex++
				} else {
					// This word is part of the optional fields, advance the
					// latter's end position:
					optionalFieldsEnd = pos
					continue
				}
			}
			info[fieldIndex] = buf[wordStart:pos]
			fieldIndex++
		}
		if fieldIndex < MOUNTINFO_NUM_FIELDS {
			// Missing fields:
			return fmt.Errorf(
				"%s#%d: %q: missing fields: want: %d, got: %d",
				mountinfo.path, lineNum, getCurrentLine(buf, lineStart), MOUNTINFO_NUM_FIELDS, fieldIndex,
			)
		}
		// Advance to EOL:
		for ; !eol && pos < l; pos++ {
			c := buf[pos]
			if eol = (c == '\n'); !eol && !isWhitespace[c] {
				return fmt.Errorf(
					"%s#%d: %q: %q: unexpected content after the last field",
					mountinfo.path, lineNum, getCurrentLine(buf, lineStart), getCurrentLine(buf, pos),
				)
			}
		}

		// The first cgroup mount w/ the `cpu' controller wins:
		if bytes.Equal(info[MOUNTINFO_FS_TYPE], mountinfoCgroupFsType) &&
			listHasToken(info[MOUNTINFO_SUPER_OPTIONS], cgroupCpuController) {
			mountinfo.CpuCgroupRoot = string(info[MOUNTINFO_ROOT])
			mountinfo.CpuCgroupMountPoint = string(info[MOUNTINFO_MOUNT_POINT])
			mountinfo.CpuCgroupFound = true
			return nil
		}
	}

	return nil
}
