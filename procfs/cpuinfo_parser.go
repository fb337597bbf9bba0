// parser for /proc/cpuinfo

package procfs

import (
	"bytes"
	"path"
	"strconv"

	"github.com/eparparita/cpu-count/internal/utils"
)

// processor	: 0
// vendor_id	: GenuineIntel
// ...
// physical id	: 0
// ...
// cpu cores	: 4
// ...

// Each logical CPU is described by a block of `key : value' lines, among
// which `physical id' identifies the physical package hosting the CPU and
// `cpu cores' gives that package's core count. Physical packages are thus
// reported once per logical CPU; the parser collects the core counts keyed by
// physical id, with the last pair seen for a given id winning, and the total
// physical core count is the sum across ids.

var (
	cpuinfoPhysicalIdKey = []byte("physical id")
	cpuinfoCpuCoresKey   = []byte("cpu cores")
)

// Read the entire file in one go, using a ReadFileBufPool; the file grows
// with the logical CPU count, ~1k/CPU:
var cpuinfoReadFileBufPool = ReadFileBufPool256k

// Cap the read size, for systems w/ more CPUs than the default pool limit
// allows for:
func SetCpuinfoMaxReadSize(maxReadSize int64) {
	cpuinfoReadFileBufPool = utils.NewReadFileBufPool(8, maxReadSize)
}

type Cpuinfo struct {
	// Core counts indexed by physical package id:
	PackageCores map[int]int

	// The path of the file to read:
	path string
}

func CpuinfoPath(procfsRoot string) string {
	return path.Join(procfsRoot, "cpuinfo")
}

func NewCpuinfo(procfsRoot string) *Cpuinfo {
	return &Cpuinfo{
		PackageCores: make(map[int]int),
		path:         CpuinfoPath(procfsRoot),
	}
}

func (cpuinfo *Cpuinfo) Parse() error {
	fBuf, err := cpuinfoReadFileBufPool.ReadFile(cpuinfo.path)
	defer cpuinfoReadFileBufPool.ReturnBuf(fBuf)
	if err != nil {
		return err
	}

	buf, l := fBuf.Bytes(), fBuf.Len()

	clear(cpuinfo.PackageCores)

	// The (physical id, cpu cores) pair is flushed into PackageCores whenever
	// both members were updated since the previous flush, regardless of the
	// order they were seen in:
	physicalId, cpuCores, pendingCount := 0, 0, 0
	for pos := 0; pos < l; {
		var line []byte
		if eol := bytes.IndexByte(buf[pos:], '\n'); eol >= 0 {
			line, pos = buf[pos:pos+eol], pos+eol+1
		} else {
			line, pos = buf[pos:], l
		}
		colon := bytes.IndexByte(line, ':')
		if colon < 0 {
			continue
		}
		key := bytes.TrimSpace(line[:colon])
		isPhysicalId := bytes.Equal(key, cpuinfoPhysicalIdKey)
		if !isPhysicalId && !bytes.Equal(key, cpuinfoCpuCoresKey) {
			continue
		}
		value, err := strconv.Atoi(string(bytes.TrimSpace(line[colon+1:])))
		if err != nil {
			// Unusable topology info; stop the scan, whatever was collected
			// until this point stands:
			break
		}
		if isPhysicalId {
			physicalId = value
		} else {
			cpuCores = value
		}
		if pendingCount++; pendingCount == 2 {
			cpuinfo.PackageCores[physicalId] = cpuCores
			pendingCount = 0
		}
	}

	return nil
}

// Total core count across physical packages; 0 indicates that the file
// carried no usable topology info and the caller should fall back on the
// available (logical) CPU count:
func (cpuinfo *Cpuinfo) NumCores() int {
	numCores := 0
	for _, cpuCores := range cpuinfo.PackageCores {
		numCores += cpuCores
	}
	return numCores
}
