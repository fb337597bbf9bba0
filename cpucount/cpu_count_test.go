package cpucount

import (
	"fmt"
	"os"
	"path"
	"sync"
	"testing"

	"github.com/eparparita/cpu-count/internal/utils"
	"github.com/eparparita/cpu-count/testutils"
)

const PATH_TO_ROOT = ".."

var testDataProcDir = path.Join(PATH_TO_ROOT, testutils.TESTDATA_PROC_SUBDIR)

// Fixed count source, for exercising the counter w/o touching the platform:
type testCpuInfoSource struct {
	logical, physical int
}

func (src *testCpuInfoSource) LogicalCPUs() int  { return src.logical }
func (src *testCpuInfoSource) PhysicalCPUs() int { return src.physical }

func TestNumCPUsClamp(t *testing.T) {
	for _, tc := range []struct {
		logical, physical         int
		wantNumCPUs, wantPhysical int
	}{
		{4, 2, 4, 2},
		{1, 1, 1, 1},
		// Degenerate sources must still yield a usable count:
		{0, 0, 1, 1},
		{-1, -1, 1, 1},
	} {
		t.Run(
			fmt.Sprintf("logical=%d,physical=%d", tc.logical, tc.physical),
			func(t *testing.T) {
				cpuCounter := &CpuCounter{
					source: &testCpuInfoSource{tc.logical, tc.physical},
				}
				if got := cpuCounter.NumCPUs(); got != tc.wantNumCPUs {
					t.Fatalf("NumCPUs(): want: %d, got: %d", tc.wantNumCPUs, got)
				}
				if got := cpuCounter.NumPhysicalCPUs(); got != tc.wantPhysical {
					t.Fatalf("NumPhysicalCPUs(): want: %d, got: %d", tc.wantPhysical, got)
				}
			},
		)
	}
}

// Build a proc like tree w/ a pid 1 assigned to a cpu cgroup whose quota files
// live under the same tree; the mount point has to be an actual location, so
// everything is generated at runtime:
func createQuotaProcfsRoot(t *testing.T, cfsQuotaUs, cfsPeriodUs string) string {
	procfsRoot := t.TempDir()
	pidDir := path.Join(procfsRoot, "1")
	cgroupDir := path.Join(procfsRoot, "cgroup", "cpu")
	for _, dir := range []string{pidDir, cgroupDir} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			t.Fatal(err)
		}
	}
	for file, content := range map[string]string{
		path.Join(pidDir, "cgroup"): "4:cpu,cpuacct:/docker/01abcd\n",
		path.Join(pidDir, "mountinfo"): fmt.Sprintf(
			"613 612 0:27 /docker/01abcd %s ro,relatime master:16 - cgroup cgroup rw,cpu,cpuacct\n",
			cgroupDir,
		),
		path.Join(cgroupDir, "cpu.cfs_quota_us"):  cfsQuotaUs + "\n",
		path.Join(cgroupDir, "cpu.cfs_period_us"): cfsPeriodUs + "\n",
	} {
		if err := os.WriteFile(file, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return procfsRoot
}

func TestLinuxSourceQuotaCap(t *testing.T) {
	available := utils.CountAvailableCPUs()

	// 2 CPU worth of quota:
	procfsRoot := createQuotaProcfsRoot(t, "200000", "100000")
	src := &LinuxCpuInfoSource{procfsRoot: procfsRoot, pid: 1}

	want := 2
	if available < want {
		want = available
	}
	if got := src.LogicalCPUs(); got != want {
		t.Fatalf("LogicalCPUs(): want: %d, got: %d", want, got)
	}
}

func TestLinuxSourceQuotaFrozen(t *testing.T) {
	procfsRoot := createQuotaProcfsRoot(t, "100000", "100000")
	src := &LinuxCpuInfoSource{procfsRoot: procfsRoot, pid: 1}

	want := src.LogicalCPUs()

	// Rewriting the quota after the first read must have no effect:
	quotaFile := path.Join(procfsRoot, "cgroup", "cpu", "cpu.cfs_quota_us")
	if err := os.WriteFile(quotaFile, []byte("1600000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := src.LogicalCPUs(); got != want {
		t.Fatalf("LogicalCPUs() after quota rewrite: want: %d, got: %d", want, got)
	}
}

func TestLinuxSourceQuotaConcurrentInit(t *testing.T) {
	const numReaders = 16

	procfsRoot := createQuotaProcfsRoot(t, "100000", "100000")
	src := &LinuxCpuInfoSource{procfsRoot: procfsRoot, pid: 1}

	counts := make([]int, numReaders)
	wg := &sync.WaitGroup{}
	for i := 0; i < numReaders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			counts[i] = src.LogicalCPUs()
		}(i)
	}
	wg.Wait()

	for i := 1; i < numReaders; i++ {
		if counts[i] != counts[0] {
			t.Fatalf("counts[%d]: want: %d, got: %d", i, counts[0], counts[i])
		}
	}
}

func TestLinuxSourceNoQuota(t *testing.T) {
	// cgroup v2 only membership, the affinity/online count applies:
	procfsRoot := t.TempDir()
	pidDir := path.Join(procfsRoot, "1")
	if err := os.MkdirAll(pidDir, os.ModePerm); err != nil {
		t.Fatal(err)
	}
	for file, content := range map[string]string{
		path.Join(pidDir, "cgroup"):    "0::/init.scope\n",
		path.Join(pidDir, "mountinfo"): "26 21 0:22 / /sys/fs/cgroup rw - cgroup2 cgroup2 rw\n",
	} {
		if err := os.WriteFile(file, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	src := &LinuxCpuInfoSource{procfsRoot: procfsRoot, pid: 1}

	want := utils.CountAvailableCPUs()
	if got := src.LogicalCPUs(); got != want {
		t.Fatalf("LogicalCPUs(): want: %d, got: %d", want, got)
	}
}

func TestLinuxSourcePhysicalCPUs(t *testing.T) {
	// The `ht' fixture describes 1 package w/ 4 cores, 8 logical CPUs:
	src := &LinuxCpuInfoSource{
		procfsRoot: path.Join(testDataProcDir, "cpuinfo", "ht"),
		pid:        1,
	}
	want := 4
	if got := src.PhysicalCPUs(); got != want {
		t.Fatalf("PhysicalCPUs(): want: %d, got: %d", want, got)
	}
}

func TestLinuxSourcePhysicalCPUsFallback(t *testing.T) {
	// No cpuinfo at all, the logical count applies:
	src := &LinuxCpuInfoSource{procfsRoot: t.TempDir(), pid: 1}
	want := utils.CountAvailableCPUs()
	if got := src.PhysicalCPUs(); got != want {
		t.Fatalf("PhysicalCPUs(): want: %d, got: %d", want, got)
	}
}

func TestFallbackCpuInfoSource(t *testing.T) {
	src := NewFallbackCpuInfoSource()
	logical, physical := src.LogicalCPUs(), src.PhysicalCPUs()
	if logical < 1 {
		t.Fatalf("LogicalCPUs(): want: >= 1, got: %d", logical)
	}
	if physical != logical {
		t.Fatalf("PhysicalCPUs(): want: %d, got: %d", logical, physical)
	}
}

func TestGetNumCPUs(t *testing.T) {
	numCPUs, numPhysicalCPUs := GetNumCPUs(), GetNumPhysicalCPUs()
	t.Logf("GetNumCPUs(): %d, GetNumPhysicalCPUs(): %d", numCPUs, numPhysicalCPUs)
	if numCPUs < 1 {
		t.Fatalf("GetNumCPUs(): want: >= 1, got: %d", numCPUs)
	}
	if numPhysicalCPUs < 1 {
		t.Fatalf("GetNumPhysicalCPUs(): want: >= 1, got: %d", numPhysicalCPUs)
	}
}
