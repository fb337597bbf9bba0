package procfs

import (
	"fmt"
	"path"
	"testing"
)

type PidCgroupTestCase struct {
	name        string
	procfsRoot  string
	pid         int
	wantCpuPath string
	wantError   bool
}

var pidCgroupTestdataDir = path.Join(TestDataProcDir, "pid_cgroup")

func testPidCgroupParser(tc *PidCgroupTestCase, t *testing.T) {
	t.Logf("procfsRoot=%q, pid=%d", tc.procfsRoot, tc.pid)

	pidCgroup := NewPidCgroup(tc.procfsRoot, tc.pid)
	err := pidCgroup.Parse()
	if tc.wantError {
		if err == nil {
			t.Fatal("want: error, got: nil")
		}
		return
	}
	if err != nil {
		t.Fatal(err)
	}
	if tc.wantCpuPath != pidCgroup.CpuPath {
		t.Fatalf("CpuPath: want: %q, got: %q", tc.wantCpuPath, pidCgroup.CpuPath)
	}
}

func TestPidCgroupParser(t *testing.T) {
	for _, tc := range []*PidCgroupTestCase{
		{
			name:        "v1",
			procfsRoot:  path.Join(pidCgroupTestdataDir, "v1"),
			pid:         1,
			wantCpuPath: "/docker/01abcd",
		},
		{
			// The v2 membership line has an empty controller list, it must
			// not be mistaken for a `cpu' controller assignment:
			name:        "v2_only",
			procfsRoot:  path.Join(pidCgroupTestdataDir, "v2_only"),
			pid:         1,
			wantCpuPath: "",
		},
		{
			name:        "no_cpu",
			procfsRoot:  path.Join(pidCgroupTestdataDir, "no_cpu"),
			pid:         1,
			wantCpuPath: "",
		},
		{
			name:       "missing_file",
			procfsRoot: path.Join(pidCgroupTestdataDir, "no_such_dir"),
			pid:        1,
			wantError:  true,
		},
	} {
		t.Run(
			fmt.Sprintf("name=%s", tc.name),
			func(t *testing.T) { testPidCgroupParser(tc, t) },
		)
	}
}
