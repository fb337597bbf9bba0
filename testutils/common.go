package testutils

// The following sub-dirs are relative to module root:
const (
	TESTDATA_SUBDIR         = "testdata"
	TESTDATA_PROC_SUBDIR    = TESTDATA_SUBDIR + "/proc"
	TESTDATA_CGROUPS_SUBDIR = TESTDATA_SUBDIR + "/cgroups"
)
