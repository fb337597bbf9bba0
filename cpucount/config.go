// Configuration for the CPU counter

package cpucount

import (
	"fmt"
	"os"

	"github.com/go-yaml/yaml"
)

const (
	DEFAULT_PROCFS_ROOT = "/proc"
)

// All the parameters have usable built-in defaults, the configuration exists
// for the odd setup: a container mounting the host's proc filesystem
// elsewhere, a system w/ more CPUs than the default cpuinfo read cap allows
// for, or debug logging.
type CpuCountConfig struct {
	// The root of the proc filesystem:
	ProcfsRoot string `yaml:"procfs_root"`

	// Cap on the /proc/cpuinfo read size, human readable (`512k', `1m'); the
	// file grows w/ the logical CPU count. Empty leaves the built-in default
	// in place:
	MaxCpuinfoReadSize string `yaml:"max_cpuinfo_read_size"`

	LoggerConfig *LoggerConfig `yaml:"log_config"`
}

func DefaultCpuCountConfig() *CpuCountConfig {
	return &CpuCountConfig{
		ProcfsRoot: DEFAULT_PROCFS_ROOT,
	}
}

func LoadCpuCountConfig(cfgFile string) (*CpuCountConfig, error) {
	f, err := os.Open(cfgFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	cfg := DefaultCpuCountConfig()
	err = decoder.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("file: %q: %v", cfgFile, err)
	}
	return cfg, nil
}
