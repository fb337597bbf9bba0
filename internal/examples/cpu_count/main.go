package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/eparparita/cpu-count/cpucount"
)

var configFile = flag.String("config", "", "Config file to load, optional")

func main() {
	flag.Parse()

	var cfg *cpucount.CpuCountConfig
	if *configFile != "" {
		var err error
		cfg, err = cpucount.LoadCpuCountConfig(*configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	cpuCounter, err := cpucount.NewCpuCounter(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf(`
NumCPUs:          %d
NumPhysicalCPUs:  %d
runtime.NumCPU(): %d
`,
		cpuCounter.NumCPUs(),
		cpuCounter.NumPhysicalCPUs(),
		runtime.NumCPU(),
	)
}
