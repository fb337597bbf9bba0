package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/eparparita/cpu-count/cpucount"
)

var log1 = cpucount.NewCompLogger("Comp1")
var log2 = cpucount.NewCompLogger("Comp2")

var useJson = flag.Bool("use-json", false, "Log in JSON format")
var level = flag.String("level", cpucount.DEFAULT_LOG_LEVEL.String(), "Log level")

func main() {
	flag.Parse()

	err := cpucount.SetLogger(&cpucount.LoggerConfig{
		UseJson: *useJson,
		Level:   *level,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log1.Debug("debug test")
	log1.Info("info test")
	log1.Warn("warn test")
	log1.Error("error test")

	log2.Debug("debug test")
	log2.Info("info test")
	log2.Warn("warn test")
	log2.Error("error test")
}
