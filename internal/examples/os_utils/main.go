package main

import (
	"fmt"

	"github.com/eparparita/cpu-count/internal/utils"
)

func main() {
	fmt.Printf(`
OSName:               %q
OSRelease:            %q
OSBtime:              %s
CountAvailableCPUs(): %d
`,
		utils.OSName,
		utils.OSRelease,
		utils.OSBtime,
		utils.CountAvailableCPUs(),
	)
}
