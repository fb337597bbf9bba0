// Misc Other OS related info

//go:build !linux

package utils

import (
	"runtime"
	"time"
)

var dummyBtime = time.Now()

func getOsName() string {
	return runtime.GOOS
}

func getOsRelease() string {
	return ""
}

func getOsBtime() time.Time {
	return dummyBtime
}
