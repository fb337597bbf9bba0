// Misc Linux OS related info

//go:build linux

package utils

import (
	"bytes"
	"strings"
	"time"

	"github.com/capnm/sysinfo"

	"golang.org/x/sys/unix"
)

func zeroSuffixBufToString(buf []byte) string {
	i := bytes.IndexByte(buf, 0)
	if i < 0 {
		i = len(buf)
	}
	return string(buf[:i])
}

func getOsName() string {
	uname := unix.Utsname{}
	err := unix.Uname(&uname)
	if err != nil {
		return "linux"
	}
	return strings.ToLower(zeroSuffixBufToString(uname.Sysname[:]))
}

func getOsRelease() string {
	uname := unix.Utsname{}
	err := unix.Uname(&uname)
	if err != nil {
		return ""
	}
	return zeroSuffixBufToString(uname.Release[:])
}

func getOsBtime() time.Time {
	si := sysinfo.Get()
	return time.Now().Add(-si.Uptime)
}
