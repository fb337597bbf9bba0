// Misc OS related info

package utils

import (
	"time"
)

// Collected once, at process start; used for the runtime platform check that
// selects the CPU info source and for debug logging.
var (
	OSName    string
	OSRelease string
	OSBtime   time.Time
)

func init() {
	OSName = getOsName()
	OSRelease = getOsRelease()
	OSBtime = getOsBtime()
}
