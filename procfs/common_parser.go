// Common definitions for all parsers

package procfs

import (
	"bytes"
)

// Most files consist of words delimited by white spaces; the file content is
// scanned one byte at the time and the following array provides a convenient
// lookup for deciding if a byte is a whitespace or not:
var isWhitespace = [256]bool{
	' ':  true,
	'\t': true,
}

func getCurrentLine(buf []byte, pos int) string {
	var lineStart, lineEnd int
	l := len(buf)
	if pos < 0 {
		lineStart, lineEnd = -pos, -pos
		for ; lineStart > 0 && buf[lineStart-1] != '\n'; lineStart-- {
		}
	} else {
		lineStart, lineEnd = pos, pos
	}
	for ; lineEnd < l && buf[lineEnd] != '\n'; lineEnd++ {
	}
	return string(buf[lineStart:lineEnd])
}

// Both cgroup controller lists and mount super options are comma separated
// lists probed for one specific entry, most often `cpu':
func listHasToken(list, token []byte) bool {
	for len(list) > 0 {
		var entry []byte
		if i := bytes.IndexByte(list, ','); i >= 0 {
			entry, list = list[:i], list[i+1:]
		} else {
			entry, list = list, nil
		}
		if bytes.Equal(entry, token) {
			return true
		}
	}
	return false
}
