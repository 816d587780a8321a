//go:build unix

package vfa

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// errnoOf extracts the underlying unix errno from err, if any,
// mirroring vfalib.cpp's pervasive "return -errno;" idiom. Returns 0
// when err does not wrap a recognizable errno.
func errnoOf(err error) int {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		var errno unix.Errno
		if errors.As(pathErr.Err, &errno) {
			return int(errno)
		}
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return 0
}
