//go:build unix

package clierr

import (
	"strconv"
	"syscall"

	"golang.org/x/sys/unix"
)

func errnoName(errno syscall.Errno) string {
	if name := unix.ErrnoName(errno); name != "" {
		return name
	}
	return "ERRNO" + strconv.Itoa(int(errno))
}
