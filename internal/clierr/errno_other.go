//go:build !unix && !windows

package clierr

import (
	"strconv"
	"syscall"
)

func errnoName(errno syscall.Errno) string {
	return "ERRNO" + strconv.Itoa(int(errno))
}
