//go:build windows

package clierr

import (
	"errors"
	"strconv"
	"syscall"

	"golang.org/x/sys/windows"
)

func errnoName(errno syscall.Errno) string {
	switch {
	case errors.Is(errno, windows.ERROR_ACCESS_DENIED):
		return "EACCES"
	case errors.Is(errno, windows.ERROR_FILE_NOT_FOUND), errors.Is(errno, windows.ERROR_PATH_NOT_FOUND):
		return "ENOENT"
	case errors.Is(errno, windows.ERROR_DISK_FULL):
		return "ENOSPC"
	}
	return "WINERR" + strconv.Itoa(int(errno))
}
