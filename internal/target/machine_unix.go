//go:build linux || darwin || freebsd || netbsd || openbsd

package target

import (
	"runtime"

	"golang.org/x/sys/unix"
)

func machine() (string, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return runtime.GOARCH, nil
	}
	return unix.ByteSliceToString(u.Machine[:]), nil
}
