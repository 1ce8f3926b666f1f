//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package target

import "runtime"

func machine() (string, error) {
	return runtime.GOARCH, nil
}
