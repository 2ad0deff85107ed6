//go:build !windows

package tcell

import "golang.org/x/sys/unix"

func raiseStop() error {
	return unix.Kill(unix.Getpid(), unix.SIGTSTP)
}
