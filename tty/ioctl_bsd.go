//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package tty

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TIOCGETA
	ioctlSetFlush   = unix.TIOCSETAF
	ioctlSetDrain   = unix.TIOCSETAW
)
