//go:build linux

package tty

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetFlush   = unix.TCSETSF
	ioctlSetDrain   = unix.TCSETSW
)
