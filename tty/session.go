//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

// Package tty owns the local terminal for the duration of a viewing session.
package tty

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"pkt.systems/pslog"
	"pkt.systems/viu/internal/screen"
	"pkt.systems/viu/schema"
)

// Session holds the terminal in no-echo, non-canonical mode on the alternate
// screen until Close is called.
type Session struct {
	in     *os.File
	out    *bufio.Writer
	inFd   int
	outFd  int
	saved  *unix.Termios
	screen *screen.Screen
	log    pslog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Open saves the input terminal's attributes, turns off echo and line
// buffering and switches out to the alternate screen. Callers must defer
// Close so the terminal is restored on every exit path.
func Open(ctx context.Context, in, out *os.File) (*Session, error) {
	inFd, outFd := int(in.Fd()), int(out.Fd())
	if !term.IsTerminal(inFd) {
		return nil, fmt.Errorf("%w: %s", schema.ErrNotTerminal, in.Name())
	}
	if !term.IsTerminal(outFd) {
		return nil, fmt.Errorf("%w: %s", schema.ErrNotTerminal, out.Name())
	}
	saved, err := unix.IoctlGetTermios(inFd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("read terminal attributes: %w", err)
	}
	mode := *saved
	mode.Lflag &^= unix.ECHO | unix.ICANON
	mode.Cc[unix.VMIN] = 1
	mode.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(inFd, ioctlSetFlush, &mode); err != nil {
		return nil, fmt.Errorf("set terminal attributes: %w", err)
	}
	w := bufio.NewWriterSize(out, 64*1024)
	s := &Session{
		in:     in,
		out:    w,
		inFd:   inFd,
		outFd:  outFd,
		saved:  saved,
		screen: screen.New(w),
		log:    pslog.Ctx(ctx),
	}
	if err := s.screen.EnterAltScreen(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("enter alternate screen: %w", err)
	}
	s.log.Debug("terminal session open", "in", in.Name(), "out", out.Name())
	return s, nil
}

// Size reports the output terminal's dimensions.
func (s *Session) Size() (int, int, error) {
	cols, rows, err := term.GetSize(s.outFd)
	if err != nil {
		return 0, 0, err
	}
	return cols, rows, nil
}

// Paint clears the screen and writes frame.
func (s *Session) Paint(frame string) error {
	return s.screen.Paint(frame)
}

// Close restores the saved attributes once output has drained and leaves the
// alternate screen. Later calls return the first result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		restoreErr := unix.IoctlSetTermios(s.inFd, ioctlSetDrain, s.saved)
		if restoreErr != nil {
			restoreErr = fmt.Errorf("restore terminal attributes: %w", restoreErr)
		}
		s.closeErr = errors.Join(restoreErr, s.screen.ExitAltScreen())
		s.log.Debug("terminal session closed", "err", s.closeErr)
	})
	return s.closeErr
}
