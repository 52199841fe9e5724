//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package tty

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"pkt.systems/viu/schema"
)

// Session is unavailable on this platform.
type Session struct{}

// Open always fails on platforms without termios.
func Open(_ context.Context, _, _ *os.File) (*Session, error) {
	return nil, fmt.Errorf("%w: unsupported platform %s", schema.ErrNotTerminal, runtime.GOOS)
}

// Size is never reachable because Open fails.
func (s *Session) Size() (int, int, error) { return 0, 0, schema.ErrNotTerminal }

// Paint is never reachable because Open fails.
func (s *Session) Paint(string) error { return schema.ErrNotTerminal }

// Close does nothing.
func (s *Session) Close() error { return nil }

// Publisher receives resize events.
type Publisher interface {
	Publish(schema.Event)
}

// NotifyResize waits for ctx; there is no resize signal on this platform.
func NotifyResize(ctx context.Context, _ Publisher) error {
	<-ctx.Done()
	return nil
}
