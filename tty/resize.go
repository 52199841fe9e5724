//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package tty

import (
	"context"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"pkt.systems/pslog"
	"pkt.systems/viu/schema"
)

// Publisher receives resize events.
type Publisher interface {
	Publish(schema.Event)
}

// NotifyResize publishes one Resize event per SIGWINCH until ctx is done.
func NotifyResize(ctx context.Context, pub Publisher) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGWINCH)
	defer signal.Stop(sigCh)
	log := pslog.Ctx(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sigCh:
			log.Trace("terminal resize signal")
			pub.Publish(schema.Resize)
		}
	}
}
