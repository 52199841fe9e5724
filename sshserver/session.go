package sshserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"sync"

	gliderssh "github.com/gliderlabs/ssh"

	"pkt.systems/pslog"
	"pkt.systems/viu/core"
	"pkt.systems/viu/internal/eventbus"
	"pkt.systems/viu/internal/keys"
	"pkt.systems/viu/internal/screen"
	"pkt.systems/viu/schema"
)

// viewSession is the terminal driver for one SSH channel. The pty is already
// in raw mode on the client side, so only the alternate screen is managed here.
type viewSession struct {
	rw      io.ReadWriter
	screen  *screen.Screen
	adapter *core.Adapter

	mu         sync.Mutex
	cols, rows int
}

func newViewSession(rw io.ReadWriter, adapter *core.Adapter, cols, rows int) *viewSession {
	return &viewSession{
		rw:      rw,
		screen:  screen.New(rw),
		adapter: adapter,
		cols:    cols,
		rows:    rows,
	}
}

// Size implements core.Terminal.
func (v *viewSession) Size() (int, int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cols, v.rows, nil
}

// Paint implements core.Terminal.
func (v *viewSession) Paint(frame string) error {
	return v.screen.Paint(frame)
}

func (v *viewSession) setSize(cols, rows int) {
	v.mu.Lock()
	v.cols, v.rows = cols, rows
	v.mu.Unlock()
}

// Run drives the viewer until the client quits or disconnects.
func (v *viewSession) Run(ctx context.Context, winCh <-chan gliderssh.Window) (err error) {
	log := pslog.Ctx(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Error("ssh viewer panic", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			err = fmt.Errorf("%w in ssh viewer: %v", schema.ErrPanic, r)
		}
	}()
	if err := v.screen.EnterAltScreen(); err != nil {
		return err
	}
	defer func() { _ = v.screen.ExitAltScreen() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	bus := eventbus.New(log)
	defer bus.Close()

	go func() {
		err := keys.Read(v.rw, bus)
		if err != nil && !errors.Is(err, io.EOF) {
			log.Debug("ssh input closed", "err", err)
		}
		bus.Publish(schema.Quit)
	}()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case win, ok := <-winCh:
				if !ok {
					return
				}
				v.setSize(win.Width, win.Height)
				log.Debug("ssh resize", "cols", win.Width, "rows", win.Height)
				bus.Publish(schema.Resize)
			}
		}
	}()

	return core.NewViewer(v.adapter, v, bus, log).Run(ctx)
}
