//go:build linux

// Package ptytest opens pseudo terminals for tests that need a real tty.
package ptytest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

// PTY is a master/slave pair. Everything written to the slave is collected
// from the master in the background.
type PTY struct {
	Master *os.File
	Slave  *os.File

	masterFd, slaveFd int

	mu   sync.Mutex
	out  bytes.Buffer
	done chan struct{}
}

// Open allocates a pty sized cols by rows. The test is skipped when the
// system has no pty support. Both ends are closed on cleanup.
func Open(t testing.TB, cols, rows int) *PTY {
	t.Helper()
	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	mfd := int(master.Fd())
	if err := unix.IoctlSetPointerInt(mfd, unix.TIOCSPTLCK, 0); err != nil {
		_ = master.Close()
		t.Skipf("unlock pty: %v", err)
	}
	n, err := unix.IoctlGetInt(mfd, unix.TIOCGPTN)
	if err != nil {
		_ = master.Close()
		t.Skipf("pty number: %v", err)
	}
	slave, err := os.OpenFile(fmt.Sprintf("/dev/pts/%d", n), os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		_ = master.Close()
		t.Skipf("open pty slave: %v", err)
	}
	p := &PTY{
		Master:   master,
		Slave:    slave,
		masterFd: mfd,
		slaveFd:  int(slave.Fd()),
		done:     make(chan struct{}),
	}
	p.Resize(t, cols, rows)
	go p.collect()
	t.Cleanup(func() {
		_ = slave.Close()
		_ = master.Close()
		select {
		case <-p.done:
		case <-time.After(time.Second):
		}
	})
	return p
}

func (p *PTY) collect() {
	defer close(p.done)
	buf := make([]byte, 4096)
	for {
		n, err := p.Master.Read(buf)
		if n > 0 {
			p.mu.Lock()
			p.out.Write(buf[:n])
			p.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Output returns everything read from the master so far.
func (p *PTY) Output() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.String()
}

// WaitFor blocks until the output contains s.
func (p *PTY) WaitFor(t testing.TB, s string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !strings.Contains(p.Output(), s) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %q in %q", s, p.Output())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Type writes s to the master as if typed on the keyboard.
func (p *PTY) Type(t testing.TB, s string) {
	t.Helper()
	if _, err := p.Master.Write([]byte(s)); err != nil {
		t.Fatalf("type %q: %v", s, err)
	}
}

// Resize sets the window size of the pair.
func (p *PTY) Resize(t testing.TB, cols, rows int) {
	t.Helper()
	ws := &unix.Winsize{Col: uint16(cols), Row: uint16(rows)}
	if err := unix.IoctlSetWinsize(p.masterFd, unix.TIOCSWINSZ, ws); err != nil {
		t.Fatalf("resize pty: %v", err)
	}
}

// Termios returns the slave's current attributes.
func (p *PTY) Termios(t testing.TB) *unix.Termios {
	t.Helper()
	tio, err := unix.IoctlGetTermios(p.slaveFd, unix.TCGETS)
	if err != nil {
		t.Fatalf("read termios: %v", err)
	}
	return tio
}
