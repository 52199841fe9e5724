// Package sshserver serves read-only viewer sessions over SSH.
package sshserver

import (
	"context"
	"errors"
	"io"
	"net"

	gliderssh "github.com/gliderlabs/ssh"
	"golang.org/x/crypto/ssh"

	"pkt.systems/pslog"
	"pkt.systems/viu/core"
)

// AdapterFactory builds the document pipeline for one session. environ is the
// client's environment including TERM, for color profile detection.
type AdapterFactory func(environ []string) (*core.Adapter, error)

// Server shares one document with every authorized SSH client.
type Server struct {
	Addr           string
	HostKeyPath    string
	Listener       net.Listener
	AuthorizedKeys []ssh.PublicKey
	NewAdapter     AdapterFactory
	logger         pslog.Logger
}

// ListenAndServe starts the SSH server and shuts down on context cancellation.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.logger == nil {
		s.logger = pslog.Ctx(ctx)
	}
	if s.NewAdapter == nil {
		return errors.New("adapter factory is required for SSH")
	}
	if len(s.AuthorizedKeys) == 0 {
		return errors.New("authorized keys are required for SSH")
	}

	signer, err := EnsureHostKey(s.HostKeyPath)
	if err != nil {
		return err
	}

	server := &gliderssh.Server{
		Addr:             s.Addr,
		Handler:          s.handleSession,
		PublicKeyHandler: s.handlePublicKey,
	}
	server.AddHostKey(signer)

	errCh := make(chan error, 1)
	go func() {
		if s.Listener != nil {
			s.logger.Info("ssh listening", "addr", s.Listener.Addr().String())
			errCh <- server.Serve(s.Listener)
			return
		}
		s.logger.Info("ssh listening", "addr", s.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		_ = server.Close()
		return nil
	case err := <-errCh:
		if errors.Is(err, gliderssh.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handlePublicKey(ctx gliderssh.Context, key gliderssh.PublicKey) bool {
	log := s.logger.With("user", ctx.User(), "remote", remoteAddr(ctx), "fingerprint", ssh.FingerprintSHA256(key))
	if !keyAuthorized(s.AuthorizedKeys, key) {
		log.Warn("ssh pubkey rejected", "reason", "no matching key")
		return false
	}
	log.Info("ssh pubkey accepted")
	return true
}

func remoteAddr(ctx gliderssh.Context) string {
	if ctx == nil || ctx.RemoteAddr() == nil {
		return ""
	}
	return ctx.RemoteAddr().String()
}

func (s *Server) handleSession(sess gliderssh.Session) {
	log := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
	if id := sess.Context().SessionID(); id != "" {
		log = log.With("ssh_session", id)
	}
	pty, winCh, ok := sess.Pty()
	if !ok {
		log.Info("ssh session rejected", "reason", "pty required")
		_, _ = io.WriteString(sess, "pty required\n")
		_ = sess.Exit(1)
		return
	}
	environ := append(sess.Environ(), "TERM="+pty.Term)
	adapter, err := s.NewAdapter(environ)
	if err != nil {
		log.Error("ssh session setup failed", "err", err)
		_, _ = io.WriteString(sess, "viewer unavailable\n")
		_ = sess.Exit(1)
		return
	}

	log.Info("ssh session opened", "term", pty.Term, "cols", pty.Window.Width, "rows", pty.Window.Height)
	ctx := pslog.ContextWithLogger(sess.Context(), log)
	view := newViewSession(sess, adapter, pty.Window.Width, pty.Window.Height)
	if err := view.Run(ctx, winCh); err != nil {
		log.Warn("ssh session failed", "err", err)
		_ = sess.Exit(1)
		return
	}
	log.Info("ssh session closed")
	_ = sess.Exit(0)
}
