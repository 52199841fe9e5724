package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
	"pkt.systems/viu"
	"pkt.systems/viu/internal/logx"
	"pkt.systems/viu/schema"
)

func runView(cmd *cobra.Command, flags viewFlags, path string) error {
	text, err := viu.ReadFile(path)
	if err != nil {
		if errors.Is(err, schema.ErrFileNotFound) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "File '%s' does not exist.\n", path)
		}
		return err
	}
	cfg, err := flags.load(cmd)
	if err != nil {
		return err
	}
	opts, err := documentOptions(cfg, path)
	if err != nil {
		return err
	}
	doc, err := viu.NewDocument(text, opts, os.Stdout, os.Environ())
	if err != nil {
		return err
	}
	adapter := doc.Adapter()
	if err := viu.Preflight(adapter, os.Stdout); err != nil {
		return err
	}

	// Anything written to stderr would land on top of the viewer.
	sessionLog, closer, err := logx.ForSession(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	sessionLog = logx.WithDocument(logx.WithFile(sessionLog, path), doc.Highlighter.Language(), doc.Highlighter.StyleName())
	prevOutput := log.Writer()
	log.SetOutput(pslog.LogLogger(sessionLog).Writer())
	defer log.SetOutput(prevOutput)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()
	ctx = pslog.ContextWithLogger(ctx, sessionLog)

	sessionLog.Info("viewer start", "formatter", doc.Highlighter.Formatter())
	if err := viu.Run(ctx, adapter, os.Stdin, os.Stdout); err != nil {
		sessionLog.Error("viewer failed", "err", err)
		return err
	}
	sessionLog.Info("viewer stop")
	return nil
}
