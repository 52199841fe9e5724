package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/psi"
	"pkt.systems/pslog"
	"pkt.systems/viu/internal/logx"
	"pkt.systems/viu/schema"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		// Already reported on stdout.
		if errors.Is(err, schema.ErrFileNotFound) {
			return 1
		}
		logx.Ctx(ctx).With("err", err).Error("viu command failed")
		return 1
	}
	return 0
}

const keyHelp = `A small less-like source viewer with responsive formatting.

The file is reformatted to the terminal width and syntax highlighted,
and reformatted again whenever the terminal is resized.

Keys:
  q          Quit
  j  DOWN    Scroll down one line
  k  UP      Scroll up one line`

func newRootCmd() *cobra.Command {
	var flags viewFlags
	root := &cobra.Command{
		Use:           "viu FILE",
		Short:         "View a source file in the terminal",
		Long:          keyHelp,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, flags, args[0])
		},
	}
	flags.register(root)

	root.AddCommand(newServeCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newStylesCmd())
	root.AddCommand(newVersionCmd())

	return root
}
