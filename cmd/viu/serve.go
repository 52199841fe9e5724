package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pkt.systems/viu"
	"pkt.systems/viu/core"
	"pkt.systems/viu/internal/logx"
	"pkt.systems/viu/schema"
	"pkt.systems/viu/sshserver"
)

// previewWidth is the width used to validate the document before serving it.
const previewWidth = 80

func newServeCmd() *cobra.Command {
	var flags viewFlags
	var addr, hostKey, authorizedKeys string
	cmd := &cobra.Command{
		Use:   "serve FILE",
		Short: "Share a read-only view of FILE over SSH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			logger := logx.Ctx(cmd.Context())
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
			if cmd.Flags().Changed("addr") {
				cfg.SSH.Addr = addr
			}
			if cmd.Flags().Changed("host-key") {
				cfg.SSH.HostKeyPath = hostKey
			}
			if cmd.Flags().Changed("authorized-keys") {
				cfg.SSH.AuthorizedKeys = authorizedKeys
			}
			opts, err := documentOptions(cfg, path)
			if err != nil {
				return err
			}
			preview, err := viu.NewDocument(text, opts, nil, nil)
			if err != nil {
				return err
			}
			if _, err := preview.Adapter().View(previewWidth); err != nil {
				return err
			}
			keys, err := sshserver.LoadAuthorizedKeys(cfg.SSH.AuthorizedKeys)
			if err != nil {
				return err
			}
			logger.Info("serving document", "file", path, "language", preview.Highlighter.Language(), "authorized_keys", len(keys))

			srv := &sshserver.Server{
				Addr:           cfg.SSH.Addr,
				HostKeyPath:    cfg.SSH.HostKeyPath,
				AuthorizedKeys: keys,
				NewAdapter: func(environ []string) (*core.Adapter, error) {
					doc, err := viu.NewDocument(text, opts, nil, environ)
					if err != nil {
						return nil, err
					}
					return doc.Adapter(), nil
				},
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			err = srv.ListenAndServe(ctx)
			logger.Info("ssh server stopped")
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :2222)")
	cmd.Flags().StringVar(&hostKey, "host-key", "", "path to the SSH host key, created if missing")
	cmd.Flags().StringVar(&authorizedKeys, "authorized-keys", "", "authorized_keys file listing who may connect")
	return cmd
}
