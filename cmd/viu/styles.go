package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/viu/internal/highlight"
)

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List highlight styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range highlight.StyleNames() {
				marker := ""
				if name == highlight.DefaultStyle {
					marker = " (default)"
				}
				if _, err := fmt.Fprintf(out, "%s%s\n", name, marker); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
