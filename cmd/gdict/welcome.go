package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newWelcomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "welcome",
		Short: "Manage the welcome banner",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dismiss",
		Short: "Stop showing the welcome banner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.warnPersist(c.app.session.DismissWelcome(cmd.Context()))
			fmt.Fprintln(cmd.OutOrStdout(), "Welcome banner dismissed.")
			return nil
		},
	})
	return cmd
}
