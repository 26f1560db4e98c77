package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage recent searches",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recent searches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printHistory(cmd.OutOrStdout(), c.app.state, 0)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "rm <word>",
		Aliases: []string{"remove"},
		Short:   "Remove a word from the history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.warnPersist(c.app.session.RemoveFromHistory(cmd.Context(), args[0]))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.warnPersist(c.app.session.ClearHistory(cmd.Context()))
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	cmd.AddCommand(list, remove, clearCmd)
	return cmd
}
