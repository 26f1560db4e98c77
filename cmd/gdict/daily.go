package main

import (
	"fmt"

	"gdict/internal/render"

	"github.com/spf13/cobra"
)

func (c *cli) newDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Show the word of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wotd, err := c.app.session.Start(cmd.Context())
			c.app.warnPersist(err)
			fmt.Fprint(cmd.OutOrStdout(), render.DailyWord(wotd))
			return nil
		},
	}
}
