package main

import (
	"fmt"
	"io"

	"gdict/internal/render"
	"gdict/internal/state"

	"github.com/spf13/cobra"
)

// cli carries the lazily built app between the root command and its children
type cli struct {
	verbose bool
	app     *app
}

// newRootCmd builds the command tree. The caller closes the returned cli once
// the command has run, whether or not it failed.
func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}

	root := &cobra.Command{
		Use:           "gdict",
		Short:         "AI dictionary and writing coach",
		Long:          "gdict looks up English words with AI-generated Turkish definitions, keeps your favorites and history, and checks your writing.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), c.verbose)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		RunE: c.runHome,
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		c.newLookupCmd(),
		c.newDailyCmd(),
		c.newCoachCmd(),
		c.newFavoritesCmd(),
		c.newHistoryCmd(),
		c.newSettingsCmd(),
		c.newWelcomeCmd(),
		c.newSpeakCmd(),
	)
	return root, c
}

// close releases the app built by the last run, if any
func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	return c.app.Close()
}

// runHome prints the idle screen: welcome banner, word of the day and recent lookups
func (c *cli) runHome(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s := c.app.session

	if s.ShowWelcomeBanner() {
		fmt.Fprintln(out, "Welcome to gdict! Look up a word with `gdict lookup <word>` or check your writing with `gdict coach`.")
		fmt.Fprintln(out, "Hide this message with `gdict welcome dismiss`.")
		fmt.Fprintln(out)
	}

	wotd, err := s.Start(cmd.Context())
	c.app.warnPersist(err)
	fmt.Fprintln(out, "Word of the day")
	fmt.Fprintln(out, render.DailyWord(wotd))

	if s.ShowIdle() {
		printHistory(out, c.app.state, 5)
	}
	return nil
}

func printHistory(out io.Writer, st *state.AppState, limit int) {
	history := st.History()
	if len(history) == 0 {
		fmt.Fprintln(out, "No recent searches.")
		return
	}
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	fmt.Fprintln(out, "Recent searches")
	for _, item := range history {
		fmt.Fprintf(out, "  %-20s %-12s %3d  %s\n", item.Word, item.PartOfSpeech, item.FrequencyScore, item.Time().Format("2006-01-02 15:04"))
	}
}
