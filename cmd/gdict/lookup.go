package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gdict/internal/render"
	"gdict/internal/session"

	"github.com/spf13/cobra"
)

func (c *cli) newLookupCmd() *cobra.Command {
	var (
		htmlPath string
		accept   bool
		favorite bool
		speak    bool
	)

	cmd := &cobra.Command{
		Use:     "lookup <word>",
		Aliases: []string{"l", "search"},
		Short:   "Look up a word",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			s := c.app.session

			result, err := s.Search(ctx, strings.Join(args, " "))
			if errors.Is(err, session.ErrBusy) {
				return err
			}
			c.app.warnPersist(err)

			if correction, ok := s.Correction(); ok && accept && !s.ShowResultCard() {
				fmt.Fprintf(out, "Searching for %q instead.\n", correction)
				result, err = s.AcceptCorrection(ctx)
				c.app.warnPersist(err)
			}

			if result.Status == session.StatusError {
				return errors.New(result.Error)
			}

			if correction, ok := s.Correction(); ok && !strings.EqualFold(correction, result.Query) {
				fmt.Fprintf(out, "Did you mean %q?\n\n", correction)
			}

			if !s.ShowResultCard() {
				fmt.Fprintf(out, "No results for %q.\n", result.Query)
				return nil
			}

			entry := result.Data
			settings := c.app.state.Settings()

			if favorite {
				added, err := s.ToggleFavorite(ctx, entry)
				c.app.warnPersist(err)
				if added {
					fmt.Fprintf(out, "Added %q to favorites.\n\n", entry.Word)
				} else {
					fmt.Fprintf(out, "Removed %q from favorites.\n\n", entry.Word)
				}
			}

			md, err := render.Card(entry, settings)
			if err != nil {
				return err
			}
			fmt.Fprint(out, md)
			if c.app.state.IsFavorite(entry.Word) {
				fmt.Fprintln(out, "\n★ In favorites")
			}

			if htmlPath != "" {
				if err := writeHTML(c.app, htmlPath, func() (*render.Result, error) {
					return c.app.renderer.CardHTML(entry, settings)
				}); err != nil {
					return err
				}
				fmt.Fprintf(out, "\nSaved %s\n", htmlPath)
			}

			if speak {
				if err := c.app.speaker.Speak(ctx, entry.Word, settings.TTSAccent); err != nil {
					c.app.logger.Warn("Pronunciation failed: %v", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&htmlPath, "html", "", "also write the card as a standalone HTML page")
	cmd.Flags().BoolVar(&accept, "accept", false, "follow the suggested correction when the word is not found")
	cmd.Flags().BoolVarP(&favorite, "favorite", "f", false, "toggle the result in favorites")
	cmd.Flags().BoolVar(&speak, "speak", false, "pronounce the word")
	return cmd
}

// writeHTML renders a result into a page styled with the current settings
func writeHTML(a *app, path string, build func() (*render.Result, error)) error {
	result, err := build()
	if err != nil {
		return err
	}
	page, err := render.Page(result, a.state.Settings())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
