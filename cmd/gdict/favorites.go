package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gdict/internal/session"

	"github.com/spf13/cobra"
)

func (c *cli) newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite words",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List favorites, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			favorites := c.app.state.Favorites()
			if len(favorites) == 0 {
				fmt.Fprintln(out, "No favorites yet.")
				return nil
			}
			for _, f := range favorites {
				fmt.Fprintf(out, "%-20s %-12s %3d\n", f.Word, f.PartOfSpeech, f.FrequencyScore)
			}
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <word>",
		Short: "Add a word to favorites, or remove it when already present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			word := args[0]

			if c.app.state.IsFavorite(word) {
				c.app.warnPersist(c.app.session.RemoveFavorite(ctx, word))
				fmt.Fprintf(out, "Removed %q from favorites.\n", word)
				return nil
			}

			// favorites carry the part of speech, so the word is resolved first
			result, err := c.app.session.Search(ctx, word)
			if errors.Is(err, session.ErrBusy) {
				return err
			}
			c.app.warnPersist(err)
			if result.Status == session.StatusError {
				return errors.New(result.Error)
			}
			if !c.app.session.ShowResultCard() {
				return fmt.Errorf("no results for %q", word)
			}

			added, err := c.app.session.ToggleFavorite(ctx, result.Data)
			c.app.warnPersist(err)
			if added {
				fmt.Fprintf(out, "Added %q to favorites.\n", result.Data.Word)
			} else {
				fmt.Fprintf(out, "Removed %q from favorites.\n", result.Data.Word)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "rm <word>",
		Aliases: []string{"remove"},
		Short:   "Remove a word from favorites",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.warnPersist(c.app.session.RemoveFavorite(cmd.Context(), args[0]))
			return nil
		},
	}

	var dir string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write favorites to gdict_favorites_YYYY-MM-DD.txt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := c.app.session.ExportFavorites()
			if err != nil {
				return err
			}
			path := filepath.Join(dir, file.Filename)
			if err := os.WriteFile(path, []byte(file.Content), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported favorites to %s\n", path)
			return nil
		},
	}
	export.Flags().StringVarP(&dir, "dir", "d", ".", "directory to write the file to")

	cmd.AddCommand(list, toggle, remove, export)
	return cmd
}
