package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gdict/internal/render"
	"gdict/internal/session"

	"github.com/spf13/cobra"
)

// maxCoachInput bounds text read from stdin
const maxCoachInput = 64 << 10

func (c *cli) newCoachCmd() *cobra.Command {
	var htmlPath string

	cmd := &cobra.Command{
		Use:   "coach [text]",
		Short: "Check grammar and tone of a text (reads stdin when no text is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			text := strings.Join(args, " ")
			if len(args) == 0 || text == "-" {
				data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxCoachInput))
				if err != nil {
					return fmt.Errorf("failed to read text: %w", err)
				}
				text = string(data)
			}

			if err := c.app.session.SetTab(session.TabCoach); err != nil {
				return err
			}
			result, err := c.app.session.CheckGrammar(cmd.Context(), text)
			if err != nil {
				return err
			}
			if result.Error != "" {
				return errors.New(result.Error)
			}
			if result.Analysis == nil {
				fmt.Fprintln(out, "Nothing to analyse.")
				return nil
			}

			fmt.Fprint(out, render.Analysis(result.Analysis))

			if htmlPath != "" {
				if err := writeHTML(c.app, htmlPath, func() (*render.Result, error) {
					return c.app.renderer.AnalysisHTML(result.Analysis)
				}); err != nil {
					return err
				}
				fmt.Fprintf(out, "\nSaved %s\n", htmlPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&htmlPath, "html", "", "also write the analysis as a standalone HTML page")
	return cmd
}
