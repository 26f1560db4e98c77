package main

import (
	"strings"

	"gdict/internal/domain"

	"github.com/spf13/cobra"
)

func (c *cli) newSpeakCmd() *cobra.Command {
	var accent string

	cmd := &cobra.Command{
		Use:   "speak <text>",
		Short: "Pronounce a word or sentence with the configured accent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tts := c.app.state.Settings().TTSAccent
			if accent != "" {
				patch, err := parsePatch("tts", accent)
				if err != nil {
					return err
				}
				tts = *patch.TTSAccent
			}
			return c.app.speaker.Speak(cmd.Context(), strings.Join(args, " "), tts)
		},
	}

	cmd.Flags().StringVar(&accent, "accent", "", "override the accent ("+string(domain.AccentUS)+" or "+string(domain.AccentGB)+")")
	return cmd
}
