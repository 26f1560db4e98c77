package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gdict/internal/domain"
	"gdict/internal/render"

	"github.com/spf13/cobra"
)

func (c *cli) newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printSettings(cmd.OutOrStdout(), c.app.state.Settings())
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting (theme, accent, tts, density, morphology, frequency, idioms)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parsePatch(args[0], args[1])
			if err != nil {
				return err
			}
			settings, err := c.app.session.UpdateSettings(cmd.Context(), patch)
			if err != nil && !isPersistErr(err) {
				return err
			}
			c.app.warnPersist(err)
			printSettings(cmd.OutOrStdout(), settings)
			return nil
		},
	}

	cmd.AddCommand(show, set)
	return cmd
}

func printSettings(out io.Writer, s domain.AppSettings) {
	fmt.Fprintf(out, "theme       %s\n", s.Theme)
	fmt.Fprintf(out, "accent      %s (%s)\n", s.AccentColor, render.HexToRGB(s.AccentColor))
	fmt.Fprintf(out, "tts         %s\n", s.TTSAccent)
	fmt.Fprintf(out, "density     %s\n", s.UIDensity)
	fmt.Fprintf(out, "morphology  %t\n", s.ShowMorphology)
	fmt.Fprintf(out, "frequency   %t\n", s.ShowFrequency)
	fmt.Fprintf(out, "idioms      %t\n", s.ShowIdioms)
}

var densityAliases = map[string]domain.Density{
	"compact":     domain.DensityCompact,
	"comfortable": domain.DensityComfortable,
	"spacious":    domain.DensitySpacious,
}

// parsePatch maps a command line key/value to a settings patch. Keys accept
// their short name or the stored JSON name.
func parsePatch(key, value string) (domain.SettingsPatch, error) {
	var patch domain.SettingsPatch
	value = strings.TrimSpace(value)

	switch strings.ToLower(key) {
	case "theme":
		theme := domain.Theme(strings.ToLower(value))
		patch.Theme = &theme
	case "accent", "accentcolor", "color":
		if !strings.HasPrefix(value, "#") {
			value = "#" + value
		}
		patch.AccentColor = &value
	case "tts", "tts_accent", "voice":
		accent := domain.TTSAccent(value)
		switch strings.ToLower(value) {
		case "us", "en-us":
			accent = domain.AccentUS
		case "gb", "uk", "en-gb":
			accent = domain.AccentGB
		}
		patch.TTSAccent = &accent
	case "density", "uidensity":
		density, ok := densityAliases[strings.ToLower(value)]
		if !ok {
			density = domain.Density(value)
		}
		patch.UIDensity = &density
	case "morphology", "showmorphology":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return patch, domain.NewValidationError(key, "must be true or false")
		}
		patch.ShowMorphology = &b
	case "frequency", "showfrequency":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return patch, domain.NewValidationError(key, "must be true or false")
		}
		patch.ShowFrequency = &b
	case "idioms", "showidioms":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return patch, domain.NewValidationError(key, "must be true or false")
		}
		patch.ShowIdioms = &b
	default:
		return patch, domain.NewValidationError(key, "unknown setting")
	}

	return patch, patch.Validate()
}
