package state

import (
	"os"
	"strconv"
	"strings"
)

// DarkPreferenceProbe reports whether the host prefers a dark colour scheme.
// An explicit override of "dark" or "light" wins; otherwise the terminal
// background from COLORFGBG decides.
func DarkPreferenceProbe(override string) func() bool {
	return func() bool {
		switch strings.ToLower(strings.TrimSpace(override)) {
		case "dark":
			return true
		case "light":
			return false
		}
		return darkBackground(os.Getenv("COLORFGBG"))
	}
}

// darkBackground parses COLORFGBG ("fg;bg" or "fg;default;bg"); ANSI
// backgrounds 0-6 and 8 are dark
func darkBackground(colorfgbg string) bool {
	if colorfgbg == "" {
		return false
	}
	parts := strings.Split(colorfgbg, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return false
	}
	return (bg >= 0 && bg <= 6) || bg == 8
}
