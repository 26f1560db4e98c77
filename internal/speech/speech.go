// Package speech pronounces words through a text-to-speech program found on the host.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"gdict/internal/domain"
)

// ErrUnavailable is returned when no speech program is installed
var ErrUnavailable = errors.New("text-to-speech is not available on this system")

// Speaker pronounces text with the given accent
type Speaker interface {
	Speak(ctx context.Context, text string, accent domain.TTSAccent) error
	Available() bool
}

// Unavailable is the capability of a host without a speech program
type Unavailable struct{}

// Speak always fails with ErrUnavailable
func (Unavailable) Speak(context.Context, string, domain.TTSAccent) error {
	return ErrUnavailable
}

// Available reports false
func (Unavailable) Available() bool { return false }

// Command speaks through an external program
type Command struct {
	Name string
	Path string
}

// Available reports true
func (c Command) Available() bool { return true }

// Args builds the program arguments for text. Speech runs slightly slower than
// the default rate.
func (c Command) Args(text string, accent domain.TTSAccent) []string {
	text = strings.Trim(strings.TrimSpace(text), `"`)
	switch c.Name {
	case "say":
		voice := "Samantha"
		if accent == domain.AccentGB {
			voice = "Daniel"
		}
		return []string{"-v", voice, "-r", "160", text}
	default:
		voice := "en-us"
		if accent == domain.AccentGB {
			voice = "en-gb"
		}
		return []string{"-v", voice, "-s", "155", text}
	}
}

// Speak runs the program and waits for it to finish
func (c Command) Speak(ctx context.Context, text string, accent domain.TTSAccent) error {
	if strings.TrimSpace(text) == "" {
		return domain.NewValidationError("text", "is required")
	}
	cmd := exec.CommandContext(ctx, c.Path, c.Args(text, accent)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to run %s: %w: %s", c.Name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Programs are tried in order
var Programs = []string{"say", "espeak-ng", "espeak"}

// Probe returns the first available speech program, or Unavailable
func Probe() Speaker {
	return probe(exec.LookPath)
}

func probe(lookPath func(string) (string, error)) Speaker {
	for _, name := range Programs {
		if path, err := lookPath(name); err == nil {
			return Command{Name: name, Path: path}
		}
	}
	return Unavailable{}
}
