package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gdict/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookPath(available ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		want      Speaker
	}{
		{name: "macOS say preferred", available: []string{"espeak", "say"}, want: Command{Name: "say", Path: "/usr/bin/say"}},
		{name: "espeak-ng before espeak", available: []string{"espeak", "espeak-ng"}, want: Command{Name: "espeak-ng", Path: "/usr/bin/espeak-ng"}},
		{name: "espeak", available: []string{"espeak"}, want: Command{Name: "espeak", Path: "/usr/bin/espeak"}},
		{name: "nothing installed", want: Unavailable{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := probe(fakeLookPath(tt.available...))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.available != nil, got.Available())
		})
	}
}

func TestUnavailable_Speak(t *testing.T) {
	err := Unavailable{}.Speak(context.Background(), "apple", domain.AccentUS)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestCommand_Args(t *testing.T) {
	tests := []struct {
		name   string
		cmd    Command
		accent domain.TTSAccent
		want   []string
	}{
		{name: "say US", cmd: Command{Name: "say"}, accent: domain.AccentUS, want: []string{"-v", "Samantha", "-r", "160", "apple"}},
		{name: "say GB", cmd: Command{Name: "say"}, accent: domain.AccentGB, want: []string{"-v", "Daniel", "-r", "160", "apple"}},
		{name: "espeak US", cmd: Command{Name: "espeak-ng"}, accent: domain.AccentUS, want: []string{"-v", "en-us", "-s", "155", "apple"}},
		{name: "espeak GB", cmd: Command{Name: "espeak"}, accent: domain.AccentGB, want: []string{"-v", "en-gb", "-s", "155", "apple"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.Args(` "apple" `, tt.accent))
		})
	}
}

func TestCommand_Speak(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "spoken")
	script := filepath.Join(dir, "espeak")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$@\" > "+out+"\n"), 0o755))

	cmd := Command{Name: "espeak", Path: script}
	require.NoError(t, cmd.Speak(context.Background(), "serendipity", domain.AccentGB))

	spoken, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "-v en-gb -s 155 serendipity\n", string(spoken))

	err = cmd.Speak(context.Background(), "  ", domain.AccentGB)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	failing := filepath.Join(dir, "broken")
	require.NoError(t, os.WriteFile(failing, []byte("#!/bin/sh\necho nope >&2\nexit 3\n"), 0o755))
	err = Command{Name: "espeak", Path: failing}.Speak(context.Background(), "apple", domain.AccentUS)
	assert.ErrorContains(t, err, "nope")
}
