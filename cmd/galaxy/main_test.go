package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/export"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func effectiveConfig(t *testing.T, args ...string) *config.Config {
	t.Helper()
	out, err := execute(t, append([]string{"config"}, args...)...)
	require.NoError(t, err)
	cfg, err := config.Parse([]byte(out))
	require.NoError(t, err)
	return cfg
}

func TestConfigPrecedence(t *testing.T) {
	cfg := effectiveConfig(t)
	assert.Equal(t, config.DefaultCount, cfg.Galaxy.Count)

	cfg = effectiveConfig(t, "--preset", "classic")
	assert.Equal(t, 3, cfg.Galaxy.Branches)

	path := filepath.Join(t.TempDir(), "galaxy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("galaxy:\n  branches: 9\n  spin: 2\n"), 0644))

	cfg = effectiveConfig(t, "--preset", "classic", "--config", path)
	assert.Equal(t, 9, cfg.Galaxy.Branches, "file beats preset")

	cfg = effectiveConfig(t, "--preset", "classic", "--config", path, "--branches", "4", "--inside", "#0f0")
	assert.Equal(t, 4, cfg.Galaxy.Branches, "flags beat file")
	assert.Equal(t, 2.0, cfg.Galaxy.Spin)
	assert.Equal(t, "#00ff00", cfg.Galaxy.InsideColor.Hex())

	cfg = effectiveConfig(t, "--count", "5", "--accents", "--seed", "12")
	assert.Equal(t, 100, cfg.Galaxy.Count, "flags are clamped")
	assert.True(t, cfg.Generator.AccentColors)
	assert.Equal(t, int64(12), cfg.Seed)
}

func TestConfigErrors(t *testing.T) {
	_, err := execute(t, "config", "--preset", "nope")
	assert.ErrorIs(t, err, config.ErrUnknownPreset)

	_, err = execute(t, "config", "--outside", "teal")
	assert.ErrorIs(t, err, config.ErrInvalidColor)
}

func TestGenerate(t *testing.T) {
	out, err := execute(t, "generate", "--count", "600", "--seed", "4", "--bins", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "points")
	assert.Contains(t, out, "600")
	assert.Contains(t, out, "per branch")
	assert.Contains(t, out, "100 100 100 100 100 100")
	assert.Contains(t, out, "radial density")
}

func TestPresets(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)
	for _, name := range config.ListPresets() {
		assert.Contains(t, out, name)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")
	_, err := execute(t, "export", "--count", "300", "--seed", "1", "--out", path, "--width", "64", "--height", "48")
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = execute(t, "export", "--count", "300", "--out", filepath.Join(dir, "frame.gif"))
	assert.True(t, errors.Is(err, export.ErrUnknownFormat))
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		flag, path string
		want       export.Format
	}{
		{"", "", export.SVG},
		{"", "a.csv", export.CSV},
		{"json", "a.csv", export.JSON},
	}
	for _, tt := range tests {
		got, err := resolveFormat(tt.flag, tt.path)
		if err != nil || got != tt.want {
			t.Errorf("resolveFormat(%q, %q) = %q, %v", tt.flag, tt.path, got, err)
		}
	}
}
