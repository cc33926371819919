package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, cfg.Animation.StageDuration)
	require.Equal(t, 60, cfg.Animation.FrameRate)
	require.Equal(t, 1, cfg.Canvas.Scale)
	require.Equal(t, ".", cfg.Export.Dir)
	require.Equal(t, "info", cfg.Log.Level)
	require.Contains(t, cfg.Database.Path, "parts.db")
	require.Len(t, cfg.CatalogParts(), 3)
}

func TestLoadFromFile(t *testing.T) {
	path := writeFile(t, `
[animation]
stage_duration = "1500ms"
frame_rate = 30

[canvas]
scale = 2

[[parts]]
id = "luc"
short_name = "Luc"
full_name = "Firefly Luciferase"
color = "#ffd166"
description = "Bioluminescent enzyme."

[[parts]]
short_name = "mCherry"
color = "#D2042D"
`)
	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, 1500*time.Millisecond, cfg.Animation.StageDuration)
	require.Equal(t, 30, cfg.Animation.FrameRate)
	require.Equal(t, 2, cfg.Canvas.Scale)

	parts := cfg.CatalogParts()
	require.Len(t, parts, 5)
	require.Equal(t, "luc", parts[3].ID)
	require.Equal(t, "#FFD166", parts[3].ColorHex)
	require.Equal(t, "mCherry", parts[4].FullName, "full name falls back to short name")
	require.Len(t, parts[4].ID, 36, "missing id is derived")
	require.Equal(t, parts[4].ID, cfg.CatalogParts()[4].ID, "derived id is stable")
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "[animation]\nframe_rate = 30\n")
	t.Setenv("CENTRALDOGMA_ANIMATION_FRAME_RATE", "24")
	t.Setenv("CENTRALDOGMA_LOG_LEVEL", "debug")
	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, 24, cfg.Animation.FrameRate)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero duration", "[animation]\nstage_duration = \"0s\"\n"},
		{"frame rate", "[animation]\nframe_rate = 0\n"},
		{"scale", "[canvas]\nscale = 20\n"},
		{"bad colour", "[[parts]]\nshort_name = \"X\"\ncolor = \"teal\"\n"},
		{"duplicate builtin", "[[parts]]\nid = \"egfp\"\nshort_name = \"EGFP\"\ncolor = \"#00ff00\"\n"},
		{"missing name", "[[parts]]\ncolor = \"#00ff00\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(writeFile(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	_, err := LoadFrom(writeFile(t, "[animation\nframe_rate ="))
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	cfg.Animation.StageDuration = 2 * time.Second
	cfg.Canvas.Scale = 3
	cfg.Parts = []PartConfig{{ID: "luc", ShortName: "Luc", Color: "#FFD166"}}

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, Save(cfg, path))

	got, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, got.Animation.StageDuration)
	require.Equal(t, 3, got.Canvas.Scale)
	require.Len(t, got.Parts, 1)
	require.Equal(t, "Luc", got.Parts[0].ShortName)
}

func TestDefaultPathHonoursEnv(t *testing.T) {
	t.Setenv("CENTRALDOGMA_CONFIG", "/tmp/custom.toml")
	require.Equal(t, "/tmp/custom.toml", DefaultPath())
}
