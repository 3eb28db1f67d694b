package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/pomoclock/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, domain.DefaultConfig(), cfg.TimerConfig())
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
log_level: verbose
sound: /tmp/beep.wav
volume: 0.5
session_minutes: 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "verbose", cfg.LogLevel)
	assert.Equal(t, "/tmp/beep.wav", cfg.Sound)
	assert.Equal(t, 0.5, cfg.Volume)
	assert.Equal(t, domain.TimerConfig{SessionMinutes: 50, BreakMinutes: 5}, cfg.TimerConfig())
	assert.Equal(t, Default().ToneHz, cfg.ToneHz, "absent keys keep defaults")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed yaml", "log_level: [unclosed", "parse config yaml"},
		{"bad level", "log_level: shouty", "log_level"},
		{"session too long", "session_minutes: 90", "session_minutes"},
		{"break too short", "break_minutes: 0", "break_minutes"},
		{"volume too loud", "volume: 2", "volume"},
		{"tone inaudible", "tone_hz: 5", "tone_hz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	base := Default()

	cfg, err := base.Apply(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, base, cfg, "empty overrides change nothing")

	cfg, err = base.Apply(Overrides{
		LogLevel:       "off",
		LogFile:        "stderr",
		NoSound:        true,
		ToneHz:         440,
		BreakMinutes:   15,
		SessionMinutes: 45,
	})
	require.NoError(t, err)
	assert.Equal(t, "off", cfg.LogLevel)
	assert.Equal(t, "stderr", cfg.LogFile)
	assert.True(t, cfg.NoSound)
	assert.Equal(t, 440.0, cfg.ToneHz)
	assert.Equal(t, domain.TimerConfig{SessionMinutes: 45, BreakMinutes: 15}, cfg.TimerConfig())

	_, err = base.Apply(Overrides{SessionMinutes: 61})
	require.Error(t, err)
}
