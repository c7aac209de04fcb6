package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jam-duna/fraudproof/outcome"
	"github.com/jam-duna/fraudproof/vmerrors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, uint32(20), cfg.N)
	assert.Equal(t, outcome.LowByte{FailureCode: 13}, cfg.Policy())
	assert.Equal(t, 32768, cfg.VM.MaxStackWords)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{"outcome": {"policy": "verdict", "failure_code": 99}, "vm": {"max_steps": 10}, "db_path": "/tmp/x"}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, outcome.Verdict{FailureCode: 99}, cfg.Policy())
	assert.Equal(t, uint64(10), cfg.VM.MaxSteps)
	assert.Equal(t, 32768, cfg.VM.MaxStackWords)
	assert.Equal(t, "/tmp/x", cfg.DBPath)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"policy":      `{"outcome": {"policy": "median"}}`,
		"level":       `{"log": {"level": "loud"}}`,
		"stack limit": `{"vm": {"max_stack_words": -1}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.ErrorIs(t, err, vmerrors.ErrInvalidConfig)
		})
	}

	_, err := Load(writeConfig(t, `{`))
	require.Error(t, err)
	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
