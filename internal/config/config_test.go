package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "prototype", cfg.Mode)
	assert.Equal(t, "sqlite", cfg.HighScore.Backend)
	assert.Equal(t, "highScore", cfg.HighScore.Key)
	assert.Equal(t, "runs", cfg.Influx.Bucket)
	assert.False(t, cfg.Influx.Enabled)
	assert.Equal(t, 1280, cfg.Window.Width)
}

func TestLoad_WithConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	data := `
mode: full
highScore:
  backend: memory
ssh:
  port: "2323"
audio:
  file: music/track.mp3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spacebeat.yaml"), []byte(data), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "full", cfg.Mode)
	assert.Equal(t, "memory", cfg.HighScore.Backend)
	assert.Equal(t, "2323", cfg.SSH.Port)
	assert.Equal(t, "music/track.mp3", cfg.Audio.File)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("SPACEBEAT_SSH_PORT", "4000")
	t.Setenv("SPACEBEAT_LOGLEVEL", "debug")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.SSH.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_LegacyEnvAsDefault(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("WEB_PORT", "9090")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Web.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.WebAddr())
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spacebeat.json"), []byte(`{"mode":`), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestEnvOr_Fallback(t *testing.T) {
	t.Setenv("SPACEBEAT_TEST_SET", "x")
	t.Setenv("SPACEBEAT_TEST_EMPTY", "")
	assert.Equal(t, "x", envOr("SPACEBEAT_TEST_SET", "y"))
	assert.Equal(t, "", envOr("SPACEBEAT_TEST_EMPTY", "y"))
	assert.Equal(t, "y", envOr("SPACEBEAT_TEST_UNSET_KEY", "y"))
}

func TestLoad_PrefixedEnvBeatsUnprefixed(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("SSH_PORT", "2200")
	t.Setenv("SPACEBEAT_SSH_PORT", "2300")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "2300", cfg.SSH.Port)
}
