package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// t.Setenv registers the restore; unset to simulate a clean environment.
	for _, key := range []string{"GALLERYLOG_PATH", "GALLERYLOG_CREDENTIALS", "GALLERYLOG_LOCK_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "logs/gallery.log", cfg.LogPath)
	assert.Empty(t, cfg.CredentialsPath)
	assert.Zero(t, cfg.LockTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("GALLERYLOG_PATH", "/var/lib/gallery/events.log")
	t.Setenv("GALLERYLOG_CREDENTIALS", "/etc/gallery/credentials.yaml")
	t.Setenv("GALLERYLOG_LOCK_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/gallery/events.log", cfg.LogPath)
	assert.Equal(t, "/etc/gallery/credentials.yaml", cfg.CredentialsPath)
	assert.Equal(t, 5*time.Second, cfg.LockTimeout)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("GALLERYLOG_LOCK_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
