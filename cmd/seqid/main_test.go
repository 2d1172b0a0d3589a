package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pebblestore "github.com/rzbill/seqid/internal/storage/pebble"
)

func TestServerConfigLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seqid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("httpAddr: \":9000\"\ndefaultScheme: micro26\ntzOffsetMinutes: 60\n"), 0o644))
	t.Setenv("SEQID_TZ_OFFSET_MINUTES", "120")
	t.Setenv("SEQID_HTTP_ADDR", "")
	t.Setenv("SEQID_DEFAULT_SCHEME", "")

	cmd := newServerCommand().Commands()[0]
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--grpc", ":6000", "--fsync", "never", "--no-checkpoint"}))

	cfg, mode, err := serverConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, ":6000", cfg.GRPCAddr)
	assert.Equal(t, "micro26", cfg.DefaultScheme)
	assert.Equal(t, 120, cfg.TZOffsetMinutes)
	assert.False(t, cfg.Checkpoint.Enabled)
	assert.Equal(t, pebblestore.FsyncModeNever, mode)
}

func TestServerConfigRejects(t *testing.T) {
	cmd := newServerCommand().Commands()[0]
	require.NoError(t, cmd.ParseFlags([]string{"--fsync", "sometimes"}))
	_, _, err := serverConfig(cmd)
	require.Error(t, err)

	cmd = newServerCommand().Commands()[0]
	require.NoError(t, cmd.ParseFlags([]string{"--scheme", "nope"}))
	_, _, err = serverConfig(cmd)
	require.Error(t, err)
}

func TestAPIURL(t *testing.T) {
	t.Setenv("SEQID_HTTP", "")
	assert.Equal(t, "http://127.0.0.1:8080", apiURL())
	t.Setenv("SEQID_HTTP", "http://example:1")
	assert.Equal(t, "http://example:1", apiURL())
}
