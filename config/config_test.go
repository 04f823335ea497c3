package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "metascan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	return path
}

func TestNewFromPath(t *testing.T) {
	path := writeConfig(t, `
frontend:
  addr: "fe.example.com:9020"
  connect_timeout_ms: 1000
logger:
  level: debug
`)

	cfg, err := NewFromPath(path)
	require.NoError(t, err)

	require.Equal(t, "fe.example.com:9020", cfg.Frontend.Addr)
	require.Equal(t, time.Second, cfg.Frontend.ConnectTimeout())

	// unset fields keep their defaults
	require.Equal(t, time.Minute, cfg.Frontend.RequestTimeout())
	require.Equal(t, uint64(3), cfg.Frontend.MaxRetries)
	require.Equal(t, "debug", cfg.Logger.Level)
}

func TestMissingAddrRejected(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: info
`)

	_, err := NewFromPath(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "addr")
}

func TestZeroRequestTimeoutRejected(t *testing.T) {
	path := writeConfig(t, `
frontend:
  addr: "fe.example.com:9020"
  request_timeout_ms: 0
`)

	_, err := NewFromPath(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "request_timeout_ms")
}

func TestMissingFileRejected(t *testing.T) {
	_, err := NewFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
