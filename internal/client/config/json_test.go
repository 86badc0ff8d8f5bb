package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestParseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"server_url":            "https://portal.example.edu",
		"online_check_interval": "10s",
		"request_timeout":       2000000000,
		"session_db":            "/var/lib/portalctl/s.db",
	})
	partial := writeTempJSON(t, dir, "partial.json", map[string]any{"session_db": "x.db"})
	zero := writeTempJSON(t, dir, "zero.json", map[string]any{"online_check_interval": "0s"})

	tests := []struct {
		name string
		args []string
		want Config
	}{
		{"all fields", []string{"bin", "-config", full}, Config{
			ServerURL: "https://portal.example.edu", OnlineCheckInterval: 10 * time.Second,
			RequestTimeout: 2 * time.Second, SessionDB: "/var/lib/portalctl/s.db"}},
		{"partial file keeps defaults", []string{"bin", "-c", partial}, Config{
			ServerURL: "http://127.0.0.1:5000", OnlineCheckInterval: 3 * time.Second,
			RequestTimeout: 5 * time.Second, SessionDB: "x.db"}},
		{"explicit zero interval applied", []string{"bin", "-c", zero}, Config{
			ServerURL: "http://127.0.0.1:5000", RequestTimeout: 5 * time.Second, SessionDB: "portalctl.db"}},
		{"no file", []string{"bin"}, Config{
			ServerURL: "http://127.0.0.1:5000", OnlineCheckInterval: 3 * time.Second,
			RequestTimeout: 5 * time.Second, SessionDB: "portalctl.db"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			var cfg Config
			cfg.LoadDefaults()
			parseJson(&cfg)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestParseJson_Failures(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

	for name, args := range map[string][]string{
		"invalid JSON": {"bin", "-c", bad},
		"missing file": {"bin", "-c", filepath.Join(dir, "nope.json")},
		"bad duration": {"bin", "-c", writeTempJSON(t, dir, "dur.json", map[string]any{"request_timeout": "soon"})},
	} {
		t.Run(name, func(t *testing.T) {
			os.Args = args
			var cfg Config
			require.Panics(t, func() { parseJson(&cfg) })
		})
	}
}
