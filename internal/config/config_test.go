package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	def := Default()
	fs.String("db", def.DB, "")
	fs.String("addr", def.Addr, "")
	fs.String("server", def.Server, "")
	fs.String("log-level", def.Log.Level, "")
	fs.String("log-format", def.Log.Format, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todod.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, "db: /var/lib/todod/todos.db\naddr: 127.0.0.1:9000\nlog:\n  level: debug\n  format: json\nshutdown_timeout: 3s\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/todod/todos.db", cfg.DB)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, LogFormatJSON, cfg.Log.Format)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, Default().Server, cfg.Server)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, "db: from-file.db\naddr: \":7000\"\nlog:\n  level: warn\n")
	t.Setenv("TODOD_DB", "from-env.db")
	t.Setenv("TODOD_LOG_LEVEL", "error")

	cfg, err := Load(path, newFlags(t, "--db", "from-flag.db"))
	require.NoError(t, err)
	assert.Equal(t, "from-flag.db", cfg.DB, "flag beats env and file")
	assert.Equal(t, "error", cfg.Log.Level, "env beats file")
	assert.Equal(t, ":7000", cfg.Addr, "file beats default")
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	t.Setenv("TODOD_ADDR", ":9999")

	cfg, err := Load("", newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "db: [unterminated\n")
	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty db", func(c *Config) { c.DB = " " }, "db path"},
		{"empty addr", func(c *Config) { c.Addr = "" }, "listen address"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "unknown log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "unknown log format"},
		{"zero timeout", func(c *Config) { c.ShutdownTimeout = 0 }, "shutdown timeout"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("trace")
	assert.Error(t, err)
}
