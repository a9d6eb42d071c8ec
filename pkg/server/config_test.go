package server

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ustclug/tailr/pkg/take"
	testutils "github.com/ustclug/tailr/test/utils"
)

func TestLoadConfig(t *testing.T) {
	name := filepath.Join(t.TempDir(), "daemon.toml")
	testutils.WriteFile(t, name, `
db_url = "/tmp/tailrd.db"
source_config_dir = ["/tmp/a", "/tmp/b"]
log_level = "debug"
default_lines = "+5"
`)
	cfg, err := LoadConfig(name)
	require.NoError(t, err)
	require.Equal(t, "/tmp/tailrd.db", cfg.DbURL)
	require.Equal(t, []string{"/tmp/a", "/tmp/b"}, cfg.SourceConfigDir)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.Equal(t, take.Count(5), cfg.DefaultLines)
	require.Equal(t, DefaultServerConfig.ListenAddr, cfg.ListenAddr)
	require.Equal(t, DefaultServerConfig.LogDir, cfg.LogDir)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	testCases := map[string]string{
		"missing dirs": `db_url = "/tmp/tailrd.db"`,
		"bad level": `
source_config_dir = ["/tmp"]
log_level = "trace"
`,
		"bad listen addr": `
source_config_dir = ["/tmp"]
listen_addr = "nowhere"
`,
		"bad default lines": `
source_config_dir = ["/tmp"]
default_lines = "ten"
`,
	}
	for name, content := range testCases {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(dir, name+".toml")
			testutils.WriteFile(t, p, content)
			_, err := LoadConfig(p)
			require.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}
