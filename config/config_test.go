package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graphnav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// isolate runs the test from an empty directory so no stray .env is picked up.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/graph")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/graph", cfg.Database.URL)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Zero(t, cfg.Server.RateLimit)
	assert.Equal(t, 100, cfg.Reach.MaxDepth)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeFile(t, `
database:
  driver: sqlite
  url: graph.db
server:
  addr: ":9090"
reach:
  max_depth: 25
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "graph.db", cfg.Database.URL)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 25, cfg.Reach.MaxDepth)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "database:\n  driver: sqlite\n  url: graph.db\n")
	t.Setenv("GRAPHNAV_REACH_MAX_DEPTH", "7")
	t.Setenv("GRAPHNAV_DATABASE_URL", "other.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Reach.MaxDepth)
	assert.Equal(t, "other.db", cfg.Database.URL)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("DATABASE_URL=postgres://dotenv/graph\n"), 0o644))
	// godotenv never overrides variables that are already set.
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	t.Cleanup(func() { os.Unsetenv("DATABASE_URL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://dotenv/graph", cfg.Database.URL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing url", "database:\n  driver: sqlite\n", "database.url"},
		{"unknown driver", "database:\n  driver: mysql\n  url: x\n", "database.driver"},
		{"depth too small", "database:\n  url: x\nreach:\n  max_depth: 0\n", "reach.maxdepth"},
		{"depth too large", "database:\n  url: x\nreach:\n  max_depth: 10001\n", "reach.maxdepth"},
		{"negative rate", "database:\n  url: x\nserver:\n  rate_limit: -1\n", "server.ratelimit"},
		{"bad level", "database:\n  url: x\nlog:\n  level: loud\n", "log.level"},
		{"bad endpoint", "database:\n  url: x\ntelemetry:\n  endpoint: not a url\n", "telemetry.endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(writeFile(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestYAML_RedactsURL(t *testing.T) {
	isolate(t)
	cfg, err := Load(writeFile(t, "database:\n  driver: sqlite\n  url: secret.db\n"))
	require.NoError(t, err)

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, out, "driver: sqlite")
	assert.Contains(t, out, "max_depth: 100")
	assert.NotContains(t, out, "secret.db")
	assert.Equal(t, "secret.db", cfg.Database.URL)
}
