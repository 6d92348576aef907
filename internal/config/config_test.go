package config

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestLoadFs(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/nowhere")
		cfg, err := LoadFs(afero.NewMemMapFs(), "")
		require.NoError(t, err)

		assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
		assert.Equal(t, "sqlite://~/.config/yaru/yaru.db?mode=rwc", cfg.Storage.DatabaseURL)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, "yaru", cfg.MCP.Name)
		assert.Empty(t, cfg.File)
	})

	t.Run("reads an explicit file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFile(t, fs, "/etc/yaru.toml", `
[storage]
driver = "Postgres"
database_url = "postgres://u:p@db:5432/yaru"

[server]
addr = ":9000"
`)
		cfg, err := LoadFs(fs, "/etc/yaru.toml")
		require.NoError(t, err)

		assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
		assert.Equal(t, ":9000", cfg.Server.Addr)
		assert.Equal(t, "postgres://u:p@db:5432/yaru", cfg.Storage.PostgresDSN())
		assert.Equal(t, "/etc/yaru.toml", cfg.File)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFile(t, fs, "/c.toml", "[log]\nlevel = \"info\"\n")
		t.Setenv("YARU_LOG_LEVEL", "debug")

		cfg, err := LoadFs(fs, "/c.toml")
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := LoadFs(afero.NewMemMapFs(), "/missing.toml")
		assert.Error(t, err)
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFile(t, fs, "/c.toml", "[storage]\ndriver = \"mongo\"\n")
		_, err := LoadFs(fs, "/c.toml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Driver")
	})
}

func TestStorageConfig(t *testing.T) {
	t.Run("sqlite dsn enables foreign keys", func(t *testing.T) {
		s := StorageConfig{DatabaseURL: "sqlite:///tmp/yaru.db?mode=rwc"}
		dsn, err := s.SQLiteDSN()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(dsn, "file:/tmp/yaru.db?"))
		assert.Contains(t, dsn, "_foreign_keys=1")
		assert.Contains(t, dsn, "mode=rwc")
		assert.Equal(t, "/tmp/yaru.db", s.SQLiteFile())
	})

	t.Run("in-memory sqlite", func(t *testing.T) {
		s := StorageConfig{DatabaseURL: "sqlite://:memory:"}
		dsn, err := s.SQLiteDSN()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(dsn, "file::memory:?"))
		assert.Empty(t, s.SQLiteFile())
	})

	t.Run("postgres dsn from fields", func(t *testing.T) {
		s := StorageConfig{Postgres: PostgresConfig{Host: "h", Port: 5433, User: "u", Name: "n", SSLMode: "disable", Password: "it's"}}
		assert.Equal(t, `host=h port=5433 user=u dbname=n sslmode=disable password='it\'s'`, s.PostgresDSN())
	})
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/ana")
	got, err := ExpandHome("~/x/y.db")
	require.NoError(t, err)
	assert.Equal(t, "/home/ana/x/y.db", got)

	got, err = ExpandHome("/abs")
	require.NoError(t, err)
	assert.Equal(t, "/abs", got)
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.Storage.DatabaseURL = "postgres://u:secret@db/yaru"
	cfg.Storage.Postgres.Password = "secret"

	out := cfg.Redacted()
	assert.NotContains(t, out.Storage.DatabaseURL, "secret")
	assert.Equal(t, "********", out.Storage.Postgres.Password)
	assert.Equal(t, "secret", cfg.Storage.Postgres.Password)

	data, err := out.TOML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "[storage]")
}

func TestWriteDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, WriteDefault(fs, "/cfg/yaru/config.toml"))
	assert.Error(t, WriteDefault(fs, "/cfg/yaru/config.toml"))

	cfg, err := LoadFs(fs, "/cfg/yaru/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
}

func TestKeyring(t *testing.T) {
	keyring.MockInit()

	cfg := Default()
	cfg.Storage.Driver = DriverPostgres
	user := cfg.Storage.Postgres.KeyringUser()

	pw, err := LookupPassword(user)
	require.NoError(t, err)
	assert.Empty(t, pw)

	require.NoError(t, StorePassword(user, "hunter2"))
	cfg.ResolvePassword()
	assert.Equal(t, "hunter2", cfg.Storage.Postgres.Password)

	require.NoError(t, DeletePassword(user))
	assert.Error(t, DeletePassword(user))
}
