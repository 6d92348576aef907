// Package config loads yaru settings from config.toml, .env files and
// YARU_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kutbudev/yaru/internal/logger"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	appName        = "yaru"
	configFileName = "config.toml"
	envPrefix      = "YARU"
)

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverJSON     = "json"
	DriverMemory   = "memory"
)

// Config represents the application configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage" toml:"storage"`
	Server  ServerConfig  `mapstructure:"server" toml:"server"`
	Log     logger.Config `mapstructure:"log" toml:"log"`
	MCP     MCPConfig     `mapstructure:"mcp" toml:"mcp"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-" toml:"-"`
}

// StorageConfig selects and configures the repository backend
type StorageConfig struct {
	Driver       string         `mapstructure:"driver" toml:"driver" validate:"required,oneof=sqlite postgres json memory"`
	DatabaseURL  string         `mapstructure:"database_url" toml:"database_url"`
	JSONPath     string         `mapstructure:"json_path" toml:"json_path" validate:"required_if=Driver json"`
	MaxOpenConns int            `mapstructure:"max_open_conns" toml:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int            `mapstructure:"max_idle_conns" toml:"max_idle_conns" validate:"gte=0"`
	Postgres     PostgresConfig `mapstructure:"postgres" toml:"postgres"`
}

// PostgresConfig holds connection settings used when database_url is not a
// postgres URL.
type PostgresConfig struct {
	Host     string `mapstructure:"host" toml:"host"`
	Port     int    `mapstructure:"port" toml:"port" validate:"gte=0,lte=65535"`
	User     string `mapstructure:"user" toml:"user"`
	Password string `mapstructure:"password" toml:"password,omitempty"`
	Name     string `mapstructure:"name" toml:"name"`
	SSLMode  string `mapstructure:"ssl_mode" toml:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Addr string `mapstructure:"addr" toml:"addr" validate:"required"`
	Mode string `mapstructure:"mode" toml:"mode" validate:"oneof=debug release test"`
}

// MCPConfig configures the MCP server
type MCPConfig struct {
	Name         string `mapstructure:"name" toml:"name" validate:"required"`
	Instructions string `mapstructure:"instructions" toml:"instructions,omitempty"`
}

// Dir returns $XDG_CONFIG_HOME/yaru, falling back to ~/.config/yaru.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.database_url", "sqlite://~/.config/yaru/yaru.db?mode=rwc")
	v.SetDefault("storage.json_path", "~/.config/yaru/yaru.json")
	v.SetDefault("storage.max_open_conns", 10)
	v.SetDefault("storage.max_idle_conns", 2)
	v.SetDefault("storage.postgres.host", "localhost")
	v.SetDefault("storage.postgres.port", 5432)
	v.SetDefault("storage.postgres.user", "postgres")
	v.SetDefault("storage.postgres.password", "")
	v.SetDefault("storage.postgres.name", appName)
	v.SetDefault("storage.postgres.ssl_mode", "disable")

	v.SetDefault("server.addr", "localhost:8080")
	v.SetDefault("server.mode", "release")

	def := logger.DefaultConfig()
	v.SetDefault("log.level", def.Level)
	v.SetDefault("log.format", def.Format)
	v.SetDefault("log.output", def.Output)
	v.SetDefault("log.time_format", def.TimeFormat)

	v.SetDefault("mcp.name", "yaru")
	v.SetDefault("mcp.instructions", "")
}

// Default returns the configuration used when no file or environment
// override exists.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads the configuration. An explicit path must exist; otherwise the
// default location and the working directory are searched and a missing
// file is not an error.
func Load(path string) (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs is Load over an arbitrary filesystem.
func LoadFs(fs afero.Fs, path string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("toml")
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SQLiteDSN turns database_url into a go-sqlite3 DSN with foreign keys on.
func (s StorageConfig) SQLiteDSN() (string, error) {
	raw := s.DatabaseURL
	if raw == "" {
		return "", errors.New("storage.database_url is empty")
	}
	rest, ok := strings.CutPrefix(raw, "sqlite://")
	if !ok {
		rest = strings.TrimPrefix(raw, "sqlite:")
	}
	path, query, _ := strings.Cut(rest, "?")
	if path != ":memory:" {
		expanded, err := ExpandHome(path)
		if err != nil {
			return "", err
		}
		path = expanded
	}

	params, err := url.ParseQuery(query)
	if err != nil {
		return "", fmt.Errorf("invalid database_url query: %w", err)
	}
	params.Set("_foreign_keys", "1")
	return "file:" + path + "?" + params.Encode(), nil
}

// SQLiteFile returns the database file path, or "" for in-memory databases.
func (s StorageConfig) SQLiteFile() string {
	rest := strings.TrimPrefix(strings.TrimPrefix(s.DatabaseURL, "sqlite://"), "sqlite:")
	path, _, _ := strings.Cut(rest, "?")
	if path == ":memory:" {
		return ""
	}
	expanded, err := ExpandHome(path)
	if err != nil {
		return ""
	}
	return expanded
}

// PostgresDSN returns database_url when it is a postgres URL, otherwise a
// key=value DSN built from the postgres section.
func (s StorageConfig) PostgresDSN() string {
	if strings.HasPrefix(s.DatabaseURL, "postgres://") || strings.HasPrefix(s.DatabaseURL, "postgresql://") {
		return s.DatabaseURL
	}
	pg := s.Postgres
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		pg.Host, pg.Port, pg.User, pg.Name, pg.SSLMode)
	if pg.Password != "" {
		dsn += fmt.Sprintf(" password='%s'", strings.ReplaceAll(pg.Password, "'", `\'`))
	}
	return dsn
}

// ResolvedJSONPath expands a leading ~ in json_path.
func (s StorageConfig) ResolvedJSONPath() (string, error) {
	return ExpandHome(s.JSONPath)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Redacted returns a copy safe for printing.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Storage.Postgres.Password != "" {
		out.Storage.Postgres.Password = "********"
	}
	if u, err := url.Parse(out.Storage.DatabaseURL); err == nil && u.User != nil {
		if _, set := u.User.Password(); set {
			u.User = url.UserPassword(u.User.Username(), "********")
			out.Storage.DatabaseURL = u.String()
		}
	}
	return &out
}

// TOML encodes the configuration in config file form.
func (c *Config) TOML() ([]byte, error) {
	return toml.Marshal(c)
}

// WriteDefault writes the default configuration to path unless a file is
// already there.
func WriteDefault(fs afero.Fs, path string) error {
	if exists, err := afero.Exists(fs, path); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := Default().TOML()
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, 0o644)
}
