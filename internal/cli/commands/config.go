package commands

import (
	"fmt"

	"github.com/kutbudev/yaru/internal/config"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

// NewConfigCommand manages the configuration file and stored credentials.
func NewConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect and initialise configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a default config file",
				Action: func(c *cli.Context) error {
					path, err := configPath(c)
					if err != nil {
						return err
					}
					if err := config.WriteDefault(afero.NewOsFs(), path); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "✅ Configuration written to %s\n", path)
					return nil
				},
			},
			{
				Name:  "path",
				Usage: "Print the config file location",
				Action: func(c *cli.Context) error {
					path, err := configPath(c)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, path)
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration (secrets masked)",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					data, err := cfg.Redacted().TOML()
					if err != nil {
						return err
					}
					if cfg.File != "" {
						fmt.Fprintf(c.App.Writer, "# loaded from %s\n", cfg.File)
					}
					fmt.Fprint(c.App.Writer, string(data))
					return nil
				},
			},
			{
				Name:  "check",
				Usage: "Open the configured storage and report its health",
				Action: func(c *cli.Context) error {
					return withServices(c, func(rt *runtime) error {
						if err := rt.backend.Health(c.Context); err != nil {
							return fmt.Errorf("❌ %s storage at %s is unhealthy: %w", rt.backend.Driver, rt.backend.Location, err)
						}
						fmt.Fprintf(c.App.Writer, "✅ %s storage at %s is reachable\n", rt.backend.Driver, rt.backend.Location)
						return nil
					})
				},
			},
			{
				Name:  "set-password",
				Usage: "Store the PostgreSQL password in the system keyring",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					if cfg.Storage.Driver != config.DriverPostgres {
						fmt.Fprintf(c.App.Writer, "💡 storage.driver is %q; the keyring is only used for postgres.\n", cfg.Storage.Driver)
					}
					password, err := promptPassword("PostgreSQL password:")
					if err != nil {
						return err
					}
					user := cfg.Storage.Postgres.KeyringUser()
					if err := config.StorePassword(user, password); err != nil {
						return fmt.Errorf("could not store password: %w", err)
					}
					fmt.Fprintf(c.App.Writer, "✅ Password stored in keyring for %s\n", user)
					return nil
				},
			},
			{
				Name:  "delete-password",
				Usage: "Remove the PostgreSQL password from the system keyring",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					user := cfg.Storage.Postgres.KeyringUser()
					if err := config.DeletePassword(user); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "🗑️ Password removed from keyring for %s\n", user)
					return nil
				},
			},
		},
	}
}

func configPath(c *cli.Context) (string, error) {
	if path := c.String("config"); path != "" {
		return path, nil
	}
	return config.Path()
}
