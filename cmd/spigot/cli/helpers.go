package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spigotdb/spigot/internal/config"
	"github.com/spigotdb/spigot/internal/connector"
	"github.com/spigotdb/spigot/internal/connector/mssql"
	"github.com/spigotdb/spigot/internal/connector/mysql"
	"github.com/spigotdb/spigot/internal/connector/postgres"
	"github.com/spigotdb/spigot/internal/connector/snowflake"
	"github.com/spigotdb/spigot/internal/connector/sqlite"
)

// dataDir holds the --data-dir persistent flag value (set on root command).
var dataDir string

// resolveDataDir returns the data directory from --data-dir flag,
// SPIGOT_DATA_DIR env var, or ~/.spigot as fallback.
func resolveDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	if envDir := os.Getenv("SPIGOT_DATA_DIR"); envDir != "" {
		return envDir
	}
	home, _ := os.UserHomeDir()
	return home + "/.spigot"
}

// openProfileStore opens the SQLite profile store, defaulting to ~/.spigot
// if no data dir was specified.
func openProfileStore() (*config.Store, error) {
	return config.NewStore(resolveDataDir())
}

// newRegistry creates a connector registry with all supported database drivers registered.
func newRegistry() *connector.Registry {
	registry := connector.NewRegistry()
	registry.RegisterDriver("postgres", func() connector.Connector { return postgres.New() })
	registry.RegisterDriver("mysql", func() connector.Connector { return mysql.New() })
	registry.RegisterDriver("mssql", func() connector.Connector { return mssql.New() })
	registry.RegisterDriver("snowflake", func() connector.Connector { return snowflake.New() })
	registry.RegisterDriver("sqlite", func() connector.Connector { return sqlite.New() })
	return registry
}

// connectionFlags are the shared connection options for commands that talk
// to a database. --service resolves a saved profile; explicit flags win.
type connectionFlags struct {
	service        string
	driver         string
	dsn            string
	user           string
	password       string
	schema         string
	privateKeyPath string
}

// register adds the shared connection flags to a command.
func (f *connectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.service, "service", "", "Saved profile name (see 'spigot db add')")
	cmd.Flags().StringVar(&f.driver, "driver", "", "Database driver (postgres, mysql, mssql, snowflake, sqlite)")
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "Data source name / connection string")
	cmd.Flags().StringVar(&f.user, "user", "", "Database user (merged into the DSN when it carries no credentials)")
	cmd.Flags().StringVar(&f.password, "password", "", "Database password (prefer the prompt on 'spigot db add')")
	cmd.Flags().StringVar(&f.schema, "schema", "", "Database schema to introspect (default depends on driver)")
	cmd.Flags().StringVar(&f.privateKeyPath, "private-key-path", "", "Path to private key file (for Snowflake key-pair auth)")
}

// resolve builds a ConnectionConfig from the flags, consulting the profile
// store when --service is given.
func (f *connectionFlags) resolve(ctx context.Context) (connector.ConnectionConfig, error) {
	cfg := connector.ConnectionConfig{
		Driver:         f.driver,
		DSN:            f.dsn,
		User:           f.user,
		Password:       f.password,
		SchemaName:     f.schema,
		PrivateKeyPath: f.privateKeyPath,
	}

	if f.service != "" {
		store, err := openProfileStore()
		if err != nil {
			return cfg, err
		}
		defer store.Close()

		profile, err := store.GetProfileByName(ctx, f.service)
		if err != nil {
			return cfg, fmt.Errorf("profile %q: %w", f.service, err)
		}
		if cfg.Driver == "" {
			cfg.Driver = profile.Driver
		}
		if cfg.DSN == "" {
			cfg.DSN = profile.DSN
		}
		if cfg.SchemaName == "" {
			cfg.SchemaName = profile.Schema
		}
	}

	if cfg.Driver == "" || cfg.DSN == "" {
		return cfg, fmt.Errorf("driver and dsn are required (set --driver/--dsn or --service)")
	}
	return cfg, nil
}
