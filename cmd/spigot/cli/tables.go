package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigotdb/spigot/internal/config"
)

func newTablesCmd() *cobra.Command {
	var (
		conn      connectionFlags
		genConfig string
	)

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables a generation run would cover",
		Long: `List base tables visible through the connection, after applying the
table filter from the generation config when one is present.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(cmd.Context(), conn, genConfig)
		},
	}

	conn.register(cmd)
	cmd.Flags().StringVar(&genConfig, "gen-config", "", "Generation config file (optional)")

	return cmd
}

func runTables(ctx context.Context, conn connectionFlags, genConfigPath string) error {
	include := func(string) bool { return true }
	if genConfigPath != "" {
		cfg, err := config.LoadGenConfig(genConfigPath)
		if err != nil {
			return err
		}
		include = cfg.IncludeFunc()
	}

	connCfg, err := conn.resolve(ctx)
	if err != nil {
		return err
	}

	db, err := newRegistry().Open(connCfg)
	if err != nil {
		return err
	}
	defer db.Disconnect()

	tables, err := db.ListTables(ctx)
	if err != nil {
		return err
	}

	for _, t := range tables {
		if include(t) {
			fmt.Println(t)
		}
	}
	return nil
}
