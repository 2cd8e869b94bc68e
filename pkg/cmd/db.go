package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/docdrop/pkg/configs"
	"github.com/yeisme/docdrop/pkg/internal/storage/db"
)

var (
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Database related commands",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfigForCLI()
		},
	}

	dbListCmd = &cobra.Command{
		Use:   "ls",
		Short: "list all registered database types",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered database types:")
			for _, dbType := range db.GetRegisteredDBTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+dbType)
			}
		},
	}

	dbMigrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "create or update the users and documents tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := db.New(cmd.Context(), &configs.GetConfig().DB)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}

			if err := client.Migrate(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migration complete")

			return nil
		},
	}
)

// registerDBCommands 注册数据库相关命令.
func registerDBCommands() {
	rootCmd.AddCommand(dbCmd)

	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbMigrateCmd)
}
