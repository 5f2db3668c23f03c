package main

import (
	"fmt"

	"github.com/DioGolang/GoUniversity/configs"
	"github.com/DioGolang/GoUniversity/internal/infra/database"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newMigrateCommand(v *viper.Viper, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or report schema migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{database.MigrateUp, database.MigrateDown, "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := database.MigrateUp
			if len(args) == 1 {
				direction = args[0]
			}
			if direction == "status" {
				direction = ""
			}

			cfg, err := configs.Load(v, *configPath)
			if err != nil {
				return err
			}
			db, err := database.Open(cmd.Context(), cfg.DBDriver, cfg.DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			ver, err := database.Migrate(cmd.Context(), db, direction)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", ver, cfg.DBDriver)
			return nil
		},
	}
}
