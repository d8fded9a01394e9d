package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"briefy/internal/database"
)

func migrateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(root.configFile)
			if err != nil {
				return err
			}
			defer app.shutdown(cmd.Context())

			dbCfg := app.dbConfig()
			db, err := database.Init(dbCfg)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				app.dbClose = sqlDB.Close
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema up to date (%s)\n", dbCfg.Driver())
			return nil
		},
	}
}
