package cmd

import (
	"site-manager/feature/games"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		if err := rt.openDatabase(); err != nil {
			return err
		}
		if err := games.Migrate(rt.db); err != nil {
			return err
		}

		rt.logger.Info("Migration complete", zap.String("driver", rt.cfg.Database.Driver))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
