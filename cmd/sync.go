package cmd

import (
	"encoding/json"
	"errors"
	"os"

	"site-manager/feature/games"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncUserFlag   string
	syncHandleFlag string
)

// syncCmd groups the library sync commands
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize game libraries",
}

// syncSteamCmd runs one Steam library sync
var syncSteamCmd = &cobra.Command{
	Use:   "steam",
	Short: "Import a Steam library for a user",
	Long:  `Resolves the handle, fetches the owned games and reconciles them into the user's library. The result is printed as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := uuid.Parse(syncUserFlag); err != nil {
			return errors.New("--user must be a user id")
		}

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		if err := rt.openDatabase(); err != nil {
			return err
		}
		if err := rt.openCache(); err != nil {
			return err
		}
		if err := rt.openStorage(); err != nil {
			rt.logger.Warn("Snapshots disabled", zap.Error(err))
		}

		svc := games.NewServiceFromOptions(rt.gamesOptions())
		result, err := svc.SyncSteam(cmd.Context(), syncUserFlag, syncHandleFlag)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	syncSteamCmd.Flags().StringVar(&syncUserFlag, "user", "", "User id owning the library")
	syncSteamCmd.Flags().StringVar(&syncHandleFlag, "handle", "", "Steam vanity name, 17-digit id or profile URL")
	_ = syncSteamCmd.MarkFlagRequired("user")
	_ = syncSteamCmd.MarkFlagRequired("handle")

	syncCmd.AddCommand(syncSteamCmd)
	RootCmd.AddCommand(syncCmd)
}
