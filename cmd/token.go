package cmd

import (
	"errors"
	"fmt"
	"time"

	"site-manager/core/middleware/auth"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	tokenUserFlag string
	tokenTTLFlag  time.Duration
)

// tokenCmd mints a bearer token for local development
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := tokenUserFlag
		if userID == "" {
			userID = uuid.NewString()
		} else if _, err := uuid.Parse(userID); err != nil {
			return errors.New("--user must be a user id")
		}

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		token, err := auth.NewToken(rt.cfg.Auth, userID, tokenTTLFlag)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserFlag, "user", "", "User id (random when empty)")
	tokenCmd.Flags().DurationVar(&tokenTTLFlag, "ttl", 24*time.Hour, "Token lifetime")
	RootCmd.AddCommand(tokenCmd)
}
