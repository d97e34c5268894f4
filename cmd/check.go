package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"site-manager/feature/games/models"
	"site-manager/feature/system/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// checkCmd groups the consistency checks
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run consistency checks",
}

// checkStructureCmd checks the bucket folders
var checkStructureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and optionally fix the bucket folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		if err := rt.openStorage(); err != nil {
			return err
		}

		ctx := cmd.Context()

		missing, err := checks.CheckStructure(ctx, rt.storage, rt.cfg.Storage.Bucket)
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			rt.logger.Info("Structure check passed")
			return nil
		}

		rt.logger.Warn("Missing folders detected", zap.Strings("missing", missing))
		if !fixFlag {
			return fmt.Errorf("%d folders missing, rerun with --fix", len(missing))
		}
		return checks.FixStructure(ctx, rt.storage, rt.cfg.Storage.Bucket, rt.logger, missing)
	},
}

// checkSchemaCmd compares the database with the models
var checkSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Compare the live database schema with the models",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		if err := rt.openDatabase(); err != nil {
			return err
		}

		report, err := checks.CheckSchema(rt.db, models.All()...)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
		if !report.Matched {
			return fmt.Errorf("schema does not match, run migrate")
		}
		return nil
	},
}

func init() {
	checkStructureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
	checkCmd.AddCommand(checkStructureCmd, checkSchemaCmd)
	RootCmd.AddCommand(checkCmd)
}
