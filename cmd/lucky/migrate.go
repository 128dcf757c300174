package main

import (
	"fmt"
	"os"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/lucky/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or inspect database migrations",
	Long:      "Run the embedded goose migrations against DATABASE_URL. The default action is up.",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.LogLevel)

	ctx := cmd.Context()
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	action := "up"
	if len(args) == 1 {
		action = args[0]
	}
	out := cmd.OutOrStdout()

	switch action {
	case "down":
		result, err := db.MigrateDown(ctx)
		if err != nil {
			return err
		}
		printResult(cmd, result)

	case "status":
		status, err := db.MigrationStatus(ctx)
		if err != nil {
			return err
		}
		for _, s := range status {
			applied := "pending"
			if s.State == goose.StateApplied {
				applied = "applied " + s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(out, "%-40s %s\n", s.Source.Path, applied)
		}

	default:
		results, err := db.Migrate(ctx)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(out, "no pending migrations")
		}
		for _, r := range results {
			printResult(cmd, r)
		}
	}

	logger.Debug("migrate finished", "action", action, "driver", db.Driver)
	return nil
}

func printResult(cmd *cobra.Command, r *goose.MigrationResult) {
	if r == nil {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-4s %-40s %s\n", r.Direction, r.Source.Path, r.Duration)
}
