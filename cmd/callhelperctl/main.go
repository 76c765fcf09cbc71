// Command callhelperctl is the operator CLI for the case knowledge base.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"callhelper/internal/config"
	"callhelper/internal/db"
	"callhelper/internal/logging"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "callhelperctl",
	Short: "Manage and query the CallHelper case knowledge base",
	Long:  `Seed the case repository and run the matching engine against it from the command line.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		cfg = config.Load()
		slog.SetDefault(logging.New("callhelperctl", cfg.LogLevel))
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB connects to DATABASE_URL and applies pending migrations.
func openDB(ctx context.Context) (*db.DB, error) {
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return database, nil
}
