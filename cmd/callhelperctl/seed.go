package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var seedReset bool

// seedCmd inserts the development fixture cases
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the TEST-00x fixture cases",
	Long:  `Insert the five development fixture cases. Existing case IDs are left untouched unless --reset clears the table first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		database, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		n, err := database.SeedDevCases(ctx, seedReset)
		if err != nil {
			return fmt.Errorf("failed to seed cases: %w", err)
		}

		total, err := database.CountCases(ctx)
		if err != nil {
			return fmt.Errorf("failed to count cases: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "inserted %d cases, %d in repository\n", n, total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "delete all cases before seeding")
}
