package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"callhelper/internal/bootstrap"
	"callhelper/internal/config"
	"callhelper/internal/matching"
	"callhelper/internal/models"
)

var (
	matchUserType string
	matchLimit    int
	matchJSON     bool
)

// matchCmd runs the gate and ranking engine against the live repository
var matchCmd = &cobra.Command{
	Use:   "match <query>",
	Short: "Rank cases for an issue description",
	Long:  `Route the user type through the gate and print the ranked matches for the query.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		yamlCfg, err := config.LoadYAMLConfig()
		if err != nil {
			return fmt.Errorf("failed to load config file: %w", err)
		}

		database, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		gate, err := bootstrap.BuildGate(bootstrap.GuardSource(cfg, database), yamlCfg)
		if err != nil {
			return err
		}

		policy, ok := gate.SelectPolicy(matchUserType)
		if !ok {
			return fmt.Errorf("%w: %q (%s)", matching.ErrUnsupportedUserType, matchUserType, gate.Message(matching.MessageUnsupported))
		}

		query := strings.Join(args, " ")
		matches := policy.FindAllMatches(ctx, query, matchLimit)
		if len(matches) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), gate.Message(matching.MessageNoMatch))
			return nil
		}

		if matchJSON {
			return writeMatchesJSON(cmd.OutOrStdout(), matches)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderMatches(matches))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringVar(&matchUserType, "user-type", matching.LabelUmrahCompany, "caller classification")
	matchCmd.Flags().IntVar(&matchLimit, "limit", matching.DefaultLimit, "maximum number of matches")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "print matches as JSON")
}

func matchRows(matches []matching.ScoredCase) [][]string {
	rows := make([][]string, 0, len(matches))
	for i, m := range matches {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			m.Case.CaseID,
			m.Case.Category,
			strconv.Itoa(m.MatchScore),
			strconv.FormatFloat(m.MatchRatio, 'f', 2, 64),
		})
	}
	return rows
}

func renderMatches(matches []matching.ScoredCase) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		Headers("#", "Case ID", "Category", "Score", "Ratio").
		Rows(matchRows(matches)...)
	return t.String()
}

func writeMatchesJSON(w io.Writer, matches []matching.ScoredCase) error {
	views := make([]models.MatchView, 0, len(matches))
	for i := range matches {
		views = append(views, models.NewMatchView(&matches[i].Case, matches[i].MatchScore))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}
