package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/apastel/secret-santa-generator/internal/config"
	"github.com/apastel/secret-santa-generator/internal/solver"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the roster without drawing an assignment",
	Long: `Load the participants file and report whether a valid assignment exists.

Checks roster validity (names, duplicates) and the exclusion constraints:
a roster is infeasible when some participant has no legal receiver under
any complete assignment. Nothing is drawn and nothing is printed beyond
the verdict, so the result stays a surprise.

Examples:
  secret-santa check --participants resources/participants.json`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	reg, err := loadRegistry(cfg.Participants)
	if err != nil {
		return err
	}

	if err := solver.Check(reg); err != nil {
		return fmt.Errorf("roster is infeasible: %w", err)
	}

	ok := lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Highlight))
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n",
		ok.Render(fmt.Sprintf("Roster OK: %d participants, a valid assignment exists.", reg.Size())))
	return nil
}
