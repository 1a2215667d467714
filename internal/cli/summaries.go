package cli

import (
	"fmt"
	"time"

	"pmtrack/internal/features/summaries"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	summaryProjectID     string
	summaryYear          int
	summaryMonth         int
	summaryIncludeShadow bool
)

var summariesCmd = &cobra.Command{
	Use:   "summaries",
	Short: "Manage monthly summaries",
}

var summariesGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate the monthly summaries of a project",
	Long: `Regenerate the monthly summaries of a project. Previous summaries of
the same month are replaced. Defaults to the previous calendar month.`,
	Example: "  admin summaries generate --project 3f1c... --year 2025 --month 3",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := uuid.Parse(summaryProjectID)
		if err != nil {
			return fmt.Errorf("invalid project id: %w", err)
		}

		year, month := summaryYear, summaryMonth
		if year == 0 || month == 0 {
			previous := time.Now().UTC().AddDate(0, 0, -time.Now().UTC().Day())
			year, month = previous.Year(), int(previous.Month())
		}

		admin, err := rootAdmin()
		if err != nil {
			return err
		}

		generated, err := summaries.GetSummaryService().Generate(
			cmd.Context(),
			projectID,
			year,
			month,
			summaryIncludeShadow,
			admin,
		)
		if err != nil {
			return err
		}

		cmd.Printf("Generated %d summaries for %04d-%02d\n", len(generated), year, month)
		for _, summary := range generated {
			cmd.Printf("  %s: %g hours\n", summary.UserID, summary.TotalHours)
		}

		return nil
	},
}

func init() {
	summariesGenerateCmd.Flags().StringVarP(&summaryProjectID, "project", "p", "", "Project ID")
	summariesGenerateCmd.Flags().IntVar(&summaryYear, "year", 0, "Year, defaults to the previous month")
	summariesGenerateCmd.Flags().IntVar(&summaryMonth, "month", 0, "Month 1-12, defaults to the previous month")
	summariesGenerateCmd.Flags().BoolVar(&summaryIncludeShadow, "include-shadow", true, "Include work logged by delegates")
	_ = summariesGenerateCmd.MarkFlagRequired("project")

	summariesCmd.AddCommand(summariesGenerateCmd)
}
