package cli

import (
	"pmtrack/internal/features/seed"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, projects and delegations from a YAML file",
	Long: `Load users, projects, assignments and delegations from a YAML file.
Records that already exist are skipped, so the command can be re-run.`,
	Example: "  admin seed --file seed.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := seed.LoadFile(seedFile)
		if err != nil {
			return err
		}

		admin, err := rootAdmin()
		if err != nil {
			return err
		}

		report, err := seed.GetSeedService().Apply(file, admin)
		if err != nil {
			return err
		}

		cmd.Printf("Created %d users, %d projects, %d assignments, %d delegations (%d skipped)\n",
			report.UsersCreated,
			report.ProjectsCreated,
			report.AssignmentsCreated,
			report.DelegationsCreated,
			report.Skipped,
		)

		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "Path to the seed file")
}
