package cli

import (
	"errors"
	"fmt"

	"pmtrack/internal/features/audit_logs"
	users_models "pmtrack/internal/features/users/models"
	users_repositories "pmtrack/internal/features/users/repositories"
	users_services "pmtrack/internal/features/users/services"
	"pmtrack/internal/storage"
	"pmtrack/internal/util/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "pmtrack administration commands",
	Long: `Administrative tasks that run against the configured database:
seeding demo data, regenerating monthly summaries and resetting passwords.

The database and cache are configured through the same environment
variables as the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		audit_logs.SetupDependencies()

		if err := storage.RunMigrations(); err != nil {
			return err
		}

		logger.GetLogger().Info("admin command started", "command", cmd.CommandPath())
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(summariesCmd)
	rootCmd.AddCommand(usersCmd)
}

// rootAdmin is the actor of every command, created on first use
func rootAdmin() (*users_models.User, error) {
	userService := users_services.GetUserService()

	if err := userService.CreateInitialAdmin(); err != nil {
		return nil, fmt.Errorf("failed to create initial admin: %w", err)
	}

	admin, err := userService.GetUserByEmail(users_repositories.RootAdminEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}
	if admin == nil {
		return nil, errors.New("admin user does not exist")
	}

	return admin, nil
}
