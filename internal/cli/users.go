package cli

import (
	"errors"

	users_services "pmtrack/internal/features/users/services"

	"github.com/spf13/cobra"
)

var (
	resetEmail    string
	resetPassword string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var usersResetPasswordCmd = &cobra.Command{
	Use:     "reset-password",
	Short:   "Set a new password for a user",
	Example: `  admin users reset-password --email "some@email.com" --password "NewSecret1"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(resetPassword) < 8 {
			return errors.New("password must have at least 8 characters")
		}

		if err := users_services.GetUserService().ChangeUserPasswordByEmail(resetEmail, resetPassword); err != nil {
			return err
		}

		cmd.Println("Password reset successfully")
		return nil
	},
}

func init() {
	usersResetPasswordCmd.Flags().StringVar(&resetEmail, "email", "", "Email of the user")
	usersResetPasswordCmd.Flags().StringVar(&resetPassword, "password", "", "New password")
	_ = usersResetPasswordCmd.MarkFlagRequired("email")
	_ = usersResetPasswordCmd.MarkFlagRequired("password")

	usersCmd.AddCommand(usersResetPasswordCmd)
}
