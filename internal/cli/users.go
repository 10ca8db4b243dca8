package cli

import (
	"fmt"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/martijn/typesprint/internal/core/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
	Long:  "Manage user accounts from the command line",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username> <email>",
	Short: "Add a new user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, email := args[0], args[1]

		services, err := initServices(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer services.Close()

		password, err := promptNewPassword("Enter password: ", "Confirm password: ")
		if err != nil {
			return err
		}

		user, err := services.AuthService.Register(cmd.Context(), username, email, password)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Printf("User '%s' created with id %d\n", user.Username, user.ID)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <email>",
	Short: "Delete a user and their scores",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer services.Close()

		user, err := services.UserRepo.FindByEmail(cmd.Context(), strings.ToLower(strings.TrimSpace(args[0])))
		if err != nil {
			return fmt.Errorf("user not found: %s", args[0])
		}

		// Confirm deletion
		fmt.Printf("Are you sure you want to delete user '%s' <%s>? (yes/no): ", user.Username, user.Email)
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" {
			fmt.Println("Cancelled")
			return nil
		}

		if err := services.UserService.DeleteUser(cmd.Context(), user.ID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		fmt.Printf("User '%s' deleted successfully\n", user.Username)
		return nil
	},
}

var usersUpdatePasswordCmd = &cobra.Command{
	Use:   "update-password <email>",
	Short: "Update user password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer services.Close()

		user, err := services.UserRepo.FindByEmail(cmd.Context(), strings.ToLower(strings.TrimSpace(args[0])))
		if err != nil {
			return fmt.Errorf("user not found: %s", args[0])
		}

		password, err := promptNewPassword("Enter new password: ", "Confirm new password: ")
		if err != nil {
			return err
		}

		if _, err := services.UserService.UpdateUser(cmd.Context(), user.ID, domain.UserUpdate{Password: &password}); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		fmt.Printf("Password updated for user '%s'\n", user.Username)
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer services.Close()

		users, err := services.UserService.ListUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		if len(users) == 0 {
			fmt.Println("No users found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tCREATED AT")
		for _, user := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				user.ID,
				user.Username,
				user.Email,
				user.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		w.Flush()

		return nil
	},
}

func promptNewPassword(prompt, confirmPrompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Print(confirmPrompt)
	confirmPassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(password) != string(confirmPassword) {
		return "", fmt.Errorf("passwords do not match")
	}

	return string(password), nil
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersUpdatePasswordCmd)
	usersCmd.AddCommand(usersListCmd)
}
