package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/rechargehub/storefront/internal/domain/user"
	"github.com/rechargehub/storefront/internal/storefront"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthSignupCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthWhoamiCmd())

	return cmd
}

// viperTokenStore persists the bearer token into the CLI config file.
type viperTokenStore struct{}

func (viperTokenStore) SaveToken(token string) {
	viper.Set("auth.token", token)
}

// saveSession stores the logged-in user's projection so later commands
// know who they act for without a dedicated profile endpoint.
func saveSession(sess *storefront.Session) error {
	viper.Set("auth.user_id", sess.User.ID)
	viper.Set("auth.name", sess.User.Name)
	viper.Set("auth.email", sess.User.Email)
	viper.Set("auth.phone", sess.User.Phone)
	viper.Set("auth.is_admin", sess.User.IsAdmin)
	return writeConfig()
}

// configSession rebuilds the session from stored config; nil when not
// logged in.
func configSession() *storefront.Session {
	token := viper.GetString("auth.token")
	id := viper.GetString("auth.user_id")
	if token == "" || id == "" {
		return nil
	}
	return &storefront.Session{
		User: user.User{
			ID:      id,
			Name:    viper.GetString("auth.name"),
			Email:   viper.GetString("auth.email"),
			Phone:   viper.GetString("auth.phone"),
			IsAdmin: viper.GetBool("auth.is_admin"),
		},
		Token: token,
	}
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput("Email: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
			}

			flow := storefront.NewAuthFlow(apiClient, viperTokenStore{}, viper.GetString("admin_email"), log)
			sess, err := flow.Submit(context.Background(), storefront.AuthForm{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("login failed: %s", flow.Error())
			}

			if err := saveSession(sess); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			fmt.Printf("Logged in as %s\n", sess.User.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

func newAuthSignupCmd() *cobra.Command {
	var name, email, phone, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = promptInput("Full name: ")
			}
			if email == "" {
				email = promptInput("Email: ")
			}
			if phone == "" {
				phone = promptInput("Phone: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
				confirm := promptPassword("Confirm password: ")
				if password != confirm {
					return fmt.Errorf("passwords do not match")
				}
			}

			flow := storefront.NewAuthFlow(apiClient, viperTokenStore{}, viper.GetString("admin_email"), log)
			flow.ToggleMode() // signup

			sess, err := flow.Submit(context.Background(), storefront.AuthForm{
				Name:     name,
				Email:    email,
				Phone:    phone,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("signup failed: %s", flow.Error())
			}

			if err := saveSession(sess); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			fmt.Printf("Account created. Logged in as %s\n", sess.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("auth.token", "")
			viper.Set("auth.user_id", "")
			viper.Set("auth.name", "")
			viper.Set("auth.email", "")
			viper.Set("auth.phone", "")
			viper.Set("auth.is_admin", false)

			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to clear credentials: %w", err)
			}

			fmt.Println("Logged out successfully")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := configSession()
			if sess == nil {
				return fmt.Errorf("not authenticated. Run 'rechargehub auth login' first")
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(sess.User)
			}

			fmt.Printf("Name:  %s\n", sess.User.Name)
			fmt.Printf("Email: %s\n", sess.User.Email)
			fmt.Printf("Phone: %s\n", sess.User.Phone)
			if sess.User.IsAdmin {
				fmt.Printf("Role:  admin\n")
			} else {
				fmt.Printf("Role:  user\n")
			}
			fmt.Printf("ID:    %s\n", sess.User.ID)
			return nil
		},
	}
}

func promptInput(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(password)
}
