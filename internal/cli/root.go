package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rechargehub/storefront/internal/pkg/logger"
	"github.com/rechargehub/storefront/pkg/client"
)

var (
	cfgFile      string
	outputFormat string
	serverURL    string
	apiClient    *client.Client
	log          *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rechargehub",
	Short: "RechargeHub CLI - browse plans and recharge from the terminal",
	Long: `RechargeHub CLI provides command-line access to the recharge
storefront: browse the plan catalog, sign up or log in, run a recharge,
review your history, and manage the catalog as an admin.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Config commands never need the API.
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			return nil
		}
		if cmd.Name() == "login" || cmd.Name() == "signup" || cmd.Name() == "logout" ||
			cmd.Name() == "whoami" || cmd.Name() == "status" {
			return initClient()
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "plan" && cmd.Name() == "list" {
			return initClient()
		}
		return initAuthenticatedClient()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.rechargehub/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "recharge API URL (overrides config)")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newRechargeCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newAdminCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return
		}
		configDir := home + "/.rechargehub"
		_ = os.MkdirAll(configDir, 0700)
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("RECHARGEHUB")
	viper.AutomaticEnv()

	viper.SetDefault("server_url", "http://localhost:3000")
	viper.SetDefault("output", "table")
	viper.SetDefault("admin_email", "admin@admin.com")

	_ = viper.ReadInConfig()

	log = logger.New(logger.Config{Level: "error", Format: "console"})
}

func initClient() error {
	url := viper.GetString("server_url")
	if serverURL != "" {
		url = serverURL
	}

	apiClient = client.NewClient(client.Config{
		BaseURL: url,
	})

	// A stored token is attached opportunistically; commands that need
	// it verify separately.
	if token := viper.GetString("auth.token"); token != "" {
		apiClient.SetToken(token)
	}
	return nil
}

func initAuthenticatedClient() error {
	if err := initClient(); err != nil {
		return err
	}

	if viper.GetString("auth.token") == "" {
		return fmt.Errorf("not authenticated. Run 'rechargehub auth login' first")
	}
	return nil
}

func getOutputFormat() string {
	if outputFormat != "" && outputFormat != "table" {
		return outputFormat
	}
	return viper.GetString("output")
}
