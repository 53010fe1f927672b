package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connectivity to the recharge API",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := viper.GetString("server_url")
			if serverURL != "" {
				url = serverURL
			}

			plans, err := apiClient.Plans().List(context.Background())
			if err != nil {
				fmt.Printf("Server:  %s\n", url)
				fmt.Printf("Status:  unreachable (%v)\n", err)
				return fmt.Errorf("recharge API is not reachable")
			}

			fmt.Printf("Server:  %s\n", url)
			fmt.Printf("Status:  ok\n")
			fmt.Printf("Plans:   %d in catalog\n", len(plans))
			if sess := configSession(); sess != nil {
				fmt.Printf("User:    %s\n", sess.User.Email)
			} else {
				fmt.Printf("User:    (not logged in)\n")
			}
			return nil
		},
	}
}
