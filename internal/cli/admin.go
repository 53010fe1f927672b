package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rechargehub/storefront/internal/domain/plan"
	"github.com/rechargehub/storefront/pkg/client"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Catalog management (admin only)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initAuthenticatedClient(); err != nil {
				return err
			}
			sess := configSession()
			if sess == nil || !sess.User.IsAdmin {
				return fmt.Errorf("admin access required")
			}
			return nil
		},
	}

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage recharge plans",
	}
	planCmd.AddCommand(newAdminPlanCreateCmd())
	planCmd.AddCommand(newAdminPlanUpdateCmd())
	planCmd.AddCommand(newAdminPlanDeleteCmd())

	cmd.AddCommand(planCmd)
	return cmd
}

func newAdminPlanCreateCmd() *cobra.Command {
	var (
		operator, validity, data, calls, sms, description, category, ott string
		price                                                            float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a plan to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			op := plan.ParseOperator(operator)
			if !op.IsValid() {
				return fmt.Errorf("unknown operator %q (use JIO, AIRTEL, VI or BSNL)", operator)
			}
			if price <= 0 {
				return fmt.Errorf("price must be positive")
			}

			req := client.CreatePlanRequest{
				Operator:    string(op),
				Price:       price,
				Validity:    validity,
				Data:        data,
				Calls:       calls,
				SMS:         sms,
				Description: description,
				Category:    category,
			}
			for _, b := range strings.Split(ott, ",") {
				if b = strings.TrimSpace(b); b != "" {
					req.OTTBenefits = append(req.OTTBenefits, b)
				}
			}

			created, err := apiClient.Plans().Create(context.Background(), req)
			if err != nil {
				return fmt.Errorf("failed to create plan: %w", err)
			}

			fmt.Printf("Created plan %s (%s %s)\n", created.ID, created.Operator, formatPrice(created.Price))
			return nil
		},
	}

	cmd.Flags().StringVar(&operator, "operator", "", "operator (JIO, AIRTEL, VI, BSNL)")
	cmd.Flags().Float64Var(&price, "price", 0, "plan price")
	cmd.Flags().StringVar(&validity, "validity", "", "validity, e.g. '28 days'")
	cmd.Flags().StringVar(&data, "data", "", "data benefit, e.g. '2GB/day'")
	cmd.Flags().StringVar(&calls, "calls", "", "call benefit")
	cmd.Flags().StringVar(&sms, "sms", "", "SMS benefit")
	cmd.Flags().StringVar(&description, "description", "", "plan description")
	cmd.Flags().StringVar(&category, "category", "POPULAR", "category (POPULAR, DATA_ONLY, ANNUAL, TOP_UP)")
	cmd.Flags().StringVar(&ott, "ott", "", "OTT benefits, comma separated")
	_ = cmd.MarkFlagRequired("operator")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("validity")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func newAdminPlanUpdateCmd() *cobra.Command {
	var (
		operator, validity, data, calls, sms, description, category, ott string
		price                                                            float64
	)

	cmd := &cobra.Command{
		Use:   "update <plan-id>",
		Short: "Update fields of an existing plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req client.UpdatePlanRequest
			if cmd.Flags().Changed("operator") {
				op := plan.ParseOperator(operator)
				if !op.IsValid() {
					return fmt.Errorf("unknown operator %q (use JIO, AIRTEL, VI or BSNL)", operator)
				}
				s := string(op)
				req.Operator = &s
			}
			if cmd.Flags().Changed("price") {
				req.Price = &price
			}
			if cmd.Flags().Changed("validity") {
				req.Validity = &validity
			}
			if cmd.Flags().Changed("data") {
				req.Data = &data
			}
			if cmd.Flags().Changed("calls") {
				req.Calls = &calls
			}
			if cmd.Flags().Changed("sms") {
				req.SMS = &sms
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if cmd.Flags().Changed("category") {
				req.Category = &category
			}
			if cmd.Flags().Changed("ott") {
				for _, b := range strings.Split(ott, ",") {
					if b = strings.TrimSpace(b); b != "" {
						req.OTTBenefits = append(req.OTTBenefits, b)
					}
				}
			}

			updated, err := apiClient.Plans().Update(context.Background(), args[0], req)
			if err != nil {
				return fmt.Errorf("failed to update plan: %w", err)
			}

			fmt.Printf("Updated plan %s\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&operator, "operator", "", "operator (JIO, AIRTEL, VI, BSNL)")
	cmd.Flags().Float64Var(&price, "price", 0, "plan price")
	cmd.Flags().StringVar(&validity, "validity", "", "validity")
	cmd.Flags().StringVar(&data, "data", "", "data benefit")
	cmd.Flags().StringVar(&calls, "calls", "", "call benefit")
	cmd.Flags().StringVar(&sms, "sms", "", "SMS benefit")
	cmd.Flags().StringVar(&description, "description", "", "plan description")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&ott, "ott", "", "OTT benefits, comma separated")

	return cmd
}

func newAdminPlanDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <plan-id>",
		Short: "Remove a plan from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Plans().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete plan: %w", err)
			}
			fmt.Printf("Deleted plan %s\n", args[0])
			return nil
		},
	}
}
