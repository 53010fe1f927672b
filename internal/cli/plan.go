package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rechargehub/storefront/internal/domain/plan"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Browse the plan catalog",
	}

	cmd.AddCommand(newPlanListCmd())

	return cmd
}

func newPlanListCmd() *cobra.Command {
	var operator, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recharge plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := apiClient.Plans().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to fetch plans: %w", err)
			}

			if operator != "" {
				op := plan.ParseOperator(operator)
				if !op.IsValid() {
					return fmt.Errorf("unknown operator %q (use JIO, AIRTEL, VI or BSNL)", operator)
				}
				plans = plan.FilterByOperator(plans, op)
			}
			if category != "" {
				plans = plan.FilterByCategory(plans, plan.Category(category))
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(plans)
			}

			table := NewTable("ID", "OPERATOR", "PRICE", "DATA", "VALIDITY", "CATEGORY")
			for _, p := range plans {
				table.AddRow(
					truncate(p.ID, 12),
					p.Operator,
					formatPrice(p.Price),
					p.Data,
					p.Validity,
					p.Category,
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&operator, "operator", "", "filter by operator (JIO, AIRTEL, VI, BSNL)")
	cmd.Flags().StringVar(&category, "category", "", "filter by category (POPULAR, DATA_ONLY, ANNUAL, TOP_UP)")

	return cmd
}
