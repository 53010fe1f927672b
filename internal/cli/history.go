package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rechargehub/storefront/internal/storefront"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show your past recharges",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := configSession()
			if sess == nil {
				return fmt.Errorf("not authenticated. Run 'rechargehub auth login' first")
			}

			records, err := storefront.NewHistory(apiClient, log).Load(context.Background(), sess)
			if err != nil {
				return fmt.Errorf("failed to fetch history: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(records)
			}

			if len(records) == 0 {
				fmt.Println("No recharges yet")
				return nil
			}

			table := NewTable("DATE", "OPERATOR", "MOBILE", "PLAN", "AMOUNT", "STATUS", "REFERENCE")
			for _, rec := range records {
				table.AddRow(
					rec.Date.Format("02 Jan 2006 15:04"),
					rec.Operator,
					rec.MobileNumber,
					rec.Data+" / "+rec.Validity,
					formatPrice(rec.Amount),
					formatStatus(rec.Status),
					rec.ReferenceID,
				)
			}
			table.Render()
			return nil
		},
	}
}
