package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rechargehub/storefront/internal/storefront"
)

func newRechargeCmd() *cobra.Command {
	var mobile string
	var yes bool

	cmd := &cobra.Command{
		Use:   "recharge <plan-id>",
		Short: "Run a recharge for a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sess := configSession()
			if sess == nil {
				return fmt.Errorf("not authenticated. Run 'rechargehub auth login' first")
			}

			plans, err := apiClient.Plans().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch plans: %w", err)
			}

			planID := args[0]
			state := storefront.NewState()
			state.Session = sess
			state.SetMobileNumber(mobile)

			var found bool
			for _, p := range plans {
				if p.ID == planID || strings.HasPrefix(p.ID, planID) {
					switch state.RequestCheckout(p) {
					case storefront.GateInvalidMobile:
						return fmt.Errorf("please enter a valid 10-digit mobile number")
					case storefront.GateOpenedConfirmation:
					}
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("plan %q not found", planID)
			}

			p := *state.ActivePlan
			fmt.Printf("Plan:     %s %s, %s, %s\n", p.Operator, formatPrice(p.Price), p.Data, p.Validity)
			fmt.Printf("Mobile:   %s\n", state.MobileNumber)

			if !yes {
				answer := promptInput(fmt.Sprintf("Pay %s? [y/N]: ", formatPrice(p.Price)))
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					fmt.Println("Cancelled")
					return nil
				}
			}

			flow := storefront.NewConfirmationFlow(apiClient, log)
			flow.Open(p, state.MobileNumber, state.Operator)

			if err := flow.Pay(ctx, sess); err != nil {
				return fmt.Errorf("recharge failed: %w", err)
			}

			fmt.Print("Processing payment")
			for flow.Step() == storefront.StepProcessing {
				fmt.Print(".")
				time.Sleep(250 * time.Millisecond)
			}
			fmt.Println()

			fmt.Println("Recharge successful")
			if ref := flow.ReferenceID(); ref != "" {
				fmt.Printf("Reference: %s\n", ref)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mobile, "mobile", "", "10-digit mobile number to recharge")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("mobile")

	return cmd
}
