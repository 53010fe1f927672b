package recharge

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rechargehub/storefront/internal/domain/plan"
	"github.com/rechargehub/storefront/internal/domain/user"
	"github.com/rechargehub/storefront/pkg/client"
)

// Recharge statuses.
const (
	StatusSuccess = "SUCCESS"
	StatusPending = "PENDING"
	StatusFailed  = "FAILED"
)

// NewReferenceID generates a client-side transaction reference:
// "TXN" + unix milliseconds + a 3-digit random suffix.
func NewReferenceID() string {
	return fmt.Sprintf("TXN%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}

// NewRequest builds the persistence payload for a completed checkout.
// The plan's headline details are snapshotted into the record so history
// display stays stable even if the plan later changes; they must never
// be re-derived from the live plan.
func NewRequest(u user.User, p client.Plan, mobileNumber string, fallbackOperator plan.Operator) client.CreateRechargeRequest {
	operator := p.Operator
	if operator == "" {
		operator = string(fallbackOperator)
	}
	if operator == "" {
		operator = string(plan.OperatorJio)
	}

	return client.CreateRechargeRequest{
		UserID:       u.ID,
		UserEmail:    u.Email,
		PlanID:       p.ID,
		MobileNumber: mobileNumber,
		Operator:     string(plan.ParseOperator(operator)),
		PlanAmount:   p.Price,
		Status:       StatusSuccess,
		ReferenceID:  NewReferenceID(),
		PlanDetails: client.PlanSnapshot{
			Data:     p.Data,
			Validity: p.Validity,
			Calls:    p.Calls,
		},
	}
}
