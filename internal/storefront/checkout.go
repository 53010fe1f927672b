package storefront

import "github.com/rechargehub/storefront/pkg/client"

// GateOutcome is the checkout gate's decision for a plan selection.
type GateOutcome int

const (
	// GateOpenedAuth: no session; the plan was remembered as pending
	// and the auth flow should open. The confirmation flow must not.
	GateOpenedAuth GateOutcome = iota

	// GateInvalidMobile: a session exists but the mobile number is
	// absent or not exactly 10 digits; show a blocking validation
	// message.
	GateInvalidMobile

	// GateOpenedConfirmation: the plan became the active confirmation
	// target.
	GateOpenedConfirmation
)

// RequestCheckout is the single entry point for a plan selection.
func (s *State) RequestCheckout(p client.Plan) GateOutcome {
	if s.Session == nil {
		s.PendingPlan = &p
		return GateOpenedAuth
	}

	if !s.HasValidMobile() {
		return GateInvalidMobile
	}

	s.ActivePlan = &p
	return GateOpenedConfirmation
}
