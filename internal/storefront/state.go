package storefront

import (
	"github.com/rechargehub/storefront/internal/domain/plan"
	"github.com/rechargehub/storefront/internal/domain/user"
	"github.com/rechargehub/storefront/internal/pkg/validator"
	"github.com/rechargehub/storefront/pkg/client"
)

// Session is the in-memory representation of the authenticated user. It
// lives exactly as long as its owning State; nothing restores it across
// a restart.
type Session struct {
	User  user.User
	Token string
}

// State is one visitor's storefront state: selected operator, mobile
// number, session, and the transient plan selections. It is owned by
// the orchestrating surface (web session or CLI invocation) and mutated
// only through its methods.
type State struct {
	Operator     plan.Operator
	MobileNumber string
	Session      *Session

	// PendingPlan is the plan a visitor tried to buy before
	// authenticating; it survives the auth detour so checkout resumes
	// after login.
	PendingPlan *client.Plan

	// ActivePlan is the current payment-confirmation target. Non-nil
	// only while the confirmation flow is open.
	ActivePlan *client.Plan
}

// NewState returns a State with the default operator selected.
func NewState() *State {
	return &State{Operator: plan.OperatorJio}
}

// SelectOperator switches the browsing operator.
func (s *State) SelectOperator(op plan.Operator) {
	s.Operator = op
}

// SetMobileNumber stores a mobile-number input, stripping non-digit
// characters and capping at 10 digits the way the input mask does.
func (s *State) SetMobileNumber(raw string) {
	digits := validator.StripNonDigits(raw)
	if len(digits) > 10 {
		digits = digits[:10]
	}
	s.MobileNumber = digits
}

// HasValidMobile reports whether the stored mobile number is exactly 10
// digits.
func (s *State) HasValidMobile() bool {
	return validator.IsValidMobile(s.MobileNumber)
}

// CompleteLogin installs the session and, if a plan was pending from a
// forced login, reinstates it as the active checkout target. Returns
// the reinstated plan, or nil when the visitor should land back where
// they were.
func (s *State) CompleteLogin(sess *Session) *client.Plan {
	s.Session = sess
	if s.PendingPlan != nil {
		s.ActivePlan = s.PendingPlan
		s.PendingPlan = nil
		return s.ActivePlan
	}
	return nil
}

// Logout drops the session and every transient selection tied to it.
func (s *State) Logout() {
	s.Session = nil
	s.PendingPlan = nil
	s.ActivePlan = nil
}

// CloseConfirmation discards the active checkout target.
func (s *State) CloseConfirmation() {
	s.ActivePlan = nil
}
