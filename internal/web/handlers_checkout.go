package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rechargehub/storefront/internal/pkg/metrics"
	"github.com/rechargehub/storefront/internal/storefront"
	"github.com/rechargehub/storefront/pkg/client"
)

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	v.Landing = false
	if m := r.FormValue("mobile"); m != "" {
		v.State.SetMobileNumber(m)
	}

	planID := r.FormValue("plan_id")
	plans, err := v.Client.Plans().List(r.Context())
	if err != nil {
		s.log.WithError(err).Error("plan lookup for checkout failed")
		v.Flash = "Could not load plans. Please try again."
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var target *client.Plan
	for i := range plans {
		if plans[i].ID == planID {
			target = &plans[i]
			break
		}
	}
	if target == nil {
		v.Flash = "That plan is no longer available."
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	switch v.State.RequestCheckout(*target) {
	case storefront.GateOpenedAuth:
		metrics.RecordGateOutcome("auth_required")
		v.AuthOpen = true
	case storefront.GateInvalidMobile:
		metrics.RecordGateOutcome("invalid_mobile")
		v.Flash = "Please enter a valid 10-digit mobile number"
	case storefront.GateOpenedConfirmation:
		metrics.RecordGateOutcome("opened")
		v.Confirm.Open(*target, v.State.MobileNumber, v.State.Operator)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePay(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	if err := v.Confirm.Pay(r.Context(), v.State.Session); err != nil {
		if !errors.Is(err, storefront.ErrNotConfirming) {
			metrics.RecordRecharge("failure")
			v.Flash = "Recharge failed. Please try again."
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	metrics.RecordRecharge("success")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCheckoutClose(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	v.State.CloseConfirmation()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// checkoutStatus is the poll response for the processing screen.
type checkoutStatus struct {
	Step        string `json:"step"`
	ReferenceID string `json:"referenceId,omitempty"`
	RemainingMs int64  `json:"remainingMs"`
}

func (s *Server) handleCheckoutStatus(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	resp := checkoutStatus{Step: "IDLE"}
	if v.State.ActivePlan != nil {
		resp.Step = string(v.Confirm.Step())
		resp.ReferenceID = v.Confirm.ReferenceID()
		resp.RemainingMs = v.Confirm.Remaining().Milliseconds()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.WithError(err).Error("status encode failed")
	}
}
