package storefront

import (
	"testing"

	"github.com/rechargehub/storefront/pkg/client"
)

func TestRequestCheckout_NoSessionOpensAuth(t *testing.T) {
	tests := []struct {
		name   string
		mobile string
	}{
		{name: "valid mobile still opens auth", mobile: "9876543210"},
		{name: "invalid mobile opens auth", mobile: "123"},
		{name: "empty mobile opens auth", mobile: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.SetMobileNumber(tt.mobile)
			p := client.Plan{ID: "p1", Operator: "JIO"}

			got := s.RequestCheckout(p)

			if got != GateOpenedAuth {
				t.Fatalf("outcome = %v, want GateOpenedAuth", got)
			}
			if s.PendingPlan == nil || s.PendingPlan.ID != "p1" {
				t.Errorf("pending plan not captured: %+v", s.PendingPlan)
			}
			if s.ActivePlan != nil {
				t.Errorf("confirmation flow opened without a session")
			}
		})
	}
}

func TestRequestCheckout_InvalidMobileRejected(t *testing.T) {
	for _, mobile := range []string{"", "98765", "98765432101"} {
		s := NewState()
		s.Session = &Session{}
		s.MobileNumber = mobile

		got := s.RequestCheckout(client.Plan{ID: "p1"})

		if got != GateInvalidMobile {
			t.Errorf("mobile %q: outcome = %v, want GateInvalidMobile", mobile, got)
		}
		if s.ActivePlan != nil {
			t.Errorf("mobile %q: confirmation flow opened", mobile)
		}
	}
}

func TestRequestCheckout_OpensConfirmation(t *testing.T) {
	s := NewState()
	s.Session = &Session{}
	s.SetMobileNumber("9876543210")
	p := client.Plan{ID: "p1", Price: 299}

	got := s.RequestCheckout(p)

	if got != GateOpenedConfirmation {
		t.Fatalf("outcome = %v, want GateOpenedConfirmation", got)
	}
	if s.ActivePlan == nil || s.ActivePlan.ID != "p1" {
		t.Errorf("active plan = %+v", s.ActivePlan)
	}
}

func TestSetMobileNumber_StripsAndCaps(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "98-765 432 10", want: "9876543210"},
		{input: "98765432109999", want: "9876543210"},
		{input: "abc", want: ""},
	}
	for _, tt := range tests {
		s := NewState()
		s.SetMobileNumber(tt.input)
		if s.MobileNumber != tt.want {
			t.Errorf("SetMobileNumber(%q) = %q, want %q", tt.input, s.MobileNumber, tt.want)
		}
	}
}

func TestCompleteLogin_ReinstatesPendingPlan(t *testing.T) {
	s := NewState()
	p := client.Plan{ID: "p1", Price: 299}

	if got := s.RequestCheckout(p); got != GateOpenedAuth {
		t.Fatalf("outcome = %v, want GateOpenedAuth", got)
	}

	resumed := s.CompleteLogin(&Session{Token: "tok"})

	if resumed == nil || resumed.ID != "p1" {
		t.Fatalf("resumed plan = %+v, want the pending plan", resumed)
	}
	if s.ActivePlan == nil || s.ActivePlan.ID != "p1" {
		t.Errorf("active plan = %+v, want the exact pending plan", s.ActivePlan)
	}
	if s.PendingPlan != nil {
		t.Errorf("pending plan not cleared")
	}
}

func TestCompleteLogin_WithoutPendingPlan(t *testing.T) {
	s := NewState()
	if resumed := s.CompleteLogin(&Session{Token: "tok"}); resumed != nil {
		t.Errorf("resumed = %+v, want nil", resumed)
	}
	if s.Session == nil {
		t.Errorf("session not installed")
	}
}

func TestLogout_DropsTransientState(t *testing.T) {
	s := NewState()
	s.Session = &Session{}
	s.SetMobileNumber("9876543210")
	s.RequestCheckout(client.Plan{ID: "p1"})

	s.Logout()

	if s.Session != nil || s.ActivePlan != nil || s.PendingPlan != nil {
		t.Errorf("logout left state behind: %+v", s)
	}
}
