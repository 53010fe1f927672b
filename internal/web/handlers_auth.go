package web

import (
	"net/http"

	"github.com/rechargehub/storefront/internal/pkg/metrics"
	"github.com/rechargehub/storefront/internal/storefront"
	"github.com/rechargehub/storefront/internal/web/session"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	// The form posts to a mode-specific endpoint; make the flow agree.
	if v.Auth.Mode() != storefront.ModeLogin {
		v.Auth.ToggleMode()
	}

	form := storefront.AuthForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	s.submitAuth(w, r, v, "login", form)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	if v.Auth.Mode() != storefront.ModeSignup {
		v.Auth.ToggleMode()
	}

	form := storefront.AuthForm{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
		Password: r.FormValue("password"),
	}
	s.submitAuth(w, r, v, "signup", form)
}

func (s *Server) submitAuth(w http.ResponseWriter, r *http.Request, v *session.Visitor, mode string, form storefront.AuthForm) {
	v.Landing = false

	sess, err := v.Auth.Submit(r.Context(), form)
	if err != nil {
		// The error message is held by the flow and rendered inline in
		// the reopened modal, with the submitted fields kept so the
		// visitor can correct rather than retype. The password is never
		// echoed back.
		metrics.RecordAuthAttempt(mode, "failure")
		form.Password = ""
		v.AuthValues = form
		v.AuthOpen = true
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	metrics.RecordAuthAttempt(mode, "success")
	v.AuthValues = storefront.AuthForm{}
	v.AuthOpen = false

	if resumed := v.State.CompleteLogin(sess); resumed != nil {
		v.Confirm.Open(*resumed, v.State.MobileNumber, v.State.Operator)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAuthMode(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	v.Auth.ToggleMode()
	v.AuthOpen = true
	v.Landing = false
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	v.State.Logout()
	unlock()

	// Forget the server-side visitor entirely; the next request starts
	// from a clean state with a token-free client.
	s.sessions.Drop(r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
