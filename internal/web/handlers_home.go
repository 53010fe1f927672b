package web

import (
	"net/http"

	"github.com/rechargehub/storefront/internal/domain/plan"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	q := r.URL.Query()
	if q.Get("start") != "" {
		v.Landing = false
	}

	switch q.Get("auth") {
	case "open":
		v.AuthOpen = true
		v.Landing = false
	case "close":
		v.AuthOpen = false
	}

	// First-time visitors see the welcome screen until they pick "Get
	// started" or sign in; everyone else goes straight to the catalog.
	if v.Landing && v.State.Session == nil {
		s.render(w, "landing.html", landingView{pageData: basePage("RechargeHub", v)})
		return
	}

	if raw := q.Get("operator"); raw != "" {
		if op := plan.ParseOperator(raw); op.IsValid() {
			v.State.SelectOperator(op)
		}
	}

	category := plan.CategoryAll
	if raw := q.Get("category"); raw != "" {
		category = plan.Category(raw)
	}

	view := homeView{
		pageData:   basePage("Recharge plans", v),
		Operator:   v.State.Operator,
		Operators:  plan.Operators(),
		Category:   string(category),
		Categories: categoryTabs(),
		Mobile:     v.State.MobileNumber,
		AuthOpen:   v.AuthOpen && v.State.Session == nil,
		AuthMode:   string(v.Auth.Mode()),
		AuthError:  v.Auth.Error(),
		AuthValues: v.AuthValues,
	}

	plans, err := v.Client.Plans().List(r.Context())
	if err != nil {
		s.log.WithError(err).Error("plan catalog fetch failed")
		view.LoadError = "Could not load plans. Please try again."
	} else {
		filtered := plan.FilterByOperator(plans, v.State.Operator)
		view.Plans = plan.FilterByCategory(filtered, category)
	}

	if v.State.ActivePlan != nil {
		view.Checkout = &checkoutView{
			Step:        string(v.Confirm.Step()),
			Plan:        v.Confirm.Plan(),
			Mobile:      v.State.MobileNumber,
			ReferenceID: v.Confirm.ReferenceID(),
		}
	}

	s.render(w, "home.html", view)
}

func (s *Server) handleSelectOperator(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	v.Landing = false
	if op := plan.ParseOperator(r.FormValue("operator")); op.IsValid() {
		v.State.SelectOperator(op)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSetMobile(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	v.Landing = false
	v.State.SetMobileNumber(r.FormValue("mobile"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
