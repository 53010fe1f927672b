package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rechargehub/storefront/internal/domain/plan"
	"github.com/rechargehub/storefront/internal/web/session"
	"github.com/rechargehub/storefront/pkg/client"
)

// requireAdmin checks the session's admin flag. On failure it redirects
// home and reports false; the caller returns immediately.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request, v *session.Visitor) bool {
	sess := v.State.Session
	if sess == nil || !sess.User.IsAdmin {
		v.Flash = "Admin access required."
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return false
	}
	return true
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	if !s.requireAdmin(w, r, v) {
		return
	}

	view := adminView{
		pageData:   basePage("Admin", v),
		Operators:  plan.Operators(),
		Categories: planCategories(),
	}

	plans, err := v.Client.Plans().List(r.Context())
	if err != nil {
		s.log.WithError(err).Error("admin plan list failed")
		view.LoadError = "Could not load plans. Please try again."
	} else {
		view.Plans = plans
	}

	s.render(w, "admin.html", view)
}

func (s *Server) handleAdminCreate(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	if !s.requireAdmin(w, r, v) {
		return
	}

	req, err := parsePlanForm(r)
	if err != nil {
		v.Flash = err.Error()
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if _, err := v.Client.Plans().Create(r.Context(), req); err != nil {
		s.log.WithError(err).Error("plan create failed")
		v.Flash = upstreamMessage(err, "Could not create the plan.")
	} else {
		v.Flash = "Plan created."
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleAdminUpdate(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	if !s.requireAdmin(w, r, v) {
		return
	}

	id := chi.URLParam(r, "id")
	req, err := parsePlanUpdateForm(r)
	if err != nil {
		v.Flash = err.Error()
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if _, err := v.Client.Plans().Update(r.Context(), id, req); err != nil {
		s.log.WithError(err).Error("plan update failed")
		v.Flash = upstreamMessage(err, "Could not update the plan.")
	} else {
		v.Flash = "Plan updated."
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	if !s.requireAdmin(w, r, v) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := v.Client.Plans().Delete(r.Context(), id); err != nil {
		s.log.WithError(err).Error("plan delete failed")
		v.Flash = upstreamMessage(err, "Could not delete the plan.")
	} else {
		v.Flash = "Plan deleted."
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// parsePlanForm validates and converts the create-plan form.
func parsePlanForm(r *http.Request) (client.CreatePlanRequest, error) {
	var req client.CreatePlanRequest

	op := plan.ParseOperator(r.FormValue("operator"))
	if !op.IsValid() {
		return req, errors.New("Please choose a valid operator.")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("price")), 64)
	if err != nil || price <= 0 {
		return req, errors.New("Please enter a valid price.")
	}

	category := plan.Category(r.FormValue("category"))

	req = client.CreatePlanRequest{
		Operator:    string(op),
		Price:       price,
		Validity:    strings.TrimSpace(r.FormValue("validity")),
		Data:        strings.TrimSpace(r.FormValue("data")),
		Calls:       strings.TrimSpace(r.FormValue("calls")),
		SMS:         strings.TrimSpace(r.FormValue("sms")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Category:    string(category),
		OTTBenefits: splitBenefits(r.FormValue("ott")),
	}

	if req.Validity == "" || req.Data == "" {
		return req, errors.New("Please fill in validity and data.")
	}
	return req, nil
}

// parsePlanUpdateForm builds a partial update from the non-empty form
// fields.
func parsePlanUpdateForm(r *http.Request) (client.UpdatePlanRequest, error) {
	var req client.UpdatePlanRequest

	if raw := strings.TrimSpace(r.FormValue("operator")); raw != "" {
		op := plan.ParseOperator(raw)
		if !op.IsValid() {
			return req, errors.New("Please choose a valid operator.")
		}
		operator := string(op)
		req.Operator = &operator
	}
	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price <= 0 {
			return req, errors.New("Please enter a valid price.")
		}
		req.Price = &price
	}
	if raw := strings.TrimSpace(r.FormValue("validity")); raw != "" {
		req.Validity = &raw
	}
	if raw := strings.TrimSpace(r.FormValue("data")); raw != "" {
		req.Data = &raw
	}
	if raw := strings.TrimSpace(r.FormValue("calls")); raw != "" {
		req.Calls = &raw
	}
	if raw := strings.TrimSpace(r.FormValue("sms")); raw != "" {
		req.SMS = &raw
	}
	if raw := strings.TrimSpace(r.FormValue("description")); raw != "" {
		req.Description = &raw
	}
	if raw := r.FormValue("category"); raw != "" {
		req.Category = &raw
	}
	if benefits := splitBenefits(r.FormValue("ott")); benefits != nil {
		req.OTTBenefits = benefits
	}

	return req, nil
}

func splitBenefits(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// upstreamMessage prefers the backend's own error text when it sent
// one.
func upstreamMessage(err error, fallback string) string {
	var reqErr *client.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}
