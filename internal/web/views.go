package web

import (
	"net/http"

	"github.com/rechargehub/storefront/internal/domain/plan"
	"github.com/rechargehub/storefront/internal/domain/recharge"
	"github.com/rechargehub/storefront/internal/domain/user"
	"github.com/rechargehub/storefront/internal/storefront"
	"github.com/rechargehub/storefront/internal/web/session"
	"github.com/rechargehub/storefront/internal/web/templates"
	"github.com/rechargehub/storefront/pkg/client"
)

// pageData is the part every page template shares.
type pageData struct {
	Title string
	User  *user.User
	Flash string
}

// checkoutView feeds the payment modal.
type checkoutView struct {
	Step        string
	Plan        client.Plan
	Mobile      string
	ReferenceID string
}

type categoryTab struct {
	Value string
	Label string
}

// landingView feeds the welcome screen shown before the catalog.
type landingView struct {
	pageData
}

type homeView struct {
	pageData
	Operator   plan.Operator
	Operators  []plan.Operator
	Category   string
	Categories []categoryTab
	Mobile     string
	Plans      []client.Plan
	LoadError  string

	AuthOpen   bool
	AuthMode   string
	AuthError  string
	AuthValues storefront.AuthForm

	Checkout *checkoutView
}

type historyView struct {
	pageData
	Records   []recharge.Display
	LoadError string
}

type adminView struct {
	pageData
	Operators  []plan.Operator
	Categories []plan.Category
	Plans      []client.Plan
	LoadError  string
}

// basePage builds the shared header data from the visitor.
func basePage(title string, v *session.Visitor) pageData {
	p := pageData{Title: title, Flash: v.TakeFlash()}
	if sess := v.State.Session; sess != nil {
		u := sess.User
		p.User = &u
	}
	return p
}

func categoryTabs() []categoryTab {
	cats := plan.Categories()
	tabs := make([]categoryTab, 0, len(cats))
	for _, c := range cats {
		tabs = append(tabs, categoryTab{Value: string(c), Label: c.Label()})
	}
	return tabs
}

// planCategories returns the categories a plan can belong to, i.e.
// everything except the ALL filter sentinel.
func planCategories() []plan.Category {
	var out []plan.Category
	for _, c := range plan.Categories() {
		if c != plan.CategoryAll {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Render(w, name, data); err != nil {
		s.log.WithError(err).Error("template render failed")
	}
}
