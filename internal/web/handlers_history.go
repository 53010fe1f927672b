package web

import (
	"net/http"

	"github.com/rechargehub/storefront/internal/storefront"
)

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	v, unlock, err := s.visitor(w, r)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer unlock()

	view := historyView{pageData: basePage("History", v)}

	records, err := storefront.NewHistory(v.Client, s.log).Load(r.Context(), v.State.Session)
	if err != nil {
		view.LoadError = "Could not load your recharge history. Please try again."
	} else {
		view.Records = records
	}

	s.render(w, "history.html", view)
}
