package storefront

import (
	"context"

	"github.com/rechargehub/storefront/internal/domain/recharge"
	"github.com/rechargehub/storefront/internal/pkg/logger"
)

// History loads and normalizes a visitor's past recharge records.
type History struct {
	backend Backend
	log     *logger.Logger
}

// NewHistory creates a history loader.
func NewHistory(backend Backend, log *logger.Logger) *History {
	return &History{backend: backend, log: log}
}

// Load fetches the session user's records and normalizes each one.
// Without a session it returns an empty result and makes no request.
// Records keep whatever order the backend returned.
func (h *History) Load(ctx context.Context, sess *Session) ([]recharge.Display, error) {
	if sess == nil {
		return nil, nil
	}

	raws, err := h.backend.ListUserRecharges(ctx, sess.User.ID)
	if err != nil {
		h.log.WithError(err).Error("failed to fetch recharge history")
		return nil, err
	}

	return recharge.ParseRecords(raws), nil
}
