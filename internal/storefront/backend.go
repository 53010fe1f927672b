package storefront

import (
	"context"
	"encoding/json"

	"github.com/rechargehub/storefront/pkg/client"
)

// Backend is the slice of the API client the storefront flows depend
// on. *client.Client satisfies it; tests use an in-memory fake.
type Backend interface {
	CreateUser(ctx context.Context, req client.CreateUserRequest) (*client.User, error)
	Login(ctx context.Context, email, password string) (*client.LoginResponse, error)
	ListUsers(ctx context.Context) ([]client.User, error)
	CreateRecharge(ctx context.Context, req client.CreateRechargeRequest) (*client.Recharge, error)
	ListUserRecharges(ctx context.Context, userID string) ([]json.RawMessage, error)
}

// TokenStore persists the bearer token after a successful login or
// signup. The CLI writes it to its config file, the web surface to the
// visitor's server-side session. The stored token is never read back to
// restore a session; that gap is part of the current product design.
type TokenStore interface {
	SaveToken(token string)
}

// NopTokenStore discards tokens.
type NopTokenStore struct{}

// SaveToken implements TokenStore.
func (NopTokenStore) SaveToken(string) {}
