package user

import (
	"strings"

	"github.com/rechargehub/storefront/pkg/client"
)

// User is the client-side projection of a user: what the storefront
// holds for the session duration. It never carries a password.
type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

// FromClient builds the projection from a backend user record.
func FromClient(u client.User) User {
	return User{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		IsAdmin: u.IsAdmin,
	}
}

// EmailsEqual compares two email addresses case-insensitively.
func EmailsEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// IsAdminEmail reports whether email is the designated admin address.
func IsAdminEmail(email, adminEmail string) bool {
	return adminEmail != "" && EmailsEqual(email, adminEmail)
}
