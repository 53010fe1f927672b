package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rechargehub/storefront/pkg/client"
)

// MockBackend is an in-memory stand-in for the recharge backend. Error
// fields, when set, are returned by the corresponding operation so
// tests can force individual failures.
type MockBackend struct {
	UsersList []client.User
	Plans     []client.Plan
	Raw       []json.RawMessage // canned ListUserRecharges response

	CreateUserErr     error
	LoginErr          error
	ListUsersErr      error
	CreateRechargeErr error
	ListRechargesErr  error

	// Recorded calls
	CreatedUsers     []client.CreateUserRequest
	CreatedRecharges []client.CreateRechargeRequest
	ListUsersCalls   int
	ListRechargeIDs  []string

	nextID int
}

// NewMockBackend creates an empty mock backend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

func (m *MockBackend) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

// CreateUser registers the user in memory.
func (m *MockBackend) CreateUser(_ context.Context, req client.CreateUserRequest) (*client.User, error) {
	m.CreatedUsers = append(m.CreatedUsers, req)
	if m.CreateUserErr != nil {
		return nil, m.CreateUserErr
	}
	u := client.User{
		ID:      m.id("user"),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		IsAdmin: req.IsAdmin,
	}
	m.UsersList = append(m.UsersList, u)
	return &u, nil
}

// Login succeeds for any registered email, returning a fixed token.
func (m *MockBackend) Login(_ context.Context, email, _ string) (*client.LoginResponse, error) {
	if m.LoginErr != nil {
		return nil, m.LoginErr
	}
	for i := range m.UsersList {
		if m.UsersList[i].Email == email {
			return &client.LoginResponse{Token: "test-token", User: &m.UsersList[i]}, nil
		}
	}
	return nil, &client.RequestError{StatusCode: 401, Message: "invalid credentials"}
}

// ListUsers returns the registered users.
func (m *MockBackend) ListUsers(_ context.Context) ([]client.User, error) {
	m.ListUsersCalls++
	if m.ListUsersErr != nil {
		return nil, m.ListUsersErr
	}
	return m.UsersList, nil
}

// CreateRecharge records the request and echoes it back.
func (m *MockBackend) CreateRecharge(_ context.Context, req client.CreateRechargeRequest) (*client.Recharge, error) {
	if m.CreateRechargeErr != nil {
		return nil, m.CreateRechargeErr
	}
	m.CreatedRecharges = append(m.CreatedRecharges, req)
	return &client.Recharge{
		ID:           m.id("recharge"),
		UserID:       req.UserID,
		MobileNumber: req.MobileNumber,
		Operator:     req.Operator,
		PlanAmount:   req.PlanAmount,
		Status:       req.Status,
		ReferenceID:  req.ReferenceID,
		PlanDetails:  req.PlanDetails,
	}, nil
}

// ListUserRecharges returns the canned raw records.
func (m *MockBackend) ListUserRecharges(_ context.Context, userID string) ([]json.RawMessage, error) {
	m.ListRechargeIDs = append(m.ListRechargeIDs, userID)
	if m.ListRechargesErr != nil {
		return nil, m.ListRechargesErr
	}
	return m.Raw, nil
}

// ErrBackendDown is a generic transport failure for tests.
var ErrBackendDown = &client.NetworkError{Op: "GET /", Err: errors.New("connection refused")}
