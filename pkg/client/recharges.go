package client

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

// PlanSnapshot captures the purchased plan's headline details at checkout
// time. It is stored with the recharge record so history display stays
// stable even if the live plan later changes.
type PlanSnapshot struct {
	Data     string `json:"data"`
	Validity string `json:"validity"`
	Calls    string `json:"calls"`
}

// CreateRechargeRequest is the payload persisted for a completed checkout.
type CreateRechargeRequest struct {
	UserID       string       `json:"userId"`
	UserEmail    string       `json:"userEmail,omitempty"`
	PlanID       string       `json:"planId,omitempty"`
	MobileNumber string       `json:"mobileNumber"`
	Operator     string       `json:"operator"`
	PlanAmount   float64      `json:"planAmount"`
	Status       string       `json:"status"`
	ReferenceID  string       `json:"referenceId"`
	PlanDetails  PlanSnapshot `json:"planDetails"`
}

// Recharge represents a created recharge record.
type Recharge struct {
	ID           string       `json:"_id"`
	UserID       string       `json:"userId"`
	MobileNumber string       `json:"mobileNumber"`
	Operator     string       `json:"operator"`
	PlanAmount   float64      `json:"planAmount"`
	Status       string       `json:"status"`
	ReferenceID  string       `json:"referenceId"`
	PlanDetails  PlanSnapshot `json:"planDetails"`
	CreatedAt    time.Time    `json:"createdAt,omitempty"`
}

// CreateRecharge persists a recharge record.
func (c *Client) CreateRecharge(ctx context.Context, req CreateRechargeRequest) (*Recharge, error) {
	var rec Recharge
	if err := c.doRequest(ctx, "POST", "/recharges", req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListUserRecharges retrieves all recharge records for a user. Records
// are returned raw: deployed backends disagree on whether the plan is
// embedded or flattened, so normalization is the caller's concern.
func (c *Client) ListUserRecharges(ctx context.Context, userID string) ([]json.RawMessage, error) {
	path := "/recharges?userId=" + url.QueryEscape(userID)

	var records []json.RawMessage
	if err := c.doRequest(ctx, "GET", path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}
