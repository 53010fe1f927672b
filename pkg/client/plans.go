package client

import (
	"context"
)

// PlanService handles plan catalog API calls.
type PlanService struct {
	client *Client
}

// Plan represents a recharge plan as the backend returns it.
type Plan struct {
	ID          string   `json:"_id"`
	Operator    string   `json:"operator"`
	Price       float64  `json:"price"`
	Validity    string   `json:"validity"`
	Data        string   `json:"data"`
	Calls       string   `json:"calls"`
	SMS         string   `json:"sms,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	OTTBenefits []string `json:"ottBenefits,omitempty"`
}

// CreatePlanRequest is the payload for creating a plan.
type CreatePlanRequest struct {
	Operator    string   `json:"operator"`
	Price       float64  `json:"price"`
	Validity    string   `json:"validity"`
	Data        string   `json:"data"`
	Calls       string   `json:"calls,omitempty"`
	SMS         string   `json:"sms,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	OTTBenefits []string `json:"ottBenefits,omitempty"`
}

// UpdatePlanRequest is the payload for a partial plan update. Nil fields
// are omitted so the backend keeps their current values.
type UpdatePlanRequest struct {
	Operator    *string  `json:"operator,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Validity    *string  `json:"validity,omitempty"`
	Data        *string  `json:"data,omitempty"`
	Calls       *string  `json:"calls,omitempty"`
	SMS         *string  `json:"sms,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	OTTBenefits []string `json:"ottBenefits,omitempty"`
}

// List retrieves all plans across operators. Filtering by operator and
// category is done client-side.
func (s *PlanService) List(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := s.client.doRequest(ctx, "GET", "/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Create adds a new plan to the catalog.
func (s *PlanService) Create(ctx context.Context, req CreatePlanRequest) (*Plan, error) {
	var plan Plan
	if err := s.client.doRequest(ctx, "POST", "/plans", req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Update applies a partial update to an existing plan.
func (s *PlanService) Update(ctx context.Context, id string, req UpdatePlanRequest) (*Plan, error) {
	var plan Plan
	if err := s.client.doRequest(ctx, "PUT", "/plans/"+id, req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Delete removes a plan from the catalog.
func (s *PlanService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, "DELETE", "/plans/"+id, nil, nil)
}
