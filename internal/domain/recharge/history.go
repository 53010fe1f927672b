package recharge

import (
	"encoding/json"
	"time"
)

// fallbackText substitutes for any missing display field so rendering
// never fails on partial data.
const fallbackText = "N/A"

// Display is a recharge record normalized for display. Whatever shape
// the backend returned, every field here is populated.
type Display struct {
	ID           string    `json:"id"`
	Operator     string    `json:"operator"`
	MobileNumber string    `json:"mobileNumber"`
	Data         string    `json:"data"`
	Validity     string    `json:"validity"`
	Calls        string    `json:"calls"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	ReferenceID  string    `json:"referenceId"`
	Date         time.Time `json:"date"`
}

// rawRecord covers every record shape deployed backends have produced:
// the plan may arrive embedded under planId or plan (or as a bare id
// string), and amount/operator may be record-level or plan-derived.
type rawRecord struct {
	ID           string          `json:"_id"`
	AltID        string          `json:"id"`
	MobileNumber string          `json:"mobileNumber"`
	Operator     string          `json:"operator"`
	Provider     string          `json:"provider"`
	PlanAmount   *float64        `json:"planAmount"`
	Amount       *float64        `json:"amount"`
	Status       string          `json:"status"`
	ReferenceID  string          `json:"referenceId"`
	CreatedAt    string          `json:"createdAt"`
	Date         string          `json:"date"`
	PlanDetails  *rawPlanDetails `json:"planDetails"`
	PlanID       json.RawMessage `json:"planId"`
	Plan         json.RawMessage `json:"plan"`
}

type rawPlanDetails struct {
	Data     string `json:"data"`
	Validity string `json:"validity"`
	Calls    string `json:"calls"`
}

type rawEmbeddedPlan struct {
	Operator string   `json:"operator"`
	Data     string   `json:"data"`
	Validity string   `json:"validity"`
	Calls    string   `json:"calls"`
	Price    *float64 `json:"price"`
}

// ParseRecord normalizes one raw backend record into a Display.
//
// Fallback rules: explicit record-level fields win over plan-derived
// ones; missing text fields become "N/A", a missing amount becomes 0, a
// missing status becomes SUCCESS, an unparseable date becomes the
// current time. ParseRecord never fails: a record that cannot be decoded
// at all yields a Display made entirely of fallbacks.
func ParseRecord(raw json.RawMessage) Display {
	var rec rawRecord
	_ = json.Unmarshal(raw, &rec)

	embedded := embeddedPlan(rec)

	d := Display{
		ID:           firstNonEmpty(rec.ID, rec.AltID),
		Operator:     firstNonEmpty(rec.Operator, embedded.Operator, rec.Provider, fallbackText),
		MobileNumber: firstNonEmpty(rec.MobileNumber, fallbackText),
		Status:       firstNonEmpty(rec.Status, StatusSuccess),
		ReferenceID:  firstNonEmpty(rec.ReferenceID, rec.ID, fallbackText),
	}

	if rec.PlanDetails != nil {
		d.Data = firstNonEmpty(rec.PlanDetails.Data, fallbackText)
		d.Validity = firstNonEmpty(rec.PlanDetails.Validity, fallbackText)
		d.Calls = firstNonEmpty(rec.PlanDetails.Calls, fallbackText)
	} else {
		d.Data = firstNonEmpty(embedded.Data, fallbackText)
		d.Validity = firstNonEmpty(embedded.Validity, fallbackText)
		d.Calls = firstNonEmpty(embedded.Calls, fallbackText)
	}

	switch {
	case rec.PlanAmount != nil:
		d.Amount = *rec.PlanAmount
	case rec.Amount != nil:
		d.Amount = *rec.Amount
	case embedded.Price != nil:
		d.Amount = *embedded.Price
	}

	d.Date = parseDate(firstNonEmpty(rec.CreatedAt, rec.Date))

	return d
}

// ParseRecords normalizes a list, preserving backend order.
func ParseRecords(raws []json.RawMessage) []Display {
	out := make([]Display, 0, len(raws))
	for _, raw := range raws {
		out = append(out, ParseRecord(raw))
	}
	return out
}

// embeddedPlan extracts a plan object from planId or plan. planId is
// often a bare id string, in which case decoding fails and an empty
// plan is returned.
func embeddedPlan(rec rawRecord) rawEmbeddedPlan {
	for _, raw := range []json.RawMessage{rec.PlanID, rec.Plan} {
		if len(raw) == 0 {
			continue
		}
		var p rawEmbeddedPlan
		if err := json.Unmarshal(raw, &p); err == nil {
			return p
		}
	}
	return rawEmbeddedPlan{}
}

func parseDate(s string) time.Time {
	if s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Now()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
