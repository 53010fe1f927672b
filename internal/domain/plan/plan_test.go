package plan

import (
	"testing"

	"github.com/rechargehub/storefront/pkg/client"
)

func catalog() []client.Plan {
	return []client.Plan{
		{ID: "p1", Operator: "JIO", Category: "POPULAR", Price: 299},
		{ID: "p2", Operator: "jio", Category: "DATA_ONLY", Price: 19},
		{ID: "p3", Operator: "AIRTEL", Category: "POPULAR", Price: 265},
		{ID: "p4", Operator: "BSNL", Category: "ANNUAL", Price: 1999},
		{ID: "p5", Operator: "MVNO-X", Category: "MYSTERY", Price: 9},
	}
}

func TestFilterByOperator(t *testing.T) {
	tests := []struct {
		name    string
		op      Operator
		wantIDs []string
	}{
		{name: "jio matches case-insensitively", op: OperatorJio, wantIDs: []string{"p1", "p2"}},
		{name: "airtel", op: OperatorAirtel, wantIDs: []string{"p3"}},
		{name: "vi has no plans", op: OperatorVi, wantIDs: nil},
		{name: "unknown operator passes through", op: Operator("MVNO-X"), wantIDs: []string{"p5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByOperator(catalog(), tt.op)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d plans, want %d", len(got), len(tt.wantIDs))
			}
			for i, p := range got {
				if p.ID != tt.wantIDs[i] {
					t.Errorf("plan[%d] = %s, want %s", i, p.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestFilterByCategory(t *testing.T) {
	plans := catalog()

	if got := FilterByCategory(plans, CategoryAll); len(got) != len(plans) {
		t.Errorf("ALL returned %d plans, want %d", len(got), len(plans))
	}

	popular := FilterByCategory(plans, CategoryPopular)
	if len(popular) != 2 {
		t.Errorf("POPULAR returned %d plans, want 2", len(popular))
	}

	// Unknown category on a plan must not break filtering, it just never
	// matches a known category.
	if got := FilterByCategory(plans, CategoryTopUp); len(got) != 0 {
		t.Errorf("TOP_UP returned %d plans, want 0", len(got))
	}
}

func TestParseOperator(t *testing.T) {
	if got := ParseOperator(" airtel "); got != OperatorAirtel {
		t.Errorf("ParseOperator = %q, want AIRTEL", got)
	}
	if op := ParseOperator("freedom-mobile"); op.IsValid() {
		t.Errorf("unknown operator reported valid")
	}
	if !OperatorBSNL.IsValid() {
		t.Errorf("BSNL reported invalid")
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryAll.Label(); got != "All Plans" {
		t.Errorf("ALL label = %q", got)
	}
	if got := CategoryDataOnly.Label(); got != "DATA ONLY" {
		t.Errorf("DATA_ONLY label = %q", got)
	}
}
