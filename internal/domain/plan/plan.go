package plan

import (
	"strings"

	"github.com/rechargehub/storefront/pkg/client"
)

// Operator is a mobile network provider. The set is closed, but values
// coming off the wire are kept as-is: an unrecognized operator must flow
// through filtering and display without breaking anything.
type Operator string

const (
	OperatorJio    Operator = "JIO"
	OperatorAirtel Operator = "AIRTEL"
	OperatorVi     Operator = "VI"
	OperatorBSNL   Operator = "BSNL"
)

// Operators returns all supported operators in display order.
func Operators() []Operator {
	return []Operator{OperatorJio, OperatorAirtel, OperatorVi, OperatorBSNL}
}

// ParseOperator normalizes a raw operator string. Unknown values are
// uppercased and returned unchanged rather than rejected.
func ParseOperator(s string) Operator {
	return Operator(strings.ToUpper(strings.TrimSpace(s)))
}

// IsValid reports whether the operator is one of the supported set.
func (o Operator) IsValid() bool {
	switch o {
	case OperatorJio, OperatorAirtel, OperatorVi, OperatorBSNL:
		return true
	}
	return false
}

// Category is a plan category. CategoryAll is a filter sentinel, not a
// value plans carry.
type Category string

const (
	CategoryAll      Category = "ALL"
	CategoryPopular  Category = "POPULAR"
	CategoryDataOnly Category = "DATA_ONLY"
	CategoryAnnual   Category = "ANNUAL"
	CategoryTopUp    Category = "TOP_UP"
)

// Categories returns the filter categories in display order, starting
// with the ALL sentinel.
func Categories() []Category {
	return []Category{CategoryAll, CategoryPopular, CategoryDataOnly, CategoryAnnual, CategoryTopUp}
}

// Label returns the human-readable form ("DATA_ONLY" -> "DATA ONLY",
// "ALL" -> "All Plans").
func (c Category) Label() string {
	if c == CategoryAll {
		return "All Plans"
	}
	return strings.ReplaceAll(string(c), "_", " ")
}

// FilterByOperator returns the plans belonging to the given operator.
func FilterByOperator(plans []client.Plan, op Operator) []client.Plan {
	var out []client.Plan
	for _, p := range plans {
		if ParseOperator(p.Operator) == op {
			out = append(out, p)
		}
	}
	return out
}

// FilterByCategory returns the plans in the given category. CategoryAll
// matches everything; plans with unknown categories simply match nothing
// but ALL.
func FilterByCategory(plans []client.Plan, cat Category) []client.Plan {
	if cat == CategoryAll {
		return plans
	}
	var out []client.Plan
	for _, p := range plans {
		if Category(p.Category) == cat {
			out = append(out, p)
		}
	}
	return out
}
