package budget

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
)

// Criteria selects budgets from a list. Every field is optional; a zero value never excludes records.
type Criteria struct {
	// SearchTerm matches client name, id or value (any of them).
	SearchTerm string
	// Status keeps only budgets with this status. Empty or StatusAll disables it.
	Status Status
	// Client matches the client name.
	Client string
	// MinValue and MaxValue are inclusive currency bounds ("R$ 1.000,00").
	MinValue string
	MaxValue string
	// PaymentMethod matches the payment terms.
	PaymentMethod string
	// DateFrom and DateTo are inclusive bounds on the issue date.
	DateFrom time.Time
	DateTo   time.Time
}

// IsZero reports whether the criteria select every record.
func (c Criteria) IsZero() bool {
	return c == Criteria{} || c == Criteria{Status: StatusAll}
}

type predicate func(b Budget) bool

// Filter returns the budgets matching every criterion, in their original order. The input slice is
// not modified. A record whose value or issue date cannot be parsed does not match the criterion
// that needs it; malformed bounds in the criteria are ignored.
func Filter(records []Budget, criteria Criteria) []Budget {
	predicates := criteria.predicates()

	result := make([]Budget, 0, len(records))
	for _, record := range records {
		if matchesAll(record, predicates) {
			result = append(result, record)
		}
	}
	return result
}

func matchesAll(b Budget, predicates []predicate) bool {
	for _, p := range predicates {
		if !p(b) {
			return false
		}
	}
	return true
}

func (c Criteria) predicates() []predicate {
	// Casers keep state, so each Filter call folds with its own.
	fold := cases.Fold()
	contains := func(s, term string) bool {
		return strings.Contains(fold.String(s), fold.String(term))
	}

	var predicates []predicate

	if c.SearchTerm != "" {
		predicates = append(predicates, func(b Budget) bool {
			return contains(b.Client.Name, c.SearchTerm) ||
				contains(b.Id, c.SearchTerm) ||
				contains(b.Value, c.SearchTerm)
		})
	}

	if c.Status != "" && c.Status != StatusAll {
		predicates = append(predicates, func(b Budget) bool {
			return b.Status == c.Status
		})
	}

	if c.Client != "" {
		predicates = append(predicates, func(b Budget) bool {
			return contains(b.Client.Name, c.Client)
		})
	}

	if minValue, ok := parseBound(c.MinValue); ok {
		predicates = append(predicates, func(b Budget) bool {
			value, err := ParseCurrency(b.Value)
			return err == nil && value.GreaterThanOrEqual(minValue)
		})
	}

	if maxValue, ok := parseBound(c.MaxValue); ok {
		predicates = append(predicates, func(b Budget) bool {
			value, err := ParseCurrency(b.Value)
			return err == nil && value.LessThanOrEqual(maxValue)
		})
	}

	if c.PaymentMethod != "" {
		predicates = append(predicates, func(b Budget) bool {
			return contains(b.PaymentTerms, c.PaymentMethod)
		})
	}

	if !c.DateFrom.IsZero() {
		from := truncateToDate(c.DateFrom)
		predicates = append(predicates, func(b Budget) bool {
			issued, err := ParseDate(b.IssueDate)
			return err == nil && !issued.Before(from)
		})
	}

	if !c.DateTo.IsZero() {
		to := truncateToDate(c.DateTo)
		predicates = append(predicates, func(b Budget) bool {
			issued, err := ParseDate(b.IssueDate)
			return err == nil && !issued.After(to)
		})
	}

	return predicates
}

func parseBound(bound string) (decimal.Decimal, bool) {
	if strings.TrimSpace(bound) == "" {
		return decimal.Zero, false
	}
	value, err := ParseCurrency(bound)
	if err != nil {
		log.Debugf("ignoring value bound: %v", err)
		return decimal.Zero, false
	}
	return value, true
}
