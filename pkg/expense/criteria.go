package expense

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/finboard/finboard/pkg/filter"
)

// PaidFilter narrows a listing by payment state.
type PaidFilter string

const (
	PaidFilterAll     PaidFilter = "all"
	PaidFilterPaid    PaidFilter = "paid"
	PaidFilterPending PaidFilter = "pending"
)

var ErrInvalidPaidFilter = errors.New("invalid status filter")

// ParsePaidFilter reads "all", "paid" or "pending". Empty means all.
func ParsePaidFilter(s string) (PaidFilter, error) {
	switch PaidFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", PaidFilterAll:
		return PaidFilterAll, nil
	case PaidFilterPaid:
		return PaidFilterPaid, nil
	case PaidFilterPending:
		return PaidFilterPending, nil
	}
	return "", fmt.Errorf("%w: %q must be one of all, paid, pending", ErrInvalidPaidFilter, s)
}

func (f PaidFilter) matches(isPaid bool) bool {
	switch f {
	case PaidFilterPaid:
		return isPaid
	case PaidFilterPending:
		return !isPaid
	}
	return true
}

// Criteria extends the shared criteria with the payment state. The month criterion
// is matched against the due date.
type Criteria struct {
	filter.Criteria
	Status PaidFilter
}

func CriteriaFromQuery(values url.Values) (Criteria, error) {
	shared, err := filter.FromQuery(values)
	if err != nil {
		return Criteria{}, err
	}
	status, err := ParsePaidFilter(values.Get("status"))
	if err != nil {
		return Criteria{}, err
	}
	return Criteria{Criteria: shared, Status: status}, nil
}

func (c Criteria) Matches(e Expense) bool {
	return c.Criteria.Matches(e.Description, e.Category, e.DueDate) && c.Status.matches(e.IsPaid)
}

// Filter keeps the expenses matching every active criterion, in their original order.
func Filter(expenses []Expense, c Criteria) []Expense {
	return filter.Apply(expenses, c.Matches)
}
