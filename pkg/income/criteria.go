package income

import (
	"net/url"

	"github.com/finboard/finboard/pkg/filter"
)

// Criteria are the shared filters with the month matched against the income date.
type Criteria struct {
	filter.Criteria
}

func CriteriaFromQuery(values url.Values) (Criteria, error) {
	shared, err := filter.FromQuery(values)
	if err != nil {
		return Criteria{}, err
	}
	return Criteria{Criteria: shared}, nil
}

func (c Criteria) Matches(i Income) bool {
	return c.Criteria.Matches(i.Description, i.Category, i.Date)
}

func Filter(incomes []Income, c Criteria) []Income {
	return filter.Apply(incomes, c.Matches)
}
