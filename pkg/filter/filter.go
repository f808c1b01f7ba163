// Package filter holds the predicates shared by the income and expense list views.
//
// Every predicate treats an unset criterion as satisfied, so a zero Criteria value
// lets every record through.
package filter

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// AllCategories is the sentinel category value the UI sends for "no category filter".
const AllCategories = "all"

var ErrInvalidMonth = errors.New("invalid month")

// Month identifies a calendar month. The zero value means "no month filter".
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth reads "YYYY-MM". An empty string yields the zero Month.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Month{}, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q must be in YYYY-MM format", ErrInvalidMonth, s)
	}
	return MonthOf(t), nil
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Contains reports whether date falls in m. Day of month and clock time are ignored.
func (m Month) Contains(date time.Time) bool {
	return date.Year() == m.Year && date.Month() == m.Month
}

// AddMonths returns the month n months after m (n may be negative).
func (m Month) AddMonths(n int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return MonthOf(t)
}

// Start returns the first instant of m in loc.
func (m Month) Start(loc *time.Location) time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
}

// String returns the "YYYY-MM" form.
func (m Month) String() string {
	if m.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Criteria are the filters both trackers share.
type Criteria struct {
	Search   string
	Month    Month
	Category string
}

// FromQuery reads the shared criteria from the "search", "month" and "category" query parameters.
func FromQuery(values url.Values) (Criteria, error) {
	month, err := ParseMonth(values.Get("month"))
	if err != nil {
		return Criteria{}, err
	}
	return Criteria{
		Search:   values.Get("search"),
		Month:    month,
		Category: values.Get("category"),
	}, nil
}

// Matches applies all shared criteria. date is the record's relevant date for the month filter.
func (c Criteria) Matches(description, category string, date time.Time) bool {
	return MatchesSearch(c.Search, description, category) &&
		MatchesMonth(c.Month, date) &&
		MatchesCategory(c.Category, category)
}

// MatchesSearch is a case-insensitive substring match of term against any of the fields.
func MatchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func MatchesMonth(month Month, date time.Time) bool {
	if month.IsZero() {
		return true
	}
	return month.Contains(date)
}

func MatchesCategory(filterCategory, category string) bool {
	if filterCategory == "" || filterCategory == AllCategories {
		return true
	}
	return category == filterCategory
}

// Apply returns the records accepted by keep, preserving their relative order.
// The result never aliases records.
func Apply[T any](records []T, keep func(T) bool) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
