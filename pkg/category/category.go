package category

import (
	"errors"
	"slices"
	"strings"
)

type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

var ErrUnknownType = errors.New("unknown category type")

func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	}
	return "", ErrUnknownType
}

// Catalog is the externally configured list of category names per record type.
type Catalog struct {
	income  []string
	expense []string
	strict  bool
}

func NewCatalog(income, expense []string, strict bool) *Catalog {
	return &Catalog{
		income:  slices.Clone(income),
		expense: slices.Clone(expense),
		strict:  strict,
	}
}

// Names returns the configured names for t in configuration order.
func (c *Catalog) Names(t Type) []string {
	switch t {
	case Income:
		return slices.Clone(c.income)
	case Expense:
		return slices.Clone(c.expense)
	}
	return []string{}
}

func (c *Catalog) Contains(t Type, name string) bool {
	switch t {
	case Income:
		return slices.Contains(c.income, name)
	case Expense:
		return slices.Contains(c.expense, name)
	}
	return false
}

// Policy returns the category check applied when saving records of type t.
func (c *Catalog) Policy(t Type) Policy {
	return Policy{catalog: c, t: t}
}

// Policy decides whether a category may be saved. Without strict mode every
// non-empty name is allowed.
type Policy struct {
	catalog *Catalog
	t       Type
}

// AllowAll is the policy used when no catalog is configured.
var AllowAll = Policy{}

func (p Policy) Allows(name string) bool {
	if p.catalog == nil || !p.catalog.strict {
		return true
	}
	return p.catalog.Contains(p.t, name)
}
