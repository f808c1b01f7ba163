package expense

import (
	"strings"
	"time"

	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/validation"
	"github.com/shopspring/decimal"
)

type Expense struct {
	Id          int
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	DueDate     time.Time
	Category    string
	IsPaid      bool
	// IsRecurring is informational only, nothing schedules follow-up expenses.
	IsRecurring bool
}

func (e Expense) GetId() int { return e.Id }

func (e Expense) WithId(id int) Expense {
	e.Id = id
	return e
}

// Validate reports every required field that is missing. Id is not checked.
func (e Expense) Validate() error {
	var fields validation.Fields
	fields.Require("description", strings.TrimSpace(e.Description) != "")
	fields.Require("amount", money.InRange(e.Amount))
	fields.Require("category", strings.TrimSpace(e.Category) != "")
	fields.Require("date", !e.Date.IsZero())
	fields.Require("dueDate", !e.DueDate.IsZero())
	return fields.Err()
}

// Classified pairs an expense with its status as of the time it was listed.
type Classified struct {
	Expense
	Status Status
}
