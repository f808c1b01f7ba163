package income

import (
	"strings"
	"time"

	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/validation"
	"github.com/shopspring/decimal"
)

type Income struct {
	Id          int
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Category    string
}

// Tithe is exactly 10% of the amount.
func (i Income) Tithe() decimal.Decimal {
	return money.Tithe(i.Amount)
}

func (i Income) Validate() error {
	var fields validation.Fields
	fields.Require("description", strings.TrimSpace(i.Description) != "")
	fields.Require("amount", money.InRange(i.Amount))
	fields.Require("category", strings.TrimSpace(i.Category) != "")
	fields.Require("date", !i.Date.IsZero())
	return fields.Err()
}

func (i Income) GetId() int { return i.Id }

func (i Income) WithId(id int) Income {
	i.Id = id
	return i
}
