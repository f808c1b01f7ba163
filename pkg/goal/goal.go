package goal

import (
	"strings"
	"time"

	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/validation"
	"github.com/shopspring/decimal"
)

// Goal is a savings target shown as a progress bar.
type Goal struct {
	Id            int
	Title         string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	// Deadline is optional, the zero time means none.
	Deadline time.Time
}

func (g Goal) GetId() int { return g.Id }

func (g Goal) WithId(id int) Goal {
	g.Id = id
	return g
}

var hundred = decimal.NewFromInt(100)

// Progress is CurrentAmount as a whole percentage of TargetAmount, clamped to 0..100.
func (g Goal) Progress() int {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	percent := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred).Round(0)
	switch {
	case percent.LessThan(decimal.Zero):
		return 0
	case percent.GreaterThan(hundred):
		return 100
	}
	return int(percent.IntPart())
}

// Remaining is what is still missing to reach the target, never negative.
func (g Goal) Remaining() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

func (g Goal) Validate() error {
	var fields validation.Fields
	fields.Require("title", strings.TrimSpace(g.Title) != "")
	fields.Require("targetAmount", money.InRange(g.TargetAmount))
	fields.Require("currentAmount", !g.CurrentAmount.IsNegative() && g.CurrentAmount.LessThan(money.MaxAmount))
	return fields.Err()
}
