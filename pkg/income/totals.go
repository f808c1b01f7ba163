package income

import (
	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
)

type Totals struct {
	TotalIncome decimal.Decimal
	TotalTithe  decimal.Decimal
	Count       int
}

func Aggregate(incomes []Income) Totals {
	total := decimal.Zero
	for _, i := range incomes {
		total = total.Add(i.Amount)
	}
	return Totals{
		TotalIncome: total,
		TotalTithe:  money.Tithe(total),
		Count:       len(incomes),
	}
}
