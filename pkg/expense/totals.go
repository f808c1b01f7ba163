package expense

import "github.com/shopspring/decimal"

type Totals struct {
	Total        decimal.Decimal
	Paid         decimal.Decimal
	Pending      decimal.Decimal
	Count        int
	PaidCount    int
	PendingCount int
}

// Aggregate sums the given expenses. Callers pass the filtered view so the totals
// describe exactly what is listed.
func Aggregate(expenses []Expense) Totals {
	totals := Totals{Total: decimal.Zero, Paid: decimal.Zero, Pending: decimal.Zero}
	for _, e := range expenses {
		totals.Total = totals.Total.Add(e.Amount)
		totals.Count++
		if e.IsPaid {
			totals.Paid = totals.Paid.Add(e.Amount)
			totals.PaidCount++
		} else {
			totals.Pending = totals.Pending.Add(e.Amount)
			totals.PendingCount++
		}
	}
	return totals
}
