package dashboard

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type ComparisonRenderer interface {
	RenderComparison(comparison []MonthTotals) (string, error)
}

type CsvComparisonRendererImpl struct {
}

func NewCsvComparisonRenderer() *CsvComparisonRendererImpl {
	return &CsvComparisonRendererImpl{}
}

// RenderComparison writes one row per month followed by a total row. Amounts use
// the dot separated wire format so spreadsheets read them as numbers.
func (r *CsvComparisonRendererImpl) RenderComparison(comparison []MonthTotals) (string, error) {
	data := make([][]string, 0, len(comparison)+2)
	data = append(data, []string{"Month", "Income", "Expenses", "Balance", "Expense share %"})

	total := MonthTotals{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, m := range comparison {
		data = append(data, monthRow(m.Month.String(), m))
		total.Income = total.Income.Add(m.Income)
		total.Expenses = total.Expenses.Add(m.Expenses)
	}
	data = append(data, monthRow("Total", total))

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func monthRow(label string, m MonthTotals) []string {
	return []string{
		label,
		money.Fixed(m.Income),
		money.Fixed(m.Expenses),
		money.Fixed(m.Balance()),
		strconv.Itoa(m.ExpenseShare()),
	}
}
