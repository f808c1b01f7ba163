// Package money holds the currency arithmetic shared by incomes, expenses and goals.
//
// Amounts are shopspring decimals so sums of many small values never pick up binary
// floating point error. Parsed amounts carry at most two decimals, rounding happens
// only when an amount is rendered (Format, Fixed) and sums and the tithe stay exact.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places of the BRL currency unit.
const Places = 2

var ErrInvalidAmount = errors.New("invalid amount")

// TitheRate is the fixed 10% share of income reported as tithe.
var TitheRate = decimal.New(1, -1)

// MaxAmount is the smallest amount the stores cannot hold.
var MaxAmount = decimal.New(1, 12)

// InRange reports whether amount fits the stores, zero and negatives excluded.
func InRange(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.LessThan(MaxAmount)
}

// Parse reads a user supplied amount with an optional "R$" prefix and at most two
// decimals. The decimal separator is a dot ("1234.56") or a comma ("1234,56"), and
// with a comma dots may group thousands ("1.234,56"). Anything else, including the
// ambiguous "1.234", is ErrInvalidAmount.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	sign := ""
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		sign, s = "-", rest
	}

	intPart, fracPart, hasFrac := s, "", false
	switch {
	case strings.Contains(s, ","):
		intPart, fracPart, hasFrac = strings.Cut(s, ",")
		if strings.Contains(intPart, ".") {
			if !thousandsGrouped(intPart) {
				return decimal.Zero, ErrInvalidAmount
			}
			intPart = strings.ReplaceAll(intPart, ".", "")
		}
	case strings.Contains(s, "."):
		intPart, fracPart, hasFrac = strings.Cut(s, ".")
	}

	if !digits(intPart) || (hasFrac && !digits(fracPart)) || len(fracPart) > Places {
		return decimal.Zero, ErrInvalidAmount
	}
	number := sign + intPart
	if hasFrac {
		number += "." + fracPart
	}
	d, err := decimal.NewFromString(number)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// thousandsGrouped accepts "1.234" and "12.345.678" but not "1.23" or "1234.567".
func thousandsGrouped(s string) bool {
	groups := strings.Split(s, ".")
	if len(groups[0]) < 1 || len(groups[0]) > 3 {
		return false
	}
	for _, group := range groups[1:] {
		if len(group) != 3 {
			return false
		}
	}
	return true
}

// Tithe returns exactly 10% of amount, without rounding.
func Tithe(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(TitheRate)
}

// Fixed renders amount with exactly two decimals and a dot separator, the wire format.
func Fixed(amount decimal.Decimal) string {
	return amount.StringFixed(Places)
}

// Format renders amount the way the pt-BR locale shows BRL values, e.g. "R$ 1.234,56".
func Format(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	fixed := amount.Abs().StringFixed(Places)

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + fracPart
	if neg {
		return "-" + out
	}
	return out
}
