package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func (m Money) Mul(quantity int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(quantity))),
		Currency: m.Currency,
	}
}

// Round returns the amount rounded to the minor unit of its currency.
func (m Money) Round() decimal.Decimal {
	return m.Amount.Round(m.scale())
}

// Fixed formats the amount with exactly the minor-unit digits of its
// currency, e.g. "10.50" for BRL.
func (m Money) Fixed() string {
	return m.Amount.StringFixed(m.scale())
}

func (m Money) scale() int32 {
	scale, _ := currency.Standard.Rounding(m.Currency)
	return int32(scale)
}
