package coinledger

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a decimal amount tagged with the main currency, for display.
// Calculations stay in decimal.Decimal; Money only exists at the rendering
// boundary.
type Money struct {
	value decimal.Decimal
	cur   string
}

func NewMoney(value decimal.Decimal, currency Asset) Money {
	return Money{value: value, cur: string(currency)}
}

func (m Money) Amount() decimal.Decimal { return m.value }
func (m Money) Currency() string        { return m.cur }
func (m Money) IsZero() bool            { return m.value.IsZero() }

// String formats the amount with the currency's symbol and fraction digits
// when go-money knows the currency. Crypto identifiers fall back to the raw
// decimal with the identifier appended.
func (m Money) String() string {
	cur := money.GetCurrency(m.cur)
	if cur == nil {
		return m.value.String() + " " + m.cur
	}
	minor := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// SignedString is String with an explicit plus sign for positive values and
// a dash for zero, for gain/loss columns.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
