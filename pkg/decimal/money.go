package decimal

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyCode is the ISO code of the only currency the tracker handles.
const CurrencyCode = "KES"

var (
	hundred = decimal.NewFromInt(100)
	printer = message.NewPrinter(language.English)
)

// Money represents an amount in Kenyan Shillings with decimal precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Shillings rounds to the nearest whole shilling, half away from zero.
func (m Money) Shillings() Money {
	return Money{m.Decimal.Round(0)}
}

// Cents rounds to two decimal places
func (m Money) Cents() Money {
	return Money{m.Decimal.Round(2)}
}

// Grouped renders the amount with thousands separators and the given number of decimals.
func (m Money) Grouped(places int32) string {
	fixed := m.Decimal.Abs().StringFixed(places)
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		// beyond int64; fall back to the ungrouped digits
		return m.Decimal.StringFixed(places)
	}
	out := printer.Sprintf("%d", n)
	if frac != "" {
		out += "." + frac
	}
	if m.Decimal.Round(places).IsNegative() {
		out = "-" + out
	}
	return out
}

// String returns the plain two-decimal representation
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as "KES 1,234.50".
func (m Money) Format() string {
	return CurrencyCode + " " + m.Grouped(2)
}

// Percent expresses part as a percentage of whole. A zero whole yields zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// Min returns the smaller of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// NonNegative clamps d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	return Max(d, decimal.Zero)
}

// Sum adds up a list of amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
