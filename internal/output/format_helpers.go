package output

import (
	"strconv"

	money "github.com/pfet/finance-core/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as KES with thousands separators and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatDays renders a signed day countdown, "-" when there is none.
func FormatDays(days *int) string {
	if days == nil {
		return "-"
	}
	switch {
	case *days < 0:
		return strconv.Itoa(-*days) + " days overdue"
	case *days == 1:
		return "1 day"
	}
	return strconv.Itoa(*days) + " days"
}

func formatOptionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
