package calculation

import (
	"github.com/pfet/finance-core/internal/domain"
	money "github.com/pfet/finance-core/pkg/decimal"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// BandSlice is the result of splitting an amount across progressive bands.
// TotalTax is unrounded; rounding happens once, at the result boundary.
type BandSlice struct {
	TotalTax decimal.Decimal
	PerBand  []domain.BandTax
}

// SliceProgressive splits amount across bands in ascending order and taxes
// each slice at its band's rate. amount must be >= 0 and bands must satisfy
// ValidateBands; neither is checked here.
func SliceProgressive(bands []domain.TaxBand, amount decimal.Decimal) BandSlice {
	remaining := amount
	slice := BandSlice{TotalTax: decimal.Zero}

	for _, band := range bands {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		width := remaining
		if !band.Unbounded() {
			width = band.Max.Sub(band.Min).Add(one)
		}
		taxable := decimal.Min(remaining, width)
		tax := taxable.Mul(band.Rate)

		if taxable.GreaterThan(decimal.Zero) {
			slice.PerBand = append(slice.PerBand, domain.BandTax{
				Band:          BandLabel(band),
				TaxableAmount: taxable,
				Rate:          band.Rate.Mul(hundred),
				Tax:           tax,
			})
		}

		slice.TotalTax = slice.TotalTax.Add(tax)
		remaining = remaining.Sub(taxable)
	}

	return slice
}

// BandLabel renders a band as "KES 24,001 - 32,333" or "Above KES 800,001".
func BandLabel(band domain.TaxBand) string {
	from := money.NewMoneyFromDecimal(band.Min).Grouped(0)
	if band.Unbounded() {
		return "Above " + money.CurrencyCode + " " + from
	}
	return money.CurrencyCode + " " + from + " - " + money.NewMoneyFromDecimal(*band.Max).Grouped(0)
}
