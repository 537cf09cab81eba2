package main

import (
	"fmt"
	"os"

	"github.com/pfet/finance-core/internal/calculation"
	"github.com/shopspring/decimal"
)

func main() {
	rules := calculation.KenyaTaxRules2024()

	incomes := os.Args[1:]
	if len(incomes) == 0 {
		incomes = []string{"24000", "32333", "32335", "100000", "1000000"}
	}

	for _, arg := range incomes {
		taxable, err := decimal.NewFromString(arg)
		if err != nil {
			fmt.Printf("skipping %q: %v\n", arg, err)
			continue
		}
		slice := calculation.SliceProgressive(rules.PAYEBands, taxable)
		fmt.Printf("Taxable income %s\n", taxable.StringFixed(2))

		// rounding each band first drifts from the single late rounding
		perBandRounded := decimal.Zero
		for _, b := range slice.PerBand {
			fmt.Printf("  %-28s %5s%%  on %12s = %12s\n", b.Band, b.Rate.String(), b.TaxableAmount.StringFixed(2), b.Tax.StringFixed(4))
			perBandRounded = perBandRounded.Add(b.Tax.Round(0))
		}
		fmt.Printf("  raw total: %s  rounded: %s  per-band rounded: %s\n\n",
			slice.TotalTax.StringFixed(4), slice.TotalTax.Round(0).StringFixed(0), perBandRounded.StringFixed(0))
	}
}
