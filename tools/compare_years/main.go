package main

import (
	"fmt"
	"os"

	calc "github.com/pfet/finance-core/internal/calculation"
	"github.com/pfet/finance-core/internal/config"
	"github.com/pfet/finance-core/internal/domain"
	"github.com/shopspring/decimal"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: compare_years <tax-rules-file> <gross> [gross...]")
		return
	}
	rules, err := config.LoadTaxRules(os.Args[1])
	if err != nil {
		panic(err)
	}
	years := rules.Years()

	// Header
	header := "Gross"
	for _, y := range years {
		header += fmt.Sprintf(",%d_NSSF,%d_PAYE,%d_Net", y, y, y)
	}
	if len(years) >= 2 {
		header += ",NetChange"
	}
	fmt.Println(header)

	for _, arg := range os.Args[2:] {
		gross, err := decimal.NewFromString(arg)
		if err != nil {
			panic(err)
		}
		row := gross.StringFixed(0)
		var first, last decimal.Decimal
		for i, y := range years {
			r, err := rules.ForYear(y)
			if err != nil {
				panic(err)
			}
			pc, err := calc.NewPAYECalculator(r, nil)
			if err != nil {
				panic(err)
			}
			res, err := pc.CalculateNetSalary(domain.PAYEInput{GrossSalary: gross})
			if err != nil {
				panic(err)
			}
			row += fmt.Sprintf(",%s,%s,%s", res.NSSF.StringFixed(0), res.PAYE.StringFixed(0), res.NetSalary.StringFixed(0))
			if i == 0 {
				first = res.NetSalary
			}
			last = res.NetSalary
		}
		if len(years) >= 2 {
			row += "," + last.Sub(first).StringFixed(0)
		}
		fmt.Println(row)
	}
}
