package calculation

import (
	"fmt"

	"github.com/pfet/finance-core/internal/domain"
	money "github.com/pfet/finance-core/pkg/decimal"
	"github.com/shopspring/decimal"
)

// PAYECalculator computes Kenyan payslips for one tax year's rules.
// It holds no mutable state and is safe for concurrent use.
type PAYECalculator struct {
	Rules  domain.TaxRules
	Logger Logger
}

// NewPAYECalculator creates a calculator from validated rules. Malformed rules are rejected
// here so that no payslip is ever computed from a broken table.
func NewPAYECalculator(rules domain.TaxRules, logger Logger) (*PAYECalculator, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, fmt.Errorf("tax rules for %d: %w", rules.Year, err)
	}
	if logger == nil {
		logger = NopLogger{}
	}
	return &PAYECalculator{Rules: rules, Logger: logger}, nil
}

// NewPAYECalculator2024 creates a calculator for the built-in 2024 rules
func NewPAYECalculator2024() *PAYECalculator {
	pc, err := NewPAYECalculator(KenyaTaxRules2024(), NopLogger{})
	if err != nil {
		panic(err)
	}
	return pc
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (pc *PAYECalculator) SetLogger(l Logger) {
	if l == nil {
		pc.Logger = NopLogger{}
		return
	}
	pc.Logger = l
}

// CalculatePAYE runs the band engine on taxable income and rounds the gross tax
// to whole shillings. Per-band figures are left unrounded.
func (pc *PAYECalculator) CalculatePAYE(taxableIncome decimal.Decimal) (decimal.Decimal, []domain.BandTax) {
	slice := SliceProgressive(pc.Rules.PAYEBands, taxableIncome)
	return slice.TotalTax.Round(0), slice.PerBand
}

// CalculateNetSalary produces the full payslip breakdown.
//
// Order matters: statutory deductions come from gross salary alone, NSSF and
// pension reduce taxable income, reliefs are subtracted from gross tax, and the
// disability exemption is applied to the tax left after relief.
func (pc *PAYECalculator) CalculateNetSalary(input domain.PAYEInput) (domain.PAYEResult, error) {
	if err := validatePAYEInput(input); err != nil {
		return domain.PAYEResult{}, err
	}

	pension := input.Pension
	if pc.Rules.PensionCap.IsPositive() && pension.GreaterThan(pc.Rules.PensionCap) {
		pc.Logger.Warnf("pension contribution %s exceeds the deductible cap %s; using the cap", pension.StringFixed(2), pc.Rules.PensionCap.StringFixed(2))
		pension = pc.Rules.PensionCap
	}

	nhif := pc.CalculateNHIF(input.GrossSalary)
	nssf := pc.CalculateNSSF(input.GrossSalary)
	housingLevy := pc.CalculateHousingLevy(input.GrossSalary)

	// Allowances are not taxable; benefits are.
	taxableIncome := money.NonNegative(input.GrossSalary.Add(input.Benefits).Sub(pension).Sub(nssf))

	grossTax, taxByBand := pc.CalculatePAYE(taxableIncome)

	personalRelief := pc.Rules.PersonalRelief
	insuranceRelief := pc.CalculateInsuranceRelief(input.Insurance)
	totalRelief := personalRelief.Add(insuranceRelief)

	netTax := money.NonNegative(grossTax.Sub(totalRelief))
	if input.Disability {
		netTax = netTax.Mul(one.Sub(pc.Rules.DisabilityExemptionRate)).Round(0)
	}

	totalDeductions := money.Sum(netTax, nhif, nssf, housingLevy, pension)
	netSalary := input.GrossSalary.Add(input.Allowances).Add(input.Benefits).Sub(totalDeductions)
	if netSalary.IsNegative() {
		pc.Logger.Debugf("deductions %s exceed pay %s; net salary floored at zero", totalDeductions.StringFixed(2), input.GrossSalary.StringFixed(2))
		netSalary = decimal.Zero
	}

	pc.Logger.Debugf("PAYE %d: gross=%s taxable=%s grossTax=%s netTax=%s net=%s",
		pc.Rules.Year, input.GrossSalary.StringFixed(2), taxableIncome.StringFixed(2),
		grossTax.StringFixed(2), netTax.StringFixed(2), netSalary.StringFixed(2))

	return domain.PAYEResult{
		TaxYear:         pc.Rules.Year,
		GrossSalary:     input.GrossSalary,
		Allowances:      input.Allowances,
		Benefits:        input.Benefits,
		TaxableIncome:   taxableIncome,
		PAYE:            netTax,
		NHIF:            nhif,
		NSSF:            nssf,
		HousingLevy:     housingLevy,
		Pension:         pension,
		PersonalRelief:  personalRelief,
		InsuranceRelief: insuranceRelief,
		TaxRelief:       totalRelief,
		GrossTax:        grossTax,
		NetTax:          netTax,
		TotalDeductions: totalDeductions,
		NetSalary:       netSalary,
		TaxByBand:       taxByBand,
	}, nil
}

func validatePAYEInput(input domain.PAYEInput) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"gross_salary", input.GrossSalary},
		{"allowances", input.Allowances},
		{"benefits", input.Benefits},
		{"pension", input.Pension},
		{"insurance", input.Insurance},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return &domain.InvalidInputError{Field: f.name, Message: "cannot be negative"}
		}
	}
	return nil
}
