package calculation

import (
	"github.com/pfet/finance-core/internal/domain"
	money "github.com/pfet/finance-core/pkg/decimal"
	"github.com/shopspring/decimal"
)

// LookupNHIF returns the flat contribution of the bracket holding grossSalary.
// Salaries between two integer bounds (e.g. 5999.50) belong to the lower
// bracket; anything past the top bracket's Min pays the top amount.
func LookupNHIF(brackets []domain.NHIFBracket, grossSalary decimal.Decimal) decimal.Decimal {
	amount := decimal.Zero
	for _, b := range brackets {
		if grossSalary.LessThan(b.Min) {
			break
		}
		amount = b.Amount
	}
	return amount
}

// CalculateNHIF calculates the NHIF contribution for a monthly gross salary
func (pc *PAYECalculator) CalculateNHIF(grossSalary decimal.Decimal) decimal.Decimal {
	return LookupNHIF(pc.Rules.NHIFBrackets, grossSalary)
}

// CalculateNSSF calculates the employee NSSF contribution.
// Tier I: rate on the first TierILimit (max 420).
// Tier II: rate on earnings between TierILimit and TierIILimit (max 1,740).
func (pc *PAYECalculator) CalculateNSSF(grossSalary decimal.Decimal) decimal.Decimal {
	cfg := pc.Rules.NSSF

	tier1Earnings := decimal.Min(grossSalary, cfg.TierILimit)
	tier1 := tier1Earnings.Mul(cfg.Rate)

	tier2Earnings := money.NonNegative(decimal.Min(grossSalary, cfg.TierIILimit).Sub(cfg.TierILimit))
	tier2 := tier2Earnings.Mul(cfg.Rate)

	return tier1.Add(tier2).Round(0)
}

// CalculateHousingLevy calculates the flat-rate Housing Levy on gross salary
func (pc *PAYECalculator) CalculateHousingLevy(grossSalary decimal.Decimal) decimal.Decimal {
	return grossSalary.Mul(pc.Rules.HousingLevyRate).Round(0)
}

// CalculateInsuranceRelief returns the relief earned on an insurance premium, capped per month
func (pc *PAYECalculator) CalculateInsuranceRelief(premium decimal.Decimal) decimal.Decimal {
	return decimal.Min(premium.Mul(pc.Rules.InsuranceReliefRate), pc.Rules.MaxInsuranceRelief)
}
