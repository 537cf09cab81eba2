package calculation

import (
	"fmt"

	"github.com/pfet/finance-core/internal/domain"
	"github.com/shopspring/decimal"
)

// KENYA STATUTORY ASSUMPTIONS (2024):
//
// 1. PAYE bands are monthly and applied to taxable income after NSSF and pension.
// 2. NHIF is a flat amount looked up from gross salary only.
// 3. NSSF follows the Feb 2024 two-tier rates: 6% up to the Lower Earnings Limit
//    and 6% between the Lower and Upper Earnings Limits.
// 4. Housing Levy is 1.5% of gross salary with no cap.
// 5. Persons with disability are exempted from half of the tax due after relief.

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// KenyaTaxRules2024 returns the statutory tables in force for 2024.
func KenyaTaxRules2024() domain.TaxRules {
	return domain.TaxRules{
		Year: 2024,
		PAYEBands: []domain.TaxBand{
			{Min: dec(0), Max: decPtr(24000), Rate: decimal.NewFromFloat(0.10)},
			{Min: dec(24001), Max: decPtr(32333), Rate: decimal.NewFromFloat(0.25)},
			{Min: dec(32334), Max: decPtr(500000), Rate: decimal.NewFromFloat(0.30)},
			{Min: dec(500001), Max: decPtr(800000), Rate: decimal.NewFromFloat(0.325)},
			{Min: dec(800001), Rate: decimal.NewFromFloat(0.35)},
		},
		NHIFBrackets: []domain.NHIFBracket{
			{Min: dec(0), Max: decPtr(5999), Amount: dec(150)},
			{Min: dec(6000), Max: decPtr(7999), Amount: dec(300)},
			{Min: dec(8000), Max: decPtr(11999), Amount: dec(400)},
			{Min: dec(12000), Max: decPtr(14999), Amount: dec(500)},
			{Min: dec(15000), Max: decPtr(19999), Amount: dec(600)},
			{Min: dec(20000), Max: decPtr(24999), Amount: dec(750)},
			{Min: dec(25000), Max: decPtr(29999), Amount: dec(850)},
			{Min: dec(30000), Max: decPtr(34999), Amount: dec(900)},
			{Min: dec(35000), Max: decPtr(39999), Amount: dec(950)},
			{Min: dec(40000), Max: decPtr(44999), Amount: dec(1000)},
			{Min: dec(45000), Max: decPtr(49999), Amount: dec(1100)},
			{Min: dec(50000), Max: decPtr(59999), Amount: dec(1200)},
			{Min: dec(60000), Max: decPtr(69999), Amount: dec(1300)},
			{Min: dec(70000), Max: decPtr(79999), Amount: dec(1400)},
			{Min: dec(80000), Max: decPtr(89999), Amount: dec(1500)},
			{Min: dec(90000), Max: decPtr(99999), Amount: dec(1600)},
			{Min: dec(100000), Amount: dec(1700)},
		},
		NSSF: domain.NSSFConfig{
			TierILimit:  dec(7000),
			TierIILimit: dec(36000),
			Rate:        decimal.NewFromFloat(0.06),
		},
		HousingLevyRate:         decimal.NewFromFloat(0.015),
		PersonalRelief:          dec(2400),
		InsuranceReliefRate:     decimal.NewFromFloat(0.15),
		MaxInsuranceRelief:      dec(5000),
		PensionCap:              dec(20000),
		DisabilityExemptionRate: decimal.NewFromFloat(0.5),
	}
}

// ValidateRules checks a rules table before any calculator is built from it.
func ValidateRules(rules domain.TaxRules) error {
	if err := ValidateBands(rules.PAYEBands); err != nil {
		return fmt.Errorf("paye bands: %w", err)
	}
	if err := validateNHIFBrackets(rules.NHIFBrackets); err != nil {
		return fmt.Errorf("nhif brackets: %w", err)
	}
	if rules.NSSF.TierILimit.IsNegative() || rules.NSSF.TierIILimit.LessThan(rules.NSSF.TierILimit) {
		return fmt.Errorf("nssf tier limits must satisfy 0 <= tier I <= tier II")
	}
	for name, rate := range map[string]decimal.Decimal{
		"nssf rate":                 rules.NSSF.Rate,
		"housing levy rate":         rules.HousingLevyRate,
		"insurance relief rate":     rules.InsuranceReliefRate,
		"disability exemption rate": rules.DisabilityExemptionRate,
	} {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s must be between 0 and 1, got %s", name, rate)
		}
	}
	if rules.PersonalRelief.IsNegative() || rules.MaxInsuranceRelief.IsNegative() || rules.PensionCap.IsNegative() {
		return fmt.Errorf("relief amounts and pension cap cannot be negative")
	}
	return nil
}

// ValidateBands checks that bands start at zero, are contiguous in whole
// shillings and end with exactly one open-ended band.
func ValidateBands(bands []domain.TaxBand) error {
	bounds := make([]bound, len(bands))
	for i, b := range bands {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: band %d rate %s outside [0, 1]", domain.ErrMalformedBands, i, b.Rate)
		}
		bounds[i] = bound{min: b.Min, max: b.Max}
	}
	return validateBounds(bounds)
}

func validateNHIFBrackets(brackets []domain.NHIFBracket) error {
	bounds := make([]bound, len(brackets))
	for i, b := range brackets {
		if b.Amount.IsNegative() {
			return fmt.Errorf("%w: bracket %d has a negative amount", domain.ErrMalformedBands, i)
		}
		bounds[i] = bound{min: b.Min, max: b.Max}
	}
	return validateBounds(bounds)
}

type bound struct {
	min decimal.Decimal
	max *decimal.Decimal
}

func validateBounds(bounds []bound) error {
	if len(bounds) == 0 {
		return fmt.Errorf("%w: no bands", domain.ErrMalformedBands)
	}
	if !bounds[0].min.IsZero() {
		return fmt.Errorf("%w: first band must start at 0, starts at %s", domain.ErrMalformedBands, bounds[0].min)
	}
	last := len(bounds) - 1
	for i, b := range bounds {
		if b.max == nil {
			if i != last {
				return fmt.Errorf("%w: band %d is open-ended but is not the last band", domain.ErrMalformedBands, i)
			}
			continue
		}
		if i == last {
			return fmt.Errorf("%w: last band must be open-ended", domain.ErrMalformedBands)
		}
		if b.max.LessThan(b.min) {
			return fmt.Errorf("%w: band %d max %s below min %s", domain.ErrMalformedBands, i, b.max, b.min)
		}
		if next := bounds[i+1].min; !b.max.Add(decimal.NewFromInt(1)).Equal(next) {
			return fmt.Errorf("%w: band %d ends at %s but band %d starts at %s", domain.ErrMalformedBands, i, b.max, i+1, next)
		}
	}
	return nil
}
