package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBand represents one progressive PAYE band. A nil Max marks the open-ended top band.
type TaxBand struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"` // fraction, e.g. 0.25
}

// Unbounded reports whether the band has no upper limit
func (b TaxBand) Unbounded() bool { return b.Max == nil }

// NHIFBracket maps a gross salary range to a flat monthly contribution
type NHIFBracket struct {
	Min    decimal.Decimal  `yaml:"min" json:"min"`
	Max    *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Amount decimal.Decimal  `yaml:"amount" json:"amount"`
}

// NSSFConfig holds the two-tier pension contribution limits
type NSSFConfig struct {
	TierILimit  decimal.Decimal `yaml:"tier_i_limit" json:"tier_i_limit"`   // Lower Earnings Limit, 7000
	TierIILimit decimal.Decimal `yaml:"tier_ii_limit" json:"tier_ii_limit"` // Upper Earnings Limit, 36000
	Rate        decimal.Decimal `yaml:"rate" json:"rate"`                   // 0.06 on each tier
}

// TaxRules is the versioned statutory configuration for one tax year.
// Replacing it is how annual tax law changes are applied.
type TaxRules struct {
	Year                    int             `yaml:"year" json:"year"`
	PAYEBands               []TaxBand       `yaml:"paye_bands" json:"paye_bands"`
	NHIFBrackets            []NHIFBracket   `yaml:"nhif_brackets" json:"nhif_brackets"`
	NSSF                    NSSFConfig      `yaml:"nssf" json:"nssf"`
	HousingLevyRate         decimal.Decimal `yaml:"housing_levy_rate" json:"housing_levy_rate"`
	PersonalRelief          decimal.Decimal `yaml:"personal_relief" json:"personal_relief"`
	InsuranceReliefRate     decimal.Decimal `yaml:"insurance_relief_rate" json:"insurance_relief_rate"`
	MaxInsuranceRelief      decimal.Decimal `yaml:"max_insurance_relief" json:"max_insurance_relief"`
	PensionCap              decimal.Decimal `yaml:"pension_cap" json:"pension_cap"`
	DisabilityExemptionRate decimal.Decimal `yaml:"disability_exemption_rate" json:"disability_exemption_rate"`
}

// PAYEInput is a single monthly payslip to evaluate. All amounts are monthly.
type PAYEInput struct {
	GrossSalary decimal.Decimal `yaml:"gross_salary" json:"gross_salary"`
	Allowances  decimal.Decimal `yaml:"allowances" json:"allowances"` // non-taxable
	Benefits    decimal.Decimal `yaml:"benefits" json:"benefits"`     // taxable
	Pension     decimal.Decimal `yaml:"pension" json:"pension"`       // pre-tax contribution
	Insurance   decimal.Decimal `yaml:"insurance" json:"insurance"`   // premium eligible for relief
	Disability  bool            `yaml:"disability" json:"disability"`
}

// BandTax is the share of taxable income that fell into one band
type BandTax struct {
	Band          string          `json:"band"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	Rate          decimal.Decimal `json:"rate"` // percent, e.g. 25
	Tax           decimal.Decimal `json:"tax"`
}

// PAYEResult is the full breakdown of a payslip
type PAYEResult struct {
	TaxYear       int             `json:"tax_year"`
	GrossSalary   decimal.Decimal `json:"gross_salary"`
	Allowances    decimal.Decimal `json:"allowances"`
	Benefits      decimal.Decimal `json:"benefits"`
	TaxableIncome decimal.Decimal `json:"taxable_income"`

	// Deductions
	PAYE        decimal.Decimal `json:"paye"`
	NHIF        decimal.Decimal `json:"nhif"`
	NSSF        decimal.Decimal `json:"nssf"`
	HousingLevy decimal.Decimal `json:"housing_levy"`
	Pension     decimal.Decimal `json:"pension"`

	// Relief
	PersonalRelief  decimal.Decimal `json:"personal_relief"`
	InsuranceRelief decimal.Decimal `json:"insurance_relief"`
	TaxRelief       decimal.Decimal `json:"tax_relief"`

	GrossTax        decimal.Decimal `json:"gross_tax"`
	NetTax          decimal.Decimal `json:"net_tax"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`

	TaxByBand []BandTax `json:"tax_by_band"`
}
