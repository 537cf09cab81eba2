package calculation

import (
	"errors"
	"testing"

	"github.com/pfet/finance-core/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecimal(t *testing.T, expected, actual decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, expected.Equal(actual), "%s: expected %s, got %s", field, expected.String(), actual.String())
}

func salary(gross int64) domain.PAYEInput {
	return domain.PAYEInput{
		GrossSalary: decimal.NewFromInt(gross),
		Allowances:  decimal.Zero,
		Benefits:    decimal.Zero,
		Pension:     decimal.Zero,
		Insurance:   decimal.Zero,
	}
}

// recordingLogger captures warnings so tests can check that clamping is signalled
type recordingLogger struct {
	NopLogger
	warnings []string
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, format)
}

func TestCalculateNetSalary(t *testing.T) {
	calculator := NewPAYECalculator2024()

	tests := []struct {
		name            string
		input           domain.PAYEInput
		expectedNHIF    int64
		expectedNSSF    int64
		expectedLevy    int64
		expectedTaxable int64
		expectedGross   int64
		expectedNetTax  int64
		expectedNet     int64
	}{
		{
			name:            "100k salary slices across three bands",
			input:           salary(100000),
			expectedNHIF:    1700,
			expectedNSSF:    2160,
			expectedLevy:    1500,
			expectedTaxable: 97840,
			expectedGross:   24135, // 2400.10 + 2083.25 + 19651.80 = 24135.15
			expectedNetTax:  21735,
			expectedNet:     72905, // 100000 - (21735 + 1700 + 2160 + 1500)
		},
		{
			name:            "zero salary still pays minimum NHIF",
			input:           salary(0),
			expectedNHIF:    150,
			expectedNSSF:    0,
			expectedLevy:    0,
			expectedTaxable: 0,
			expectedGross:   0,
			expectedNetTax:  0,
			expectedNet:     0,
		},
		{
			name:            "low salary has tax wiped out by personal relief",
			input:           salary(20000),
			expectedNHIF:    750,
			expectedNSSF:    1200, // 420 + 13000 * 6%
			expectedLevy:    300,
			expectedTaxable: 18800,
			expectedGross:   1880,
			expectedNetTax:  0,
			expectedNet:     17750,
		},
		{
			name: "allowances are paid out but not taxed",
			input: domain.PAYEInput{
				GrossSalary: decimal.NewFromInt(100000),
				Allowances:  decimal.NewFromInt(10000),
				Benefits:    decimal.Zero,
				Pension:     decimal.Zero,
				Insurance:   decimal.Zero,
			},
			expectedNHIF:    1700,
			expectedNSSF:    2160,
			expectedLevy:    1500,
			expectedTaxable: 97840,
			expectedGross:   24135,
			expectedNetTax:  21735,
			expectedNet:     82905,
		},
		{
			name: "benefits are taxed, pension is deducted before tax",
			input: domain.PAYEInput{
				GrossSalary: decimal.NewFromInt(100000),
				Allowances:  decimal.Zero,
				Benefits:    decimal.NewFromInt(5000),
				Pension:     decimal.NewFromInt(10000),
				Insurance:   decimal.Zero,
			},
			expectedNHIF:    1700,
			expectedNSSF:    2160,
			expectedLevy:    1500,
			expectedTaxable: 92840, // 100000 + 5000 - 10000 - 2160
			expectedGross:   22635, // 2400.10 + 2083.25 + 60506 * 30% = 22635.15
			expectedNetTax:  20235,
			expectedNet:     69405, // 105000 - (20235 + 1700 + 2160 + 1500 + 10000)
		},
		{
			name: "insurance relief is capped",
			input: domain.PAYEInput{
				GrossSalary: decimal.NewFromInt(100000),
				Allowances:  decimal.Zero,
				Benefits:    decimal.Zero,
				Pension:     decimal.Zero,
				Insurance:   decimal.NewFromInt(50000),
			},
			expectedNHIF:    1700,
			expectedNSSF:    2160,
			expectedLevy:    1500,
			expectedTaxable: 97840,
			expectedGross:   24135,
			expectedNetTax:  16735, // 24135 - 2400 - 5000
			expectedNet:     77905,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calculator.CalculateNetSalary(tt.input)
			require.NoError(t, err)

			assertDecimal(t, decimal.NewFromInt(tt.expectedNHIF), result.NHIF, "nhif")
			assertDecimal(t, decimal.NewFromInt(tt.expectedNSSF), result.NSSF, "nssf")
			assertDecimal(t, decimal.NewFromInt(tt.expectedLevy), result.HousingLevy, "housing levy")
			assertDecimal(t, decimal.NewFromInt(tt.expectedTaxable), result.TaxableIncome, "taxable income")
			assertDecimal(t, decimal.NewFromInt(tt.expectedGross), result.GrossTax, "gross tax")
			assertDecimal(t, decimal.NewFromInt(tt.expectedNetTax), result.NetTax, "net tax")
			assertDecimal(t, result.NetTax, result.PAYE, "paye")
			assertDecimal(t, decimal.NewFromInt(tt.expectedNet), result.NetSalary, "net salary")
			assert.Equal(t, 2024, result.TaxYear)
		})
	}
}

func TestCalculateNetSalary_TotalDeductions(t *testing.T) {
	calculator := NewPAYECalculator2024()

	result, err := calculator.CalculateNetSalary(salary(100000))
	require.NoError(t, err)

	assertDecimal(t, decimal.NewFromInt(27095), result.TotalDeductions, "total deductions")
	assertDecimal(t, decimal.NewFromInt(2400), result.TaxRelief, "tax relief")
	require.Len(t, result.TaxByBand, 3)
	assertDecimal(t, decimal.NewFromInt(65506), result.TaxByBand[2].TaxableAmount, "band 3 taxable")
	assertDecimal(t, decimal.RequireFromString("19651.8"), result.TaxByBand[2].Tax, "band 3 tax")
}

func TestCalculateNetSalary_Disability(t *testing.T) {
	calculator := NewPAYECalculator2024()

	for _, gross := range []int64{40000, 100000, 250000, 900000} {
		input := salary(gross)
		regular, err := calculator.CalculateNetSalary(input)
		require.NoError(t, err)

		input.Disability = true
		exempt, err := calculator.CalculateNetSalary(input)
		require.NoError(t, err)

		require.True(t, regular.GrossTax.GreaterThan(regular.TaxRelief), "gross %d should owe tax", gross)
		expected := regular.NetTax.Mul(decimal.NewFromFloat(0.5)).Round(0)
		assertDecimal(t, expected, exempt.NetTax, "disability net tax")
		assertDecimal(t, regular.GrossTax, exempt.GrossTax, "gross tax is unaffected")
	}

	// 21735 / 2 = 10867.5 rounds half away from zero
	input := salary(100000)
	input.Disability = true
	result, err := calculator.CalculateNetSalary(input)
	require.NoError(t, err)
	assertDecimal(t, decimal.NewFromInt(10868), result.NetTax, "net tax")
}

func TestCalculateNetSalary_MonotonicWithinNHIFBracket(t *testing.T) {
	calculator := NewPAYECalculator2024()

	for _, bracket := range calculator.Rules.NHIFBrackets {
		top, step := decimal.NewFromInt(1000000), int64(500)
		if bracket.Max != nil {
			top, step = *bracket.Max, 50
		}

		previous := decimal.NewFromInt(-1)
		for gross := bracket.Min; gross.LessThanOrEqual(top); {
			input := domain.PAYEInput{GrossSalary: gross}
			result, err := calculator.CalculateNetSalary(input)
			require.NoError(t, err)
			assert.True(t, result.NetSalary.GreaterThanOrEqual(previous),
				"net salary dropped at gross %s: %s < %s", gross, result.NetSalary, previous)
			previous = result.NetSalary

			if gross.Equal(top) {
				break
			}
			gross = decimal.Min(gross.Add(decimal.NewFromInt(step)), top)
		}
	}
}

// Net pay falls by up to the NHIF step when gross crosses a bracket edge.
func TestCalculateNetSalary_NHIFBracketCliff(t *testing.T) {
	calculator := NewPAYECalculator2024()

	tests := []struct {
		name        string
		below       int64
		netBelow    int64
		above       int64
		netAbove    int64
		nhifAtAbove int64
	}{
		{"first bracket edge", 5999, 5399, 6000, 5250, 300},
		{"top bracket edge", 99999, 73004, 100000, 72905, 1700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			below, err := calculator.CalculateNetSalary(salary(tt.below))
			require.NoError(t, err)
			above, err := calculator.CalculateNetSalary(salary(tt.above))
			require.NoError(t, err)

			assertDecimal(t, decimal.NewFromInt(tt.netBelow), below.NetSalary, "net below edge")
			assertDecimal(t, decimal.NewFromInt(tt.netAbove), above.NetSalary, "net above edge")
			assertDecimal(t, decimal.NewFromInt(tt.nhifAtAbove), above.NHIF, "nhif above edge")
			assert.True(t, above.NetSalary.LessThan(below.NetSalary))
		})
	}
}

func TestCalculateNetSalary_RejectsNegativeInput(t *testing.T) {
	calculator := NewPAYECalculator2024()

	tests := []struct {
		name  string
		input domain.PAYEInput
		field string
	}{
		{"negative gross", domain.PAYEInput{GrossSalary: decimal.NewFromInt(-1)}, "gross_salary"},
		{"negative allowances", domain.PAYEInput{GrossSalary: decimal.NewFromInt(1000), Allowances: decimal.NewFromInt(-5)}, "allowances"},
		{"negative benefits", domain.PAYEInput{Benefits: decimal.NewFromInt(-5)}, "benefits"},
		{"negative pension", domain.PAYEInput{Pension: decimal.NewFromInt(-5)}, "pension"},
		{"negative insurance", domain.PAYEInput{Insurance: decimal.NewFromInt(-5)}, "insurance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calculator.CalculateNetSalary(tt.input)
			require.Error(t, err)

			var invalid *domain.InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestCalculateNetSalary_PensionClampedAndLogged(t *testing.T) {
	logger := &recordingLogger{}
	calculator, err := NewPAYECalculator(KenyaTaxRules2024(), logger)
	require.NoError(t, err)

	input := salary(100000)
	input.Pension = decimal.NewFromInt(30000)

	result, err := calculator.CalculateNetSalary(input)
	require.NoError(t, err)

	assertDecimal(t, decimal.NewFromInt(20000), result.Pension, "pension")
	assertDecimal(t, decimal.NewFromInt(77840), result.TaxableIncome, "taxable income")
	assert.Len(t, logger.warnings, 1)
}

func TestNewPAYECalculator_RejectsMalformedRules(t *testing.T) {
	rules := KenyaTaxRules2024()
	rules.PAYEBands[1].Min = decimal.NewFromInt(24005)

	calculator, err := NewPAYECalculator(rules, nil)
	assert.Nil(t, calculator)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedBands))
	assert.Contains(t, err.Error(), "tax rules for 2024")
}

func TestCalculateNHIF(t *testing.T) {
	calculator := NewPAYECalculator2024()

	tests := []struct {
		gross    float64
		expected int64
	}{
		{0, 150},
		{5999, 150},
		{5999.50, 150},
		{6000, 300},
		{14999, 500},
		{15000, 600},
		{49999, 1100},
		{99999, 1600},
		{100000, 1700},
		{2500000, 1700},
	}

	for _, tt := range tests {
		result := calculator.CalculateNHIF(decimal.NewFromFloat(tt.gross))
		assertDecimal(t, decimal.NewFromInt(tt.expected), result, "nhif")
	}
}

func TestCalculateNHIF_AlwaysATableAmount(t *testing.T) {
	calculator := NewPAYECalculator2024()

	amounts := make(map[string]bool)
	for _, b := range calculator.Rules.NHIFBrackets {
		amounts[b.Amount.String()] = true
	}
	require.Len(t, amounts, 17)

	for gross := int64(0); gross <= 150000; gross += 250 {
		result := calculator.CalculateNHIF(decimal.NewFromInt(gross))
		assert.True(t, amounts[result.String()], "gross %d gave %s", gross, result)
		if gross >= 100000 {
			assertDecimal(t, decimal.NewFromInt(1700), result, "nhif at top bracket")
		}
	}
}

func TestCalculateNSSF(t *testing.T) {
	calculator := NewPAYECalculator2024()

	tests := []struct {
		name     string
		gross    int64
		expected int64
	}{
		{"nothing on zero", 0, 0},
		{"tier I only", 5000, 300},
		{"tier I limit", 7000, 420},
		{"into tier II", 20000, 1200},
		{"upper limit", 36000, 2160},
		{"capped above upper limit", 36001, 2160},
		{"capped on high salary", 1000000, 2160},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calculator.CalculateNSSF(decimal.NewFromInt(tt.gross))
			assertDecimal(t, decimal.NewFromInt(tt.expected), result, "nssf")
		})
	}
}

func TestCalculateHousingLevy(t *testing.T) {
	calculator := NewPAYECalculator2024()

	assertDecimal(t, decimal.NewFromInt(1500), calculator.CalculateHousingLevy(decimal.NewFromInt(100000)), "levy")
	assertDecimal(t, decimal.NewFromInt(500), calculator.CalculateHousingLevy(decimal.NewFromInt(33333)), "levy rounds 499.995")
	assertDecimal(t, decimal.Zero, calculator.CalculateHousingLevy(decimal.Zero), "levy on zero")
}

func TestCalculateInsuranceRelief(t *testing.T) {
	calculator := NewPAYECalculator2024()

	assertDecimal(t, decimal.NewFromInt(1500), calculator.CalculateInsuranceRelief(decimal.NewFromInt(10000)), "relief")
	assertDecimal(t, decimal.NewFromInt(5000), calculator.CalculateInsuranceRelief(decimal.NewFromInt(50000)), "capped relief")
	assertDecimal(t, decimal.Zero, calculator.CalculateInsuranceRelief(decimal.Zero), "no premium")
}

func TestRulesSideBySide(t *testing.T) {
	rules2025 := KenyaTaxRules2024()
	rules2025.Year = 2025
	rules2025.PersonalRelief = decimal.NewFromInt(2600)

	calc2024 := NewPAYECalculator2024()
	calc2025, err := NewPAYECalculator(rules2025, nil)
	require.NoError(t, err)

	r2024, err := calc2024.CalculateNetSalary(salary(100000))
	require.NoError(t, err)
	r2025, err := calc2025.CalculateNetSalary(salary(100000))
	require.NoError(t, err)

	assertDecimal(t, decimal.NewFromInt(200), r2025.NetSalary.Sub(r2024.NetSalary), "relief difference")
	assert.Equal(t, 2025, r2025.TaxYear)
}
