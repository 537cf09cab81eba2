package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pfet/finance-core/internal/calculation"
	"github.com/pfet/finance-core/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadTaxRules_Success(t *testing.T) {
	rules, err := LoadTaxRules("testdata/tax_rules.yaml")
	require.NoError(t, err)

	assert.Equal(t, []int{2023, 2024}, rules.Years())
	assert.Equal(t, 2024, rules.Latest().Year)

	r2024, err := rules.ForYear(2024)
	require.NoError(t, err)
	require.Len(t, r2024.PAYEBands, 5)
	assert.Nil(t, r2024.PAYEBands[4].Max)
	assert.True(t, r2024.PAYEBands[2].Rate.Equal(decimal.NewFromFloat(0.3)))
	require.Len(t, r2024.NHIFBrackets, 17)

	// the 2024 file matches the built-in tables
	fromFile, err := calculation.NewPAYECalculator(r2024, nil)
	require.NoError(t, err)
	fromFile2024, err := fromFile.CalculateNetSalary(domain.PAYEInput{GrossSalary: decimal.NewFromInt(100000)})
	require.NoError(t, err)
	assert.True(t, fromFile2024.NetSalary.Equal(decimal.NewFromInt(72905)), "net salary %s", fromFile2024.NetSalary)
}

func TestLoadTaxRules_YearsSideBySide(t *testing.T) {
	rules, err := LoadTaxRules("testdata/tax_rules.yaml")
	require.NoError(t, err)

	r2023, err := rules.ForYear(2023)
	require.NoError(t, err)
	calc, err := calculation.NewPAYECalculator(r2023, nil)
	require.NoError(t, err)

	// 6000 * 6% + 12000 * 6% under the older tier limits
	assert.True(t, calc.CalculateNSSF(decimal.NewFromInt(100000)).Equal(decimal.NewFromInt(1080)))
}

func TestRulesFile_ForYearUnknown(t *testing.T) {
	rules, err := LoadTaxRules("testdata/tax_rules.yaml")
	require.NoError(t, err)

	_, err = rules.ForYear(1999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownTaxYear))
	assert.Contains(t, err.Error(), "[2023 2024]")
}

func TestLoadTaxRules_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{
			name:     "invalid yaml",
			content:  "tax_years: [",
			contains: "failed to parse YAML",
		},
		{
			name:     "no years",
			content:  "tax_years: []\n",
			contains: "no tax years provided",
		},
		{
			name: "gap in bands",
			content: "tax_years:\n" +
				"  - year: 2024\n" +
				"    paye_bands:\n" +
				"      - {min: 0, max: 100, rate: 0.1}\n" +
				"      - {min: 200, max: null, rate: 0.2}\n" +
				"    nhif_brackets:\n" +
				"      - {min: 0, max: null, amount: 150}\n",
			contains: "malformed band configuration",
		},
		{
			name: "duplicate year",
			content: "tax_years:\n" +
				"  - year: 2024\n" +
				"    paye_bands: [{min: 0, max: null, rate: 0.1}]\n" +
				"    nhif_brackets: [{min: 0, max: null, amount: 150}]\n" +
				"  - year: 2024\n" +
				"    paye_bands: [{min: 0, max: null, rate: 0.1}]\n" +
				"    nhif_brackets: [{min: 0, max: null, amount: 150}]\n",
			contains: "appears more than once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "rules.yaml", tt.content)
			_, err := LoadTaxRules(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}

	_, err := LoadTaxRules("testdata/does_not_exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadSnapshot(t *testing.T) {
	snap, err := LoadSnapshot("testdata/ledger.yaml")
	require.NoError(t, err)

	assert.Len(t, snap.Budgets, 3)
	assert.Len(t, snap.Expenses, 5)
	assert.Len(t, snap.Loans, 2)
	assert.Len(t, snap.LoanPayments, 2)
	assert.Len(t, snap.Goals, 1)
	assert.Len(t, snap.GoalContributions, 1)

	budget := snap.Budgets[0]
	assert.Equal(t, uuid.MustParse("11111111-1111-1111-1111-111111111111"), budget.UserID)
	assert.Equal(t, domain.PeriodMonthly, budget.Period)
	assert.True(t, budget.Amount.Equal(decimal.NewFromInt(10000)))
	assert.True(t, budget.StartDate.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))

	loan := snap.Loans[0]
	require.NotNil(t, loan.DueDate)
	assert.True(t, loan.DueDate.Equal(time.Date(2024, time.June, 25, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, domain.LoanLent, loan.Type)
	assert.Equal(t, uuid.Nil, snap.LoanPayments[0].ID)

	goal := snap.Goals[0]
	assert.Equal(t, domain.PriorityHigh, goal.Priority)
	assert.Equal(t, domain.GoalEmergencyFund, goal.Category)
}

func TestLoadSnapshot_Errors(t *testing.T) {
	path := writeTemp(t, "ledger.yaml", "budgets:\n  - amount: 10\n    colour: red\n")
	_, err := LoadSnapshot(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	path = writeTemp(t, "ledger.yaml", "loans:\n  - id: not-a-uuid\n")
	_, err = LoadSnapshot(path)
	require.Error(t, err)

	path = writeTemp(t, "empty.yaml", "")
	snap, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Empty(t, snap.Budgets)
}

func TestLoadSettings(t *testing.T) {
	envFile := writeTemp(t, ".env", "PFET_LOG_LEVEL=debug\nPFET_TAX_RULES=rules.yaml\nPFET_TAX_YEAR=2023\n")

	for _, key := range []string{"PFET_LOG_LEVEL", "PFET_TAX_RULES", "PFET_TAX_YEAR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	settings, err := LoadSettings(envFile)
	require.NoError(t, err)
	assert.Equal(t, "debug", settings.LogLevel)
	assert.Equal(t, "rules.yaml", settings.TaxRulesPath)
	assert.Equal(t, 2023, settings.TaxYear)
}

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("PFET_LOG_LEVEL", "")
	t.Setenv("PFET_TAX_RULES", "")
	t.Setenv("PFET_TAX_YEAR", "")

	settings, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "info", settings.LogLevel)
	assert.Empty(t, settings.TaxRulesPath)
	assert.Zero(t, settings.TaxYear)
}

func TestLoadSettings_BadYear(t *testing.T) {
	t.Setenv("PFET_TAX_YEAR", "twenty")

	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PFET_TAX_YEAR")
}
