package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfet/finance-core/internal/domain"
	"github.com/pfet/finance-core/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ledgerFile = "../../internal/config/testdata/ledger.yaml"
	rulesFile  = "../../internal/config/testdata/tax_rules.yaml"
	userOne    = "11111111-1111-1111-1111-111111111111"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"PFET_LOG_LEVEL", "PFET_TAX_RULES", "PFET_TAX_YEAR"} {
		t.Setenv(key, "")
	}

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	base := []string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "--log-level", "error"}
	cmd.SetArgs(append(base, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestPAYECommand_Console(t *testing.T) {
	out, err := runCLI(t, "paye", "--gross", "100000")
	require.NoError(t, err)

	assert.Contains(t, out, "PAYSLIP BREAKDOWN (tax year 2024)")
	assert.Contains(t, out, "KES 72,905.00")
	assert.Contains(t, out, "KES 27,095.00")
}

func TestPAYECommand_RulesFile(t *testing.T) {
	out, err := runCLI(t, "paye", "--gross", "100000", "--rules", rulesFile, "--year", "2023", "-f", "json")
	require.NoError(t, err)

	var report struct {
		PAYE domain.PAYEResult `json:"paye"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2023, report.PAYE.TaxYear)
	assert.True(t, report.PAYE.NSSF.Equal(decimal.NewFromInt(1080)), "nssf %s", report.PAYE.NSSF)
	assert.True(t, report.PAYE.NetSalary.Equal(decimal.NewFromInt(73661)), "net %s", report.PAYE.NetSalary)
}

func TestPAYECommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
		is       error
	}{
		{"missing gross", []string{"paye"}, `required flag(s) "gross" not set`, nil},
		{"bad number", []string{"paye", "--gross", "lots"}, "not a number", nil},
		{"negative salary", []string{"paye", "--gross=-1"}, "gross_salary", nil},
		{"year without rules", []string{"paye", "--gross", "1000", "--year", "2023"}, "built-in tables cover 2024", domain.ErrUnknownTaxYear},
		{"unknown year in file", []string{"paye", "--gross", "1000", "--rules", rulesFile, "--year", "1999"}, "available: [2023 2024]", domain.ErrUnknownTaxYear},
		{"bad format", []string{"paye", "--gross", "1000", "-f", "pdf"}, "unsupported output format", output.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is))
			}
		})
	}
}

func TestDashboardCommand(t *testing.T) {
	out, err := runCLI(t, "dashboard", "--ledger", ledgerFile, "--user", userOne, "--as-of", "2024-06-15")
	require.NoError(t, err)

	for _, want := range []string{
		"PERSONAL FINANCE DASHBOARD (2024-06-15)",
		"Groceries", "85.00%", "near limit",
		"Kamau", "10 days",
		"Chama", "14 days overdue",
		"Emergency fund", "save KES 47,500.00/month",
	} {
		assert.Contains(t, out, want)
	}
}

func TestLoansCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "loans", "-l", ledgerFile, "-u", userOne, "--as-of", "2024-06-15", "-f", "json")
	require.NoError(t, err)

	var report struct {
		Loans   *domain.LoanOverview   `json:"loans"`
		Budgets *domain.BudgetOverview `json:"budgets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotNil(t, report.Loans)
	assert.Nil(t, report.Budgets)
	assert.True(t, report.Loans.TotalLent.Equal(decimal.NewFromInt(4500)), "lent %s", report.Loans.TotalLent)
	assert.True(t, report.Loans.TotalBorrowed.Equal(decimal.NewFromInt(15000)), "borrowed %s", report.Loans.TotalBorrowed)
	require.Len(t, report.Loans.Overdue, 1)
	assert.Equal(t, "Chama", report.Loans.Overdue[0].PersonName)
}

func TestBudgetsCommand_CSV(t *testing.T) {
	out, err := runCLI(t, "budgets", "-l", ledgerFile, "-u", userOne, "--as-of", "2024-06-15", "-f", "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Groceries", rows[1][2])
	assert.Equal(t, "8500.00", rows[1][5])
	assert.Equal(t, "Transport", rows[2][2])
}

func TestDashboardCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"bad user", []string{"goals", "-l", ledgerFile, "-u", "someone"}, "--user"},
		{"bad date", []string{"goals", "-l", ledgerFile, "-u", userOne, "--as-of", "15/06/2024"}, "--as-of"},
		{"missing ledger", []string{"goals", "-l", "nope.yaml", "-u", userOne}, "failed to read file"},
		{"missing user flag", []string{"goals", "-l", ledgerFile}, `required flag(s) "user" not set`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestRulesCommand(t *testing.T) {
	out, err := runCLI(t, "rules", "--rules", rulesFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Tax year 2023")
	assert.Contains(t, out, "Tax year 2024")
	assert.Contains(t, out, "Above KES 800,001")
	assert.Contains(t, out, "35.00%")

	out, err = runCLI(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "Tax year 2024: personal relief KES 2,400.00, housing levy 1.50%")
}

func TestSaveFlag(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "paye", "--gross", "50000", "-f", "yaml", "--save", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "pfet_paye_"))
	assert.Equal(t, ".yaml", filepath.Ext(entries[0].Name()))
}
