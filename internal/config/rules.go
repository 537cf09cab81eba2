package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/pfet/finance-core/internal/calculation"
	"github.com/pfet/finance-core/internal/domain"
	"gopkg.in/yaml.v3"
)

// RulesFile is a versioned set of statutory tables, one entry per tax year.
type RulesFile struct {
	TaxYears []domain.TaxRules `yaml:"tax_years"`
}

// LoadTaxRules reads a tax rules YAML file and validates every year in it.
func LoadTaxRules(filename string) (*RulesFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("tax rules validation failed: %w", err)
	}

	return &rules, nil
}

// Validate checks that the file holds at least one year, that no year appears
// twice and that every year's tables are well formed.
func (rf *RulesFile) Validate() error {
	if len(rf.TaxYears) == 0 {
		return fmt.Errorf("no tax years provided")
	}

	seen := make(map[int]bool, len(rf.TaxYears))
	for i, rules := range rf.TaxYears {
		if rules.Year <= 0 {
			return fmt.Errorf("tax year %d: year is required", i)
		}
		if seen[rules.Year] {
			return fmt.Errorf("tax year %d appears more than once", rules.Year)
		}
		seen[rules.Year] = true

		if err := calculation.ValidateRules(rules); err != nil {
			return fmt.Errorf("tax year %d: %w", rules.Year, err)
		}
	}

	return nil
}

// ForYear returns the rules in force for year.
func (rf *RulesFile) ForYear(year int) (domain.TaxRules, error) {
	for _, rules := range rf.TaxYears {
		if rules.Year == year {
			return rules, nil
		}
	}
	return domain.TaxRules{}, fmt.Errorf("%w: %d (available: %v)", domain.ErrUnknownTaxYear, year, rf.Years())
}

// Years lists the tax years in the file in ascending order.
func (rf *RulesFile) Years() []int {
	years := make([]int, 0, len(rf.TaxYears))
	for _, rules := range rf.TaxYears {
		years = append(years, rules.Year)
	}
	sort.Ints(years)
	return years
}

// Latest returns the rules of the most recent year in the file.
func (rf *RulesFile) Latest() domain.TaxRules {
	years := rf.Years()
	rules, _ := rf.ForYear(years[len(years)-1])
	return rules
}
