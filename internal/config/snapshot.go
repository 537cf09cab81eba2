package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pfet/finance-core/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadSnapshot reads a ledger YAML file (budgets, expenses, loans,
// loan_payments, goals, goal_contributions). Unknown keys are rejected.
// Record-level validation happens when the snapshot is imported into a ledger.
func LoadSnapshot(filename string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var snap domain.Snapshot
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&snap); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &snap, nil
}
