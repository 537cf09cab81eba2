package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Settings are the process-level defaults read from the environment.
type Settings struct {
	LogLevel     string // PFET_LOG_LEVEL
	TaxRulesPath string // PFET_TAX_RULES; empty means the built-in tables
	TaxYear      int    // PFET_TAX_YEAR; 0 means the latest available year
}

// LoadSettings loads envFiles (default ".env") into the environment and reads
// the PFET_* variables. A missing env file is not an error; variables already
// set in the environment win over the file.
func LoadSettings(envFiles ...string) (Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	settings := Settings{
		LogLevel:     getEnv("PFET_LOG_LEVEL", "info"),
		TaxRulesPath: getEnv("PFET_TAX_RULES", ""),
	}

	if raw := getEnv("PFET_TAX_YEAR", ""); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year <= 0 {
			return Settings{}, fmt.Errorf("PFET_TAX_YEAR must be a positive year, got %q", raw)
		}
		settings.TaxYear = year
	}

	return settings, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
