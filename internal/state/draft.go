// Package state keeps an interrupted onboarding run in the data directory so
// the next run can pick it up where it stopped.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/logger"
)

const draftFile = "draft.json"

// Draft is an unfinished wizard run.
type Draft struct {
	Step    int           `json:"step"`
	Values  brand.Profile `json:"values"`
	SavedAt time.Time     `json:"savedAt"`
}

// Load reads <dataDir>/draft.json. It returns nil when there is no draft or
// the file cannot be used.
func Load(dataDir string) *Draft {
	path := filepath.Join(dataDir, draftFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		logger.Warn("Failed to read draft file: %v", err)
		return nil
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		logger.Warn("Failed to parse draft JSON: %v", err)
		return nil
	}
	d.Values = d.Values.Clone()
	return &d
}

// Save writes the draft, creating the data directory if needed.
func Save(dataDir string, d Draft) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if d.SavedAt.IsZero() {
		d.SavedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling draft: %w", err)
	}

	path := filepath.Join(dataDir, draftFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing draft file: %w", err)
	}

	logger.Debug("Draft saved to %s (step %d)", path, d.Step)
	return nil
}

// Clear removes any saved draft.
func Clear(dataDir string) error {
	err := os.Remove(filepath.Join(dataDir, draftFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing draft file: %w", err)
	}
	return nil
}
