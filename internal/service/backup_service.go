package service

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"algopulse/internal/models"
)

// BackupData represents the complete progress snapshot structure
type BackupData struct {
	Version      string           `json:"version"`
	ExportedAt   time.Time        `json:"exported_at"`
	DatabaseType string           `json:"database_type"`
	Problems     []models.Problem `json:"problems"`
	Stats        models.UserStats `json:"stats"`
}

// BackupService exports and imports full progress snapshots as JSON
type BackupService struct {
	store        Store
	databaseType string
}

// NewBackupService creates a new backup service
func NewBackupService(store Store, databaseType string) *BackupService {
	return &BackupService{store: store, databaseType: databaseType}
}

// Export writes a complete snapshot of the tracked progress to a JSON file
func (s *BackupService) Export(outputPath string) error {
	problems, err := s.store.LoadProblems()
	if err != nil {
		return fmt.Errorf("failed to load problems: %w", err)
	}

	stats, err := s.store.LoadStats()
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	backup := BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		DatabaseType: s.databaseType,
		Problems:     problems,
		Stats:        stats,
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	return nil
}

// Import replaces the tracked progress with the snapshot in the given file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var backup BackupData
	if err := json.NewDecoder(file).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	if backup.Version != "1.0" {
		return fmt.Errorf("unsupported backup version: %q", backup.Version)
	}

	for _, p := range backup.Problems {
		if !p.Difficulty.Valid() {
			return fmt.Errorf("backup contains problem %q with invalid difficulty %q", p.Title, p.Difficulty)
		}
	}

	if backup.Stats.Badges == nil {
		backup.Stats.Badges = []models.BadgeID{}
	}

	if err := s.store.SaveProblems(backup.Problems); err != nil {
		return fmt.Errorf("failed to save problems: %w", err)
	}
	if err := s.store.SaveStats(backup.Stats); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}

	return nil
}
