// Package repository is the persistence gateway: load-at-start and
// save-on-change of the problem collection and user stats, stored as
// string-serialized JSON in a key-value table.
package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"algopulse/internal/database"
	"algopulse/internal/models"
	"algopulse/internal/scoring"
)

const (
	statsKey          = "stats"
	problemKeyPrefix  = "problem:"
	problemKeyPattern = problemKeyPrefix + "%"
)

// StoreRepository persists problems and stats through the key-value store
type StoreRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *database.DB, logger *zap.Logger) *StoreRepository {
	return &StoreRepository{db: db, logger: logger}
}

// LoadProblems reads the full problem collection in stored order, newest
// first. A row that fails to decode is skipped with a warning; one
// corrupted record must not take the whole collection down. An empty
// store (first run) yields an empty collection.
func (r *StoreRepository) LoadProblems() ([]models.Problem, error) {
	query := `SELECT key, value FROM store WHERE key LIKE ? ORDER BY position ASC`

	rows, err := r.db.Query(query, problemKeyPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to load problems: %w", err)
	}
	defer rows.Close()

	problems := make([]models.Problem, 0)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan problem row: %w", err)
		}

		var p models.Problem
		if err := json.Unmarshal([]byte(value), &p); err != nil {
			r.logger.Warn("skipping corrupted problem record",
				zap.String("key", key),
				zap.Error(err))
			continue
		}
		problems = append(problems, p)
	}

	return problems, rows.Err()
}

// SaveProblems replaces the stored collection with the given one,
// preserving its order. The write is transactional so a failure never
// leaves a half-replaced collection behind.
func (r *StoreRepository) SaveProblems(problems []models.Problem) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM store WHERE key LIKE ?`, problemKeyPattern); err != nil {
		return fmt.Errorf("failed to clear problems: %w", err)
	}

	upsert := r.db.Dialect.UpsertStore()
	for i, p := range problems {
		value, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to serialize problem %s: %w", p.ID, err)
		}
		if _, err := tx.Exec(upsert, problemKey(p.ID), string(value), i); err != nil {
			return fmt.Errorf("failed to save problem %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// LoadStats reads the stats aggregate, returning zeroed defaults on first
// run. The level is always re-derived from the XP; the persisted value is
// never trusted.
func (r *StoreRepository) LoadStats() (models.UserStats, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM store WHERE key = ?`, statsKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NewUserStats(), nil
		}
		return models.UserStats{}, fmt.Errorf("failed to load stats: %w", err)
	}

	var stats models.UserStats
	if err := json.Unmarshal([]byte(value), &stats); err != nil {
		r.logger.Warn("stats record corrupted, starting from defaults", zap.Error(err))
		return models.NewUserStats(), nil
	}

	if stats.Badges == nil {
		stats.Badges = []models.BadgeID{}
	}
	stats.Level = scoring.LevelForXP(stats.XP)

	return stats, nil
}

// SaveStats writes the stats aggregate.
func (r *StoreRepository) SaveStats(stats models.UserStats) error {
	value, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to serialize stats: %w", err)
	}

	if _, err := r.db.Exec(r.db.Dialect.UpsertStore(), statsKey, string(value), 0); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	return nil
}

func problemKey(id string) string {
	return problemKeyPrefix + id
}
