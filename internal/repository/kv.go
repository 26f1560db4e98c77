package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gdict/internal/logger"

	"github.com/Masterminds/squirrel"
)

const kvTable = "kv"

// KVRepository stores string values by key in SQLite
type KVRepository struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewKVRepository creates a new key/value repository
func NewKVRepository(db *sql.DB, log *logger.Logger) *KVRepository {
	log.Info("Key/value repository initialized")
	return &KVRepository{
		db:     db,
		logger: log,
	}
}

// Get returns the value stored under key; found is false when the key is absent
func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()

	query, args, err := squirrel.Select("value").
		From(kvTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("failed to build query: %w", err)
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	duration := time.Since(start)

	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Debug("No value for key '%s' (%v)", key, duration)
		return "", false, nil
	}
	if err != nil {
		r.logger.Error("Database query failed for key '%s': %v (%v)", key, err, duration)
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	r.logger.Debug("Value retrieved for key '%s': %d bytes (%v)", key, len(value), duration)
	return value, true, nil
}

// Set inserts or replaces the value stored under key
func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	start := time.Now()

	query, args, err := squirrel.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, squirrel.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	duration := time.Since(start)

	if err != nil {
		r.logger.Error("Database upsert failed for key '%s': %v (%v)", key, err, duration)
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	r.logger.Debug("Stored key '%s': %d bytes (%v)", key, len(value), duration)
	return nil
}

// Remove deletes key; removing an absent key is not an error
func (r *KVRepository) Remove(ctx context.Context, key string) error {
	start := time.Now()

	query, args, err := squirrel.Delete(kvTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Database delete failed for key '%s': %v (%v)", key, err, time.Since(start))
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}

	r.logger.Debug("Removed key '%s' (%v)", key, time.Since(start))
	return nil
}
