package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tidybook/tidybook/internal/domain"
)

var _ domain.ConfigRepository = (*ConfigRepository)(nil)

// ConfigRepository implements domain.ConfigRepository using SQLite.
type ConfigRepository struct {
	db *sql.DB
}

// NewConfigRepository wraps a migrated database connection.
func NewConfigRepository(db *sql.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

func (r *ConfigRepository) GetAll(ctx context.Context) (map[string]float64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM pricing_config`)
	if err != nil {
		return nil, fmt.Errorf("querying pricing config: %w", err)
	}
	defer rows.Close()

	values := make(map[string]float64)
	for rows.Next() {
		var key string
		var value float64
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning pricing config: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pricing config: %w", err)
	}
	return values, nil
}

func (r *ConfigRepository) Set(ctx context.Context, key string, value float64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO pricing_config (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("setting pricing config %q: %w", key, err)
	}
	return nil
}
