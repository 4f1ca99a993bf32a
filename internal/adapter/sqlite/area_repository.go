package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tidybook/tidybook/internal/domain"
)

var _ domain.AreaLookup = (*AreaRepository)(nil)

// AreaRepository implements domain.AreaLookup using SQLite. Unknown zips
// are not an error; they resolve to an unavailable area.
type AreaRepository struct {
	db *sql.DB
}

// NewAreaRepository wraps a migrated database connection.
func NewAreaRepository(db *sql.DB) *AreaRepository {
	return &AreaRepository{db: db}
}

func (r *AreaRepository) CheckAvailability(ctx context.Context, zip string) (domain.Availability, error) {
	var status, city, state string

	err := r.db.QueryRowContext(ctx,
		`SELECT status, city, state FROM service_areas WHERE zip = ?`, zip,
	).Scan(&status, &city, &state)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Availability{Status: domain.AreaUnavailable}, nil
		}
		return domain.Availability{}, fmt.Errorf("looking up service area: %w", err)
	}

	return domain.Availability{
		Status: domain.AreaStatus(status),
		City:   city,
		State:  state,
	}, nil
}
