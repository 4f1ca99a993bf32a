package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tidybook/tidybook/internal/domain"
)

// Compile-time check: PromotionRepository implements domain.PromotionRepository.
var _ domain.PromotionRepository = (*PromotionRepository)(nil)

// PromotionRepository implements domain.PromotionRepository using SQLite.
type PromotionRepository struct {
	db *sql.DB
}

// NewPromotionRepository wraps a migrated database connection.
func NewPromotionRepository(db *sql.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

func (r *PromotionRepository) FindByCode(ctx context.Context, code string) (domain.Promotion, error) {
	var p domain.Promotion
	var discountType, createdAt string
	var active int
	var expiresAt sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT code, discount_type, value, active, current_uses, max_uses, expires_at, created_at
		 FROM promotions WHERE code = ?`, code,
	).Scan(&p.Code, &discountType, &p.Value, &active, &p.CurrentUses, &p.MaxUses, &expiresAt, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Promotion{}, domain.ErrPromotionNotFound
		}
		return domain.Promotion{}, fmt.Errorf("scanning promotion: %w", err)
	}

	p.Type = domain.DiscountType(discountType)
	p.Active = active != 0
	p.ExpiresAt = parseNullableTime(expiresAt)
	p.CreatedAt, _ = time.Parse(timeFormat, createdAt)

	return p, nil
}

func (r *PromotionRepository) Insert(ctx context.Context, p domain.Promotion) error {
	active := 0
	if p.Active {
		active = 1
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO promotions (code, discount_type, value, active, current_uses, max_uses, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Code, string(p.Type), p.Value, active, p.CurrentUses, p.MaxUses,
		nullableTime(p.ExpiresAt), p.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.CodeConflictError{Code: p.Code}
		}
		return fmt.Errorf("inserting promotion: %w", err)
	}
	return nil
}

// IncrementUsage re-checks every redemption constraint in the same
// statement that bumps the counter, so two submissions racing for the
// last remaining use cannot both succeed.
func (r *PromotionRepository) IncrementUsage(ctx context.Context, code string, now time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE promotions SET current_uses = current_uses + 1
		 WHERE code = ?
		   AND active = 1
		   AND current_uses < max_uses
		   AND (expires_at IS NULL OR expires_at >= ?)`,
		code, now.UTC().Format(timeFormat),
	)
	if err != nil {
		return false, fmt.Errorf("incrementing promotion usage: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}
	return rows > 0, nil
}
