package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tidybook/tidybook/internal/domain"
)

// Compile-time check: LeadRepository implements domain.LeadRepository.
var _ domain.LeadRepository = (*LeadRepository)(nil)

// LeadRepository implements domain.LeadRepository using SQLite.
type LeadRepository struct {
	db *sql.DB
}

// NewLeadRepository wraps a migrated database connection.
func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, l domain.Lead) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO leads (name, email, phone, service_type, zip, city, service_date, total_price, status, source, details, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Name, l.Email, l.Phone, string(l.ServiceType), l.Zip, l.City,
		nullableTime(l.ServiceDate), l.TotalPrice, string(l.Status), string(l.Source), l.Details,
		l.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting lead: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading lead id: %w", err)
	}
	return id, nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id int64) (domain.Lead, error) {
	return r.scanLead(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, service_type, zip, city, service_date, total_price, status, source, details, created_at
		 FROM leads WHERE id = ?`, id,
	))
}

func (r *LeadRepository) List(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	query := `SELECT id, name, email, phone, service_type, zip, city, service_date, total_price, status, source, details, created_at FROM leads`
	var args []any

	if filter.Status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*filter.Status))
	}

	query += ` ORDER BY created_at DESC, id DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET.
		query += ` LIMIT -1`
	}

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		l, err := r.scanLeadFromRows(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}

	return leads, rows.Err()
}

func (r *LeadRepository) Update(ctx context.Context, l domain.Lead) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE leads SET name = ?, email = ?, phone = ?, service_type = ?, zip = ?, city = ?,
		 service_date = ?, total_price = ?, status = ?, details = ?
		 WHERE id = ?`,
		l.Name, l.Email, l.Phone, string(l.ServiceType), l.Zip, l.City,
		nullableTime(l.ServiceDate), l.TotalPrice, string(l.Status), l.Details, l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating lead: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrLeadNotFound
	}

	return nil
}

// scanLead scans a single row from QueryRow into a domain.Lead.
func (r *LeadRepository) scanLead(row *sql.Row) (domain.Lead, error) {
	var l domain.Lead
	var serviceType, status, source, createdAt string
	var serviceDate sql.NullString

	err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &serviceType, &l.Zip, &l.City,
		&serviceDate, &l.TotalPrice, &status, &source, &l.Details, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Lead{}, domain.ErrLeadNotFound
		}
		return domain.Lead{}, fmt.Errorf("scanning lead: %w", err)
	}

	l.ServiceType = domain.ServiceType(serviceType)
	l.Status = domain.LeadStatus(status)
	l.Source = domain.LeadSource(source)
	l.ServiceDate = parseNullableTime(serviceDate)
	l.CreatedAt, _ = time.Parse(timeFormat, createdAt)

	return l, nil
}

// scanLeadFromRows scans a single row from Rows (used in List).
func (r *LeadRepository) scanLeadFromRows(rows *sql.Rows) (domain.Lead, error) {
	var l domain.Lead
	var serviceType, status, source, createdAt string
	var serviceDate sql.NullString

	err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &serviceType, &l.Zip, &l.City,
		&serviceDate, &l.TotalPrice, &status, &source, &l.Details, &createdAt)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("scanning lead row: %w", err)
	}

	l.ServiceType = domain.ServiceType(serviceType)
	l.Status = domain.LeadStatus(status)
	l.Source = domain.LeadSource(source)
	l.ServiceDate = parseNullableTime(serviceDate)
	l.CreatedAt, _ = time.Parse(timeFormat, createdAt)

	return l, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeFormat)
}

func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(timeFormat, s.String)
	if err != nil {
		return nil
	}
	return &t
}
