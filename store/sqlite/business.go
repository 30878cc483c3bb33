package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xraph/prospect"
	"github.com/xraph/prospect/business"
)

// GetBusiness retrieves a business by FEIN.
func (s *Store) GetBusiness(ctx context.Context, fein string) (*business.Business, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT fein, name, industry, contact, status, version, created_at, updated_at
		FROM businesses
		WHERE fein = ?`,
		fein,
	)

	b, err := scanBusiness(row)
	if err != nil {
		if isNoRows(err) {
			return nil, prospect.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("prospect/sqlite: get business: %w", err)
	}
	return b, nil
}

// CreateBusiness persists a new business.
func (s *Store) CreateBusiness(ctx context.Context, b *business.Business) error {
	contact, err := contactText(b.Contact)
	if err != nil {
		return fmt.Errorf("prospect/sqlite: encode contact: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO businesses (
			fein, name, industry, contact, status, version, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.FEIN, b.Name, nullString(b.Industry), contact, string(b.Status),
		b.Version, formatTime(b.CreatedAt), formatTime(b.UpdatedAt),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return prospect.ErrBusinessExists
		}
		return fmt.Errorf("prospect/sqlite: create business: %w", err)
	}
	return nil
}

// UpdateBusiness persists the mutable fields of b when the stored version
// equals expectedVersion.
func (s *Store) UpdateBusiness(ctx context.Context, b *business.Business, expectedVersion int64) error {
	contact, err := contactText(b.Contact)
	if err != nil {
		return fmt.Errorf("prospect/sqlite: encode contact: %w", err)
	}
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE businesses SET
			industry = ?, contact = ?, status = ?, version = ?, updated_at = ?
		WHERE fein = ? AND version = ?`,
		nullString(b.Industry), contact, string(b.Status), b.Version, formatTime(now),
		b.FEIN, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("prospect/sqlite: update business: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("prospect/sqlite: update business: %w", err)
	}
	if rows == 1 {
		b.UpdatedAt = now
		return nil
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM businesses WHERE fein = ?)`, b.FEIN,
	).Scan(&exists); err != nil {
		return fmt.Errorf("prospect/sqlite: update business: %w", err)
	}
	if !exists {
		return prospect.ErrBusinessNotFound
	}
	return prospect.ErrVersionConflict
}

func scanBusiness(row *sql.Row) (*business.Business, error) {
	var (
		b                    business.Business
		industry, contact    sql.NullString
		status               string
		createdAt, updatedAt string
	)
	if err := row.Scan(
		&b.FEIN, &b.Name, &industry, &contact, &status,
		&b.Version, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	b.Industry = industry.String
	b.Status = business.Status(status)

	c, err := parseContact(contact)
	if err != nil {
		return nil, fmt.Errorf("decode contact: %w", err)
	}
	b.Contact = c

	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &b, nil
}
