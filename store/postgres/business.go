package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xraph/prospect"
	"github.com/xraph/prospect/business"
)

// GetBusiness retrieves a business by FEIN.
func (s *Store) GetBusiness(ctx context.Context, fein string) (*business.Business, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT fein, name, industry, contact, status, version, created_at, updated_at
		FROM businesses
		WHERE fein = $1`,
		fein,
	)

	b, err := scanBusiness(row)
	if err != nil {
		if isNoRows(err) {
			return nil, prospect.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("prospect/postgres: get business: %w", err)
	}
	return b, nil
}

// CreateBusiness persists a new business.
func (s *Store) CreateBusiness(ctx context.Context, b *business.Business) error {
	contact, err := contactJSON(b.Contact)
	if err != nil {
		return fmt.Errorf("prospect/postgres: encode contact: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO businesses (
			fein, name, industry, contact, status, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.FEIN, b.Name, nullString(b.Industry), contact, string(b.Status),
		b.Version, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return prospect.ErrBusinessExists
		}
		return fmt.Errorf("prospect/postgres: create business: %w", err)
	}
	return nil
}

// UpdateBusiness persists the mutable fields of b when the stored version
// equals expectedVersion. Name and created_at never change.
func (s *Store) UpdateBusiness(ctx context.Context, b *business.Business, expectedVersion int64) error {
	contact, err := contactJSON(b.Contact)
	if err != nil {
		return fmt.Errorf("prospect/postgres: encode contact: %w", err)
	}

	updatedAt := b.UpdatedAt
	err = s.pool.QueryRow(ctx, `
		UPDATE businesses SET
			industry = $2, contact = $3, status = $4, version = $5,
			updated_at = NOW()
		WHERE fein = $1 AND version = $6
		RETURNING updated_at`,
		b.FEIN, nullString(b.Industry), contact, string(b.Status),
		b.Version, expectedVersion,
	).Scan(&updatedAt)
	if err == nil {
		b.UpdatedAt = updatedAt
		return nil
	}
	if !isNoRows(err) {
		return fmt.Errorf("prospect/postgres: update business: %w", err)
	}

	// Nothing matched: tell a missing record from a stale version.
	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM businesses WHERE fein = $1)`, b.FEIN,
	).Scan(&exists); err != nil {
		return fmt.Errorf("prospect/postgres: update business: %w", err)
	}
	if !exists {
		return prospect.ErrBusinessNotFound
	}
	return prospect.ErrVersionConflict
}

func scanBusiness(row pgx.Row) (*business.Business, error) {
	var (
		b        business.Business
		industry *string
		contact  []byte
		status   string
	)
	if err := row.Scan(
		&b.FEIN, &b.Name, &industry, &contact, &status,
		&b.Version, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if industry != nil {
		b.Industry = *industry
	}
	b.Status = business.Status(status)

	c, err := parseContact(contact)
	if err != nil {
		return nil, fmt.Errorf("decode contact: %w", err)
	}
	b.Contact = c
	return &b, nil
}
