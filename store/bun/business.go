package bunstore

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/prospect"
	"github.com/xraph/prospect/business"
)

// GetBusiness retrieves a business by FEIN.
func (s *Store) GetBusiness(ctx context.Context, fein string) (*business.Business, error) {
	m := new(businessModel)
	err := s.db.NewSelect().Model(m).
		Where("fein = ?", fein).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, storeErr("get business", err)
	}
	return fromBusinessModel(m), nil
}

// CreateBusiness persists a new business.
func (s *Store) CreateBusiness(ctx context.Context, b *business.Business) error {
	_, err := s.db.NewInsert().Model(toBusinessModel(b)).Exec(ctx)
	if err != nil {
		return storeErr("create business", err)
	}
	return nil
}

// UpdateBusiness persists the mutable fields of b when the stored version
// equals expectedVersion.
func (s *Store) UpdateBusiness(ctx context.Context, b *business.Business, expectedVersion int64) error {
	m := toBusinessModel(b)
	m.UpdatedAt = time.Now().UTC()

	res, err := s.db.NewUpdate().Model(m).
		Column("industry", "contact", "status", "version", "updated_at").
		WherePK().
		Where("version = ?", expectedVersion).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("prospect/bun: update business: %w", err)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows == 1 {
		b.UpdatedAt = m.UpdatedAt
		return nil
	}

	exists, err := s.db.NewSelect().Model((*businessModel)(nil)).
		Where("fein = ?", b.FEIN).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("prospect/bun: update business: %w", err)
	}
	if !exists {
		return prospect.ErrBusinessNotFound
	}
	return prospect.ErrVersionConflict
}
