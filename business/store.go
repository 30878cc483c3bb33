package business

import "context"

// Store defines the persistence contract for businesses.
type Store interface {
	// GetBusiness retrieves a business by FEIN. Returns
	// prospect.ErrBusinessNotFound when absent.
	GetBusiness(ctx context.Context, fein string) (*Business, error)

	// CreateBusiness persists a new business. Returns
	// prospect.ErrBusinessExists when the FEIN is already taken.
	CreateBusiness(ctx context.Context, b *Business) error

	// UpdateBusiness persists the mutable fields of b (status, industry,
	// contact, version) only if the stored version equals expectedVersion.
	// Returns prospect.ErrVersionConflict on mismatch and
	// prospect.ErrBusinessNotFound when the record is absent.
	UpdateBusiness(ctx context.Context, b *Business, expectedVersion int64) error
}
