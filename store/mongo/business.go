package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/xraph/prospect"
	"github.com/xraph/prospect/business"
)

// GetBusiness retrieves a business by FEIN.
func (s *Store) GetBusiness(ctx context.Context, fein string) (*business.Business, error) {
	var m businessModel
	err := s.db.Collection(colBusinesses).FindOne(ctx, bson.M{"_id": fein}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, prospect.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("prospect/mongo: get business: %w", err)
	}
	return fromBusinessModel(&m), nil
}

// CreateBusiness persists a new business.
func (s *Store) CreateBusiness(ctx context.Context, b *business.Business) error {
	_, err := s.db.Collection(colBusinesses).InsertOne(ctx, toBusinessModel(b))
	if err != nil {
		if isDuplicateKey(err) {
			return prospect.ErrBusinessExists
		}
		return fmt.Errorf("prospect/mongo: create business: %w", err)
	}
	return nil
}

// UpdateBusiness persists the mutable fields of b when the stored version
// equals expectedVersion.
func (s *Store) UpdateBusiness(ctx context.Context, b *business.Business, expectedVersion int64) error {
	t := now()

	set := bson.M{
		"status":     string(b.Status),
		"version":    b.Version,
		"updated_at": t,
	}
	unset := bson.M{}
	if b.Industry != "" {
		set["industry"] = b.Industry
	} else {
		unset["industry"] = ""
	}
	if b.Contact != nil {
		c := *b.Contact
		set["contact"] = &c
	} else {
		unset["contact"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	col := s.db.Collection(colBusinesses)
	res, err := col.UpdateOne(ctx, bson.M{"_id": b.FEIN, "version": expectedVersion}, update)
	if err != nil {
		return fmt.Errorf("prospect/mongo: update business: %w", err)
	}
	if res.MatchedCount == 1 {
		b.UpdatedAt = t
		return nil
	}

	n, err := col.CountDocuments(ctx, bson.M{"_id": b.FEIN})
	if err != nil {
		return fmt.Errorf("prospect/mongo: update business: %w", err)
	}
	if n == 0 {
		return prospect.ErrBusinessNotFound
	}
	return prospect.ErrVersionConflict
}
