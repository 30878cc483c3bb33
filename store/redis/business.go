package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xraph/prospect"
	"github.com/xraph/prospect/business"
)

// GetBusiness retrieves a business by FEIN.
func (s *Store) GetBusiness(ctx context.Context, fein string) (*business.Business, error) {
	vals, err := s.client.HGetAll(ctx, businessKey(fein)).Result()
	if err != nil {
		return nil, fmt.Errorf("prospect/redis: get business: %w", err)
	}
	if len(vals) == 0 {
		return nil, prospect.ErrBusinessNotFound
	}
	return mapToBusiness(vals)
}

// CreateBusiness persists a new business. The existence check and the write
// run under WATCH, so two racing creates cannot both succeed.
func (s *Store) CreateBusiness(ctx context.Context, b *business.Business) error {
	key := businessKey(b.FEIN)
	fields, err := businessToMap(b)
	if err != nil {
		return fmt.Errorf("prospect/redis: encode business: %w", err)
	}

	err = s.client.Watch(ctx, func(tx *goredis.Tx) error {
		exists, existsErr := tx.Exists(ctx, key).Result()
		if existsErr != nil {
			return existsErr
		}
		if exists > 0 {
			return prospect.ErrBusinessExists
		}
		_, pipeErr := tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			return nil
		})
		return pipeErr
	}, key)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, prospect.ErrBusinessExists), errors.Is(err, goredis.TxFailedErr):
		return prospect.ErrBusinessExists
	default:
		return fmt.Errorf("prospect/redis: create business: %w", err)
	}
}

// UpdateBusiness persists the mutable fields of b when the stored version
// equals expectedVersion.
func (s *Store) UpdateBusiness(ctx context.Context, b *business.Business, expectedVersion int64) error {
	key := businessKey(b.FEIN)
	now := time.Now().UTC()

	err := s.client.Watch(ctx, func(tx *goredis.Tx) error {
		raw, getErr := tx.HGet(ctx, key, "version").Result()
		if errors.Is(getErr, goredis.Nil) {
			return prospect.ErrBusinessNotFound
		}
		if getErr != nil {
			return getErr
		}
		current, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return fmt.Errorf("parse version: %w", parseErr)
		}
		if current != expectedVersion {
			return prospect.ErrVersionConflict
		}

		set, del, encErr := mutableFields(b, now)
		if encErr != nil {
			return encErr
		}
		_, pipeErr := tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.HSet(ctx, key, set)
			if len(del) > 0 {
				pipe.HDel(ctx, key, del...)
			}
			return nil
		})
		return pipeErr
	}, key)

	switch {
	case err == nil:
		b.UpdatedAt = now
		return nil
	case errors.Is(err, prospect.ErrBusinessNotFound), errors.Is(err, prospect.ErrVersionConflict):
		return err
	case errors.Is(err, goredis.TxFailedErr):
		return prospect.ErrVersionConflict
	default:
		return fmt.Errorf("prospect/redis: update business: %w", err)
	}
}

// ── serialization ──

func businessToMap(b *business.Business) (map[string]interface{}, error) {
	m := map[string]interface{}{
		"fein":       b.FEIN,
		"name":       b.Name,
		"created_at": b.CreatedAt.Format(time.RFC3339Nano),
	}
	set, _, err := mutableFields(b, b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	for k, v := range set {
		m[k] = v
	}
	return m, nil
}

// mutableFields returns the hash fields a progress write sets, and the
// optional fields it must delete because b no longer carries them.
func mutableFields(b *business.Business, updatedAt time.Time) (map[string]interface{}, []string, error) {
	set := map[string]interface{}{
		"status":     string(b.Status),
		"version":    strconv.FormatInt(b.Version, 10),
		"updated_at": updatedAt.Format(time.RFC3339Nano),
	}
	var del []string

	if b.Industry != "" {
		set["industry"] = b.Industry
	} else {
		del = append(del, "industry")
	}

	if b.Contact != nil {
		data, err := json.Marshal(b.Contact)
		if err != nil {
			return nil, nil, fmt.Errorf("encode contact: %w", err)
		}
		set["contact"] = string(data)
	} else {
		del = append(del, "contact")
	}
	return set, del, nil
}

func mapToBusiness(m map[string]string) (*business.Business, error) {
	b := &business.Business{
		FEIN:     m["fein"],
		Name:     m["name"],
		Industry: m["industry"],
		Status:   business.Status(m["status"]),
	}

	var err error
	if b.Version, err = strconv.ParseInt(m["version"], 10, 64); err != nil {
		return nil, fmt.Errorf("prospect/redis: parse version: %w", err)
	}
	if b.CreatedAt, err = time.Parse(time.RFC3339Nano, m["created_at"]); err != nil {
		return nil, fmt.Errorf("prospect/redis: parse created_at: %w", err)
	}
	if b.UpdatedAt, err = time.Parse(time.RFC3339Nano, m["updated_at"]); err != nil {
		return nil, fmt.Errorf("prospect/redis: parse updated_at: %w", err)
	}

	if raw := m["contact"]; raw != "" {
		var c business.Contact
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("prospect/redis: decode contact: %w", err)
		}
		b.Contact = &c
	}
	return b, nil
}
