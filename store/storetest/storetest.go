// Package storetest holds the conformance suite every business store
// backend runs against.
package storetest

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/xraph/prospect"
	"github.com/xraph/prospect/business"
	"github.com/xraph/prospect/store"
)

// Factory returns a migrated, empty store. The factory owns cleanup.
type Factory func(t *testing.T) store.Store

// Run executes the conformance suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("Ping", func(t *testing.T) {
		s := newStore(t)
		if err := s.Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})

	t.Run("MigrateIdempotent", func(t *testing.T) {
		s := newStore(t)
		if err := s.Migrate(context.Background()); err != nil {
			t.Fatalf("second migrate: %v", err)
		}
	})

	t.Run("CreateAndGet", func(t *testing.T) { testCreateAndGet(t, newStore(t)) })
	t.Run("CreateDuplicate", func(t *testing.T) { testCreateDuplicate(t, newStore(t)) })
	t.Run("GetNotFound", func(t *testing.T) { testGetNotFound(t, newStore(t)) })
	t.Run("UpdateRoundTrip", func(t *testing.T) { testUpdateRoundTrip(t, newStore(t)) })
	t.Run("UpdateVersionGuard", func(t *testing.T) { testUpdateVersionGuard(t, newStore(t)) })
	t.Run("UpdateNotFound", func(t *testing.T) { testUpdateNotFound(t, newStore(t)) })
	t.Run("ConcurrentUpdate", func(t *testing.T) { testConcurrentUpdate(t, newStore(t)) })
}

func newBusiness() *business.Business {
	return business.New("12-3456789", "Acme Diner")
}

func testCreateAndGet(t *testing.T, s store.Store) {
	ctx := context.Background()
	b := newBusiness()
	if err := s.CreateBusiness(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetBusiness(ctx, b.FEIN)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FEIN != b.FEIN || got.Name != b.Name {
		t.Errorf("identity = %q/%q", got.FEIN, got.Name)
	}
	if got.Status != business.StatusNew || got.Version != 1 {
		t.Errorf("status=%q version=%d", got.Status, got.Version)
	}
	if got.Industry != "" || got.Contact != nil {
		t.Errorf("new business carries industry=%q contact=%v", got.Industry, got.Contact)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at not persisted")
	}
}

func testCreateDuplicate(t *testing.T, s store.Store) {
	ctx := context.Background()
	if err := s.CreateBusiness(ctx, newBusiness()); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := newBusiness()
	dup.Name = "Someone Else"
	if err := s.CreateBusiness(ctx, dup); !errors.Is(err, prospect.ErrBusinessExists) {
		t.Fatalf("expected ErrBusinessExists, got %v", err)
	}

	got, err := s.GetBusiness(ctx, dup.FEIN)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Acme Diner" {
		t.Errorf("duplicate overwrote record: %q", got.Name)
	}
}

func testGetNotFound(t *testing.T, s store.Store) {
	if _, err := s.GetBusiness(context.Background(), "00-0000000"); !errors.Is(err, prospect.ErrBusinessNotFound) {
		t.Fatalf("expected ErrBusinessNotFound, got %v", err)
	}
}

func testUpdateRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()
	b := newBusiness()
	if err := s.CreateBusiness(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}

	b.Industry = "restaurants"
	b.Contact = &business.Contact{Name: "Jane Doe", Phone: "555-0100"}
	b.Status = business.StatusSalesApproved
	b.Version = 2
	if err := s.UpdateBusiness(ctx, b, 1); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.GetBusiness(ctx, b.FEIN)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Industry != "restaurants" || got.Status != business.StatusSalesApproved || got.Version != 2 {
		t.Errorf("got industry=%q status=%q version=%d", got.Industry, got.Status, got.Version)
	}
	if got.Contact == nil || *got.Contact != *b.Contact {
		t.Errorf("contact = %+v", got.Contact)
	}
	if got.Name != "Acme Diner" {
		t.Errorf("name changed: %q", got.Name)
	}
}

func testUpdateVersionGuard(t *testing.T, s store.Store) {
	ctx := context.Background()
	b := newBusiness()
	if err := s.CreateBusiness(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}

	stale := b.Clone()
	stale.Status = business.StatusMarketDeclined
	stale.Version = 6
	if err := s.UpdateBusiness(ctx, stale, 5); !errors.Is(err, prospect.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	got, _ := s.GetBusiness(ctx, b.FEIN)
	if got.Status != business.StatusNew || got.Version != 1 {
		t.Errorf("stale write applied: status=%q version=%d", got.Status, got.Version)
	}
}

func testUpdateNotFound(t *testing.T, s store.Store) {
	b := newBusiness()
	b.Version = 2
	if err := s.UpdateBusiness(context.Background(), b, 1); !errors.Is(err, prospect.ErrBusinessNotFound) {
		t.Fatalf("expected ErrBusinessNotFound, got %v", err)
	}
}

// testConcurrentUpdate races writers on the same version; exactly one wins.
func testConcurrentUpdate(t *testing.T, s store.Store) {
	ctx := context.Background()
	b := newBusiness()
	if err := s.CreateBusiness(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}

	const writers = 8
	var (
		wg        sync.WaitGroup
		wins      atomic.Int32
		conflicts atomic.Int32
	)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next := b.Clone()
			next.Industry = "stores"
			next.Status = business.StatusMarketApproved
			next.Version = 2
			switch err := s.UpdateBusiness(ctx, next, 1); {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, prospect.ErrVersionConflict):
				conflicts.Add(1)
			default:
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 || conflicts.Load() != writers-1 {
		t.Errorf("wins=%d conflicts=%d", wins.Load(), conflicts.Load())
	}
}
