package sqlite_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/xraph/prospect"
	"github.com/xraph/prospect/business"
	"github.com/xraph/prospect/store"
	"github.com/xraph/prospect/store/sqlite"
	"github.com/xraph/prospect/store/storetest"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	ctx := context.Background()

	dsn := "file:" + filepath.Join(t.TempDir(), "prospect.db")
	s, err := sqlite.New(ctx, dsn, sqlite.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return newStore(t) })
}

func TestStore_NullColumns(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	b := business.New("12-3456789", "Acme Diner")
	if err := s.CreateBusiness(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}

	var industry, contact any
	err := s.DB().QueryRowContext(ctx,
		`SELECT industry, contact FROM businesses WHERE fein = ?`, b.FEIN,
	).Scan(&industry, &contact)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if industry != nil || contact != nil {
		t.Errorf("expected NULL columns, got industry=%v contact=%v", industry, contact)
	}
}

func TestStore_ClosedHandle(t *testing.T) {
	s := newStore(t)
	_ = s.Close()

	_, err := s.GetBusiness(context.Background(), "12-3456789")
	if err == nil || errors.Is(err, prospect.ErrBusinessNotFound) {
		t.Fatalf("expected driver error, got %v", err)
	}
}
