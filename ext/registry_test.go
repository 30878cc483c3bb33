package ext_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/xraph/prospect/business"
	"github.com/xraph/prospect/ext"
	"github.com/xraph/prospect/workflow"
)

// ──────────────────────────────────────────────────
// Test extensions
// ──────────────────────────────────────────────────

// allHooksExt implements every hook for testing.
type allHooksExt struct {
	calls []string
}

func (e *allHooksExt) Name() string { return "all-hooks" }

func (e *allHooksExt) OnBusinessCreated(_ context.Context, _ *business.Business) error {
	e.calls = append(e.calls, "OnBusinessCreated")
	return nil
}

func (e *allHooksExt) OnBusinessProgressed(_ context.Context, _ *business.Business, _ *workflow.Transition, _ time.Duration) error {
	e.calls = append(e.calls, "OnBusinessProgressed")
	return nil
}

func (e *allHooksExt) OnProgressRejected(_ context.Context, _ string, _ error) error {
	e.calls = append(e.calls, "OnProgressRejected")
	return nil
}

func (e *allHooksExt) OnDealClosed(_ context.Context, _ *business.Business) error {
	e.calls = append(e.calls, "OnDealClosed")
	return nil
}

func (e *allHooksExt) OnShutdown(_ context.Context) error {
	e.calls = append(e.calls, "OnShutdown")
	return nil
}

// createdOnlyExt only implements BusinessCreated.
type createdOnlyExt struct {
	calls []string
}

func (e *createdOnlyExt) Name() string { return "created-only" }

func (e *createdOnlyExt) OnBusinessCreated(_ context.Context, _ *business.Business) error {
	e.calls = append(e.calls, "OnBusinessCreated")
	return nil
}

// failingExt returns errors from hooks.
type failingExt struct{}

func (e *failingExt) Name() string { return "failing" }

func (e *failingExt) OnBusinessCreated(_ context.Context, _ *business.Business) error {
	return errors.New("boom")
}

func (e *failingExt) OnShutdown(_ context.Context) error {
	return errors.New("shutdown boom")
}

// ──────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────

func TestRegistry_Register(t *testing.T) {
	r := ext.NewRegistry(slog.Default())
	r.Register(&allHooksExt{})

	if got := len(r.Extensions()); got != 1 {
		t.Fatalf("expected 1 extension, got %d", got)
	}
	if got := r.Extensions()[0].Name(); got != "all-hooks" {
		t.Fatalf("expected name 'all-hooks', got %q", got)
	}
}

func TestRegistry_EmitFiresOnlyImplementors(t *testing.T) {
	r := ext.NewRegistry(slog.Default())
	all := &allHooksExt{}
	co := &createdOnlyExt{}
	r.Register(all)
	r.Register(co)

	ctx := context.Background()
	b := business.New("123456789", "Acme")

	r.EmitBusinessCreated(ctx, b)
	if len(all.calls) != 1 || len(co.calls) != 1 {
		t.Fatalf("expected one call each, got all=%v co=%v", all.calls, co.calls)
	}

	r.EmitProgressRejected(ctx, b.FEIN, errors.New("nope"))
	if len(all.calls) != 2 || all.calls[1] != "OnProgressRejected" {
		t.Fatalf("all: expected OnProgressRejected as 2nd, got %v", all.calls)
	}
	if len(co.calls) != 1 {
		t.Fatalf("co: should still have 1 call, got %v", co.calls)
	}
}

func TestRegistry_ProgressedClosesDeal(t *testing.T) {
	tests := []struct {
		name string
		to   business.Status
		want []string
	}{
		{"won", business.StatusWon, []string{"OnBusinessProgressed", "OnDealClosed"}},
		{"lost", business.StatusLost, []string{"OnBusinessProgressed", "OnDealClosed"}},
		{"sales approved", business.StatusSalesApproved, []string{"OnBusinessProgressed"}},
		{"declined", business.StatusMarketDeclined, []string{"OnBusinessProgressed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ext.NewRegistry(slog.Default())
			all := &allHooksExt{}
			r.Register(all)

			b := business.New("123456789", "Acme")
			b.Status = tt.to
			r.EmitBusinessProgressed(context.Background(), b, &workflow.Transition{To: tt.to}, time.Millisecond)

			if len(all.calls) != len(tt.want) {
				t.Fatalf("calls = %v, want %v", all.calls, tt.want)
			}
			for i := range tt.want {
				if all.calls[i] != tt.want[i] {
					t.Errorf("call[%d] = %q, want %q", i, all.calls[i], tt.want[i])
				}
			}
		})
	}
}

func TestRegistry_HookErrorsLoggedNotPropagated(t *testing.T) {
	r := ext.NewRegistry(slog.Default())
	all := &allHooksExt{}

	// Register failing first, then all-hooks. Both should be called.
	r.Register(&failingExt{})
	r.Register(all)

	ctx := context.Background()
	r.EmitBusinessCreated(ctx, business.New("1", "A"))
	r.EmitShutdown(ctx)

	if len(all.calls) != 2 {
		t.Fatalf("all: expected 2 calls despite failing ext, got %v", all.calls)
	}
}

func TestRegistry_EmptyRegistryNoOp(_ *testing.T) {
	r := ext.NewRegistry(slog.Default())
	ctx := context.Background()
	b := business.New("1", "A")

	r.EmitBusinessCreated(ctx, b)
	r.EmitBusinessProgressed(ctx, b, &workflow.Transition{To: business.StatusWon}, time.Second)
	r.EmitProgressRejected(ctx, "1", errors.New("x"))
	r.EmitDealClosed(ctx, b)
	r.EmitShutdown(ctx)
}
