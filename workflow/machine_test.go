package workflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/xraph/prospect"
	"github.com/xraph/prospect/business"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMachine(policy prospect.OutcomePolicy) *Machine {
	cfg := prospect.DefaultConfig()
	cfg.Outcome = policy
	return NewMachine(cfg, WithMachineLogger(testLogger()))
}

func at(status business.Status) *business.Business {
	b := business.New("123456789", "Acme")
	b.Status = status
	return b
}

func TestAdvance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name     string
		policy   prospect.OutcomePolicy
		from     business.Status
		in       Input
		wantTo   business.Status
		wantMsg  string
		wantErr  error
		industry string
		contact  bool
	}{
		{
			name:     "restaurants approved",
			from:     business.StatusNew,
			in:       Input{Industry: "restaurants"},
			wantTo:   business.StatusMarketApproved,
			wantMsg:  MsgMarketApproved,
			industry: "restaurants",
		},
		{
			name:     "stores approved",
			from:     business.StatusNew,
			in:       Input{Industry: "stores"},
			wantTo:   business.StatusMarketApproved,
			wantMsg:  MsgMarketApproved,
			industry: "stores",
		},
		{
			name:    "wholesale declined without industry",
			from:    business.StatusNew,
			in:      Input{Industry: "wholesale"},
			wantTo:  business.StatusMarketDeclined,
			wantMsg: MsgMarketDeclined,
		},
		{
			name:    "industry match is exact",
			from:    business.StatusNew,
			in:      Input{Industry: "Restaurants"},
			wantTo:  business.StatusMarketDeclined,
			wantMsg: MsgMarketDeclined,
		},
		{
			name:    "missing industry",
			from:    business.StatusNew,
			in:      Input{},
			wantErr: prospect.ErrIndustryRequired,
		},
		{
			name:    "contact captured",
			from:    business.StatusMarketApproved,
			in:      Input{Contact: &business.Contact{Name: "Jane", Phone: "555"}},
			wantTo:  business.StatusSalesApproved,
			wantMsg: MsgSalesApproved,
			contact: true,
		},
		{
			name:    "missing contact",
			from:    business.StatusMarketApproved,
			in:      Input{Industry: "restaurants"},
			wantErr: prospect.ErrContactRequired,
		},
		{
			name:    "contact without phone",
			from:    business.StatusMarketApproved,
			in:      Input{Contact: &business.Contact{Name: "Jane"}},
			wantErr: prospect.ErrContactRequired,
		},
		{
			name:    "deal won",
			from:    business.StatusSalesApproved,
			in:      Input{Status: "Won"},
			wantTo:  business.StatusWon,
			wantMsg: MsgWon,
		},
		{
			name:    "deal lost",
			from:    business.StatusSalesApproved,
			in:      Input{Status: "Lost"},
			wantTo:  business.StatusLost,
			wantMsg: MsgLost,
		},
		{
			name:    "lenient empty outcome is lost",
			from:    business.StatusSalesApproved,
			in:      Input{},
			wantTo:  business.StatusLost,
			wantMsg: MsgLost,
		},
		{
			name:    "lenient typo is lost",
			from:    business.StatusSalesApproved,
			in:      Input{Status: "won"},
			wantTo:  business.StatusLost,
			wantMsg: MsgLost,
		},
		{
			name:    "strict typo rejected",
			policy:  prospect.OutcomeStrict,
			from:    business.StatusSalesApproved,
			in:      Input{Status: "won"},
			wantErr: prospect.ErrUnknownOutcome,
		},
		{
			name:    "strict lost accepted",
			policy:  prospect.OutcomeStrict,
			from:    business.StatusSalesApproved,
			in:      Input{Status: "Lost"},
			wantTo:  business.StatusLost,
			wantMsg: MsgLost,
		},
		{
			name:    "declined is terminal",
			from:    business.StatusMarketDeclined,
			in:      Input{Industry: "restaurants"},
			wantErr: prospect.ErrTerminalState,
		},
		{
			name:    "won is terminal",
			from:    business.StatusWon,
			in:      Input{Status: "Won"},
			wantErr: prospect.ErrTerminalState,
		},
		{
			name:    "lost is terminal",
			from:    business.StatusLost,
			in:      Input{Status: "Won"},
			wantErr: prospect.ErrTerminalState,
		},
		{
			name:    "unknown status is terminal",
			from:    business.Status("Archived"),
			in:      Input{Industry: "restaurants"},
			wantErr: prospect.ErrTerminalState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newMachine(tt.policy)
			b := at(tt.from)

			tr, err := m.Advance(ctx, b, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Advance() error = %v, want %v", err, tt.wantErr)
				}
				if b.Status != tt.from {
					t.Errorf("status mutated on error: %q", b.Status)
				}
				if b.Industry != "" || b.Contact != nil {
					t.Errorf("fields mutated on error: %+v", b)
				}
				return
			}
			if err != nil {
				t.Fatalf("Advance() unexpected error: %v", err)
			}
			if tr.From != tt.from || tr.To != tt.wantTo {
				t.Errorf("transition = %s->%s, want %s->%s", tr.From, tr.To, tt.from, tt.wantTo)
			}
			if tr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", tr.Message, tt.wantMsg)
			}
			if b.Status != tt.wantTo {
				t.Errorf("business status = %q, want %q", b.Status, tt.wantTo)
			}
			if b.Industry != tt.industry {
				t.Errorf("industry = %q, want %q", b.Industry, tt.industry)
			}
			if (b.Contact != nil) != tt.contact {
				t.Errorf("contact set = %v, want %v", b.Contact != nil, tt.contact)
			}
			if !CanTransition(tr.From, tr.To) {
				t.Errorf("transition %s->%s is not an edge of the graph", tr.From, tr.To)
			}
		})
	}
}

func TestValidationErrorsWrapInvalidInput(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		prospect.ErrIndustryRequired,
		prospect.ErrContactRequired,
		prospect.ErrUnknownOutcome,
	} {
		if !errors.Is(err, prospect.ErrInvalidInput) {
			t.Errorf("%v does not wrap ErrInvalidInput", err)
		}
	}
	if errors.Is(prospect.ErrTerminalState, prospect.ErrInvalidInput) {
		t.Error("ErrTerminalState must not be a validation error")
	}
}

func TestMachineCopiesIndustries(t *testing.T) {
	t.Parallel()

	cfg := prospect.DefaultConfig()
	m := NewMachine(cfg)
	cfg.AllowedIndustries[0] = "wholesale"

	if !m.Allowed("restaurants") {
		t.Error("machine observed a mutation of the config it was built from")
	}
	if m.Allowed("wholesale") {
		t.Error("wholesale should not be allowed")
	}
}

func TestMachineCopiesContact(t *testing.T) {
	t.Parallel()

	m := newMachine("")
	b := at(business.StatusMarketApproved)
	c := &business.Contact{Name: "Jane", Phone: "555"}

	if _, err := m.Advance(context.Background(), b, Input{Contact: c}); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	c.Name = "Mallory"
	if b.Contact.Name != "Jane" {
		t.Errorf("business contact aliases the input")
	}
}

func TestGraph(t *testing.T) {
	t.Parallel()

	terminal := []business.Status{business.StatusMarketDeclined, business.StatusWon, business.StatusLost}
	for _, s := range terminal {
		if n := Next(s); len(n) != 0 {
			t.Errorf("terminal %q has successors %v", s, n)
		}
	}

	if CanTransition(business.StatusNew, business.StatusSalesApproved) {
		t.Error("New must not skip to Sales Approved")
	}
	if CanTransition(business.StatusMarketApproved, business.StatusNew) {
		t.Error("transitions must not reverse")
	}
	if got := Next(business.StatusNew); len(got) != 2 {
		t.Errorf("Next(New) = %v, want two successors", got)
	}
}

func TestAdvanceRejectsStagesWithoutSuccessors(t *testing.T) {
	t.Parallel()

	m := newMachine("")
	in := Input{
		Industry: "restaurants",
		Contact:  &business.Contact{Name: "Jane", Phone: "555"},
		Status:   OutcomeWon,
	}
	stages := []business.Status{
		business.StatusNew, business.StatusMarketApproved, business.StatusMarketDeclined,
		business.StatusSalesApproved, business.StatusWon, business.StatusLost,
		business.Status(""), business.Status("new"),
	}

	for _, s := range stages {
		_, err := m.Advance(context.Background(), at(s), in)
		open := s.IsValid() && len(Next(s)) > 0
		if open && err != nil {
			t.Errorf("Advance from %q: unexpected error %v", s, err)
		}
		if !open && !errors.Is(err, prospect.ErrTerminalState) {
			t.Errorf("Advance from %q: error = %v, want ErrTerminalState", s, err)
		}
	}
}
