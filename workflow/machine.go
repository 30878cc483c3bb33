package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/xraph/prospect"
	"github.com/xraph/prospect/business"
)

// Machine applies the transition table to businesses. It is immutable after
// construction and safe for concurrent use.
type Machine struct {
	cfg    prospect.Config
	logger *slog.Logger
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithMachineLogger sets the logger used for outcome warnings.
func WithMachineLogger(l *slog.Logger) MachineOption {
	return func(m *Machine) { m.logger = l }
}

// NewMachine builds a Machine from cfg. The allowed industries are copied,
// so later changes to cfg do not leak in.
func NewMachine(cfg prospect.Config, opts ...MachineOption) *Machine {
	cfg.AllowedIndustries = slices.Clone(cfg.AllowedIndustries)
	if cfg.Outcome == "" {
		cfg.Outcome = prospect.OutcomeLenient
	}
	m := &Machine{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Allowed reports whether industry is in the target market.
func (m *Machine) Allowed(industry string) bool {
	return m.cfg.IsAllowedIndustry(industry)
}

// Advance applies in to b according to b's current stage. On success b is
// mutated in place and the applied Transition is returned. On error b is
// left untouched. Unknown and terminal stages fail with ErrTerminalState.
func (m *Machine) Advance(ctx context.Context, b *business.Business, in Input) (*Transition, error) {
	if !b.Status.IsValid() || len(Next(b.Status)) == 0 {
		return nil, prospect.ErrTerminalState
	}

	work := *b
	tr, err := m.step(ctx, &work, in)
	if err != nil {
		return nil, err
	}
	if !CanTransition(tr.From, tr.To) {
		return nil, fmt.Errorf("workflow: no edge from %q to %q", tr.From, tr.To)
	}

	*b = work
	return tr, nil
}

func (m *Machine) step(ctx context.Context, b *business.Business, in Input) (*Transition, error) {
	from := b.Status

	switch from {
	case business.StatusNew:
		if in.Industry == "" {
			return nil, prospect.ErrIndustryRequired
		}
		if !m.Allowed(in.Industry) {
			b.Status = business.StatusMarketDeclined
			return &Transition{From: from, To: b.Status, Message: MsgMarketDeclined}, nil
		}
		b.Industry = in.Industry
		b.Status = business.StatusMarketApproved
		return &Transition{From: from, To: b.Status, Message: MsgMarketApproved}, nil

	case business.StatusMarketApproved:
		if !in.Contact.Complete() {
			return nil, prospect.ErrContactRequired
		}
		c := *in.Contact
		b.Contact = &c
		b.Status = business.StatusSalesApproved
		return &Transition{From: from, To: b.Status, Message: MsgSalesApproved}, nil

	case business.StatusSalesApproved:
		to, err := m.outcomeFor(ctx, b, in.Status)
		if err != nil {
			return nil, err
		}
		b.Status = to
		msg := MsgLost
		if to == business.StatusWon {
			msg = MsgWon
		}
		return &Transition{From: from, To: to, Message: msg}, nil

	default:
		return nil, prospect.ErrTerminalState
	}
}

func (m *Machine) outcomeFor(ctx context.Context, b *business.Business, status string) (business.Status, error) {
	switch status {
	case OutcomeWon:
		return business.StatusWon, nil
	case OutcomeLost:
		return business.StatusLost, nil
	}

	if m.cfg.Outcome == prospect.OutcomeStrict {
		return "", prospect.ErrUnknownOutcome
	}

	m.logger.WarnContext(ctx, "unrecognised deal outcome recorded as lost",
		slog.String("fein", b.FEIN),
		slog.String("outcome", status),
	)
	return business.StatusLost, nil
}
