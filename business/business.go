package business

import "github.com/xraph/prospect"

// Status is the workflow stage of a business.
type Status string

const (
	// StatusNew is the initial stage of every business.
	StatusNew Status = "New"
	// StatusMarketApproved means the industry is in the target market.
	StatusMarketApproved Status = "Market Approved"
	// StatusMarketDeclined means the industry is outside the target market.
	StatusMarketDeclined Status = "Market Declined"
	// StatusSalesApproved means contact details were captured.
	StatusSalesApproved Status = "Sales Approved"
	// StatusWon means the deal closed successfully.
	StatusWon Status = "Won"
	// StatusLost means the deal closed unsuccessfully.
	StatusLost Status = "Lost"
)

// IsTerminal reports whether no further progress is possible from s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusMarketDeclined, StatusWon, StatusLost:
		return true
	default:
		return false
	}
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusMarketApproved, StatusMarketDeclined,
		StatusSalesApproved, StatusWon, StatusLost:
		return true
	default:
		return false
	}
}

// Contact is the sales contact captured in the Market Approved stage.
type Contact struct {
	Name  string `json:"name"  bson:"name"`
	Phone string `json:"phone" bson:"phone"`
}

// Complete reports whether both name and phone are present.
func (c *Contact) Complete() bool {
	return c != nil && c.Name != "" && c.Phone != ""
}

// Business is a company moving through the qualification workflow.
// FEIN is the sole lookup key.
type Business struct {
	prospect.Entity

	FEIN     string   `json:"fein"`
	Name     string   `json:"name"`
	Industry string   `json:"industry,omitempty"`
	Contact  *Contact `json:"contact,omitempty"`
	Status   Status   `json:"status"`

	// Version increases by one on every persisted transition and guards
	// against concurrent read-modify-write races.
	Version int64 `json:"version"`
}

// New returns a business in the New stage at version 1.
func New(fein, name string) *Business {
	return &Business{
		Entity:  prospect.NewEntity(),
		FEIN:    fein,
		Name:    name,
		Status:  StatusNew,
		Version: 1,
	}
}

// Clone returns a deep copy of b.
func (b *Business) Clone() *Business {
	cp := *b
	if b.Contact != nil {
		c := *b.Contact
		cp.Contact = &c
	}
	return &cp
}
