package workflow

import "github.com/xraph/prospect/business"

// Messages returned with each successful transition.
const (
	MsgMarketApproved = "Provide contact details to proceed"
	MsgMarketDeclined = "Industry not in target market"
	MsgSalesApproved  = "Business is now part of the sales process"
	MsgWon            = "Business deal is won"
	MsgLost           = "Business deal is lost"
)

// OutcomeWon and OutcomeLost are the recognised closing statuses.
const (
	OutcomeWon  = string(business.StatusWon)
	OutcomeLost = string(business.StatusLost)
)

// Input carries the fields a progress request may supply. Which field is
// consulted depends on the business's current stage.
type Input struct {
	Industry string            `json:"industry,omitempty"`
	Contact  *business.Contact `json:"contact,omitempty"`
	Status   string            `json:"status,omitempty"`
}

// Transition describes a single applied step.
type Transition struct {
	From    business.Status `json:"from"`
	To      business.Status `json:"to"`
	Message string          `json:"message"`
}

var edges = map[business.Status][]business.Status{
	business.StatusNew:            {business.StatusMarketApproved, business.StatusMarketDeclined},
	business.StatusMarketApproved: {business.StatusSalesApproved},
	business.StatusSalesApproved:  {business.StatusWon, business.StatusLost},
}

// CanTransition reports whether the graph has an edge from one stage to
// another.
func CanTransition(from, to business.Status) bool {
	for _, t := range edges[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Next returns the stages reachable from s in one step.
func Next(s business.Status) []business.Status {
	out := make([]business.Status, len(edges[s]))
	copy(out, edges[s])
	return out
}
