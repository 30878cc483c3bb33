package prospect

import (
	"slices"
	"time"
)

// OutcomePolicy decides how a Sales Approved business treats a closing
// request whose status is neither "Won" nor "Lost".
type OutcomePolicy string

const (
	// OutcomeLenient records anything other than "Won" as a lost deal.
	OutcomeLenient OutcomePolicy = "lenient"
	// OutcomeStrict rejects anything other than "Won" or "Lost".
	OutcomeStrict OutcomePolicy = "strict"
)

// Config holds configuration for the workflow engine.
type Config struct {
	// AllowedIndustries is the target market. A New business whose industry
	// is in this set is market approved; any other industry is declined.
	// Matching is exact.
	AllowedIndustries []string

	// Outcome controls closing requests in the Sales Approved stage.
	Outcome OutcomePolicy

	// TransitionTimeout bounds the transition and its guarded write.
	// Zero means no deadline beyond the caller's context.
	TransitionTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		AllowedIndustries: []string{"restaurants", "stores"},
		Outcome:           OutcomeLenient,
	}
}

// IsAllowedIndustry reports whether industry is in the target market.
func (c Config) IsAllowedIndustry(industry string) bool {
	return slices.Contains(c.AllowedIndustries, industry)
}
