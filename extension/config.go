package extension

import (
	"time"

	"github.com/xraph/prospect"
)

// Config holds configuration for the Prospect Forge extension.
type Config struct {
	// DisableRoutes disables the registration of HTTP routes.
	// Useful when the host app only drives the engine directly.
	DisableRoutes bool `default:"false" json:"disable_routes"`

	// DisableMigrate disables auto-migration on start.
	DisableMigrate bool `default:"false" json:"disable_migrate"`

	// RequireConfig makes Register fail when no config key is present.
	RequireConfig bool `default:"false" json:"-"`

	// Industries is the target market. Empty means the engine default.
	Industries []string `json:"industries"`

	// Outcome is "lenient" or "strict". Empty means the engine default.
	Outcome string `json:"outcome"`

	// TransitionTimeout bounds each progress transition.
	TransitionTimeout time.Duration `json:"transition_timeout"`
}

// DefaultConfig returns the extension defaults.
func DefaultConfig() Config {
	wf := prospect.DefaultConfig()
	return Config{
		Industries: wf.AllowedIndustries,
		Outcome:    string(wf.Outcome),
	}
}

// workflow converts the extension config to the engine's configuration.
func (c Config) workflow() prospect.Config {
	return prospect.Config{
		AllowedIndustries: c.Industries,
		Outcome:           prospect.OutcomePolicy(c.Outcome),
		TransitionTimeout: c.TransitionTimeout,
	}
}
