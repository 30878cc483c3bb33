package extension

import (
	"log/slog"

	"github.com/xraph/prospect/api"
	"github.com/xraph/prospect/ext"
	mw "github.com/xraph/prospect/middleware"
	"github.com/xraph/prospect/store"
)

// ExtOption configures the Prospect Forge extension.
type ExtOption func(*Extension)

// WithStore sets the persistence backend. The extension migrates it on
// Start and pings it for Health.
func WithStore(s store.Store) ExtOption {
	return func(e *Extension) {
		e.store = s
	}
}

// WithExtension registers a lifecycle extension on the engine.
func WithExtension(x ext.Extension) ExtOption {
	return func(e *Extension) {
		e.exts = append(e.exts, x)
	}
}

// WithMiddleware adds transition middleware to the engine.
func WithMiddleware(m mw.Middleware) ExtOption {
	return func(e *Extension) {
		e.mws = append(e.mws, m)
	}
}

// WithAPIOption passes an option through to the HTTP API.
func WithAPIOption(o api.Option) ExtOption {
	return func(e *Extension) {
		e.apiOpts = append(e.apiOpts, o)
	}
}

// WithConfig sets the extension configuration directly.
func WithConfig(cfg Config) ExtOption {
	return func(e *Extension) {
		e.config = cfg
	}
}

// WithDisableRoutes disables the registration of HTTP routes.
func WithDisableRoutes() ExtOption {
	return func(e *Extension) {
		e.config.DisableRoutes = true
	}
}

// WithDisableMigrate disables auto-migration on start.
func WithDisableMigrate() ExtOption {
	return func(e *Extension) {
		e.config.DisableMigrate = true
	}
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) ExtOption {
	return func(e *Extension) {
		e.config.RequireConfig = require
	}
}

// WithLogger sets the structured logger for the engine and API.
func WithLogger(l *slog.Logger) ExtOption {
	return func(e *Extension) {
		e.logger = l
	}
}
