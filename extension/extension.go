// Package extension provides the Forge extension adapter for Prospect.
//
// It implements the forge.Extension interface to mount the qualification
// workflow into a Forge application with route registration, lifecycle
// management, and store health checks.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.prospect" or "prospect" keys.
package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/prospect"
	"github.com/xraph/prospect/api"
	"github.com/xraph/prospect/engine"
	"github.com/xraph/prospect/ext"
	mw "github.com/xraph/prospect/middleware"
	"github.com/xraph/prospect/store"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "prospect"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Business qualification workflow from first contact to closed deal"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Prospect as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	store      store.Store
	eng        *engine.Engine
	apiHandler *api.API
	logger     *slog.Logger
	exts       []ext.Extension
	mws        []mw.Middleware
	apiOpts    []api.Option
}

// New creates a Prospect Forge extension with the given options.
func New(opts ...ExtOption) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying workflow engine.
// This is nil until Register is called.
func (e *Extension) Engine() *engine.Engine { return e.eng }

// API returns the API handler.
func (e *Extension) API() *api.API { return e.apiHandler }

// Config returns the effective configuration after Register.
func (e *Extension) Config() Config { return e.config }

// Register implements [forge.Extension]. It loads configuration, builds
// the engine, and optionally registers HTTP routes.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	return e.init(fapp)
}

func (e *Extension) init(fapp forge.App) error {
	if e.store == nil {
		return fmt.Errorf("prospect: %w", prospect.ErrNoStore)
	}

	logger := e.logger
	if logger == nil {
		logger = slog.Default()
	}

	engOpts := make([]engine.Option, 0, len(e.exts)+len(e.mws)+2)
	engOpts = append(engOpts,
		engine.WithConfig(e.config.workflow()),
		engine.WithLogger(logger),
	)
	for _, x := range e.exts {
		engOpts = append(engOpts, engine.WithExtension(x))
	}
	for _, m := range e.mws {
		engOpts = append(engOpts, engine.WithMiddleware(m))
	}

	var err error
	e.eng, err = engine.New(e.store, engOpts...)
	if err != nil {
		return fmt.Errorf("prospect: build engine: %w", err)
	}

	apiOpts := make([]api.Option, 0, len(e.apiOpts)+1)
	apiOpts = append(apiOpts, api.WithLogger(logger))
	apiOpts = append(apiOpts, e.apiOpts...)
	e.apiHandler = api.New(e.eng, fapp.Router(), apiOpts...)

	if !e.config.DisableRoutes {
		e.apiHandler.RegisterRoutes(fapp.Router())
	}

	return nil
}

// Start runs auto-migration if enabled.
func (e *Extension) Start(ctx context.Context) error {
	if e.eng == nil {
		return errors.New("prospect: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.store.Migrate(ctx); err != nil {
			return fmt.Errorf("prospect: migration failed: %w", err)
		}
	}

	e.MarkStarted()
	return nil
}

// Stop emits the engine shutdown hooks.
func (e *Extension) Stop(ctx context.Context) error {
	if e.eng != nil {
		e.eng.Shutdown(ctx)
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.eng == nil {
		return errors.New("prospect: extension not initialized")
	}
	return e.store.Ping(ctx)
}

// Handler returns the HTTP handler for all API routes.
// Convenience for standalone use outside Forge.
func (e *Extension) Handler() http.Handler {
	if e.apiHandler == nil {
		return http.NotFoundHandler()
	}
	return e.apiHandler.Handler()
}

// --- Config Loading ---

func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("prospect: configuration is required but not found in config files; " +
				"ensure 'extensions.prospect' or 'prospect' key exists in your config")
		}
		e.config = mergeWithDefaults(programmaticConfig)
	} else {
		e.config = mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("prospect: configuration loaded",
		forge.F("disable_routes", e.config.DisableRoutes),
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("industries", e.config.Industries),
		forge.F("outcome", e.config.Outcome),
	)

	return nil
}

func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()

	for _, key := range []string{"extensions.prospect", "prospect"} {
		if !cm.IsSet(key) {
			continue
		}
		var cfg Config
		if err := cm.Bind(key, &cfg); err == nil {
			e.Logger().Debug("prospect: loaded config from file", forge.F("key", key))
			return cfg, true
		}
		e.Logger().Warn("prospect: failed to bind config", forge.F("key", key))
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if len(cfg.Industries) == 0 {
		cfg.Industries = defaults.Industries
	}
	if cfg.Outcome == "" {
		cfg.Outcome = defaults.Outcome
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML wins for values; programmatic bool flags fill gaps.
func mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if programmaticConfig.DisableRoutes {
		yamlConfig.DisableRoutes = true
	}
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	if len(yamlConfig.Industries) == 0 {
		yamlConfig.Industries = programmaticConfig.Industries
	}
	if yamlConfig.Outcome == "" {
		yamlConfig.Outcome = programmaticConfig.Outcome
	}
	if yamlConfig.TransitionTimeout == 0 {
		yamlConfig.TransitionTimeout = programmaticConfig.TransitionTimeout
	}

	return mergeWithDefaults(yamlConfig)
}
