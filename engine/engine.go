package engine

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/prospect"
	"github.com/xraph/prospect/business"
	"github.com/xraph/prospect/ext"
	mw "github.com/xraph/prospect/middleware"
	"github.com/xraph/prospect/observability"
	"github.com/xraph/prospect/workflow"
)

// instrumentationName scopes the engine's tracer and meters.
const instrumentationName = "github.com/xraph/prospect"

// Result is the outcome of a successful Progress call.
type Result struct {
	Business   *business.Business   `json:"business"`
	Message    string               `json:"message"`
	Transition *workflow.Transition `json:"transition"`
}

// Engine drives businesses through the qualification workflow.
type Engine struct {
	config     prospect.Config
	store      business.Store
	machine    *workflow.Machine
	extensions *ext.Registry
	chain      mw.Middleware
	mws        []mw.Middleware
	exts       []ext.Extension
	logger     *slog.Logger

	// OpenTelemetry providers (optional; nil means use global).
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the workflow configuration. The allowed industries are
// copied when the engine is built.
func WithConfig(cfg prospect.Config) Option {
	return func(eng *Engine) {
		eng.config = cfg
	}
}

// WithLogger sets the structured logger for the engine.
func WithLogger(l *slog.Logger) Option {
	return func(eng *Engine) {
		eng.logger = l
	}
}

// WithExtension registers an extension with the engine.
func WithExtension(e ext.Extension) Option {
	return func(eng *Engine) {
		eng.exts = append(eng.exts, e)
	}
}

// WithMiddleware appends transition middleware after the built-in chain.
func WithMiddleware(m mw.Middleware) Option {
	return func(eng *Engine) {
		eng.mws = append(eng.mws, m)
	}
}

// WithTracerProvider sets a custom OTel TracerProvider for the engine.
// If not set, the global otel.GetTracerProvider() is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(eng *Engine) {
		eng.tracerProvider = tp
	}
}

// WithMeterProvider sets a custom OTel MeterProvider used by both the
// metrics middleware and the observability extension.
// If not set, the global otel.GetMeterProvider() is used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(eng *Engine) {
		eng.meterProvider = mp
	}
}

// New creates an Engine backed by s.
func New(s business.Store, opts ...Option) (*Engine, error) {
	if s == nil {
		return nil, prospect.ErrNoStore
	}

	eng := &Engine{
		config: prospect.DefaultConfig(),
		store:  s,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(eng)
	}

	eng.machine = workflow.NewMachine(eng.config, workflow.WithMachineLogger(eng.logger))
	eng.extensions = ext.NewRegistry(eng.logger)

	var tracingMw, metricsMw mw.Middleware
	var obsExt *observability.MetricsExtension
	if eng.tracerProvider != nil {
		tracingMw = mw.TracingWithTracer(eng.tracerProvider.Tracer(instrumentationName))
	} else {
		tracingMw = mw.Tracing()
	}
	if eng.meterProvider != nil {
		metricsMw = mw.MetricsWithMeter(eng.meterProvider.Meter(instrumentationName))
		obsExt = observability.NewMetricsExtensionWithMeter(eng.meterProvider.Meter(instrumentationName + "/observability"))
	} else {
		metricsMw = mw.Metrics()
		obsExt = observability.NewMetricsExtension()
	}

	eng.extensions.Register(obsExt)
	for _, e := range eng.exts {
		eng.extensions.Register(e)
	}

	// recover → tracing → metrics → logging → timeout → custom.
	all := []mw.Middleware{
		mw.Recover(eng.logger),
		tracingMw,
		metricsMw,
		mw.Logging(eng.logger),
		mw.Timeout(eng.config.TransitionTimeout),
	}
	all = append(all, eng.mws...)
	eng.chain = mw.Chain(all...)

	return eng, nil
}

// Config returns a copy of the engine's configuration.
func (eng *Engine) Config() prospect.Config { return eng.config }

// Store returns the engine's business store.
func (eng *Engine) Store() business.Store { return eng.store }

// Machine returns the workflow state machine.
func (eng *Engine) Machine() *workflow.Machine { return eng.machine }

// Extensions returns the extension registry.
func (eng *Engine) Extensions() *ext.Registry { return eng.extensions }

// Logger returns the engine's logger.
func (eng *Engine) Logger() *slog.Logger { return eng.logger }

// Create registers a new business in the New stage. The FEIN is checked
// before the name; nothing is persisted when either is missing.
func (eng *Engine) Create(ctx context.Context, fein, name string) (*business.Business, error) {
	if fein == "" {
		return nil, prospect.ErrFEINRequired
	}
	if name == "" {
		return nil, prospect.ErrNameRequired
	}

	b := business.New(fein, name)
	if err := eng.store.CreateBusiness(ctx, b); err != nil {
		return nil, err
	}

	eng.logger.InfoContext(ctx, "business created", slog.String("fein", fein))
	eng.extensions.EmitBusinessCreated(ctx, b)
	return b, nil
}

// Progress advances the business identified by fein one stage using in.
func (eng *Engine) Progress(ctx context.Context, fein string, in workflow.Input) (*Result, error) {
	start := time.Now()

	b, err := eng.store.GetBusiness(ctx, fein)
	if err != nil {
		eng.extensions.EmitProgressRejected(ctx, fein, err)
		return nil, err
	}

	var tr *workflow.Transition
	err = eng.chain(ctx, b, func(ctx context.Context) error {
		expected := b.Version
		next := b.Clone()

		applied, advErr := eng.machine.Advance(ctx, next, in)
		if advErr != nil {
			return advErr
		}
		next.Version = expected + 1

		if updErr := eng.store.UpdateBusiness(ctx, next, expected); updErr != nil {
			return updErr
		}

		*b = *next
		tr = applied
		return nil
	})
	if err != nil {
		eng.extensions.EmitProgressRejected(ctx, fein, err)
		return nil, err
	}

	eng.extensions.EmitBusinessProgressed(ctx, b, tr, time.Since(start))
	return &Result{Business: b, Message: tr.Message, Transition: tr}, nil
}

// GetStatus returns the current record for fein.
func (eng *Engine) GetStatus(ctx context.Context, fein string) (*business.Business, error) {
	return eng.store.GetBusiness(ctx, fein)
}

// Shutdown notifies extensions that the engine is stopping.
func (eng *Engine) Shutdown(ctx context.Context) {
	eng.extensions.EmitShutdown(ctx)
}
