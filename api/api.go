package api

import (
	"log/slog"
	"net/http"

	"github.com/xraph/forge"
	"golang.org/x/time/rate"

	"github.com/xraph/prospect/auth"
	"github.com/xraph/prospect/business"
	"github.com/xraph/prospect/engine"
)

// API wires the Forge-style HTTP handlers to a Prospect engine.
type API struct {
	eng           *engine.Engine
	router        forge.Router
	authenticator auth.Authenticator
	limiter       *rate.Limiter
	logger        *slog.Logger
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the logger used for server-side failures.
func WithLogger(l *slog.Logger) Option {
	return func(a *API) { a.logger = l }
}

// WithAuthenticator requires every request to carry a bearer token that
// authn accepts. Requests that fail get 401 {"error":"not authorized"}.
func WithAuthenticator(authn auth.Authenticator) Option {
	return func(a *API) { a.authenticator = authn }
}

// WithRateLimit caps the request rate across all routes. Requests over
// the limit get 429 {"error":"Too many requests"}. A non-positive limit
// disables limiting.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(a *API) {
		if limit <= 0 {
			a.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		a.limiter = rate.NewLimiter(limit, burst)
	}
}

// New creates an API from a Prospect Engine. A nil router is replaced by
// forge.NewRouter() when Handler is called.
func New(eng *engine.Engine, router forge.Router, opts ...Option) *API {
	a := &API{eng: eng, router: router, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handler returns the fully assembled http.Handler with all routes and the
// configured authentication and rate limiting applied.
func (a *API) Handler() http.Handler {
	if a.router == nil {
		a.router = forge.NewRouter()
	}
	a.RegisterRoutes(a.router)

	h := emptyJSONBody(a.router.Handler())
	if a.authenticator != nil {
		h = auth.Middleware(a.authenticator, h)
	}
	if a.limiter != nil {
		h = rateLimit(a.limiter, h)
	}
	return h
}

// RegisterRoutes registers the business routes into the given Forge router
// with full OpenAPI metadata.
func (a *API) RegisterRoutes(router forge.Router) {
	g := router.Group("/api", forge.WithGroupTags("business"))

	_ = g.POST("/business", a.createBusiness,
		forge.WithSummary("Create business"),
		forge.WithDescription("Registers a business in the New stage."),
		forge.WithOperationID("createBusiness"),
		forge.WithRequestSchema(CreateBusinessRequest{}),
		forge.WithResponseSchema(http.StatusCreated, "Business created", BusinessResponse{}),
		forge.WithErrorResponses(),
	)

	_ = g.POST("/business/:fein/progress", a.progressBusiness,
		forge.WithSummary("Progress business"),
		forge.WithDescription("Advances a business one stage through the qualification workflow."),
		forge.WithOperationID("progressBusiness"),
		forge.WithRequestSchema(ProgressRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Business progressed", ProgressResponse{}),
		forge.WithErrorResponses(),
	)

	_ = g.GET("/business/:fein/status", a.businessStatus,
		forge.WithSummary("Business status"),
		forge.WithDescription("Returns the current record of a business."),
		forge.WithOperationID("businessStatus"),
		forge.WithResponseSchema(http.StatusOK, "Business record", BusinessResponse{}),
		forge.WithErrorResponses(),
	)
}

// CreateBusinessRequest is the body of POST /api/business.
type CreateBusinessRequest struct {
	FEIN string `json:"fein"`
	Name string `json:"name"`
}

// ProgressRequest is the body of POST /api/business/:fein/progress. Which
// fields matter depends on the business's current stage.
type ProgressRequest struct {
	Industry string            `json:"industry,omitempty"`
	Contact  *business.Contact `json:"contact,omitempty"`
	Status   string            `json:"status,omitempty"`
}

// BusinessResponse wraps a business record.
type BusinessResponse struct {
	Success  bool               `json:"success"`
	Business *business.Business `json:"business"`
}

// ProgressResponse is returned after a successful transition.
type ProgressResponse struct {
	Success  bool               `json:"success"`
	Business *business.Business `json:"business"`
	Message  string             `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
