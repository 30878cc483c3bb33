package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Identity represents an authenticated caller.
type Identity struct {
	// Subject is the token's "sub" claim.
	Subject string `json:"subject"`

	// Username is the optional "username" private claim.
	Username string `json:"username,omitempty"`
}

// Authenticator validates credentials and returns an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

// ErrUnauthorized indicates authentication failure.
var ErrUnauthorized = errors.New("prospect/auth: unauthorized")

// UsernameClaim is the private claim copied into Identity.Username.
const UsernameClaim = "username"

// ── JWT authenticator ───────────────────────────────

// JWTAuthenticator verifies HS256 tokens signed with a shared secret.
type JWTAuthenticator struct {
	secret []byte
	skew   time.Duration
}

// JWTOption configures a JWTAuthenticator.
type JWTOption func(*JWTAuthenticator)

// WithAcceptableSkew tolerates clock drift when checking exp and nbf.
func WithAcceptableSkew(d time.Duration) JWTOption {
	return func(a *JWTAuthenticator) { a.skew = d }
}

// NewJWTAuthenticator creates a JWT authenticator for secret.
func NewJWTAuthenticator(secret []byte, opts ...JWTOption) *JWTAuthenticator {
	a := &JWTAuthenticator{secret: append([]byte(nil), secret...)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate implements Authenticator.
func (a *JWTAuthenticator) Authenticate(_ context.Context, token string) (*Identity, error) {
	if token == "" || len(a.secret) == 0 {
		return nil, ErrUnauthorized
	}

	parsed, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256, a.secret),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(a.skew),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	id := &Identity{Subject: parsed.Subject()}
	if v, ok := parsed.Get(UsernameClaim); ok {
		if s, ok := v.(string); ok {
			id.Username = s
		}
	}
	return id, nil
}

// Sign issues an HS256 token for subject that expires after ttl. A zero
// ttl issues a token without an expiry; a negative one an expired token.
func (a *JWTAuthenticator) Sign(subject, username string, ttl time.Duration) (string, error) {
	b := jwt.NewBuilder().
		Subject(subject).
		IssuedAt(time.Now())
	if username != "" {
		b = b.Claim(UsernameClaim, username)
	}
	if ttl != 0 {
		b = b.Expiration(time.Now().Add(ttl))
	}

	tok, err := b.Build()
	if err != nil {
		return "", fmt.Errorf("prospect/auth: build token: %w", err)
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, a.secret))
	if err != nil {
		return "", fmt.Errorf("prospect/auth: sign token: %w", err)
	}
	return string(signed), nil
}

// ── No-op authenticator ─────────────────────────────

// NoopAuthenticator accepts all tokens with an anonymous identity.
// Use for development only.
type NoopAuthenticator struct{}

// Authenticate implements Authenticator.
func (NoopAuthenticator) Authenticate(_ context.Context, _ string) (*Identity, error) {
	return &Identity{Subject: "anonymous"}, nil
}
