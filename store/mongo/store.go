package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/prospect/business"
	"github.com/xraph/prospect/store"
)

// colBusinesses is the collection holding business documents.
const colBusinesses = "businesses"

// disconnectTimeout bounds Close when the store owns the client.
const disconnectTimeout = 10 * time.Second

// Compile-time interface checks.
var (
	_ business.Store = (*Store)(nil)
	_ store.Store    = (*Store)(nil)
)

// Store is a MongoDB implementation of store.Store.
type Store struct {
	db     *mongod.Database
	client *mongod.Client // set only when the store owns the connection
	logger *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a store on db. The caller owns the client lifecycle; Close
// is a no-op.
func New(db *mongod.Database, opts ...Option) *Store {
	s := &Store{
		db:     db,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect dials uri and returns a store on database dbName. The returned
// store owns the client and disconnects it on Close.
func Connect(ctx context.Context, uri, dbName string, opts ...Option) (*Store, error) {
	client, err := mongod.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("prospect/mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("prospect/mongo: ping: %w", err)
	}

	s := New(client.Database(dbName), opts...)
	s.client = client
	return s, nil
}

// DB returns the underlying database handle for advanced usage.
func (s *Store) DB() *mongod.Database {
	return s.db
}

// Migrate creates the secondary indexes on the businesses collection.
// Creating an index that already exists is a no-op.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.Collection(colBusinesses).Indexes().CreateMany(ctx, []mongod.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("prospect/mongo: migrate %s indexes: %w", colBusinesses, err)
	}
	s.logger.Info("ensured indexes", "collection", colBusinesses)
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

// Close disconnects the client if the store created it.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// ── helpers ──────────────────────────────────────────────────────

// now returns the current UTC time at the millisecond precision BSON keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// isNoDocuments returns true when err indicates no MongoDB documents found.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongod.ErrNoDocuments)
}

// isDuplicateKey checks if a MongoDB error is a duplicate key violation.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "E11000")
}
