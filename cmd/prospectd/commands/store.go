package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/xraph/prospect/store"
	bunstore "github.com/xraph/prospect/store/bun"
	"github.com/xraph/prospect/store/memory"
	"github.com/xraph/prospect/store/mongo"
	"github.com/xraph/prospect/store/postgres"
	redisstore "github.com/xraph/prospect/store/redis"
	"github.com/xraph/prospect/store/sqlite"
)

// openedStore pairs a store with the handles it does not own.
type openedStore struct {
	store.Store
	closers []func() error
}

// Close closes the store, then every handle opened for it.
func (o *openedStore) Close() error {
	errs := []error{o.Store.Close()}
	for _, c := range o.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// openStore connects the backend selected by c.
func openStore(ctx context.Context, c StoreConfig, logger *slog.Logger) (*openedStore, error) {
	switch c.Driver {
	case driverMemory:
		return &openedStore{Store: memory.New()}, nil

	case driverPostgres:
		s, err := postgres.New(ctx, c.DSN, postgres.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return &openedStore{Store: s}, nil

	case driverBun:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(c.DSN)))
		db := bun.NewDB(sqldb, pgdialect.New())
		return &openedStore{
			Store:   bunstore.New(db, bunstore.WithLogger(logger)),
			closers: []func() error{db.Close},
		}, nil

	case driverSQLite:
		s, err := sqlite.New(ctx, c.DSN, sqlite.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return &openedStore{Store: s}, nil

	case driverRedis:
		opts, err := goredis.ParseURL(c.DSN)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := goredis.NewClient(opts)
		return &openedStore{
			Store:   redisstore.New(client, redisstore.WithLogger(logger)),
			closers: []func() error{client.Close},
		}, nil

	case driverMongo:
		s, err := mongo.Connect(ctx, c.DSN, c.Database, mongo.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return &openedStore{Store: s}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", c.Driver)
	}
}
