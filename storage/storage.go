// Package storage opens the persistence backend selected by configuration.
// Modules share one handle per configuration through Acquire and Release.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/studenthustle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnknownDriver is returned for an unsupported STORE_DRIVER value.
var ErrUnknownDriver = errors.New("unknown store driver")

const connectTimeout = 10 * time.Second

// Handle is an open connection to either SQLite (through GORM) or MongoDB.
// Exactly one of SQL and Mongo is set.
type Handle struct {
	Driver string
	SQL    *gorm.DB
	Mongo  *mongo.Database

	client   *mongo.Client
	location string

	// guarded by registry.mu
	shared bool
	key    config.StoreConfig
	refs   int
}

// Open connects to the configured backend.
func Open(ctx context.Context, cfg config.StoreConfig) (*Handle, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		db, err := OpenSQLite(cfg.SQLitePath, cfg.Debug)
		if err != nil {
			return nil, err
		}
		return &Handle{Driver: config.DriverSQLite, SQL: db, location: cfg.SQLitePath}, nil
	case config.DriverMongo:
		client, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return &Handle{
			Driver:   config.DriverMongo,
			Mongo:    client.Database(cfg.MongoDatabase),
			client:   client,
			location: cfg.MongoDatabase,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}

// OpenSQLite opens a GORM connection to the SQLite file at path. Use
// ":memory:" for a throwaway database.
func OpenSQLite(path string, debug bool) (*gorm.DB, error) {
	level := logger.Silent
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if path == ":memory:" {
		// each new connection would see its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// ConnectMongo connects to MongoDB and verifies the connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}
	return client, nil
}

// Location describes where the data lives, for logs and health details.
func (h *Handle) Location() string {
	return h.Driver + ":" + h.location
}

// Ping checks that the backend is reachable.
func (h *Handle) Ping(ctx context.Context) error {
	if h.client != nil {
		return h.client.Ping(ctx, nil)
	}
	sqlDB, err := h.SQL.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection.
func (h *Handle) Close(ctx context.Context) error {
	if h.client != nil {
		return h.client.Disconnect(ctx)
	}
	sqlDB, err := h.SQL.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
