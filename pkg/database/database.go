package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	_ "modernc.org/sqlite"

	"github.com/BartekS5/barberia/pkg/logger"
)

type sqliteConfig struct {
	foreignKeys bool
	queryOnly   bool
	busyTimeout int
}

// SQLiteOption customises OpenSQLite.
type SQLiteOption func(*sqliteConfig)

// WithForeignKeys turns on foreign key enforcement for every connection.
func WithForeignKeys() SQLiteOption { return func(c *sqliteConfig) { c.foreignKeys = true } }

// WithQueryOnly rejects any statement that would modify the database.
func WithQueryOnly() SQLiteOption { return func(c *sqliteConfig) { c.queryOnly = true } }

// OpenSQLite opens the SQLite file at path with the given pragmas applied
// through the DSN, so they hold on every pooled connection.
func OpenSQLite(path string, opts ...SQLiteOption) (*sql.DB, error) {
	cfg := sqliteConfig{busyTimeout: 5000}
	for _, o := range opts {
		o(&cfg)
	}

	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.busyTimeout))
	if cfg.foreignKeys {
		q.Add("_pragma", "foreign_keys(1)")
	}
	if cfg.queryOnly {
		q.Add("_pragma", "query_only(1)")
	}

	db, err := sql.Open(DriverSQLite, path+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("error opening SQLite database %s: %w", path, err)
	}
	// One connection keeps the run strictly sequential.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to SQLite database %s (ping failed): %w", path, err)
	}
	return db, nil
}

// ConnectSQL opens a SQL Server database holding restored legacy data.
func ConnectSQL(connString string) (*sql.DB, error) {
	db, err := sql.Open(DriverSQLServer, connString)
	if err != nil {
		return nil, fmt.Errorf("error opening SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to SQL database (ping failed): %w", err)
	}

	logger.Infof("Successfully connected to MS SQL Server.")
	return db, nil
}

func ConnectMongo(connString string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connString))
	if err != nil {
		return nil, fmt.Errorf("error creating MongoDB client: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	err = client.Ping(pingCtx, readpref.Primary())
	if err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)

		return nil, fmt.Errorf("error connecting to MongoDB (ping failed): %w", err)
	}

	logger.Infof("Successfully connected to MongoDB.")
	return client, nil
}
