package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/aquascope-io/aquascope/internal/config"
)

// Connection holds the process-wide MongoDB client and logical database
// reference. Both are set once at startup and read-only thereafter; request
// multiplexing is the driver's concern. Construct one per process and inject
// it into whichever stores need database access.
type Connection struct {
	Client   *mongo.Client
	Database *mongo.Database

	logger    *slog.Logger
	closeOnce sync.Once
	closeErr  error
}

// NewConnection establishes a MongoDB connection from the given configuration.
//
// Startup sequence:
//  1. Connect using the configured URI (a missing or malformed URI fails here,
//     surfacing the driver's own error unchanged)
//  2. Ping the server - unreachable stores fail fast
//  3. Provision uniqueness and lookup indexes - failures are logged as
//     warnings and do not abort startup; the service runs degraded without
//     indexes, accepting slower queries and duplicate-insert risk
//
// Connection failures are fatal and propagate to the caller. Retry policy is
// an external collaborator's concern.
func NewConnection(ctx context.Context, cfg *Config) (*Connection, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.GetEnvLogLevel("LOG_LEVEL", slog.LevelInfo),
	}))

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancelPing()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)

		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	conn := &Connection{
		Client:   client,
		Database: client.Database(cfg.DatabaseName),
		logger:   logger,
	}

	logger.Info("Connected to MongoDB",
		slog.String("uri", cfg.MaskMongoURI()),
		slog.String("database", cfg.DatabaseName),
	)

	conn.createIndexes(ctx)

	return conn, nil
}

// createIndexes provisions the uniqueness and lookup indexes the gateway
// relies on. Index creation is idempotent on the server side, so this is safe
// to run on every startup.
func (c *Connection) createIndexes(ctx context.Context) {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{
			collection: CollectionWaterReports,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: fieldReportID, Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		{
			collection: CollectionWaterReports,
			model: mongo.IndexModel{
				Keys: bson.D{{Key: fieldCreatedAt, Value: 1}},
			},
		},
		{
			collection: CollectionParameterStandards,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: fieldParameterName, Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		{
			collection: CollectionCalculationFormulas,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: fieldFormulaName, Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	failed := 0

	for _, idx := range indexes {
		if _, err := c.Database.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			// Non-fatal: startup proceeds without the index.
			c.logger.Warn("Index creation failed",
				slog.String("collection", idx.collection),
				slog.String("error", err.Error()),
			)

			failed++
		}
	}

	if failed > 0 {
		c.logger.Warn("Index provisioning incomplete",
			slog.Int("created", len(indexes)-failed),
			slog.Int("failed", failed),
		)

		return
	}

	c.logger.Info("Database indexes provisioned")
}

// Collection returns a handle for the named collection. This is the dynamic
// accessor behind the generic gateway operations.
func (c *Connection) Collection(name string) *mongo.Collection {
	return c.Database.Collection(name)
}

// HealthCheck verifies the connection is healthy and ready to serve requests.
// Returns nil if healthy, error with details if the store is unavailable.
func (c *Connection) HealthCheck(ctx context.Context) error {
	if c.Client == nil {
		return ErrNoConnection
	}

	if err := c.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb health check failed: %w", err)
	}

	return nil
}

// Close disconnects the client gracefully.
// This method is safe to call multiple times.
func (c *Connection) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		if c.Client != nil {
			c.closeErr = c.Client.Disconnect(ctx)
		}

		c.logger.Info("MongoDB connection closed")
	})

	return c.closeErr
}
