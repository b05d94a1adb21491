package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aquascope-io/aquascope/internal/config"
)

// newTestConnection spins up a throwaway MongoDB container and connects the
// gateway to it. Container and connection teardown are registered on t.
func newTestConnection(ctx context.Context, t *testing.T) *Connection {
	t.Helper()

	testMongo := config.SetupTestMongo(ctx, t)
	t.Cleanup(func() {
		_ = testMongo.Container.Terminate(ctx)
	})

	conn, err := NewConnection(ctx, &Config{
		mongoURI:       testMongo.URI,
		DatabaseName:   DefaultDatabaseName,
		ConnectTimeout: defaultConnectTimeout,
		PingTimeout:    defaultPingTimeout,
	})
	require.NoError(t, err, "Failed to connect to test mongodb")

	t.Cleanup(func() {
		_ = conn.Close(context.Background())
	})

	return conn
}

// asTime extracts a stored timestamp from a decoded document value.
func asTime(t *testing.T, value any) time.Time {
	t.Helper()

	dt, ok := value.(primitive.DateTime)
	require.True(t, ok, "value %T is not a stored timestamp", value)

	return dt.Time()
}

// asDocument normalizes a decoded embedded document. The driver yields
// primitive.D for nested documents decoded into any.
func asDocument(t *testing.T, value any) Document {
	t.Helper()

	switch v := value.(type) {
	case primitive.D:
		return Document(v.Map())
	case primitive.M:
		return Document(v)
	case map[string]any:
		return v
	default:
		t.Fatalf("value %T is not an embedded document", value)

		return nil
	}
}
