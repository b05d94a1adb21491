// Package config provides configuration and shared test utilities for the aquascope application.
package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	mongocontainer "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"
)

const mongoStartupTimeout = 120 * time.Second

// TestMongo encapsulates test MongoDB resources for cleanup.
// Used by integration tests across multiple packages to maintain consistent
// test infrastructure.
type TestMongo struct {
	Container *mongocontainer.MongoDBContainer
	URI       string
}

// SetupTestMongo creates a MongoDB container and returns its connection URI.
// This is the standard way to set up integration test databases across all packages.
//
// Usage:
//
//	func TestMyFeature(t *testing.T) {
//		if testing.Short() {
//			t.Skip("skipping integration test in short mode")
//		}
//		ctx := context.Background()
//		testMongo := config.SetupTestMongo(ctx, t)
//		t.Cleanup(func() {
//			_ = testMongo.Container.Terminate(ctx)
//		})
//		// ... your test code
//	}
//
// Cleanup is the caller's responsibility using t.Cleanup().
func SetupTestMongo(ctx context.Context, t *testing.T) *TestMongo {
	t.Helper()

	container, err := mongocontainer.Run(ctx,
		"mongo:7",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Waiting for connections").
				WithStartupTimeout(mongoStartupTimeout),
		),
	)
	require.NoError(t, err, "Failed to start mongodb container")
	require.NotNil(t, container, "mongodb container is nil")

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get connection string")

	return &TestMongo{
		Container: container,
		URI:       uri,
	}
}
