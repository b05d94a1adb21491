// Package main provides the aquascope reference-data seeder.
//
// The gateway's reference collections (parameter standards, calculation
// formulas, graph templates, scoring config, compliance rules, suggestion
// templates, phreeqc config) are read-only at runtime and seeded out-of-band.
// This tool is that band: it loads YAML seed files and writes them through
// the gateway, upserting keyed documents so re-runs converge.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/aquascope-io/aquascope/internal/config"
	"github.com/aquascope-io/aquascope/internal/storage"
)

// Version information.
const (
	version = "1.0.0-dev"
	name    = "seeder"
)

func main() {
	versionFlag := flag.Bool("version", false, "show version information")
	seedDir := flag.String("dir", "seeds", "directory of YAML seed files")
	flag.Parse()

	if *versionFlag {
		log.Printf("%s v%s\n", name, version)
		os.Exit(0)
	}

	// Local development convenience; absent .env is fine.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.GetEnvLogLevel("LOG_LEVEL", slog.LevelInfo),
	}))

	logger.Info("Starting reference-data seeder",
		slog.String("service", name),
		slog.String("version", version),
		slog.String("seed_dir", *seedDir),
	)

	files, err := LoadSeedDir(*seedDir)
	if err != nil {
		logger.Error("Failed to load seed files", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if len(files) == 0 {
		logger.Warn("No seed files found, nothing to do", slog.String("seed_dir", *seedDir))
		os.Exit(0)
	}

	ctx := context.Background()

	storageConfig := storage.LoadConfig()

	conn, err := storage.NewConnection(ctx, storageConfig)
	if err != nil {
		logger.Error("Failed to connect to database",
			slog.String("uri", storageConfig.MaskMongoURI()),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	defer func() {
		_ = conn.Close(ctx)
	}()

	store, err := storage.NewGenericStore(conn)
	if err != nil {
		logger.Error("Failed to create generic store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := seed(ctx, logger, store, files); err != nil {
		logger.Error("Seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Seeding complete", slog.Int("files", len(files)))
}

// seed loads every seed file through the gateway. Keyed documents upsert by
// their natural key; unkeyed documents insert.
func seed(ctx context.Context, logger *slog.Logger, store *storage.GenericStore, files []*SeedFile) error {
	for _, file := range files {
		upserted := 0
		inserted := 0

		for _, doc := range file.Documents {
			if file.Key != "" {
				keyValue := doc[file.Key]

				if _, err := store.UpsertOne(ctx, file.Collection, storage.Document{file.Key: keyValue}, doc); err != nil {
					return err
				}

				upserted++

				continue
			}

			if _, err := store.InsertOne(ctx, file.Collection, doc); err != nil {
				return err
			}

			inserted++
		}

		logger.Info("Collection seeded",
			slog.String("collection", file.Collection),
			slog.String("key", file.Key),
			slog.Int("upserted", upserted),
			slog.Int("inserted", inserted),
		)
	}

	return nil
}
