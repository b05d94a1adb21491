package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aquascope-io/aquascope/internal/config"
	"github.com/aquascope-io/aquascope/internal/events"
)

// Compile-time interface assertion.
var _ ReportGateway = (*ReportStore)(nil)

// defaultListLimit is the page size used when a caller passes a non-positive limit.
const defaultListLimit = 100

type (
	// ReportStore implements ReportGateway with a MongoDB backend.
	//
	// Every operation is a single round trip to the water_reports collection.
	// The store performs no retries, no caching, and no timeout enforcement of
	// its own: deadlines and cancellation are imposed by the caller through
	// ctx, and per-operation failures (duplicate key, network blip) propagate
	// unchanged as driver errors.
	ReportStore struct {
		conn      *Connection
		logger    *slog.Logger
		publisher events.Publisher
	}

	// ReportStoreOption configures optional ReportStore behavior.
	ReportStoreOption func(*ReportStore)
)

// WithPublisher attaches a lifecycle event publisher. Publishing is
// best-effort: a publish failure is logged and never fails the write that
// triggered it. If not set, lifecycle events are dropped.
func WithPublisher(p events.Publisher) ReportStoreOption {
	return func(s *ReportStore) {
		s.publisher = p
	}
}

// NewReportStore creates a MongoDB-backed report store.
// Returns ErrNoConnection if conn is nil.
func NewReportStore(conn *Connection, opts ...ReportStoreOption) (*ReportStore, error) {
	if conn == nil {
		return nil, ErrNoConnection
	}

	store := &ReportStore{
		conn: conn,
		logger: slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: config.GetEnvLogLevel("LOG_LEVEL", slog.LevelInfo),
		})),
		publisher: events.NoopPublisher{},
	}

	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

// SaveReport stores a complete water analysis report and returns the
// generated internal id as a hex string.
//
// The report must include a caller-supplied report_id; created_at and
// updated_at are server-assigned here. A duplicate report_id violates the
// unique index and the driver's duplicate-key error propagates unchanged.
func (s *ReportStore) SaveReport(ctx context.Context, report Document) (string, error) {
	if report == nil {
		return "", ErrNilDocument
	}

	if !hasNonEmptyString(report, fieldReportID) {
		return "", ErrReportIDMissing
	}

	now := time.Now().UTC()

	doc := make(Document, len(report)+2)
	for k, v := range report {
		doc[k] = v
	}

	doc[fieldCreatedAt] = now
	doc[fieldUpdatedAt] = now

	result, err := s.collection().InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert water report: %w", err)
	}

	reportID, _ := report[fieldReportID].(string)

	s.logger.Info("Report saved", slog.String("report_id", reportID))

	s.publish(ctx, events.ReportCreated, reportID, doc)

	return insertedIDString(result.InsertedID), nil
}

// GetReport retrieves a water report by report_id.
// An absent report yields (nil, nil); callers must check for the nil document.
func (s *ReportStore) GetReport(ctx context.Context, reportID string) (Document, error) {
	var report Document

	err := s.collection().FindOne(ctx, bson.M{fieldReportID: reportID}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get water report: %w", err)
	}

	return report, nil
}

// ListReports returns up to limit reports, skipping skip, ordered by
// created_at descending (newest first). A non-positive limit falls back to
// the default page size rather than meaning "unbounded".
func (s *ReportStore) ListReports(ctx context.Context, limit, skip int64) ([]Document, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: fieldCreatedAt, Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list water reports: %w", err)
	}

	reports := make([]Document, 0, limit)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode water reports: %w", err)
	}

	return reports, nil
}

// UpdateReport merges a partial update into an existing report and re-stamps
// updated_at. Returns true iff at least one field actually changed; updating
// a non-existent report_id is a no-op returning (false, nil), not an error.
//
// Merge semantics are those of $set with plain keys: a nested document value
// replaces the whole stored subdocument rather than deep-merging into it.
func (s *ReportStore) UpdateReport(ctx context.Context, reportID string, update Document) (bool, error) {
	if update == nil {
		return false, ErrNilDocument
	}

	fields := make(Document, len(update)+1)
	for k, v := range update {
		fields[k] = v
	}

	fields[fieldUpdatedAt] = time.Now().UTC()

	result, err := s.collection().UpdateOne(ctx,
		bson.M{fieldReportID: reportID},
		bson.M{"$set": fields},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update water report: %w", err)
	}

	modified := result.ModifiedCount > 0
	if modified {
		s.publish(ctx, events.ReportUpdated, reportID, fields)
	}

	return modified, nil
}

// DeleteReport removes a report by report_id.
// Returns true iff a document was removed.
func (s *ReportStore) DeleteReport(ctx context.Context, reportID string) (bool, error) {
	result, err := s.collection().DeleteOne(ctx, bson.M{fieldReportID: reportID})
	if err != nil {
		return false, fmt.Errorf("failed to delete water report: %w", err)
	}

	deleted := result.DeletedCount > 0
	if deleted {
		s.publish(ctx, events.ReportDeleted, reportID, nil)
	}

	return deleted, nil
}

func (s *ReportStore) collection() *mongo.Collection {
	return s.conn.Collection(CollectionWaterReports)
}

// publish emits a lifecycle event. Failures are logged, never returned: event
// delivery must not affect the durability outcome the caller observed.
func (s *ReportStore) publish(ctx context.Context, eventType events.Type, reportID string, data Document) {
	event := events.NewReportEvent(eventType, reportID, data)

	if err := s.publisher.PublishReportEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish report event",
			slog.String("event_type", string(eventType)),
			slog.String("report_id", reportID),
			slog.String("error", err.Error()),
		)
	}
}

// hasNonEmptyString reports whether doc[key] is a non-empty string.
func hasNonEmptyString(doc Document, key string) bool {
	value, ok := doc[key].(string)

	return ok && value != ""
}

// insertedIDString renders a driver-generated _id as a string. ObjectIDs
// become their hex form; anything else falls back to fmt formatting.
func insertedIDString(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}

	return fmt.Sprintf("%v", id)
}
