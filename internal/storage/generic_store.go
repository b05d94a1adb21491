package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time interface assertion.
var _ GenericGateway = (*GenericStore)(nil)

// GenericStore implements GenericGateway: untyped CRUD addressable by
// collection name, for collections not anticipated at design time. The typed
// stores are preferred wherever the schema is known; this is the escape hatch.
type GenericStore struct {
	conn *Connection
}

// NewGenericStore creates a MongoDB-backed generic store.
// Returns ErrNoConnection if conn is nil.
func NewGenericStore(conn *Connection) (*GenericStore, error) {
	if conn == nil {
		return nil, ErrNoConnection
	}

	return &GenericStore{conn: conn}, nil
}

// InsertOne inserts a document and returns the generated id as a string.
func (s *GenericStore) InsertOne(ctx context.Context, collectionName string, document Document) (string, error) {
	if collectionName == "" {
		return "", ErrCollectionNameEmpty
	}

	if document == nil {
		return "", ErrNilDocument
	}

	result, err := s.conn.Collection(collectionName).InsertOne(ctx, document)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collectionName, err)
	}

	return insertedIDString(result.InsertedID), nil
}

// FindOne returns the first document matching query, or (nil, nil) if none matches.
func (s *GenericStore) FindOne(ctx context.Context, collectionName string, query Document) (Document, error) {
	if collectionName == "" {
		return nil, ErrCollectionNameEmpty
	}

	var doc Document

	err := s.conn.Collection(collectionName).FindOne(ctx, toFilter(query)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query %s: %w", collectionName, err)
	}

	return doc, nil
}

// FindMany returns every document matching query. A nil or empty query
// matches all documents, and no result cap is applied: an unfiltered read of
// a large collection returns the whole collection. Intended for small
// reference collections; larger ones are the caller's risk.
func (s *GenericStore) FindMany(ctx context.Context, collectionName string, query Document) ([]Document, error) {
	if collectionName == "" {
		return nil, ErrCollectionNameEmpty
	}

	cursor, err := s.conn.Collection(collectionName).Find(ctx, toFilter(query))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collectionName, err)
	}

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s documents: %w", collectionName, err)
	}

	if docs == nil {
		docs = []Document{}
	}

	return docs, nil
}

// UpdateOne applies update as a $set to the first document matching query.
// Returns true iff a document was actually modified. The query must be
// non-nil: a match-all filter on a mutation would pick an arbitrary document.
func (s *GenericStore) UpdateOne(ctx context.Context, collectionName string, query, update Document) (bool, error) {
	if collectionName == "" {
		return false, ErrCollectionNameEmpty
	}

	if query == nil {
		return false, ErrNilQuery
	}

	if update == nil {
		return false, ErrNilDocument
	}

	result, err := s.conn.Collection(collectionName).UpdateOne(ctx, toFilter(query), bson.M{"$set": update})
	if err != nil {
		return false, fmt.Errorf("failed to update %s: %w", collectionName, err)
	}

	return result.ModifiedCount > 0, nil
}

// UpsertOne applies update as a $set to the first document matching query,
// inserting a new document if none matches. Returns true iff a document was
// modified or inserted. The query must be non-nil. Used by out-of-band
// seeding of keyed reference data.
func (s *GenericStore) UpsertOne(ctx context.Context, collectionName string, query, update Document) (bool, error) {
	if collectionName == "" {
		return false, ErrCollectionNameEmpty
	}

	if query == nil {
		return false, ErrNilQuery
	}

	if update == nil {
		return false, ErrNilDocument
	}

	result, err := s.conn.Collection(collectionName).UpdateOne(ctx,
		toFilter(query),
		bson.M{"$set": update},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert into %s: %w", collectionName, err)
	}

	return result.ModifiedCount > 0 || result.UpsertedCount > 0, nil
}

// DeleteOne removes the first document matching query.
// Returns true iff a document was removed. The query must be non-nil: a
// match-all filter on a delete would remove an arbitrary document.
func (s *GenericStore) DeleteOne(ctx context.Context, collectionName string, query Document) (bool, error) {
	if collectionName == "" {
		return false, ErrCollectionNameEmpty
	}

	if query == nil {
		return false, ErrNilQuery
	}

	result, err := s.conn.Collection(collectionName).DeleteOne(ctx, toFilter(query))
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", collectionName, err)
	}

	return result.DeletedCount > 0, nil
}

// toFilter converts a caller-supplied query document into a driver filter.
// A nil query matches all documents.
func toFilter(query Document) bson.M {
	if query == nil {
		return bson.M{}
	}

	return bson.M(query)
}
