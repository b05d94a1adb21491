package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aquascope-io/aquascope/internal/config"
)

// Compile-time interface assertion.
var _ ReferenceGateway = (*ReferenceStore)(nil)

// ReferenceStore implements ReferenceGateway with a MongoDB backend.
//
// Parameter standards and calculation formulas are upserted by their natural
// key (create-or-replace, never append-only). The remaining collections are
// read-only here and assumed seeded out-of-band (see cmd/seeder).
type ReferenceStore struct {
	conn   *Connection
	logger *slog.Logger
}

// NewReferenceStore creates a MongoDB-backed reference data store.
// Returns ErrNoConnection if conn is nil.
func NewReferenceStore(conn *Connection) (*ReferenceStore, error) {
	if conn == nil {
		return nil, ErrNoConnection
	}

	return &ReferenceStore{
		conn: conn,
		logger: slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: config.GetEnvLogLevel("LOG_LEVEL", slog.LevelInfo),
		})),
	}, nil
}

// GetParameterStandard returns the threshold standard for a parameter, or
// (nil, nil) if no standard is stored under that name.
func (s *ReferenceStore) GetParameterStandard(ctx context.Context, parameterName string) (Document, error) {
	return s.findOne(ctx, CollectionParameterStandards, bson.M{fieldParameterName: parameterName})
}

// GetAllParameterStandards returns every stored parameter standard.
func (s *ReferenceStore) GetAllParameterStandards(ctx context.Context) ([]Document, error) {
	return s.findAll(ctx, CollectionParameterStandards, bson.M{})
}

// SaveParameterStandard upserts a standard keyed by parameter_name and echoes
// the name back. Saving the same name twice leaves exactly one document
// reflecting the second payload.
func (s *ReferenceStore) SaveParameterStandard(ctx context.Context, standard Document) (string, error) {
	if standard == nil {
		return "", ErrNilDocument
	}

	if !hasNonEmptyString(standard, fieldParameterName) {
		return "", ErrParameterNameMissing
	}

	name, _ := standard[fieldParameterName].(string)

	if err := s.upsert(ctx, CollectionParameterStandards, bson.M{fieldParameterName: name}, standard); err != nil {
		return "", fmt.Errorf("failed to save parameter standard: %w", err)
	}

	s.logger.Info("Parameter standard saved", slog.String("parameter_name", name))

	return name, nil
}

// GetFormula returns a calculation formula by name, or (nil, nil) if absent.
func (s *ReferenceStore) GetFormula(ctx context.Context, formulaName string) (Document, error) {
	return s.findOne(ctx, CollectionCalculationFormulas, bson.M{fieldFormulaName: formulaName})
}

// GetAllFormulas returns every stored calculation formula.
func (s *ReferenceStore) GetAllFormulas(ctx context.Context) ([]Document, error) {
	return s.findAll(ctx, CollectionCalculationFormulas, bson.M{})
}

// SaveFormula upserts a formula keyed by formula_name and echoes the name back.
func (s *ReferenceStore) SaveFormula(ctx context.Context, formula Document) (string, error) {
	if formula == nil {
		return "", ErrNilDocument
	}

	if !hasNonEmptyString(formula, fieldFormulaName) {
		return "", ErrFormulaNameMissing
	}

	name, _ := formula[fieldFormulaName].(string)

	if err := s.upsert(ctx, CollectionCalculationFormulas, bson.M{fieldFormulaName: name}, formula); err != nil {
		return "", fmt.Errorf("failed to save formula: %w", err)
	}

	s.logger.Info("Formula saved", slog.String("formula_name", name))

	return name, nil
}

// GetGraphTemplate returns the template for a graph type, or (nil, nil) if absent.
func (s *ReferenceStore) GetGraphTemplate(ctx context.Context, graphType string) (Document, error) {
	return s.findOne(ctx, CollectionGraphTemplates, bson.M{fieldGraphType: graphType})
}

// GetScoringConfig returns the configuration for a scoring type, or (nil, nil) if absent.
func (s *ReferenceStore) GetScoringConfig(ctx context.Context, scoringType string) (Document, error) {
	return s.findOne(ctx, CollectionScoringConfig, bson.M{fieldScoringType: scoringType})
}

// GetComplianceRules returns compliance rules, optionally filtered by
// regulatory standard. An empty standard returns all rules.
func (s *ReferenceStore) GetComplianceRules(ctx context.Context, standard string) ([]Document, error) {
	query := bson.M{}
	if standard != "" {
		query[fieldStandard] = standard
	}

	return s.findAll(ctx, CollectionComplianceRules, query)
}

// GetSuggestionTemplates returns suggestion templates, optionally filtered by
// category. An empty category returns all templates.
func (s *ReferenceStore) GetSuggestionTemplates(ctx context.Context, category string) ([]Document, error) {
	query := bson.M{}
	if category != "" {
		query[fieldCategory] = category
	}

	return s.findAll(ctx, CollectionSuggestionTemplates, query)
}

// GetPhreeqcConfig returns the PHREEQC solver configuration document, or
// (nil, nil) if none is seeded. The collection holds a single document.
func (s *ReferenceStore) GetPhreeqcConfig(ctx context.Context) (Document, error) {
	return s.findOne(ctx, CollectionPhreeqcConfig, bson.M{})
}

func (s *ReferenceStore) findOne(ctx context.Context, collection string, query bson.M) (Document, error) {
	var doc Document

	err := s.conn.Collection(collection).FindOne(ctx, query).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}

	return doc, nil
}

// findAll returns every matching document with no result cap. Reference
// collections are expected to stay small; an unbounded read against a large
// collection is the caller's resource-exhaustion risk to manage.
func (s *ReferenceStore) findAll(ctx context.Context, collection string, query bson.M) ([]Document, error) {
	cursor, err := s.conn.Collection(collection).Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s documents: %w", collection, err)
	}

	if docs == nil {
		docs = []Document{}
	}

	return docs, nil
}

func (s *ReferenceStore) upsert(ctx context.Context, collection string, query bson.M, doc Document) error {
	_, err := s.conn.Collection(collection).UpdateOne(ctx,
		query,
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)

	return err
}
