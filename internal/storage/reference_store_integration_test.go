package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	conn := newTestConnection(ctx, t)

	store, err := NewReferenceStore(conn)
	require.NoError(t, err)

	seeder, err := NewGenericStore(conn)
	require.NoError(t, err)

	t.Run("parameter standard upsert converges on one document", func(t *testing.T) {
		name, err := store.SaveParameterStandard(ctx, Document{
			"parameter_name": "ph",
			"unit":           "pH units",
			"thresholds":     Document{"optimal": Document{"min": 6.5, "max": 8.5}},
		})
		require.NoError(t, err)
		assert.Equal(t, "ph", name)

		name, err = store.SaveParameterStandard(ctx, Document{
			"parameter_name": "ph",
			"unit":           "pH",
			"thresholds":     Document{"optimal": Document{"min": 7.0, "max": 8.0}},
		})
		require.NoError(t, err)
		assert.Equal(t, "ph", name)

		all, err := store.GetAllParameterStandards(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1, "saving the same parameter twice must not duplicate it")

		got, err := store.GetParameterStandard(ctx, "ph")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "pH", got["unit"], "second save must win")
	})

	t.Run("parameter standard guards", func(t *testing.T) {
		_, err := store.SaveParameterStandard(ctx, nil)
		assert.ErrorIs(t, err, ErrNilDocument)

		_, err = store.SaveParameterStandard(ctx, Document{"unit": "mg/L"})
		assert.ErrorIs(t, err, ErrParameterNameMissing)
	})

	t.Run("formula upsert and lookup", func(t *testing.T) {
		name, err := store.SaveFormula(ctx, Document{
			"formula_name":        "langelier_saturation_index",
			"formula_type":        "corrosion_index",
			"required_parameters": []string{"ph", "temperature", "calcium", "alkalinity", "tds"},
			"formula_expression":  "pH - pHs",
		})
		require.NoError(t, err)
		assert.Equal(t, "langelier_saturation_index", name)

		got, err := store.GetFormula(ctx, "langelier_saturation_index")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "corrosion_index", got["formula_type"])

		absent, err := store.GetFormula(ctx, "no_such_formula")
		require.NoError(t, err)
		assert.Nil(t, absent)

		all, err := store.GetAllFormulas(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		_, err = store.SaveFormula(ctx, Document{"formula_type": "basic_calculation"})
		assert.ErrorIs(t, err, ErrFormulaNameMissing)
	})

	t.Run("graph template lookup by type", func(t *testing.T) {
		absent, err := store.GetGraphTemplate(ctx, "radar")
		require.NoError(t, err)
		assert.Nil(t, absent)

		_, err = seeder.InsertOne(ctx, CollectionGraphTemplates, Document{
			"graph_type": "radar",
			"layout":     Document{"theme": "dark"},
		})
		require.NoError(t, err)

		got, err := store.GetGraphTemplate(ctx, "radar")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "radar", got["graph_type"])
	})

	t.Run("scoring config lookup by type", func(t *testing.T) {
		_, err := seeder.InsertOne(ctx, CollectionScoringConfig, Document{
			"scoring_type": "wqi",
			"weights":      Document{"ph": 0.12, "turbidity": 0.08},
		})
		require.NoError(t, err)

		got, err := store.GetScoringConfig(ctx, "wqi")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "wqi", got["scoring_type"])
	})

	t.Run("compliance rules filter by standard", func(t *testing.T) {
		for _, doc := range []Document{
			{"standard": "WHO", "parameter": "ph", "max": 8.5},
			{"standard": "WHO", "parameter": "nitrate", "max": 50.0},
			{"standard": "EPA", "parameter": "nitrate", "max": 44.0},
		} {
			_, err := seeder.InsertOne(ctx, CollectionComplianceRules, doc)
			require.NoError(t, err)
		}

		who, err := store.GetComplianceRules(ctx, "WHO")
		require.NoError(t, err)
		assert.Len(t, who, 2)

		all, err := store.GetComplianceRules(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		none, err := store.GetComplianceRules(ctx, "BIS")
		require.NoError(t, err)
		require.NotNil(t, none, "no matches must yield an empty slice, not nil")
		assert.Empty(t, none)
	})

	t.Run("suggestion templates filter by category", func(t *testing.T) {
		for _, doc := range []Document{
			{"category": "filtration", "text": "Install an activated carbon filter"},
			{"category": "disinfection", "text": "Shock chlorinate the well"},
		} {
			_, err := seeder.InsertOne(ctx, CollectionSuggestionTemplates, doc)
			require.NoError(t, err)
		}

		filtration, err := store.GetSuggestionTemplates(ctx, "filtration")
		require.NoError(t, err)
		assert.Len(t, filtration, 1)

		all, err := store.GetSuggestionTemplates(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("phreeqc config singleton", func(t *testing.T) {
		absent, err := store.GetPhreeqcConfig(ctx)
		require.NoError(t, err)
		assert.Nil(t, absent, "unseeded phreeqc config must yield nil")

		_, err = seeder.InsertOne(ctx, CollectionPhreeqcConfig, Document{
			"database": "phreeqc.dat",
			"units":    "mg/L",
		})
		require.NoError(t, err)

		got, err := store.GetPhreeqcConfig(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "phreeqc.dat", got["database"])
	})
}
