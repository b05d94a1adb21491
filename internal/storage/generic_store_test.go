package storage

import (
	"context"
	"errors"
	"testing"
)

func TestGenericStoreGuards(t *testing.T) {
	if !testing.Short() {
		t.Skip("skipping unit test in non-short mode")
	}

	ctx := context.Background()
	store := &GenericStore{conn: &Connection{}}

	t.Run("empty collection name", func(t *testing.T) {
		if _, err := store.InsertOne(ctx, "", Document{"a": 1}); !errors.Is(err, ErrCollectionNameEmpty) {
			t.Errorf("InsertOne() error = %v, want ErrCollectionNameEmpty", err)
		}

		if _, err := store.FindOne(ctx, "", nil); !errors.Is(err, ErrCollectionNameEmpty) {
			t.Errorf("FindOne() error = %v, want ErrCollectionNameEmpty", err)
		}

		if _, err := store.FindMany(ctx, "", nil); !errors.Is(err, ErrCollectionNameEmpty) {
			t.Errorf("FindMany() error = %v, want ErrCollectionNameEmpty", err)
		}

		if _, err := store.UpdateOne(ctx, "", nil, Document{"a": 1}); !errors.Is(err, ErrCollectionNameEmpty) {
			t.Errorf("UpdateOne() error = %v, want ErrCollectionNameEmpty", err)
		}

		if _, err := store.UpsertOne(ctx, "", nil, Document{"a": 1}); !errors.Is(err, ErrCollectionNameEmpty) {
			t.Errorf("UpsertOne() error = %v, want ErrCollectionNameEmpty", err)
		}

		if _, err := store.DeleteOne(ctx, "", nil); !errors.Is(err, ErrCollectionNameEmpty) {
			t.Errorf("DeleteOne() error = %v, want ErrCollectionNameEmpty", err)
		}
	})

	t.Run("nil document", func(t *testing.T) {
		if _, err := store.InsertOne(ctx, "anything", nil); !errors.Is(err, ErrNilDocument) {
			t.Errorf("InsertOne() error = %v, want ErrNilDocument", err)
		}

		if _, err := store.UpdateOne(ctx, "anything", Document{"a": 1}, nil); !errors.Is(err, ErrNilDocument) {
			t.Errorf("UpdateOne() error = %v, want ErrNilDocument", err)
		}

		if _, err := store.UpsertOne(ctx, "anything", Document{"a": 1}, nil); !errors.Is(err, ErrNilDocument) {
			t.Errorf("UpsertOne() error = %v, want ErrNilDocument", err)
		}
	})

	t.Run("nil query on single-document mutations", func(t *testing.T) {
		if _, err := store.UpdateOne(ctx, "anything", nil, Document{"a": 1}); !errors.Is(err, ErrNilQuery) {
			t.Errorf("UpdateOne() error = %v, want ErrNilQuery", err)
		}

		if _, err := store.UpsertOne(ctx, "anything", nil, Document{"a": 1}); !errors.Is(err, ErrNilQuery) {
			t.Errorf("UpsertOne() error = %v, want ErrNilQuery", err)
		}

		if _, err := store.DeleteOne(ctx, "anything", nil); !errors.Is(err, ErrNilQuery) {
			t.Errorf("DeleteOne() error = %v, want ErrNilQuery", err)
		}
	})
}

func TestToFilter(t *testing.T) {
	if !testing.Short() {
		t.Skip("skipping unit test in non-short mode")
	}

	if got := toFilter(nil); len(got) != 0 {
		t.Errorf("toFilter(nil) = %v, want empty match-all filter", got)
	}

	filter := toFilter(Document{"report_id": "rpt-001"})
	if filter["report_id"] != "rpt-001" {
		t.Errorf("toFilter() dropped the query key: %v", filter)
	}
}
