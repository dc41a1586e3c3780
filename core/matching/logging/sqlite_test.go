package logging

import (
	"context"
	"testing"
	"time"

	"github.com/inakineitor/algo-comp-2023/core/matching"
)

func TestSQLiteStore_PersistQuery(t *testing.T) {
	store, err := NewSQLiteStore("file:runs.db?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()
	ctx := context.Background()
	now := time.Now()
	if err := store.Append(ctx, sampleRecord(now, matching.StatusMatched)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, sampleRecord(now.Add(time.Second), matching.StatusAttemptLimit)); err != nil {
		t.Fatalf("append: %v", err)
	}

	three := 3
	out, err := store.Query(ctx, RunQuery{Participant: &three, Status: "matched"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	if out[0].Pairs[0].Score != 0.7 {
		t.Fatalf("unexpected pairs %+v", out[0].Pairs)
	}

	later, err := store.Query(ctx, RunQuery{Start: now.Add(500 * time.Millisecond)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(later) != 1 || later[0].Status != matching.StatusAttemptLimit {
		t.Fatalf("unexpected records %+v", later)
	}
}
