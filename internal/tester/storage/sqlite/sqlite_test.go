package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/louisbranch/rxlab/internal/match"
	"github.com/louisbranch/rxlab/internal/tester/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	want := storage.SessionState{
		Pattern:    `\d+`,
		Flags:      "g",
		TestString: "a1 b22 c333",
		Engine:     match.EngineGo,
	}
	if err := store.Save(ctx, storage.SnapshotKey, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, ok, err := store.Load(ctx, storage.SnapshotKey)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !ok {
		t.Fatal("Load() ok = false, want true")
	}
	if got != want {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	first := storage.SessionState{Pattern: "a", Engine: match.EngineGo}
	second := storage.SessionState{Pattern: "b", Flags: "i", Engine: match.EngineLua}
	if err := store.Save(ctx, storage.SnapshotKey, first); err != nil {
		t.Fatalf("Save() first error = %v", err)
	}
	if err := store.Save(ctx, storage.SnapshotKey, second); err != nil {
		t.Fatalf("Save() second error = %v", err)
	}

	got, ok, err := store.Load(ctx, storage.SnapshotKey)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !ok {
		t.Fatal("Load() ok = false, want true")
	}
	if got != second {
		t.Fatalf("Load() = %+v, want %+v", got, second)
	}
}

func TestLoadMissingSnapshot(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	_, ok, err := store.Load(context.Background(), storage.SnapshotKey)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ok {
		t.Fatal("Load() ok = true, want false for empty store")
	}
}

func TestLoadDiscardsCorruptSnapshot(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.db.ExecContext(ctx,
		"INSERT INTO snapshots (key, state, updated_at) VALUES (?, ?, 0)",
		storage.SnapshotKey, "{not json",
	); err != nil {
		t.Fatalf("seed corrupt snapshot: %v", err)
	}

	_, ok, err := store.Load(ctx, storage.SnapshotKey)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ok {
		t.Fatal("Load() ok = true, want false for corrupt snapshot")
	}
}

func TestLoadResetsUnknownEngineKeepsRest(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.db.ExecContext(ctx,
		"INSERT INTO snapshots (key, state, updated_at) VALUES (?, ?, 0)",
		storage.SnapshotKey, `{"pattern":"\\d+","flags":"g","test_string":"a1b22","engine":"js"}`,
	); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	got, ok, err := store.Load(ctx, storage.SnapshotKey)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !ok {
		t.Fatal("Load() ok = false, want true (unknown engine alone must not discard the snapshot)")
	}
	if got.Engine != match.EngineGo {
		t.Fatalf("Engine = %q, want default %q", got.Engine, match.EngineGo)
	}
	if got.Pattern != `\d+` || got.Flags != "g" || got.TestString != "a1b22" {
		t.Fatalf("Load() = %+v, want pattern/flags/test string preserved", got)
	}
}
