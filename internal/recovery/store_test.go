package recovery

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/reteach/reteach-cli/internal/diagnostic"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "reteach.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPublishInfoRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	info := diagnostic.PublishInfo{
		FormURL:  "http://localhost:8000/form/abc123",
		FormSlug: "abc123",
		FormID:   "f-1",
	}
	if err := s.SavePublishInfo(ctx, info); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok := s.LoadPublishInfo(ctx)
	if !ok {
		t.Fatal("expected a stored publish record")
	}
	if got != info {
		t.Errorf("loaded %+v, want %+v", got, info)
	}
}

func TestLoadMissingPublishInfo(t *testing.T) {
	s := openTestStore(t)

	if _, ok := s.LoadPublishInfo(context.Background()); ok {
		t.Error("expected no record in a fresh store")
	}
}

func TestSaveReplacesWholesale(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := diagnostic.PublishInfo{FormURL: "u1", FormSlug: "s1", FormID: "f1"}
	second := diagnostic.PublishInfo{FormURL: "u2", FormSlug: "s2", FormID: "f2"}
	if err := s.SavePublishInfo(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := s.SavePublishInfo(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, ok := s.LoadPublishInfo(ctx)
	if !ok || got != second {
		t.Errorf("loaded %+v, want %+v", got, second)
	}
}

func TestClearPublishInfo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	info := diagnostic.PublishInfo{FormURL: "u", FormSlug: "s", FormID: "f"}
	if err := s.SavePublishInfo(ctx, info); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.ClearPublishInfo(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := s.LoadPublishInfo(ctx); ok {
		t.Error("record survived a clear")
	}
}

func TestStaleSchemaVersionIsIgnored(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	info := diagnostic.PublishInfo{FormURL: "u", FormSlug: "s", FormID: "f"}
	if err := s.SavePublishInfo(ctx, info); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE recovery SET version = version + 1`); err != nil {
		t.Fatalf("bump version: %v", err)
	}

	if _, ok := s.LoadPublishInfo(ctx); ok {
		t.Error("record from a different schema version must be treated as absent")
	}
}

func TestIncompleteRecordIsTreatedAsAbsent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SavePublishInfo(ctx, diagnostic.PublishInfo{FormURL: "u"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := s.LoadPublishInfo(ctx); ok {
		t.Error("record without a slug must not be recoverable")
	}
}
