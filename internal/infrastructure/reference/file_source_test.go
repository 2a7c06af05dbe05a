package reference

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSnapshot(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reference.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func TestFileSource_Lookup(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, `[
		{"player_id": 1, "season": 2001, "metrics": {"pts": 1000.5, "ast": 210}},
		{"player_id": 2, "season": 1999, "metrics": {"trb": 300}}
	]`)

	src, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	if v, ok := src.PlayerSeasonMetric(ctx, 1, 2001, "pts"); !ok || v != 1000.5 {
		t.Fatalf("expected (1000.5, true), got (%v, %v)", v, ok)
	}
	if v, ok := src.PlayerSeasonMetric(ctx, 2, 1999, "trb"); !ok || v != 300 {
		t.Fatalf("expected (300, true), got (%v, %v)", v, ok)
	}
	if _, ok := src.PlayerSeasonMetric(ctx, 1, 2001, "trb"); ok {
		t.Fatal("expected uncovered metric to be unknown")
	}
	if _, ok := src.PlayerSeasonMetric(ctx, 9, 2001, "pts"); ok {
		t.Fatal("expected uncovered player to be unknown")
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing snapshot")
	}
}

func TestFileSource_MalformedJSON(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, `{"not": "a list"`)
	if _, err := NewFileSource(path); err == nil {
		t.Fatal("expected error for malformed snapshot")
	}
}
