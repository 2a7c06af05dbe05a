package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
)

// stubLoader records staging-load calls; concurrent-safe since the service
// fans loads out over a pool.
type stubLoader struct {
	mu       sync.Mutex
	ensured  []string
	loaded   []string
	failLoad map[string]error
	rows     int64
}

func (l *stubLoader) EnsureTable(_ context.Context, plan LoadPlan) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensured = append(l.ensured, plan.Table)
	return nil
}

func (l *stubLoader) LoadCSV(_ context.Context, plan LoadPlan, _ string, _ []string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failLoad[plan.Table]; err != nil {
		return 0, err
	}
	l.loaded = append(l.loaded, plan.Table)
	return l.rows, nil
}

func touchCSVs(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("header\n"), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
}

func allPlanFiles() []string {
	plans := LoadPlans()
	files := make([]string, 0, len(plans))
	for _, p := range plans {
		files = append(files, p.File)
	}
	return files
}

func TestIngestion_LoadsEveryPresentFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touchCSVs(t, dir, allPlanFiles()...)

	loader := &stubLoader{rows: 3}
	svc := NewIngestionService(loader, dir, []string{"", "NA", "null"}, 4, nil)

	results, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != len(LoadPlans()) {
		t.Fatalf("expected a result per plan, got %d", len(results))
	}
	if !sort.SliceIsSorted(results, func(i, j int) bool { return results[i].Table < results[j].Table }) {
		t.Fatalf("results not ordered by table: %+v", results)
	}
	for _, r := range results {
		if r.Status != LoadStatusLoaded || r.Rows != 3 {
			t.Fatalf("expected every table loaded, got %+v", r)
		}
	}
	if len(loader.ensured) != 0 {
		t.Fatalf("no empty tables expected when every file is present, got %v", loader.ensured)
	}
}

func TestIngestion_MissingFileCreatesEmptyTable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := allPlanFiles()
	// Hold back the play-by-play source.
	present := make([]string, 0, len(files)-1)
	for _, f := range files {
		if f != "play_by_play.csv" {
			present = append(present, f)
		}
	}
	touchCSVs(t, dir, present...)

	loader := &stubLoader{rows: 1}
	svc := NewIngestionService(loader, dir, nil, 2, nil)

	results, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var skipped []LoadResult
	for _, r := range results {
		if r.Status == LoadStatusSkipped {
			skipped = append(skipped, r)
		}
	}
	if len(skipped) != 1 || skipped[0].File != "play_by_play.csv" {
		t.Fatalf("expected exactly the missing file skipped, got %+v", skipped)
	}
	if len(loader.ensured) != 1 || loader.ensured[0] != skipped[0].Table {
		t.Fatalf("expected an empty table created for the skipped source, got %v", loader.ensured)
	}
}

func TestIngestion_LoadFailureDoesNotAbortRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touchCSVs(t, dir, allPlanFiles()...)

	plans := LoadPlans()
	badTable := plans[0].Table
	loader := &stubLoader{
		rows:     2,
		failLoad: map[string]error{badTable: errors.New("malformed csv")},
	}
	svc := NewIngestionService(loader, dir, nil, 4, nil)

	results, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("per-source failures must not fail the run: %v", err)
	}

	var failed, loaded int
	for _, r := range results {
		switch r.Status {
		case LoadStatusFailed:
			failed++
			if r.Table != badTable || r.Message == "" {
				t.Fatalf("unexpected failed result: %+v", r)
			}
		case LoadStatusLoaded:
			loaded++
		}
	}
	if failed != 1 || loaded != len(plans)-1 {
		t.Fatalf("expected 1 failure and %d loads, got %d/%d", len(plans)-1, failed, loaded)
	}
	// The failed source still ends up with a usable empty table.
	if len(loader.ensured) != 1 || loader.ensured[0] != badTable {
		t.Fatalf("expected fallback table create for the failed source, got %v", loader.ensured)
	}
}
