package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/hoopsarchive/hoopsarchive/internal/platform/logging"
)

// StagingLoader executes staging loads against the engine. EnsureTable
// creates an empty staging table with the plan's declared schema; LoadCSV
// replaces the table from a CSV file with the given null-string sentinels.
type StagingLoader interface {
	EnsureTable(ctx context.Context, plan LoadPlan) error
	LoadCSV(ctx context.Context, plan LoadPlan, path string, nullStrings []string) (int64, error)
}

const (
	LoadStatusLoaded  = "loaded"
	LoadStatusSkipped = "skipped"
	LoadStatusFailed  = "failed"
)

// LoadResult records the outcome of one staging load.
type LoadResult struct {
	Table   string
	File    string
	Rows    int64
	Status  string
	Message string
}

// IngestionService loads the source CSVs into staging tables. Unlike curated
// builds, staging loads tolerate per-source failures: a bad or missing file
// yields an empty staging table and a logged warning, and the run continues.
type IngestionService struct {
	loader      StagingLoader
	csvDir      string
	nullStrings []string
	workers     int
	logger      *logging.Logger
}

func NewIngestionService(loader StagingLoader, csvDir string, nullStrings []string, workers int, logger *logging.Logger) *IngestionService {
	if logger == nil {
		logger = logging.NewNop()
	}
	if workers < 1 {
		workers = 1
	}
	return &IngestionService{
		loader:      loader,
		csvDir:      csvDir,
		nullStrings: nullStrings,
		workers:     workers,
		logger:      logger,
	}
}

// Run loads every planned CSV on a bounded worker pool and returns per-table
// results ordered by table name.
func (s *IngestionService) Run(ctx context.Context) ([]LoadResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Run")
	defer span.End()

	plans := LoadPlans()
	results := make(chan LoadResult, len(plans))

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create ingest worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, plan := range plans {
		plan := plan
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results <- s.loadOne(ctx, plan)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit staging load to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make([]LoadResult, 0, len(plans))
	for row := range results {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Table < out[j].Table })

	return out, nil
}

func (s *IngestionService) loadOne(ctx context.Context, plan LoadPlan) LoadResult {
	result := LoadResult{Table: plan.Table, File: plan.File}
	path := filepath.Join(s.csvDir, plan.File)

	if _, err := os.Stat(path); err != nil {
		result.Status = LoadStatusSkipped
		result.Message = "source file not found"
		if ensureErr := s.loader.EnsureTable(ctx, plan); ensureErr != nil {
			result.Status = LoadStatusFailed
			result.Message = ensureErr.Error()
			s.logger.ErrorContext(ctx, "staging table create failed", "table", plan.Table, "error", ensureErr)
			return result
		}
		s.logger.WarnContext(ctx, "staging source missing, empty table created", "table", plan.Table, "file", path)
		return result
	}

	rows, err := s.loader.LoadCSV(ctx, plan, path, s.nullStrings)
	if err != nil {
		result.Status = LoadStatusFailed
		result.Message = err.Error()
		s.logger.ErrorContext(ctx, "staging load failed", "table", plan.Table, "file", path, "error", err)
		if ensureErr := s.loader.EnsureTable(ctx, plan); ensureErr != nil {
			s.logger.ErrorContext(ctx, "staging table create failed after load failure", "table", plan.Table, "error", ensureErr)
		}
		return result
	}

	result.Status = LoadStatusLoaded
	result.Rows = rows
	s.logger.InfoContext(ctx, "staging table loaded", "table", plan.Table, "rows", rows)
	return result
}
