package app

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/hoopsarchive/hoopsarchive/internal/config"
	"github.com/hoopsarchive/hoopsarchive/internal/infrastructure/reference"
	"github.com/hoopsarchive/hoopsarchive/internal/infrastructure/repository/duckdb"
	"github.com/hoopsarchive/hoopsarchive/internal/platform/logging"
	"github.com/hoopsarchive/hoopsarchive/internal/usecase"
)

// Pipeline wires one database session to the ingestion, curation, validation
// and read services. The session is owned here: construct, use, Close.
type Pipeline struct {
	session *duckdb.Session

	Ingestion  *usecase.IngestionService
	Curation   *usecase.CurationService
	Validation *usecase.ValidationService
	Archive    *usecase.ArchiveService
}

func NewPipeline(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Pipeline, error) {
	var session *duckdb.Session
	var err error
	if cfg.DatabasePath == "" {
		session, err = duckdb.OpenInMemory(ctx)
	} else {
		session, err = duckdb.Open(ctx, cfg.DatabasePath)
	}
	if err != nil {
		return nil, errors.Wrap(err, "open pipeline database")
	}

	stagingRepo := duckdb.NewStagingRepository(session)
	curatedRepo := duckdb.NewCuratedRepository(session)
	readRepo := duckdb.NewReadRepository(session)

	var referenceSource usecase.ReferenceSource
	if cfg.ReconReferencePath != "" {
		src, err := reference.NewFileSource(cfg.ReconReferencePath)
		if err != nil {
			_ = session.Close()
			return nil, errors.Wrap(err, "load reconciliation reference")
		}
		referenceSource = src
	}

	return &Pipeline{
		session:   session,
		Ingestion: usecase.NewIngestionService(stagingRepo, cfg.CSVDir, cfg.NullStrings, cfg.IngestWorkers, logger),
		Curation: usecase.NewCurationService(
			stagingRepo,
			curatedRepo,
			usecase.NewPlayerResolverService(logger),
			usecase.NewTeamAliasService(logger),
			usecase.NewSeasonResolverService(logger),
			logger,
		),
		Validation: usecase.NewValidationService(stagingRepo, curatedRepo, referenceSource, usecase.ValidationConfig{
			SampleSize: cfg.ReconSampleSize,
			Tolerance:  cfg.ReconTolerance,
		}, logger),
		Archive: usecase.NewArchiveService(readRepo, logger),
	}, nil
}

func (p *Pipeline) Close() error {
	return p.session.Close()
}
