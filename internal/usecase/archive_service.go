package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/curated"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/game"
	"github.com/hoopsarchive/hoopsarchive/internal/platform/logging"
)

// maxQueryLimit caps one page of the player query.
const maxQueryLimit = 500

// ArchiveService fronts the curated read access with input validation and a
// default page size.
type ArchiveService struct {
	archive curated.Archive
	logger  *logging.Logger
}

func NewArchiveService(archive curated.Archive, logger *logging.Logger) *ArchiveService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ArchiveService{archive: archive, logger: logger}
}

// QueryPlayers validates and normalizes the query before delegating.
func (s *ArchiveService) QueryPlayers(ctx context.Context, q curated.PlayerSeasonQuery) ([]curated.PlayerSeasonLine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArchiveService.QueryPlayers")
	defer span.End()

	if q.Limit < 0 || q.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must be non-negative", ErrInvalidInput)
	}
	if q.Limit == 0 || q.Limit > maxQueryLimit {
		q.Limit = maxQueryLimit
	}
	if q.Season != nil && *q.Season < 0 {
		return nil, fmt.Errorf("%w: season must be non-negative", ErrInvalidInput)
	}
	q.TeamCode = strings.TrimSpace(q.TeamCode)

	return s.archive.QueryPlayers(ctx, q)
}

// GamePlayByPlay returns a game's events in chronological order.
func (s *ArchiveService) GamePlayByPlay(ctx context.Context, gameID string) ([]game.PlayByPlayEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArchiveService.GamePlayByPlay")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	return s.archive.GamePlayByPlay(ctx, gameID)
}
