package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/curated"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/game"
)

type stubArchive struct {
	lastQuery  curated.PlayerSeasonQuery
	lastGameID string
}

func (a *stubArchive) QueryPlayers(_ context.Context, q curated.PlayerSeasonQuery) ([]curated.PlayerSeasonLine, error) {
	a.lastQuery = q
	return nil, nil
}

func (a *stubArchive) GamePlayByPlay(_ context.Context, gameID string) ([]game.PlayByPlayEvent, error) {
	a.lastGameID = gameID
	return nil, nil
}

func TestArchive_QueryAppliesDefaultLimit(t *testing.T) {
	t.Parallel()

	archive := &stubArchive{}
	svc := NewArchiveService(archive, nil)

	if _, err := svc.QueryPlayers(context.Background(), curated.PlayerSeasonQuery{TeamCode: " bos "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if archive.lastQuery.Limit != maxQueryLimit {
		t.Fatalf("expected default limit, got %d", archive.lastQuery.Limit)
	}
	if archive.lastQuery.TeamCode != "bos" {
		t.Fatalf("expected trimmed team code, got %q", archive.lastQuery.TeamCode)
	}
}

func TestArchive_QueryRejectsNegativeBounds(t *testing.T) {
	t.Parallel()

	svc := NewArchiveService(&stubArchive{}, nil)

	if _, err := svc.QueryPlayers(context.Background(), curated.PlayerSeasonQuery{Limit: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative limit, got %v", err)
	}
	bad := -5
	if _, err := svc.QueryPlayers(context.Background(), curated.PlayerSeasonQuery{Season: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative season, got %v", err)
	}
}

func TestArchive_PlayByPlayRequiresGameID(t *testing.T) {
	t.Parallel()

	archive := &stubArchive{}
	svc := NewArchiveService(archive, nil)

	if _, err := svc.GamePlayByPlay(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank game id, got %v", err)
	}
	if _, err := svc.GamePlayByPlay(context.Background(), " 0029900001 "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if archive.lastGameID != "0029900001" {
		t.Fatalf("expected trimmed game id, got %q", archive.lastGameID)
	}
}
