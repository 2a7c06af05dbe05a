package curated

import (
	"context"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/game"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/honors"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/player"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/season"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/team"
)

// Writer replaces curated tables. Every method drops and recreates its table
// in one transaction, so a failed write leaves the previous content of other
// tables untouched. Each returns the number of rows written.
type Writer interface {
	ReplacePlayers(ctx context.Context, rows []player.Player) (int64, error)
	ReplaceTeams(ctx context.Context, rows []team.Team) (int64, error)
	ReplaceTeamAliases(ctx context.Context, rows []team.Alias) (int64, error)
	ReplacePlayerSeasons(ctx context.Context, rows []season.PlayerSeason) (int64, error)
	ReplaceGames(ctx context.Context, rows []game.Game) (int64, error)
	ReplaceGameLogs(ctx context.Context, rows []game.PlayerGameLog) (int64, error)
	ReplacePlayByPlay(ctx context.Context, rows []game.PlayByPlayEvent) (int64, error)
	ReplaceTeamSeasons(ctx context.Context, rows []season.TeamSeason) (int64, error)
	ReplaceAwards(ctx context.Context, rows []honors.Award) (int64, error)
	ReplaceDraftPicks(ctx context.Context, rows []honors.DraftPick) (int64, error)
}

// Reader provides the validation engine's read-only view of the curated
// schema. A missing table yields an empty slice and an absent RowCounts key,
// never an error, so validation can report against a broken pipeline.
type Reader interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	RowCounts(ctx context.Context) (map[string]int64, error)
}

// PlayerSeasonQuery filters the curated player-season read model. A nil
// Season means all seasons; an empty TeamCode means all teams.
type PlayerSeasonQuery struct {
	Season   *int
	TeamCode string
	Limit    int
	Offset   int
}

// PlayerSeasonLine is one row of the player query: a curated season line
// joined with the player's display name.
type PlayerSeasonLine struct {
	PlayerID int64
	FullName string
	Season   int
	TeamCode string
	TeamID   *int64
	Games    int
	Points   float64
	Assists  float64
	Rebounds float64
}

// Archive is the consumer-facing read access over the curated schema.
type Archive interface {
	QueryPlayers(ctx context.Context, q PlayerSeasonQuery) ([]PlayerSeasonLine, error)
	GamePlayByPlay(ctx context.Context, gameID string) ([]game.PlayByPlayEvent, error)
}
