package duckdb

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/curated"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/game"
	qb "github.com/hoopsarchive/hoopsarchive/internal/platform/querybuilder"
)

type playerSeasonLineModel struct {
	PlayerID int64          `db:"player_id"`
	FullName sql.NullString `db:"full_name"`
	Season   int            `db:"season"`
	TeamCode string         `db:"tm"`
	TeamID   sql.NullInt64  `db:"team_id"`
	Games    int            `db:"g"`
	Points   float64        `db:"pts"`
	Assists  float64        `db:"ast"`
	Rebounds float64        `db:"trb"`
}

// ReadRepository serves consumer queries over the curated schema.
type ReadRepository struct {
	db *sqlx.DB
}

func NewReadRepository(session *Session) *ReadRepository {
	return &ReadRepository{db: session.DB()}
}

// QueryPlayers lists curated season lines joined with player names. The team
// filter matches the stored team code case-insensitively; results are ordered
// by player name then season for stable pagination.
func (r *ReadRepository) QueryPlayers(ctx context.Context, q curated.PlayerSeasonQuery) ([]curated.PlayerSeasonLine, error) {
	builder := qb.Select(
		"ps.player_id", "p.full_name", "ps.season", "ps.tm", "ps.team_id",
		"ps.g", "ps.pts", "ps.ast", "ps.trb",
	).
		From(curated.TablePlayerSeason+" ps").
		LeftJoin(curated.TablePlayer+" p ON p.player_id = ps.player_id").
		OrderBy("p.full_name", "ps.season", "ps.player_id")

	if q.Season != nil {
		builder = builder.Where(qb.Eq("ps.season", *q.Season))
	}
	if q.TeamCode != "" {
		builder = builder.Where(qb.Expr("upper(ps.tm) = upper(?)", q.TeamCode))
	}
	if q.Limit > 0 {
		builder = builder.Limit(q.Limit)
	}
	if q.Offset > 0 {
		builder = builder.Offset(q.Offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build player query")
	}

	var models []playerSeasonLineModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, errors.Wrap(err, "query curated players")
	}

	out := make([]curated.PlayerSeasonLine, 0, len(models))
	for _, m := range models {
		out = append(out, curated.PlayerSeasonLine{
			PlayerID: m.PlayerID,
			FullName: nullString(m.FullName),
			Season:   m.Season,
			TeamCode: m.TeamCode,
			TeamID:   nullInt64Ptr(m.TeamID),
			Games:    m.Games,
			Points:   m.Points,
			Assists:  m.Assists,
			Rebounds: m.Rebounds,
		})
	}
	return out, nil
}

// GamePlayByPlay returns a game's events in chronological order.
func (r *ReadRepository) GamePlayByPlay(ctx context.Context, gameID string) ([]game.PlayByPlayEvent, error) {
	query, args, err := qb.Select(
		"game_id", "eventnum", "period", "wctimestring", "eventmsgtype", "eventmsgactiontype",
		"homedescription", "visitordescription", "score", "player1_id",
	).
		From(curated.TablePlayByPlay).
		Where(qb.Eq("game_id", gameID)).
		OrderBy("period", "eventnum").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build play-by-play query")
	}

	var models []curatedPlayByPlayModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, errors.Wrap(err, "query play-by-play")
	}

	out := make([]game.PlayByPlayEvent, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}
