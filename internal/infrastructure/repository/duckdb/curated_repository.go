package duckdb

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/curated"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/game"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/honors"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/player"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/season"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/team"
	qb "github.com/hoopsarchive/hoopsarchive/internal/platform/querybuilder"
)

// insertChunkRows bounds how many rows go into a single INSERT statement.
const insertChunkRows = 200

// CuratedRepository writes and reads the curated schema. Writes use replace
// semantics inside one transaction per table: drop, recreate from the fixed
// DDL, insert. Reads tolerate missing tables the same way the staging side
// does.
type CuratedRepository struct {
	db *sqlx.DB
}

func NewCuratedRepository(session *Session) *CuratedRepository {
	return &CuratedRepository{db: session.DB()}
}

func (r *CuratedRepository) ReplacePlayers(ctx context.Context, rows []player.Player) (int64, error) {
	values := make([][]any, 0, len(rows))
	for _, p := range rows {
		values = append(values, []any{
			p.PlayerID, p.FullName, string(p.Namespace),
			p.BirthDate, p.School, p.Country, p.Height, p.Weight, p.Position,
		})
	}
	return r.replaceTable(ctx, curated.TablePlayer,
		[]string{"player_id", "full_name", "namespace", "birthdate", "school", "country", "height", "weight", "position"},
		values)
}

func (r *CuratedRepository) ReplaceTeams(ctx context.Context, rows []team.Team) (int64, error) {
	values := make([][]any, 0, len(rows))
	for _, t := range rows {
		values = append(values, []any{
			t.TeamID, t.Abbreviation, t.FullName, t.Nickname, t.City, t.State, t.YearFounded,
		})
	}
	return r.replaceTable(ctx, curated.TableTeam,
		[]string{"team_id", "abbreviation", "full_name", "nickname", "city", "state", "year_founded"},
		values)
}

func (r *CuratedRepository) ReplaceTeamAliases(ctx context.Context, rows []team.Alias) (int64, error) {
	values := make([][]any, 0, len(rows))
	for _, a := range rows {
		values = append(values, []any{a.Season, a.AliasCode, a.MappedTeamID})
	}
	return r.replaceTable(ctx, curated.TableTeamAlias,
		[]string{"season", "alias_code", "mapped_team_id"},
		values)
}

func (r *CuratedRepository) ReplacePlayerSeasons(ctx context.Context, rows []season.PlayerSeason) (int64, error) {
	values := make([][]any, 0, len(rows))
	for _, ps := range rows {
		values = append(values, []any{
			ps.PlayerID, ps.Season, ps.TeamCode, ps.TeamID, ps.Jersey,
			ps.Games, ps.Minutes, ps.Points, ps.Assists, ps.Rebounds, ps.Steals, ps.Blocks, ps.Turnovers,
		})
	}
	return r.replaceTable(ctx, curated.TablePlayerSeason,
		[]string{"player_id", "season", "tm", "team_id", "jersey", "g", "mp", "pts", "ast", "trb", "stl", "blk", "tov"},
		values)
}

func (r *CuratedRepository) ReplaceGames(ctx context.Context, rows []game.Game) (int64, error) {
	values := make([][]any, 0, len(rows))
	for _, g := range rows {
		values = append(values, []any{
			g.GameID, g.Season, g.GameDate,
			g.HomeTeamID, g.HomeTeamName, g.HomePoints,
			g.VisitorTeamID, g.VisitorTeamName, g.VisitorPoints,
		})
	}
	return r.replaceTable(ctx, curated.TableGame,
		[]string{"game_id", "season", "game_date", "home_team_id", "home_team_name", "pts_home", "visitor_team_id", "visitor_team_name", "pts_away"},
		values)
}

func (r *CuratedRepository) ReplaceGameLogs(ctx context.Context, rows []game.PlayerGameLog) (int64, error) {
	values := make([][]any, 0, len(rows))
	for _, l := range rows {
		values = append(values, []any{
			l.GameID, l.PlayerID, l.TeamCode, l.TeamID, l.Minutes, l.Points, l.Assists, l.Rebounds,
		})
	}
	return r.replaceTable(ctx, curated.TablePlayerGameLog,
		[]string{"game_id", "player_id", "tm", "team_id", "mp", "pts", "ast", "trb"},
		values)
}

func (r *CuratedRepository) ReplacePlayByPlay(ctx context.Context, rows []game.PlayByPlayEvent) (int64, error) {
	values := make([][]any, 0, len(rows))
	for _, ev := range rows {
		values = append(values, []any{
			ev.GameID, ev.EventNum, ev.Period, ev.Clock, ev.EventType, ev.ActionType,
			ev.HomeDesc, ev.VisitorDesc, ev.Score, ev.PlayerID,
		})
	}
	return r.replaceTable(ctx, curated.TablePlayByPlay,
		[]string{"game_id", "eventnum", "period", "wctimestring", "eventmsgtype", "eventmsgactiontype", "homedescription", "visitordescription", "score", "player1_id"},
		values)
}

func (r *CuratedRepository) ReplaceTeamSeasons(ctx context.Context, rows []season.TeamSeason) (int64, error) {
	values := make([][]any, 0, len(rows))
	for _, ts := range rows {
		values = append(values, []any{ts.Season, ts.TeamCode, ts.TeamID, ts.Games, ts.Wins, ts.Losses, ts.Points})
	}
	return r.replaceTable(ctx, curated.TableTeamSeason,
		[]string{"season", "tm", "team_id", "g", "w", "l", "pts"},
		values)
}

func (r *CuratedRepository) ReplaceAwards(ctx context.Context, rows []honors.Award) (int64, error) {
	values := make([][]any, 0, len(rows))
	for _, a := range rows {
		values = append(values, []any{a.PlayerID, a.Season, a.Award})
	}
	return r.replaceTable(ctx, curated.TablePlayerAward,
		[]string{"player_id", "season", "award"},
		values)
}

func (r *CuratedRepository) ReplaceDraftPicks(ctx context.Context, rows []honors.DraftPick) (int64, error) {
	values := make([][]any, 0, len(rows))
	for _, d := range rows {
		values = append(values, []any{d.Season, d.PlayerID, d.RoundNumber, d.OverallPick, d.TeamCode, d.TeamID})
	}
	return r.replaceTable(ctx, curated.TableDraft,
		[]string{"season", "player_id", "round_number", "overall_pick", "tm", "team_id"},
		values)
}

func (r *CuratedRepository) replaceTable(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	ddl, ok := curatedDDL[table]
	if !ok {
		return 0, errors.Newf("no schema declared for table %s", table)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "begin replace of %s", table)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		return 0, errors.Wrapf(err, "drop table %s", table)
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return 0, errors.Wrapf(err, "create table %s", table)
	}

	for start := 0; start < len(rows); start += insertChunkRows {
		end := start + insertChunkRows
		if end > len(rows) {
			end = len(rows)
		}

		builder := qb.InsertInto(table).Columns(columns...)
		for _, row := range rows[start:end] {
			builder = builder.Values(row...)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return 0, errors.Wrapf(err, "build insert for %s", table)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, errors.Wrapf(err, "insert into %s", table)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrapf(err, "commit replace of %s", table)
	}
	return int64(len(rows)), nil
}

// Snapshot reads the whole curated schema back into domain rows for
// validation.
func (r *CuratedRepository) Snapshot(ctx context.Context) (*curated.Snapshot, error) {
	snap := &curated.Snapshot{}

	var players []curatedPlayerModel
	if err := selectAllIfExists(ctx, r.db, curated.TablePlayer, &players,
		"player_id", "full_name", "namespace", "birthdate", "school", "country", "height", "weight", "position"); err != nil {
		return nil, err
	}
	for _, m := range players {
		snap.Players = append(snap.Players, m.toDomain())
	}

	var teams []curatedTeamModel
	if err := selectAllIfExists(ctx, r.db, curated.TableTeam, &teams,
		"team_id", "abbreviation", "full_name", "nickname", "city", "state", "year_founded"); err != nil {
		return nil, err
	}
	for _, m := range teams {
		snap.Teams = append(snap.Teams, m.toDomain())
	}

	var aliases []curatedAliasModel
	if err := selectAllIfExists(ctx, r.db, curated.TableTeamAlias, &aliases,
		"season", "alias_code", "mapped_team_id"); err != nil {
		return nil, err
	}
	for _, m := range aliases {
		snap.Aliases = append(snap.Aliases, m.toDomain())
	}

	var seasons []curatedPlayerSeasonModel
	if err := selectAllIfExists(ctx, r.db, curated.TablePlayerSeason, &seasons,
		"player_id", "season", "tm", "team_id", "jersey", "g", "mp", "pts", "ast", "trb", "stl", "blk", "tov"); err != nil {
		return nil, err
	}
	for _, m := range seasons {
		snap.PlayerSeasons = append(snap.PlayerSeasons, m.toDomain())
	}

	var games []curatedGameModel
	if err := selectAllIfExists(ctx, r.db, curated.TableGame, &games,
		"game_id", "season", "game_date", "home_team_id", "home_team_name", "pts_home", "visitor_team_id", "visitor_team_name", "pts_away"); err != nil {
		return nil, err
	}
	for _, m := range games {
		snap.Games = append(snap.Games, m.toDomain())
	}

	var logs []curatedGameLogModel
	if err := selectAllIfExists(ctx, r.db, curated.TablePlayerGameLog, &logs,
		"game_id", "player_id", "tm", "team_id", "mp", "pts", "ast", "trb"); err != nil {
		return nil, err
	}
	for _, m := range logs {
		snap.GameLogs = append(snap.GameLogs, m.toDomain())
	}

	var events []curatedPlayByPlayModel
	if err := selectAllIfExists(ctx, r.db, curated.TablePlayByPlay, &events,
		"game_id", "eventnum", "period", "wctimestring", "eventmsgtype", "eventmsgactiontype", "homedescription", "visitordescription", "score", "player1_id"); err != nil {
		return nil, err
	}
	for _, m := range events {
		snap.PlayByPlay = append(snap.PlayByPlay, m.toDomain())
	}

	var teamSeasons []curatedTeamSeasonModel
	if err := selectAllIfExists(ctx, r.db, curated.TableTeamSeason, &teamSeasons,
		"season", "tm", "team_id", "g", "w", "l", "pts"); err != nil {
		return nil, err
	}
	for _, m := range teamSeasons {
		snap.TeamSeasons = append(snap.TeamSeasons, m.toDomain())
	}

	var awards []curatedAwardModel
	if err := selectAllIfExists(ctx, r.db, curated.TablePlayerAward, &awards,
		"player_id", "season", "award"); err != nil {
		return nil, err
	}
	for _, m := range awards {
		snap.Awards = append(snap.Awards, m.toDomain())
	}

	var picks []curatedDraftModel
	if err := selectAllIfExists(ctx, r.db, curated.TableDraft, &picks,
		"season", "player_id", "round_number", "overall_pick", "tm", "team_id"); err != nil {
		return nil, err
	}
	for _, m := range picks {
		snap.DraftPicks = append(snap.DraftPicks, m.toDomain())
	}

	return snap, nil
}

// RowCounts counts every curated table that exists; missing tables have no
// entry, which the presence check reports as "table missing".
func (r *CuratedRepository) RowCounts(ctx context.Context) (map[string]int64, error) {
	return tableRowCounts(ctx, r.db, curated.RequiredTables())
}
