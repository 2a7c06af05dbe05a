package duckdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/staging"
	qb "github.com/hoopsarchive/hoopsarchive/internal/platform/querybuilder"
	"github.com/hoopsarchive/hoopsarchive/internal/usecase"
)

// StagingRepository loads and reads the staging schema. A staging table that
// was never loaded reads back as an empty slice, never as an error, so a
// partially ingested database stays inspectable.
type StagingRepository struct {
	db *sqlx.DB
}

func NewStagingRepository(session *Session) *StagingRepository {
	return &StagingRepository{db: session.DB()}
}

// EnsureTable replaces the staging table with an empty one carrying the
// plan's declared schema.
func (r *StagingRepository) EnsureTable(ctx context.Context, plan usecase.LoadPlan) error {
	defs := make([]string, 0, len(plan.Columns))
	for _, col := range plan.Columns {
		defs = append(defs, fmt.Sprintf("%s %s", col.Name, col.Type))
	}

	query := fmt.Sprintf("CREATE OR REPLACE TABLE %s (%s)", plan.Table, strings.Join(defs, ", "))
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return errors.Wrapf(err, "create staging table %s", plan.Table)
	}
	return nil
}

// LoadCSV replaces the staging table from a CSV file using the engine's
// native reader, with the plan's declared column types and the configured
// null-string sentinels. Returns the loaded row count.
func (r *StagingRepository) LoadCSV(ctx context.Context, plan usecase.LoadPlan, path string, nullStrings []string) (int64, error) {
	cols := make([]string, 0, len(plan.Columns))
	for _, col := range plan.Columns {
		cols = append(cols, fmt.Sprintf("%s: %s", quoteLiteral(col.Name), quoteLiteral(col.Type)))
	}

	options := []string{
		"header = true",
		fmt.Sprintf("columns = {%s}", strings.Join(cols, ", ")),
	}
	if len(nullStrings) > 0 {
		quoted := make([]string, 0, len(nullStrings))
		for _, s := range nullStrings {
			quoted = append(quoted, quoteLiteral(s))
		}
		options = append(options, fmt.Sprintf("nullstr = [%s]", strings.Join(quoted, ", ")))
	}

	query := fmt.Sprintf("CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv(%s, %s)",
		plan.Table, quoteLiteral(path), strings.Join(options, ", "))
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return 0, errors.Wrapf(err, "load %s into %s", path, plan.Table)
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, fmt.Sprintf("SELECT count(*) FROM %s", plan.Table)); err != nil {
		return 0, errors.Wrapf(err, "count rows of %s", plan.Table)
	}
	return count, nil
}

// Load reads the whole staging schema into typed rows.
func (r *StagingRepository) Load(ctx context.Context) (*staging.Dataset, error) {
	ds := &staging.Dataset{}

	var err error
	if ds.ModernPlayers, err = r.loadModernPlayers(ctx); err != nil {
		return nil, err
	}
	if ds.LegacyPlayers, err = r.loadLegacyPlayers(ctx); err != nil {
		return nil, err
	}
	if ds.Teams, err = r.loadTeams(ctx); err != nil {
		return nil, err
	}
	if ds.TeamAbbrevs, err = r.loadTeamAbbrevs(ctx); err != nil {
		return nil, err
	}
	if ds.Franchises, err = r.loadFranchises(ctx); err != nil {
		return nil, err
	}
	if ds.SeasonTotals, err = r.loadSeasonTotals(ctx); err != nil {
		return nil, err
	}
	if ds.Games, err = r.loadGames(ctx); err != nil {
		return nil, err
	}
	if ds.GameLogs, err = r.loadGameLogs(ctx); err != nil {
		return nil, err
	}
	if ds.PlayByPlay, err = r.loadPlayByPlay(ctx); err != nil {
		return nil, err
	}
	if ds.TeamStats, err = r.loadTeamStats(ctx); err != nil {
		return nil, err
	}
	if ds.Awards, err = r.loadAwards(ctx); err != nil {
		return nil, err
	}
	if ds.DraftPicks, err = r.loadDraftPicks(ctx); err != nil {
		return nil, err
	}

	return ds, nil
}

// RowCounts counts every staging table that exists; missing tables have no
// entry in the result.
func (r *StagingRepository) RowCounts(ctx context.Context) (map[string]int64, error) {
	return tableRowCounts(ctx, r.db, staging.Tables())
}

func (r *StagingRepository) loadModernPlayers(ctx context.Context) ([]staging.ModernPlayerRow, error) {
	var models []commonPlayerInfoModel
	err := selectAllIfExists(ctx, r.db, staging.TableCommonPlayerInfo, &models,
		"person_id", "display_first_last", "birthdate", "school", "country", "height", "weight", "position", "jersey")
	if err != nil {
		return nil, err
	}

	out := make([]staging.ModernPlayerRow, 0, len(models))
	for _, m := range models {
		out = append(out, staging.ModernPlayerRow{
			PersonID:  nullInt64Ptr(m.PersonID),
			FullName:  nullString(m.FullName),
			BirthDate: nullStringPtr(m.BirthDate),
			School:    nullStringPtr(m.School),
			Country:   nullStringPtr(m.Country),
			Height:    nullStringPtr(m.Height),
			Weight:    nullStringPtr(m.Weight),
			Position:  nullStringPtr(m.Position),
			Jersey:    nullStringPtr(m.Jersey),
		})
	}
	return out, nil
}

func (r *StagingRepository) loadLegacyPlayers(ctx context.Context) ([]staging.LegacyPlayerRow, error) {
	var models []legacyPlayerModel
	if err := selectAllIfExists(ctx, r.db, staging.TablePlayer, &models, "id", "full_name"); err != nil {
		return nil, err
	}

	out := make([]staging.LegacyPlayerRow, 0, len(models))
	for _, m := range models {
		out = append(out, staging.LegacyPlayerRow{
			PlayerID: nullInt64Ptr(m.ID),
			FullName: nullString(m.FullName),
		})
	}
	return out, nil
}

func (r *StagingRepository) loadTeams(ctx context.Context) ([]staging.TeamRow, error) {
	var models []teamModel
	err := selectAllIfExists(ctx, r.db, staging.TableTeam, &models,
		"id", "abbreviation", "full_name", "nickname", "city", "state", "year_founded")
	if err != nil {
		return nil, err
	}

	out := make([]staging.TeamRow, 0, len(models))
	for _, m := range models {
		if !m.ID.Valid {
			continue
		}
		out = append(out, staging.TeamRow{
			TeamID:       m.ID.Int64,
			Abbreviation: nullString(m.Abbreviation),
			FullName:     nullString(m.FullName),
			Nickname:     nullString(m.Nickname),
			City:         nullString(m.City),
			State:        nullString(m.State),
			YearFounded:  nullInt(m.YearFounded),
		})
	}
	return out, nil
}

func (r *StagingRepository) loadTeamAbbrevs(ctx context.Context) ([]staging.TeamAbbrevRow, error) {
	var models []teamAbbrevModel
	if err := selectAllIfExists(ctx, r.db, staging.TableTeamAbbrev, &models, "season", "abbreviation"); err != nil {
		return nil, err
	}

	out := make([]staging.TeamAbbrevRow, 0, len(models))
	for _, m := range models {
		out = append(out, staging.TeamAbbrevRow{
			Season:       nullInt(m.Season),
			Abbreviation: nullString(m.Abbreviation),
		})
	}
	return out, nil
}

func (r *StagingRepository) loadFranchises(ctx context.Context) ([]staging.FranchiseRow, error) {
	var models []teamHistoryModel
	err := selectAllIfExists(ctx, r.db, staging.TableTeamHistory, &models,
		"team_id", "city", "nickname", "year_founded", "year_active_till")
	if err != nil {
		return nil, err
	}

	out := make([]staging.FranchiseRow, 0, len(models))
	for _, m := range models {
		if !m.TeamID.Valid {
			continue
		}
		out = append(out, staging.FranchiseRow{
			TeamID:         m.TeamID.Int64,
			City:           nullString(m.City),
			Nickname:       nullString(m.Nickname),
			YearFounded:    nullInt(m.YearFounded),
			YearActiveTill: nullInt(m.YearActiveTill),
		})
	}
	return out, nil
}

func (r *StagingRepository) loadSeasonTotals(ctx context.Context) ([]staging.SeasonTotalRow, error) {
	var models []seasonTotalModel
	err := selectAllIfExists(ctx, r.db, staging.TablePlayerSeason, &models,
		"player_id", "season", "tm", "g", "mp", "pts", "ast", "trb", "stl", "blk", "tov")
	if err != nil {
		return nil, err
	}

	out := make([]staging.SeasonTotalRow, 0, len(models))
	for _, m := range models {
		if !m.PlayerID.Valid || !m.Season.Valid {
			continue
		}
		out = append(out, staging.SeasonTotalRow{
			PlayerID:  m.PlayerID.Int64,
			Season:    int(m.Season.Int64),
			TeamCode:  nullString(m.TeamCode),
			Games:     nullInt(m.Games),
			Minutes:   nullFloat(m.Minutes),
			Points:    nullFloat(m.Points),
			Assists:   nullFloat(m.Assists),
			Rebounds:  nullFloat(m.Rebounds),
			Steals:    nullFloat(m.Steals),
			Blocks:    nullFloat(m.Blocks),
			Turnovers: nullFloat(m.Turnovers),
		})
	}
	return out, nil
}

func (r *StagingRepository) loadGames(ctx context.Context) ([]staging.GameRow, error) {
	var models []gameModel
	err := selectAllIfExists(ctx, r.db, staging.TableGame, &models,
		"game_id", "season", "game_date", "team_id_home", "pts_home", "team_id_away", "pts_away")
	if err != nil {
		return nil, err
	}

	out := make([]staging.GameRow, 0, len(models))
	for _, m := range models {
		if !m.GameID.Valid {
			continue
		}
		out = append(out, staging.GameRow{
			GameID:        m.GameID.String,
			Season:        nullInt(m.Season),
			GameDate:      nullString(m.GameDate),
			HomeTeamID:    nullInt64(m.HomeTeamID),
			HomePoints:    nullFloat(m.HomePoints),
			VisitorTeamID: nullInt64(m.VisitorTeamID),
			VisitorPoints: nullFloat(m.VisitorPoints),
		})
	}
	return out, nil
}

func (r *StagingRepository) loadGameLogs(ctx context.Context) ([]staging.GameLogRow, error) {
	var models []gameLogModel
	err := selectAllIfExists(ctx, r.db, staging.TablePlayerGameLog, &models,
		"game_id", "player_id", "season", "tm", "mp", "pts", "ast", "trb")
	if err != nil {
		return nil, err
	}

	out := make([]staging.GameLogRow, 0, len(models))
	for _, m := range models {
		if !m.GameID.Valid || !m.PlayerID.Valid {
			continue
		}
		out = append(out, staging.GameLogRow{
			GameID:   m.GameID.String,
			PlayerID: m.PlayerID.Int64,
			Season:   nullInt(m.Season),
			TeamCode: nullString(m.TeamCode),
			Minutes:  nullFloat(m.Minutes),
			Points:   nullFloat(m.Points),
			Assists:  nullFloat(m.Assists),
			Rebounds: nullFloat(m.Rebounds),
		})
	}
	return out, nil
}

func (r *StagingRepository) loadPlayByPlay(ctx context.Context) ([]staging.PlayByPlayRow, error) {
	var models []playByPlayModel
	err := selectAllIfExists(ctx, r.db, staging.TablePlayByPlay, &models,
		"game_id", "eventnum", "period", "wctimestring", "eventmsgtype", "eventmsgactiontype",
		"homedescription", "visitordescription", "score", "player1_id")
	if err != nil {
		return nil, err
	}

	out := make([]staging.PlayByPlayRow, 0, len(models))
	for _, m := range models {
		if !m.GameID.Valid {
			continue
		}
		out = append(out, staging.PlayByPlayRow{
			GameID:      m.GameID.String,
			EventNum:    nullInt(m.EventNum),
			Period:      nullInt(m.Period),
			WCTime:      nullString(m.WCTime),
			EventType:   nullInt(m.EventType),
			ActionType:  nullInt(m.ActionType),
			HomeDesc:    nullStringPtr(m.HomeDesc),
			VisitorDesc: nullStringPtr(m.VisitorDesc),
			Score:       nullStringPtr(m.Score),
			Player1ID:   nullInt64Ptr(m.Player1ID),
		})
	}
	return out, nil
}

func (r *StagingRepository) loadTeamStats(ctx context.Context) ([]staging.TeamStatRow, error) {
	var models []teamStatModel
	if err := selectAllIfExists(ctx, r.db, staging.TableTeamStats, &models, "season", "tm", "g", "w", "l", "pts"); err != nil {
		return nil, err
	}

	out := make([]staging.TeamStatRow, 0, len(models))
	for _, m := range models {
		out = append(out, staging.TeamStatRow{
			Season:   nullInt(m.Season),
			TeamCode: nullString(m.TeamCode),
			Games:    nullInt(m.Games),
			Wins:     nullInt(m.Wins),
			Losses:   nullInt(m.Losses),
			Points:   nullFloat(m.Points),
		})
	}
	return out, nil
}

func (r *StagingRepository) loadAwards(ctx context.Context) ([]staging.AwardRow, error) {
	var models []awardModel
	if err := selectAllIfExists(ctx, r.db, staging.TablePlayerAward, &models, "player_id", "season", "award"); err != nil {
		return nil, err
	}

	out := make([]staging.AwardRow, 0, len(models))
	for _, m := range models {
		if !m.PlayerID.Valid {
			continue
		}
		out = append(out, staging.AwardRow{
			PlayerID: m.PlayerID.Int64,
			Season:   nullInt(m.Season),
			Award:    nullString(m.Award),
		})
	}
	return out, nil
}

func (r *StagingRepository) loadDraftPicks(ctx context.Context) ([]staging.DraftRow, error) {
	var models []draftModel
	err := selectAllIfExists(ctx, r.db, staging.TableDraftHistory, &models,
		"season", "person_id", "round_number", "overall_pick", "team_abbreviation")
	if err != nil {
		return nil, err
	}

	out := make([]staging.DraftRow, 0, len(models))
	for _, m := range models {
		if !m.PersonID.Valid {
			continue
		}
		out = append(out, staging.DraftRow{
			Season:      nullInt(m.Season),
			PersonID:    m.PersonID.Int64,
			RoundNumber: nullInt(m.RoundNumber),
			OverallPick: nullInt(m.OverallPick),
			TeamCode:    nullString(m.TeamCode),
		})
	}
	return out, nil
}

// selectAllIfExists selects the named columns of a table into dest, leaving
// dest untouched when the table does not exist.
func selectAllIfExists(ctx context.Context, db *sqlx.DB, table string, dest any, columns ...string) error {
	exists, err := tableExists(ctx, db, table)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	query, args, err := qb.Select(columns...).From(table).ToSQL()
	if err != nil {
		return errors.Wrapf(err, "build select for %s", table)
	}
	if err := db.SelectContext(ctx, dest, query, args...); err != nil {
		return errors.Wrapf(err, "select %s", table)
	}
	return nil
}

func tableExists(ctx context.Context, db *sqlx.DB, table string) (bool, error) {
	query, args, err := qb.Select("count(*)").From("information_schema.tables").
		Where(qb.Eq("table_name", table)).
		ToSQL()
	if err != nil {
		return false, errors.Wrap(err, "build table existence query")
	}

	var count int64
	if err := db.GetContext(ctx, &count, query, args...); err != nil {
		return false, errors.Wrapf(err, "check table %s", table)
	}
	return count > 0, nil
}

func tableRowCounts(ctx context.Context, db *sqlx.DB, tables []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(tables))
	for _, table := range tables {
		exists, err := tableExists(ctx, db, table)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		var count int64
		if err := db.GetContext(ctx, &count, fmt.Sprintf("SELECT count(*) FROM %s", table)); err != nil {
			return nil, errors.Wrapf(err, "count rows of %s", table)
		}
		counts[table] = count
	}
	return counts, nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
