package usecase

import "github.com/hoopsarchive/hoopsarchive/internal/domain/staging"

// ColumnSpec declares a staging column with its engine type. Jersey stays
// VARCHAR so leading zeros survive the load.
type ColumnSpec struct {
	Name string
	Type string
}

// LoadPlan maps one source CSV onto one staging table with predeclared
// column types.
type LoadPlan struct {
	Table   string
	File    string
	Columns []ColumnSpec
}

// LoadPlans returns the fixed CSV -> staging mapping for every source the
// pipeline consumes.
func LoadPlans() []LoadPlan {
	return []LoadPlan{
		{
			Table: staging.TableCommonPlayerInfo,
			File:  "common_player_info.csv",
			Columns: []ColumnSpec{
				{"person_id", "BIGINT"},
				{"display_first_last", "VARCHAR"},
				{"birthdate", "VARCHAR"},
				{"school", "VARCHAR"},
				{"country", "VARCHAR"},
				{"height", "VARCHAR"},
				{"weight", "VARCHAR"},
				{"position", "VARCHAR"},
				{"jersey", "VARCHAR"},
			},
		},
		{
			Table: staging.TablePlayer,
			File:  "player.csv",
			Columns: []ColumnSpec{
				{"id", "BIGINT"},
				{"full_name", "VARCHAR"},
			},
		},
		{
			Table: staging.TableTeam,
			File:  "team.csv",
			Columns: []ColumnSpec{
				{"id", "BIGINT"},
				{"abbreviation", "VARCHAR"},
				{"full_name", "VARCHAR"},
				{"nickname", "VARCHAR"},
				{"city", "VARCHAR"},
				{"state", "VARCHAR"},
				{"year_founded", "INTEGER"},
			},
		},
		{
			Table: staging.TableTeamAbbrev,
			File:  "team_abbrev.csv",
			Columns: []ColumnSpec{
				{"season", "INTEGER"},
				{"abbreviation", "VARCHAR"},
			},
		},
		{
			Table: staging.TableTeamHistory,
			File:  "team_history.csv",
			Columns: []ColumnSpec{
				{"team_id", "BIGINT"},
				{"city", "VARCHAR"},
				{"nickname", "VARCHAR"},
				{"year_founded", "INTEGER"},
				{"year_active_till", "INTEGER"},
			},
		},
		{
			Table: staging.TablePlayerSeason,
			File:  "player_season_totals.csv",
			Columns: []ColumnSpec{
				{"player_id", "BIGINT"},
				{"season", "INTEGER"},
				{"tm", "VARCHAR"},
				{"g", "INTEGER"},
				{"mp", "DOUBLE"},
				{"pts", "DOUBLE"},
				{"ast", "DOUBLE"},
				{"trb", "DOUBLE"},
				{"stl", "DOUBLE"},
				{"blk", "DOUBLE"},
				{"tov", "DOUBLE"},
			},
		},
		{
			Table: staging.TableGame,
			File:  "game.csv",
			Columns: []ColumnSpec{
				{"game_id", "VARCHAR"},
				{"season", "INTEGER"},
				{"game_date", "VARCHAR"},
				{"team_id_home", "BIGINT"},
				{"pts_home", "DOUBLE"},
				{"team_id_away", "BIGINT"},
				{"pts_away", "DOUBLE"},
			},
		},
		{
			Table: staging.TablePlayerGameLog,
			File:  "player_game_log.csv",
			Columns: []ColumnSpec{
				{"game_id", "VARCHAR"},
				{"player_id", "BIGINT"},
				{"season", "INTEGER"},
				{"tm", "VARCHAR"},
				{"mp", "DOUBLE"},
				{"pts", "DOUBLE"},
				{"ast", "DOUBLE"},
				{"trb", "DOUBLE"},
			},
		},
		{
			Table: staging.TablePlayByPlay,
			File:  "play_by_play.csv",
			Columns: []ColumnSpec{
				{"game_id", "VARCHAR"},
				{"eventnum", "INTEGER"},
				{"period", "INTEGER"},
				{"wctimestring", "VARCHAR"},
				{"eventmsgtype", "INTEGER"},
				{"eventmsgactiontype", "INTEGER"},
				{"homedescription", "VARCHAR"},
				{"visitordescription", "VARCHAR"},
				{"score", "VARCHAR"},
				{"player1_id", "BIGINT"},
			},
		},
		{
			Table: staging.TableTeamStats,
			File:  "team_stats.csv",
			Columns: []ColumnSpec{
				{"season", "INTEGER"},
				{"tm", "VARCHAR"},
				{"g", "INTEGER"},
				{"w", "INTEGER"},
				{"l", "INTEGER"},
				{"pts", "DOUBLE"},
			},
		},
		{
			Table: staging.TablePlayerAward,
			File:  "player_award.csv",
			Columns: []ColumnSpec{
				{"player_id", "BIGINT"},
				{"season", "INTEGER"},
				{"award", "VARCHAR"},
			},
		},
		{
			Table: staging.TableDraftHistory,
			File:  "draft_history.csv",
			Columns: []ColumnSpec{
				{"season", "INTEGER"},
				{"person_id", "BIGINT"},
				{"round_number", "INTEGER"},
				{"overall_pick", "INTEGER"},
				{"team_abbreviation", "VARCHAR"},
			},
		},
	}
}
