package duckdb

import "database/sql"

type commonPlayerInfoModel struct {
	PersonID  sql.NullInt64  `db:"person_id"`
	FullName  sql.NullString `db:"display_first_last"`
	BirthDate sql.NullString `db:"birthdate"`
	School    sql.NullString `db:"school"`
	Country   sql.NullString `db:"country"`
	Height    sql.NullString `db:"height"`
	Weight    sql.NullString `db:"weight"`
	Position  sql.NullString `db:"position"`
	Jersey    sql.NullString `db:"jersey"`
}

type legacyPlayerModel struct {
	ID       sql.NullInt64  `db:"id"`
	FullName sql.NullString `db:"full_name"`
}

type teamModel struct {
	ID           sql.NullInt64  `db:"id"`
	Abbreviation sql.NullString `db:"abbreviation"`
	FullName     sql.NullString `db:"full_name"`
	Nickname     sql.NullString `db:"nickname"`
	City         sql.NullString `db:"city"`
	State        sql.NullString `db:"state"`
	YearFounded  sql.NullInt64  `db:"year_founded"`
}

type teamAbbrevModel struct {
	Season       sql.NullInt64  `db:"season"`
	Abbreviation sql.NullString `db:"abbreviation"`
}

type teamHistoryModel struct {
	TeamID         sql.NullInt64  `db:"team_id"`
	City           sql.NullString `db:"city"`
	Nickname       sql.NullString `db:"nickname"`
	YearFounded    sql.NullInt64  `db:"year_founded"`
	YearActiveTill sql.NullInt64  `db:"year_active_till"`
}

type seasonTotalModel struct {
	PlayerID  sql.NullInt64   `db:"player_id"`
	Season    sql.NullInt64   `db:"season"`
	TeamCode  sql.NullString  `db:"tm"`
	Games     sql.NullInt64   `db:"g"`
	Minutes   sql.NullFloat64 `db:"mp"`
	Points    sql.NullFloat64 `db:"pts"`
	Assists   sql.NullFloat64 `db:"ast"`
	Rebounds  sql.NullFloat64 `db:"trb"`
	Steals    sql.NullFloat64 `db:"stl"`
	Blocks    sql.NullFloat64 `db:"blk"`
	Turnovers sql.NullFloat64 `db:"tov"`
}

type gameModel struct {
	GameID        sql.NullString  `db:"game_id"`
	Season        sql.NullInt64   `db:"season"`
	GameDate      sql.NullString  `db:"game_date"`
	HomeTeamID    sql.NullInt64   `db:"team_id_home"`
	HomePoints    sql.NullFloat64 `db:"pts_home"`
	VisitorTeamID sql.NullInt64   `db:"team_id_away"`
	VisitorPoints sql.NullFloat64 `db:"pts_away"`
}

type gameLogModel struct {
	GameID   sql.NullString  `db:"game_id"`
	PlayerID sql.NullInt64   `db:"player_id"`
	Season   sql.NullInt64   `db:"season"`
	TeamCode sql.NullString  `db:"tm"`
	Minutes  sql.NullFloat64 `db:"mp"`
	Points   sql.NullFloat64 `db:"pts"`
	Assists  sql.NullFloat64 `db:"ast"`
	Rebounds sql.NullFloat64 `db:"trb"`
}

type playByPlayModel struct {
	GameID      sql.NullString `db:"game_id"`
	EventNum    sql.NullInt64  `db:"eventnum"`
	Period      sql.NullInt64  `db:"period"`
	WCTime      sql.NullString `db:"wctimestring"`
	EventType   sql.NullInt64  `db:"eventmsgtype"`
	ActionType  sql.NullInt64  `db:"eventmsgactiontype"`
	HomeDesc    sql.NullString `db:"homedescription"`
	VisitorDesc sql.NullString `db:"visitordescription"`
	Score       sql.NullString `db:"score"`
	Player1ID   sql.NullInt64  `db:"player1_id"`
}

type teamStatModel struct {
	Season   sql.NullInt64   `db:"season"`
	TeamCode sql.NullString  `db:"tm"`
	Games    sql.NullInt64   `db:"g"`
	Wins     sql.NullInt64   `db:"w"`
	Losses   sql.NullInt64   `db:"l"`
	Points   sql.NullFloat64 `db:"pts"`
}

type awardModel struct {
	PlayerID sql.NullInt64  `db:"player_id"`
	Season   sql.NullInt64  `db:"season"`
	Award    sql.NullString `db:"award"`
}

type draftModel struct {
	Season      sql.NullInt64  `db:"season"`
	PersonID    sql.NullInt64  `db:"person_id"`
	RoundNumber sql.NullInt64  `db:"round_number"`
	OverallPick sql.NullInt64  `db:"overall_pick"`
	TeamCode    sql.NullString `db:"team_abbreviation"`
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullString(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func nullInt(v sql.NullInt64) int {
	if !v.Valid {
		return 0
	}
	return int(v.Int64)
}

func nullInt64(v sql.NullInt64) int64 {
	if !v.Valid {
		return 0
	}
	return v.Int64
}

func nullFloat(v sql.NullFloat64) float64 {
	if !v.Valid {
		return 0
	}
	return v.Float64
}
