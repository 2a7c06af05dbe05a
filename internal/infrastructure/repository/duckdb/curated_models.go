package duckdb

import (
	"database/sql"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/curated"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/game"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/honors"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/player"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/season"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/team"
)

// curatedDDL fixes the schema of every curated table. The builder owns these
// tables outright and recreates them on each run; nothing else writes them.
var curatedDDL = map[string]string{
	curated.TablePlayer: `CREATE TABLE curated_player (
		player_id BIGINT NOT NULL,
		full_name VARCHAR NOT NULL,
		namespace VARCHAR NOT NULL,
		birthdate VARCHAR,
		school VARCHAR,
		country VARCHAR,
		height VARCHAR,
		weight VARCHAR,
		position VARCHAR
	)`,
	curated.TableTeam: `CREATE TABLE curated_team (
		team_id BIGINT NOT NULL,
		abbreviation VARCHAR NOT NULL,
		full_name VARCHAR NOT NULL,
		nickname VARCHAR NOT NULL,
		city VARCHAR NOT NULL,
		state VARCHAR NOT NULL,
		year_founded INTEGER NOT NULL
	)`,
	curated.TableTeamAlias: `CREATE TABLE curated_team_alias (
		season INTEGER NOT NULL,
		alias_code VARCHAR NOT NULL,
		mapped_team_id BIGINT
	)`,
	curated.TablePlayerSeason: `CREATE TABLE curated_player_season (
		player_id BIGINT NOT NULL,
		season INTEGER NOT NULL,
		tm VARCHAR NOT NULL,
		team_id BIGINT,
		jersey VARCHAR,
		g INTEGER NOT NULL,
		mp DOUBLE NOT NULL,
		pts DOUBLE NOT NULL,
		ast DOUBLE NOT NULL,
		trb DOUBLE NOT NULL,
		stl DOUBLE NOT NULL,
		blk DOUBLE NOT NULL,
		tov DOUBLE NOT NULL
	)`,
	curated.TableGame: `CREATE TABLE curated_game (
		game_id VARCHAR NOT NULL,
		season INTEGER NOT NULL,
		game_date VARCHAR NOT NULL,
		home_team_id BIGINT NOT NULL,
		home_team_name VARCHAR NOT NULL,
		pts_home DOUBLE NOT NULL,
		visitor_team_id BIGINT NOT NULL,
		visitor_team_name VARCHAR NOT NULL,
		pts_away DOUBLE NOT NULL
	)`,
	curated.TablePlayerGameLog: `CREATE TABLE curated_player_game_log (
		game_id VARCHAR NOT NULL,
		player_id BIGINT NOT NULL,
		tm VARCHAR NOT NULL,
		team_id BIGINT,
		mp DOUBLE NOT NULL,
		pts DOUBLE NOT NULL,
		ast DOUBLE NOT NULL,
		trb DOUBLE NOT NULL
	)`,
	curated.TablePlayByPlay: `CREATE TABLE curated_play_by_play (
		game_id VARCHAR NOT NULL,
		eventnum INTEGER NOT NULL,
		period INTEGER NOT NULL,
		wctimestring VARCHAR,
		eventmsgtype INTEGER NOT NULL,
		eventmsgactiontype INTEGER NOT NULL,
		homedescription VARCHAR,
		visitordescription VARCHAR,
		score VARCHAR,
		player1_id BIGINT
	)`,
	curated.TableTeamSeason: `CREATE TABLE curated_team_season (
		season INTEGER NOT NULL,
		tm VARCHAR NOT NULL,
		team_id BIGINT,
		g INTEGER NOT NULL,
		w INTEGER NOT NULL,
		l INTEGER NOT NULL,
		pts DOUBLE NOT NULL
	)`,
	curated.TablePlayerAward: `CREATE TABLE curated_player_award (
		player_id BIGINT NOT NULL,
		season INTEGER NOT NULL,
		award VARCHAR NOT NULL
	)`,
	curated.TableDraft: `CREATE TABLE curated_draft (
		season INTEGER NOT NULL,
		player_id BIGINT NOT NULL,
		round_number INTEGER NOT NULL,
		overall_pick INTEGER NOT NULL,
		tm VARCHAR NOT NULL,
		team_id BIGINT
	)`,
}

type curatedPlayerModel struct {
	PlayerID  int64          `db:"player_id"`
	FullName  string         `db:"full_name"`
	Namespace string         `db:"namespace"`
	BirthDate sql.NullString `db:"birthdate"`
	School    sql.NullString `db:"school"`
	Country   sql.NullString `db:"country"`
	Height    sql.NullString `db:"height"`
	Weight    sql.NullString `db:"weight"`
	Position  sql.NullString `db:"position"`
}

func (m curatedPlayerModel) toDomain() player.Player {
	return player.Player{
		PlayerID:  m.PlayerID,
		FullName:  m.FullName,
		Namespace: player.Namespace(m.Namespace),
		BirthDate: nullStringPtr(m.BirthDate),
		School:    nullStringPtr(m.School),
		Country:   nullStringPtr(m.Country),
		Height:    nullStringPtr(m.Height),
		Weight:    nullStringPtr(m.Weight),
		Position:  nullStringPtr(m.Position),
	}
}

type curatedTeamModel struct {
	TeamID       int64  `db:"team_id"`
	Abbreviation string `db:"abbreviation"`
	FullName     string `db:"full_name"`
	Nickname     string `db:"nickname"`
	City         string `db:"city"`
	State        string `db:"state"`
	YearFounded  int    `db:"year_founded"`
}

func (m curatedTeamModel) toDomain() team.Team {
	return team.Team{
		TeamID:       m.TeamID,
		Abbreviation: m.Abbreviation,
		FullName:     m.FullName,
		Nickname:     m.Nickname,
		City:         m.City,
		State:        m.State,
		YearFounded:  m.YearFounded,
	}
}

type curatedAliasModel struct {
	Season       int           `db:"season"`
	AliasCode    string        `db:"alias_code"`
	MappedTeamID sql.NullInt64 `db:"mapped_team_id"`
}

func (m curatedAliasModel) toDomain() team.Alias {
	return team.Alias{
		Season:       m.Season,
		AliasCode:    m.AliasCode,
		MappedTeamID: nullInt64Ptr(m.MappedTeamID),
	}
}

type curatedPlayerSeasonModel struct {
	PlayerID  int64          `db:"player_id"`
	Season    int            `db:"season"`
	TeamCode  string         `db:"tm"`
	TeamID    sql.NullInt64  `db:"team_id"`
	Jersey    sql.NullString `db:"jersey"`
	Games     int            `db:"g"`
	Minutes   float64        `db:"mp"`
	Points    float64        `db:"pts"`
	Assists   float64        `db:"ast"`
	Rebounds  float64        `db:"trb"`
	Steals    float64        `db:"stl"`
	Blocks    float64        `db:"blk"`
	Turnovers float64        `db:"tov"`
}

func (m curatedPlayerSeasonModel) toDomain() season.PlayerSeason {
	return season.PlayerSeason{
		PlayerID:  m.PlayerID,
		Season:    m.Season,
		TeamCode:  m.TeamCode,
		TeamID:    nullInt64Ptr(m.TeamID),
		Jersey:    nullStringPtr(m.Jersey),
		Games:     m.Games,
		Minutes:   m.Minutes,
		Points:    m.Points,
		Assists:   m.Assists,
		Rebounds:  m.Rebounds,
		Steals:    m.Steals,
		Blocks:    m.Blocks,
		Turnovers: m.Turnovers,
	}
}

type curatedGameModel struct {
	GameID          string  `db:"game_id"`
	Season          int     `db:"season"`
	GameDate        string  `db:"game_date"`
	HomeTeamID      int64   `db:"home_team_id"`
	HomeTeamName    string  `db:"home_team_name"`
	HomePoints      float64 `db:"pts_home"`
	VisitorTeamID   int64   `db:"visitor_team_id"`
	VisitorTeamName string  `db:"visitor_team_name"`
	VisitorPoints   float64 `db:"pts_away"`
}

func (m curatedGameModel) toDomain() game.Game {
	return game.Game{
		GameID:          m.GameID,
		Season:          m.Season,
		GameDate:        m.GameDate,
		HomeTeamID:      m.HomeTeamID,
		HomeTeamName:    m.HomeTeamName,
		HomePoints:      m.HomePoints,
		VisitorTeamID:   m.VisitorTeamID,
		VisitorTeamName: m.VisitorTeamName,
		VisitorPoints:   m.VisitorPoints,
	}
}

type curatedGameLogModel struct {
	GameID   string        `db:"game_id"`
	PlayerID int64         `db:"player_id"`
	TeamCode string        `db:"tm"`
	TeamID   sql.NullInt64 `db:"team_id"`
	Minutes  float64       `db:"mp"`
	Points   float64       `db:"pts"`
	Assists  float64       `db:"ast"`
	Rebounds float64       `db:"trb"`
}

func (m curatedGameLogModel) toDomain() game.PlayerGameLog {
	return game.PlayerGameLog{
		GameID:   m.GameID,
		PlayerID: m.PlayerID,
		TeamCode: m.TeamCode,
		TeamID:   nullInt64Ptr(m.TeamID),
		Minutes:  m.Minutes,
		Points:   m.Points,
		Assists:  m.Assists,
		Rebounds: m.Rebounds,
	}
}

type curatedPlayByPlayModel struct {
	GameID      string         `db:"game_id"`
	EventNum    int            `db:"eventnum"`
	Period      int            `db:"period"`
	Clock       sql.NullString `db:"wctimestring"`
	EventType   int            `db:"eventmsgtype"`
	ActionType  int            `db:"eventmsgactiontype"`
	HomeDesc    sql.NullString `db:"homedescription"`
	VisitorDesc sql.NullString `db:"visitordescription"`
	Score       sql.NullString `db:"score"`
	PlayerID    sql.NullInt64  `db:"player1_id"`
}

func (m curatedPlayByPlayModel) toDomain() game.PlayByPlayEvent {
	return game.PlayByPlayEvent{
		GameID:      m.GameID,
		EventNum:    m.EventNum,
		Period:      m.Period,
		Clock:       nullString(m.Clock),
		EventType:   m.EventType,
		ActionType:  m.ActionType,
		HomeDesc:    nullStringPtr(m.HomeDesc),
		VisitorDesc: nullStringPtr(m.VisitorDesc),
		Score:       nullStringPtr(m.Score),
		PlayerID:    nullInt64Ptr(m.PlayerID),
	}
}

type curatedTeamSeasonModel struct {
	Season   int           `db:"season"`
	TeamCode string        `db:"tm"`
	TeamID   sql.NullInt64 `db:"team_id"`
	Games    int           `db:"g"`
	Wins     int           `db:"w"`
	Losses   int           `db:"l"`
	Points   float64       `db:"pts"`
}

func (m curatedTeamSeasonModel) toDomain() season.TeamSeason {
	return season.TeamSeason{
		Season:   m.Season,
		TeamCode: m.TeamCode,
		TeamID:   nullInt64Ptr(m.TeamID),
		Games:    m.Games,
		Wins:     m.Wins,
		Losses:   m.Losses,
		Points:   m.Points,
	}
}

type curatedAwardModel struct {
	PlayerID int64  `db:"player_id"`
	Season   int    `db:"season"`
	Award    string `db:"award"`
}

func (m curatedAwardModel) toDomain() honors.Award {
	return honors.Award{
		PlayerID: m.PlayerID,
		Season:   m.Season,
		Award:    m.Award,
	}
}

type curatedDraftModel struct {
	Season      int           `db:"season"`
	PlayerID    int64         `db:"player_id"`
	RoundNumber int           `db:"round_number"`
	OverallPick int           `db:"overall_pick"`
	TeamCode    string        `db:"tm"`
	TeamID      sql.NullInt64 `db:"team_id"`
}

func (m curatedDraftModel) toDomain() honors.DraftPick {
	return honors.DraftPick{
		Season:      m.Season,
		PlayerID:    m.PlayerID,
		RoundNumber: m.RoundNumber,
		OverallPick: m.OverallPick,
		TeamCode:    m.TeamCode,
		TeamID:      nullInt64Ptr(m.TeamID),
	}
}
