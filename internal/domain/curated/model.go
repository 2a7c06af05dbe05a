package curated

import (
	"github.com/hoopsarchive/hoopsarchive/internal/domain/game"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/honors"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/player"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/season"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/team"
)

// Curated table names. These are the read models the API collaborator
// consumes directly; the builder owns their schema and content.
const (
	TablePlayer        = "curated_player"
	TableTeam          = "curated_team"
	TableTeamAlias     = "curated_team_alias"
	TablePlayerSeason  = "curated_player_season"
	TableGame          = "curated_game"
	TablePlayerGameLog = "curated_player_game_log"
	TablePlayByPlay    = "curated_play_by_play"
	TableTeamSeason    = "curated_team_season"
	TablePlayerAward   = "curated_player_award"
	TableDraft         = "curated_draft"
)

// RequiredTables lists every table a complete curated schema must contain.
// The presence check fails a run that is missing any of them.
func RequiredTables() []string {
	return []string{
		TablePlayer,
		TableTeam,
		TableTeamAlias,
		TablePlayerSeason,
		TableGame,
		TablePlayerGameLog,
		TablePlayByPlay,
		TableTeamSeason,
		TablePlayerAward,
		TableDraft,
	}
}

// Snapshot is a full in-memory view of the curated schema, as read back for
// validation. Validation only ever reads; the builder exclusively writes.
type Snapshot struct {
	Players       []player.Player
	Teams         []team.Team
	Aliases       []team.Alias
	PlayerSeasons []season.PlayerSeason
	Games         []game.Game
	GameLogs      []game.PlayerGameLog
	PlayByPlay    []game.PlayByPlayEvent
	TeamSeasons   []season.TeamSeason
	Awards        []honors.Award
	DraftPicks    []honors.DraftPick
}
