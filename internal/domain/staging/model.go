package staging

// Staging table names as loaded by the ingestion step. The curation and
// validation layers address staging data through these names when declaring
// build-step inputs and re-deriving pre-resolution state.
const (
	TableCommonPlayerInfo = "staging_common_player_info"
	TablePlayer           = "staging_player"
	TableTeam             = "staging_team"
	TableTeamAbbrev       = "staging_team_abbrev"
	TableTeamHistory      = "staging_team_history"
	TablePlayerSeason     = "staging_player_season"
	TableGame             = "staging_game"
	TablePlayerGameLog    = "staging_player_game_log"
	TablePlayByPlay       = "staging_play_by_play"
	TableTeamStats        = "staging_team_stats"
	TablePlayerAward      = "staging_player_award"
	TableDraftHistory     = "staging_draft_history"
)

// Tables lists every staging table the pipeline consumes, in load order.
func Tables() []string {
	return []string{
		TableCommonPlayerInfo,
		TablePlayer,
		TableTeam,
		TableTeamAbbrev,
		TableTeamHistory,
		TablePlayerSeason,
		TableGame,
		TablePlayerGameLog,
		TablePlayByPlay,
		TableTeamStats,
		TablePlayerAward,
		TableDraftHistory,
	}
}

// ModernPlayerRow is one row of the modern registry
// (staging_common_player_info): authoritative person id plus biography.
// PersonID is a pointer because source exports carry null ids; such rows
// cannot participate in any join and are dropped during resolution.
type ModernPlayerRow struct {
	PersonID  *int64
	FullName  string
	BirthDate *string
	School    *string
	Country   *string
	Height    *string
	Weight    *string
	Position  *string
	Jersey    *string
}

// LegacyPlayerRow is one row of the legacy registry (staging_player): an
// older id namespace with only a display name.
type LegacyPlayerRow struct {
	PlayerID *int64
	FullName string
}

// TeamRow is one row of the canonical franchise registry (staging_team).
type TeamRow struct {
	TeamID       int64
	Abbreviation string
	FullName     string
	Nickname     string
	City         string
	State        string
	YearFounded  int
}

// TeamAbbrevRow is one per-season abbreviation observation
// (staging_team_abbrev).
type TeamAbbrevRow struct {
	Season       int
	Abbreviation string
}

// FranchiseRow is one historical franchise (staging_team_history); it has no
// season granularity of its own.
type FranchiseRow struct {
	TeamID         int64
	City           string
	Nickname       string
	YearFounded    int
	YearActiveTill int
}

// SeasonTotalRow is one pre-resolution season-total row
// (staging_player_season). A player traded mid-season appears several times
// per (player_id, season): once per team plus possibly a TOT aggregate.
type SeasonTotalRow struct {
	PlayerID  int64
	Season    int
	TeamCode  string
	Games     int
	Minutes   float64
	Points    float64
	Assists   float64
	Rebounds  float64
	Steals    float64
	Blocks    float64
	Turnovers float64
}

// GameRow is one source game (staging_game).
type GameRow struct {
	GameID        string
	Season        int
	GameDate      string
	HomeTeamID    int64
	HomePoints    float64
	VisitorTeamID int64
	VisitorPoints float64
}

// GameLogRow is one source per-player game line (staging_player_game_log).
type GameLogRow struct {
	GameID   string
	PlayerID int64
	Season   int
	TeamCode string
	Minutes  float64
	Points   float64
	Assists  float64
	Rebounds float64
}

// PlayByPlayRow is one source play-by-play event (staging_play_by_play),
// with the source's native column vocabulary (eventnum, wctimestring, ...).
type PlayByPlayRow struct {
	GameID      string
	EventNum    int
	Period      int
	WCTime      string
	EventType   int
	ActionType  int
	HomeDesc    *string
	VisitorDesc *string
	Score       *string
	Player1ID   *int64
}

// TeamStatRow is one source team-season line (staging_team_stats).
type TeamStatRow struct {
	Season   int
	TeamCode string
	Games    int
	Wins     int
	Losses   int
	Points   float64
}

// AwardRow is one source award line (staging_player_award).
type AwardRow struct {
	PlayerID int64
	Season   int
	Award    string
}

// DraftRow is one source draft selection (staging_draft_history).
type DraftRow struct {
	Season      int
	PersonID    int64
	RoundNumber int
	OverallPick int
	TeamCode    string
}

// Dataset is the full staging input of one pipeline run: every source table
// loaded verbatim (with basic type casts) and addressed by name.
type Dataset struct {
	ModernPlayers []ModernPlayerRow
	LegacyPlayers []LegacyPlayerRow
	Teams         []TeamRow
	TeamAbbrevs   []TeamAbbrevRow
	Franchises    []FranchiseRow
	SeasonTotals  []SeasonTotalRow
	Games         []GameRow
	GameLogs      []GameLogRow
	PlayByPlay    []PlayByPlayRow
	TeamStats     []TeamStatRow
	Awards        []AwardRow
	DraftPicks    []DraftRow
}
