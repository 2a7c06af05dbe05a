package game

// Game is one curated game row, keyed by GameID. Team names are joined from
// the canonical registry; a missing registry match degrades the name to
// empty rather than dropping the game.
type Game struct {
	GameID          string
	Season          int
	GameDate        string
	HomeTeamID      int64
	HomeTeamName    string
	HomePoints      float64
	VisitorTeamID   int64
	VisitorTeamName string
	VisitorPoints   float64
}

// PlayerGameLog is the curated (game_id, player_id) grain.
type PlayerGameLog struct {
	GameID   string
	PlayerID int64
	TeamCode string
	TeamID   *int64
	Minutes  float64
	Points   float64
	Assists  float64
	Rebounds float64
}

// PlayByPlayEvent is the curated (game_id, eventnum) grain, ordered within a
// game by period then event number.
type PlayByPlayEvent struct {
	GameID      string
	EventNum    int
	Period      int
	Clock       string
	EventType   int
	ActionType  int
	HomeDesc    *string
	VisitorDesc *string
	Score       *string
	PlayerID    *int64
}
