package season

// TotalCode is the sentinel team code on a season-total row that aggregates a
// traded player's stats across every team he played for that season.
const TotalCode = "TOT"

// PlayerSeason is the curated (player_id, season) grain: exactly one row per
// player per season after TOT resolution. TeamID is nil when the team code
// did not resolve through the alias table. Jersey is opaque text so leading
// zeros survive.
type PlayerSeason struct {
	PlayerID int64
	Season   int
	TeamCode string
	TeamID   *int64
	Jersey   *string

	Games     int
	Minutes   float64
	Points    float64
	Assists   float64
	Rebounds  float64
	Steals    float64
	Blocks    float64
	Turnovers float64
}

// IsTotal reports whether the row is the aggregate-across-teams row.
func (s PlayerSeason) IsTotal() bool {
	return s.TeamCode == TotalCode
}

// TeamSeason is the curated (season, team_id) grain of team-level totals.
type TeamSeason struct {
	Season   int
	TeamCode string
	TeamID   *int64
	Games    int
	Wins     int
	Losses   int
	Points   float64
}
