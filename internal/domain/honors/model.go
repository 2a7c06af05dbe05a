package honors

// Award is one curated player award, keyed by (player_id, season, award).
type Award struct {
	PlayerID int64
	Season   int
	Award    string
}

// DraftPick is one curated draft selection, keyed by (season, overall_pick).
type DraftPick struct {
	Season      int
	PlayerID    int64
	RoundNumber int
	OverallPick int
	TeamCode    string
	TeamID      *int64
}
