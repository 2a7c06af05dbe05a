package team

// Team is one row of the canonical franchise registry. The registry is an
// immutable reference dimension; curation never rewrites it, only copies it
// into the curated schema.
type Team struct {
	TeamID       int64
	Abbreviation string
	FullName     string
	Nickname     string
	City         string
	State        string
	YearFounded  int
}

// Alias maps a team code as it appears in a given season to a canonical
// team. MappedTeamID stays nil when the code resolves to nothing; unmapped
// aliases are retained so the validation layer can surface them instead of
// the row silently disappearing in a join.
type Alias struct {
	Season       int
	AliasCode    string
	MappedTeamID *int64
}
