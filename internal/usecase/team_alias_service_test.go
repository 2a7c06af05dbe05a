package usecase

import (
	"context"
	"testing"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/staging"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/team"
)

func testTeams() []staging.TeamRow {
	return []staging.TeamRow{
		{TeamID: 1610612738, Abbreviation: "BOS", FullName: "Boston Celtics"},
		{TeamID: 1610612747, Abbreviation: "LAL", FullName: "Los Angeles Lakers"},
		{TeamID: 1610612756, Abbreviation: "PHX", FullName: "Phoenix Suns"},
	}
}

func findAlias(t *testing.T, aliases []team.Alias, seasonYear int, code string) team.Alias {
	t.Helper()
	for _, a := range aliases {
		if a.Season == seasonYear && a.AliasCode == code {
			return a
		}
	}
	t.Fatalf("alias (%d, %s) not found in %+v", seasonYear, code, aliases)
	return team.Alias{}
}

func TestTeamAlias_DirectMatch(t *testing.T) {
	t.Parallel()

	aliases := NewTeamAliasService(nil).Normalize(context.Background(), testTeams(),
		[]staging.TeamAbbrevRow{{Season: 2001, Abbreviation: "BOS"}}, nil)

	got := findAlias(t, aliases, 2001, "BOS")
	if got.MappedTeamID == nil || *got.MappedTeamID != 1610612738 {
		t.Fatalf("expected BOS to map to 1610612738, got %+v", got)
	}
}

func TestTeamAlias_ManualRemapForRebrandCode(t *testing.T) {
	t.Parallel()

	// PHO has no direct registry match; the manual remap pins it to the
	// modern PHX code.
	aliases := NewTeamAliasService(nil).Normalize(context.Background(), testTeams(),
		[]staging.TeamAbbrevRow{{Season: 1999, Abbreviation: "PHO"}}, nil)

	got := findAlias(t, aliases, 1999, "PHO")
	if got.MappedTeamID == nil || *got.MappedTeamID != 1610612756 {
		t.Fatalf("expected PHO 1999 to remap to the PHX team id, got %+v", got)
	}
}

func TestTeamAlias_UnmappedRetainedWithNullTarget(t *testing.T) {
	t.Parallel()

	aliases := NewTeamAliasService(nil).Normalize(context.Background(), testTeams(),
		[]staging.TeamAbbrevRow{{Season: 1950, Abbreviation: "ZZZ"}}, nil)

	got := findAlias(t, aliases, 1950, "ZZZ")
	if got.MappedTeamID != nil {
		t.Fatalf("expected null mapping for unknown code, got %+v", got)
	}
}

func TestTeamAlias_NoInputAliasDropped(t *testing.T) {
	t.Parallel()

	abbrevs := []staging.TeamAbbrevRow{
		{Season: 2001, Abbreviation: "BOS"},
		{Season: 2001, Abbreviation: "LAL"},
		{Season: 1950, Abbreviation: "ZZZ"},
		{Season: 1999, Abbreviation: "PHO"},
	}

	aliases := NewTeamAliasService(nil).Normalize(context.Background(), testTeams(), abbrevs, nil)

	if len(aliases) != len(abbrevs) {
		t.Fatalf("expected %d aliases (mapped or null-mapped), got %d", len(abbrevs), len(aliases))
	}
}

func TestTeamAlias_FranchisesBecomeSyntheticAliases(t *testing.T) {
	t.Parallel()

	franchises := []staging.FranchiseRow{
		{TeamID: 1610610031, City: "Sheboygan", Nickname: "Redskins", YearFounded: 1949, YearActiveTill: 1950},
	}

	aliases := NewTeamAliasService(nil).Normalize(context.Background(), testTeams(), nil, franchises)

	if len(aliases) != 1 {
		t.Fatalf("expected 1 synthetic alias, got %d", len(aliases))
	}
	got := aliases[0]
	if got.Season != HistoricalAliasSeason {
		t.Fatalf("expected franchise alias filed under season %d, got %d", HistoricalAliasSeason, got.Season)
	}
	if got.AliasCode != "HIST-RED-1949" {
		t.Fatalf("unexpected synthetic code: %s", got.AliasCode)
	}
	if got.MappedTeamID == nil || *got.MappedTeamID != 1610610031 {
		t.Fatalf("expected franchise to map to its own team id, got %+v", got)
	}
}

func TestTeamAlias_SharedAbbreviationResolvesToLowestTeamID(t *testing.T) {
	t.Parallel()

	teams := []staging.TeamRow{
		{TeamID: 20, Abbreviation: "DUP"},
		{TeamID: 10, Abbreviation: "DUP"},
	}

	aliases := NewTeamAliasService(nil).Normalize(context.Background(), teams,
		[]staging.TeamAbbrevRow{{Season: 2000, Abbreviation: "DUP"}}, nil)

	got := findAlias(t, aliases, 2000, "DUP")
	if got.MappedTeamID == nil || *got.MappedTeamID != 10 {
		t.Fatalf("expected lowest team id to win, got %+v", got)
	}
}

func TestTeamAlias_PairUniquePostUnion(t *testing.T) {
	t.Parallel()

	abbrevs := []staging.TeamAbbrevRow{
		{Season: 2001, Abbreviation: "BOS"},
		{Season: 2001, Abbreviation: "bos"},
	}

	aliases := NewTeamAliasService(nil).Normalize(context.Background(), testTeams(), abbrevs, nil)

	if len(aliases) != 1 {
		t.Fatalf("expected (season, alias_code) to be unique, got %+v", aliases)
	}
}
