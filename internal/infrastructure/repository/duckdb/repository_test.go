package duckdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/curated"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/game"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/player"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/season"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/staging"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/team"
	"github.com/hoopsarchive/hoopsarchive/internal/usecase"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	session, err := OpenInMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestStagingRepository_EnsureAndLoadCSV(t *testing.T) {
	session := newTestSession(t)
	repo := NewStagingRepository(session)
	ctx := context.Background()

	var abbrevPlan usecase.LoadPlan
	for _, plan := range usecase.LoadPlans() {
		require.NoError(t, repo.EnsureTable(ctx, plan))
		if plan.Table == staging.TableTeamAbbrev {
			abbrevPlan = plan
		}
	}

	counts, err := repo.RowCounts(ctx)
	require.NoError(t, err)
	require.Len(t, counts, len(staging.Tables()))
	for table, count := range counts {
		require.Zerof(t, count, "table %s should start empty", table)
	}

	csvPath := filepath.Join(t.TempDir(), "team_abbrev.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("season,abbreviation\n2001,BOS\n1999,PHO\n1950,NA\n"), 0o644))

	rows, err := repo.LoadCSV(ctx, abbrevPlan, csvPath, []string{"", "NA", "null"})
	require.NoError(t, err)
	require.EqualValues(t, 3, rows)

	ds, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, ds.TeamAbbrevs, 3)
	require.Contains(t, ds.TeamAbbrevs, staging.TeamAbbrevRow{Season: 2001, Abbreviation: "BOS"})
	// "NA" is a null sentinel, so the 1950 row loads with an empty code.
	require.Contains(t, ds.TeamAbbrevs, staging.TeamAbbrevRow{Season: 1950, Abbreviation: ""})
}

func TestCuratedRepository_ReplaceAndSnapshot(t *testing.T) {
	session := newTestSession(t)
	repo := NewCuratedRepository(session)
	ctx := context.Background()

	teamID := int64(1610612738)
	jersey := "07"

	n, err := repo.ReplaceTeams(ctx, []team.Team{
		{TeamID: teamID, Abbreviation: "BOS", FullName: "Boston Celtics", Nickname: "Celtics", City: "Boston", State: "MA", YearFounded: 1946},
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = repo.ReplaceTeamAliases(ctx, []team.Alias{
		{Season: 2001, AliasCode: "BOS", MappedTeamID: &teamID},
		{Season: 1950, AliasCode: "ZZZ"},
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	school := "Houston"
	n, err = repo.ReplacePlayers(ctx, []player.Player{
		{PlayerID: 100, FullName: "Alton Ford", Namespace: player.NamespaceModern, School: &school},
		{PlayerID: 200, FullName: "Walt Davis", Namespace: player.NamespaceLegacy},
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	n, err = repo.ReplacePlayerSeasons(ctx, []season.PlayerSeason{
		{PlayerID: 100, Season: 2001, TeamCode: "BOS", TeamID: &teamID, Jersey: &jersey, Games: 82, Points: 700},
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Teams, 1)
	require.Len(t, snap.Players, 2)
	require.Len(t, snap.PlayerSeasons, 1)

	ps := snap.PlayerSeasons[0]
	require.NotNil(t, ps.TeamID)
	require.Equal(t, teamID, *ps.TeamID)
	require.NotNil(t, ps.Jersey)
	require.Equal(t, "07", *ps.Jersey)

	require.Len(t, snap.Aliases, 2)
	var unmapped int
	for _, a := range snap.Aliases {
		if a.MappedTeamID == nil {
			unmapped++
		}
	}
	require.Equal(t, 1, unmapped)

	counts, err := repo.RowCounts(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, counts[curated.TablePlayer])
	// Tables never built have no count entry at all.
	_, ok := counts[curated.TableGame]
	require.False(t, ok)
}

func TestCuratedRepository_ReplaceEmptyLeavesEmptyTable(t *testing.T) {
	session := newTestSession(t)
	repo := NewCuratedRepository(session)
	ctx := context.Background()

	n, err := repo.ReplaceAwards(ctx, nil)
	require.NoError(t, err)
	require.Zero(t, n)

	counts, err := repo.RowCounts(ctx)
	require.NoError(t, err)
	count, ok := counts[curated.TablePlayerAward]
	require.True(t, ok)
	require.Zero(t, count)
}

func TestReadRepository_QueryPlayersAndPlayByPlay(t *testing.T) {
	session := newTestSession(t)
	writer := NewCuratedRepository(session)
	reader := NewReadRepository(session)
	ctx := context.Background()

	_, err := writer.ReplacePlayers(ctx, []player.Player{
		{PlayerID: 1, FullName: "Zeke Zawoluk", Namespace: player.NamespaceLegacy},
		{PlayerID: 2, FullName: "Al Attles", Namespace: player.NamespaceLegacy},
	})
	require.NoError(t, err)

	_, err = writer.ReplacePlayerSeasons(ctx, []season.PlayerSeason{
		{PlayerID: 1, Season: 1952, TeamCode: "NYK", Games: 60, Points: 400},
		{PlayerID: 2, Season: 1960, TeamCode: "PHW", Games: 70, Points: 500},
		{PlayerID: 2, Season: 1961, TeamCode: "PHW", Games: 75, Points: 550},
	})
	require.NoError(t, err)

	lines, err := reader.QueryPlayers(ctx, curated.PlayerSeasonQuery{})
	require.NoError(t, err)
	require.Len(t, lines, 3)
	// Ordered by player name, then season.
	require.Equal(t, "Al Attles", lines[0].FullName)
	require.Equal(t, 1960, lines[0].Season)
	require.Equal(t, 1961, lines[1].Season)
	require.Equal(t, "Zeke Zawoluk", lines[2].FullName)

	filtered, err := reader.QueryPlayers(ctx, curated.PlayerSeasonQuery{TeamCode: "phw", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, 1961, filtered[0].Season)

	playerID := int64(1)
	_, err = writer.ReplacePlayByPlay(ctx, []game.PlayByPlayEvent{
		{GameID: "G1", EventNum: 5, Period: 2, EventType: 1},
		{GameID: "G1", EventNum: 2, Period: 1, EventType: 1, PlayerID: &playerID},
		{GameID: "G2", EventNum: 1, Period: 1, EventType: 1},
	})
	require.NoError(t, err)

	events, err := reader.GamePlayByPlay(ctx, "G1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, 2, events[0].EventNum)
	require.Equal(t, 5, events[1].EventNum)
	require.NotNil(t, events[0].PlayerID)
}
