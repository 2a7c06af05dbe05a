package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/curated"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/game"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/honors"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/player"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/season"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/staging"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/team"
)

type stubStagingRepo struct {
	ds      *staging.Dataset
	loadErr error
}

func (s *stubStagingRepo) Load(context.Context) (*staging.Dataset, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.ds == nil {
		return &staging.Dataset{}, nil
	}
	return s.ds, nil
}

func (s *stubStagingRepo) RowCounts(context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

// recordingWriter captures replace calls in execution order and can fail a
// single named table.
type recordingWriter struct {
	calls    []string
	failOn   string
	players  []player.Player
	aliases  []team.Alias
	seasons  []season.PlayerSeason
	rowCount map[string]int64
}

func (w *recordingWriter) record(table string, rows int64) (int64, error) {
	w.calls = append(w.calls, table)
	if w.failOn == table {
		return 0, errors.New("replace failed")
	}
	if w.rowCount == nil {
		w.rowCount = make(map[string]int64)
	}
	w.rowCount[table] = rows
	return rows, nil
}

func (w *recordingWriter) ReplacePlayers(_ context.Context, rows []player.Player) (int64, error) {
	w.players = rows
	return w.record(curated.TablePlayer, int64(len(rows)))
}

func (w *recordingWriter) ReplaceTeams(_ context.Context, rows []team.Team) (int64, error) {
	return w.record(curated.TableTeam, int64(len(rows)))
}

func (w *recordingWriter) ReplaceTeamAliases(_ context.Context, rows []team.Alias) (int64, error) {
	w.aliases = rows
	return w.record(curated.TableTeamAlias, int64(len(rows)))
}

func (w *recordingWriter) ReplacePlayerSeasons(_ context.Context, rows []season.PlayerSeason) (int64, error) {
	w.seasons = rows
	return w.record(curated.TablePlayerSeason, int64(len(rows)))
}

func (w *recordingWriter) ReplaceGames(_ context.Context, rows []game.Game) (int64, error) {
	return w.record(curated.TableGame, int64(len(rows)))
}

func (w *recordingWriter) ReplaceGameLogs(_ context.Context, rows []game.PlayerGameLog) (int64, error) {
	return w.record(curated.TablePlayerGameLog, int64(len(rows)))
}

func (w *recordingWriter) ReplacePlayByPlay(_ context.Context, rows []game.PlayByPlayEvent) (int64, error) {
	return w.record(curated.TablePlayByPlay, int64(len(rows)))
}

func (w *recordingWriter) ReplaceTeamSeasons(_ context.Context, rows []season.TeamSeason) (int64, error) {
	return w.record(curated.TableTeamSeason, int64(len(rows)))
}

func (w *recordingWriter) ReplaceAwards(_ context.Context, rows []honors.Award) (int64, error) {
	return w.record(curated.TablePlayerAward, int64(len(rows)))
}

func (w *recordingWriter) ReplaceDraftPicks(_ context.Context, rows []honors.DraftPick) (int64, error) {
	return w.record(curated.TableDraft, int64(len(rows)))
}

func newCurationService(repo staging.Repository, writer curated.Writer) *CurationService {
	return NewCurationService(
		repo,
		writer,
		NewPlayerResolverService(nil),
		NewTeamAliasService(nil),
		NewSeasonResolverService(nil),
		nil,
	)
}

func curationDataset() *staging.Dataset {
	suns := testTeams()[2]
	return &staging.Dataset{
		ModernPlayers: []staging.ModernPlayerRow{
			{PersonID: int64Ptr(100), FullName: "Alton Ford", Jersey: strPtr("07")},
		},
		LegacyPlayers: []staging.LegacyPlayerRow{
			{PlayerID: int64Ptr(200), FullName: "Walt Davis"},
		},
		Teams:       testTeams(),
		TeamAbbrevs: []staging.TeamAbbrevRow{{Season: 1999, Abbreviation: "PHO"}},
		SeasonTotals: []staging.SeasonTotalRow{
			{PlayerID: 100, Season: 1999, TeamCode: "PHO", Games: 82, Points: 700},
		},
		Games: []staging.GameRow{
			{GameID: "0029900001", Season: 1999, GameDate: "1999-11-02", HomeTeamID: suns.TeamID, HomePoints: 101, VisitorTeamID: testTeams()[0].TeamID, VisitorPoints: 95},
		},
		GameLogs: []staging.GameLogRow{
			{GameID: "0029900001", PlayerID: 100, Season: 1999, TeamCode: "PHO", Points: 21},
		},
		PlayByPlay: []staging.PlayByPlayRow{
			{GameID: "0029900001", EventNum: 2, Period: 1, EventType: 1, Player1ID: int64Ptr(100)},
		},
		TeamStats: []staging.TeamStatRow{
			{Season: 1999, TeamCode: "PHO", Games: 82, Wins: 53, Losses: 29, Points: 8200},
		},
		Awards: []staging.AwardRow{
			{PlayerID: 100, Season: 1999, Award: "All-Rookie"},
		},
		DraftPicks: []staging.DraftRow{
			{Season: 1999, PersonID: 100, RoundNumber: 1, OverallPick: 9, TeamCode: "PHO"},
		},
	}
}

func TestCuration_RunBuildsEveryTableInOrder(t *testing.T) {
	t.Parallel()

	writer := &recordingWriter{}
	svc := newCurationService(&stubStagingRepo{ds: curationDataset()}, writer)

	results, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{
		curated.TableTeam,
		curated.TablePlayer,
		curated.TableTeamAlias,
		curated.TableGame,
		curated.TablePlayerGameLog,
		curated.TablePlayByPlay,
		curated.TableTeamSeason,
		curated.TablePlayerAward,
		curated.TableDraft,
		curated.TablePlayerSeason,
	}
	if len(writer.calls) != len(wantOrder) {
		t.Fatalf("expected %d replace calls, got %v", len(wantOrder), writer.calls)
	}
	for i, table := range wantOrder {
		if writer.calls[i] != table {
			t.Fatalf("call %d: expected %s, got %s (full order %v)", i, table, writer.calls[i], writer.calls)
		}
	}
	if len(results) != len(wantOrder) {
		t.Fatalf("expected %d step results, got %d", len(wantOrder), len(results))
	}

	// The player-season fact should have been enriched through the alias
	// table built earlier in the same run.
	if len(writer.seasons) != 1 {
		t.Fatalf("expected 1 resolved player season, got %+v", writer.seasons)
	}
	ps := writer.seasons[0]
	if ps.TeamID == nil || *ps.TeamID != 1610612756 {
		t.Fatalf("expected PHO 1999 enriched to the PHX team id, got %+v", ps)
	}
	if ps.Jersey == nil || *ps.Jersey != "07" {
		t.Fatalf("expected jersey carried over as text, got %+v", ps)
	}
}

func TestCuration_FailingStepAbortsRest(t *testing.T) {
	t.Parallel()

	writer := &recordingWriter{failOn: curated.TableGame}
	svc := newCurationService(&stubStagingRepo{ds: curationDataset()}, writer)

	results, err := svc.Run(context.Background())
	if !errors.Is(err, ErrBuildStepFailed) {
		t.Fatalf("expected ErrBuildStepFailed, got %v", err)
	}

	// team, player, team_alias completed; game failed; nothing after ran.
	if len(results) != 3 {
		t.Fatalf("expected 3 completed steps before the failure, got %+v", results)
	}
	if len(writer.calls) != 4 || writer.calls[3] != curated.TableGame {
		t.Fatalf("expected execution to stop at the failing step, got %v", writer.calls)
	}
}

func TestCuration_StagingLoadErrorStopsRun(t *testing.T) {
	t.Parallel()

	writer := &recordingWriter{}
	svc := newCurationService(&stubStagingRepo{loadErr: errors.New("engine gone")}, writer)

	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error from staging load")
	}
	if len(writer.calls) != 0 {
		t.Fatalf("expected no replace calls after load failure, got %v", writer.calls)
	}
}

func TestValidatePlan_RejectsUnknownInput(t *testing.T) {
	t.Parallel()

	steps := []BuildStep{
		{
			Name:    "broken",
			Inputs:  []string{"no_such_table"},
			Outputs: []string{curated.TableTeam},
			Run:     func(context.Context) (int64, error) { return 0, nil },
		},
	}

	err := ValidatePlan(steps, staging.Tables())
	if !errors.Is(err, ErrInvalidPlan) {
		t.Fatalf("expected ErrInvalidPlan, got %v", err)
	}
}

func TestValidatePlan_RejectsInputProducedLater(t *testing.T) {
	t.Parallel()

	run := func(context.Context) (int64, error) { return 0, nil }
	steps := []BuildStep{
		{Name: "first", Inputs: []string{curated.TableTeam}, Outputs: []string{curated.TableGame}, Run: run},
		{Name: "second", Inputs: []string{staging.TableTeam}, Outputs: []string{curated.TableTeam}, Run: run},
	}

	if err := ValidatePlan(steps, staging.Tables()); !errors.Is(err, ErrInvalidPlan) {
		t.Fatalf("expected ordering violation, got %v", err)
	}
}

func TestValidatePlan_RejectsDuplicateOutputs(t *testing.T) {
	t.Parallel()

	run := func(context.Context) (int64, error) { return 0, nil }
	steps := []BuildStep{
		{Name: "a", Inputs: []string{staging.TableTeam}, Outputs: []string{curated.TableTeam}, Run: run},
		{Name: "b", Inputs: []string{staging.TableTeam}, Outputs: []string{curated.TableTeam}, Run: run},
	}

	if err := ValidatePlan(steps, staging.Tables()); !errors.Is(err, ErrInvalidPlan) {
		t.Fatalf("expected duplicate-output rejection, got %v", err)
	}
}

func TestValidatePlan_RejectsMissingRun(t *testing.T) {
	t.Parallel()

	steps := []BuildStep{
		{Name: "empty", Inputs: []string{staging.TableTeam}, Outputs: []string{curated.TableTeam}},
	}

	if err := ValidatePlan(steps, staging.Tables()); !errors.Is(err, ErrInvalidPlan) {
		t.Fatalf("expected missing-run rejection, got %v", err)
	}
}

func TestCuration_DefaultPlanValidates(t *testing.T) {
	t.Parallel()

	svc := newCurationService(&stubStagingRepo{}, &recordingWriter{})
	steps := svc.plan(&staging.Dataset{}, &curationState{})

	if err := ValidatePlan(steps, staging.Tables()); err != nil {
		t.Fatalf("default plan should validate: %v", err)
	}
}
