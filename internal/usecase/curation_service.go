package usecase

import (
	"context"
	"fmt"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/curated"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/game"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/honors"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/season"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/staging"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/team"
	"github.com/hoopsarchive/hoopsarchive/internal/platform/logging"
)

// BuildStep is one node of the curated build graph. Inputs name the tables
// the step reads (staging tables or earlier steps' outputs); Outputs name the
// curated tables it replaces. The orchestrator refuses to run a plan whose
// declared ordering is inconsistent instead of trusting call-site order.
type BuildStep struct {
	Name    string
	Inputs  []string
	Outputs []string
	Run     func(ctx context.Context) (int64, error)
}

// StepResult records one executed step for smoke-level observability.
type StepResult struct {
	Name string
	Rows int64
}

// CurationService sequences the full staging -> curated rebuild. Every table
// is fully recomputed with replace semantics; a failing step leaves earlier
// tables intact, aborts the rest, and fails the run.
type CurationService struct {
	stagingRepo staging.Repository
	writer      curated.Writer
	players     *PlayerResolverService
	aliases     *TeamAliasService
	seasons     *SeasonResolverService
	logger      *logging.Logger
}

func NewCurationService(
	stagingRepo staging.Repository,
	writer curated.Writer,
	players *PlayerResolverService,
	aliases *TeamAliasService,
	seasons *SeasonResolverService,
	logger *logging.Logger,
) *CurationService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CurationService{
		stagingRepo: stagingRepo,
		writer:      writer,
		players:     players,
		aliases:     aliases,
		seasons:     seasons,
		logger:      logger,
	}
}

// curationState carries dimension outputs forward to the fact steps within a
// single run. It never outlives Run.
type curationState struct {
	teams   []team.Team
	aliases []team.Alias
}

// Run executes the full build. Dimensions come first, then facts that join
// against them, with the player-season fact last since it depends on the
// fully-unioned alias table.
func (s *CurationService) Run(ctx context.Context) ([]StepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CurationService.Run")
	defer span.End()

	ds, err := s.stagingRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load staging dataset: %w", err)
	}

	state := &curationState{}
	steps := s.plan(ds, state)
	if err := ValidatePlan(steps, staging.Tables()); err != nil {
		return nil, err
	}

	results := make([]StepResult, 0, len(steps))
	for _, step := range steps {
		rows, err := step.Run(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "curated build step failed", "step", step.Name, "error", err)
			return results, fmt.Errorf("%w: %s: %v", ErrBuildStepFailed, step.Name, err)
		}
		s.logger.InfoContext(ctx, "curated table built", "step", step.Name, "rows", rows)
		results = append(results, StepResult{Name: step.Name, Rows: rows})
	}

	return results, nil
}

func (s *CurationService) plan(ds *staging.Dataset, state *curationState) []BuildStep {
	return []BuildStep{
		{
			Name:    "team",
			Inputs:  []string{staging.TableTeam},
			Outputs: []string{curated.TableTeam},
			Run: func(ctx context.Context) (int64, error) {
				state.teams = buildTeams(ds.Teams)
				return s.writer.ReplaceTeams(ctx, state.teams)
			},
		},
		{
			Name:    "player",
			Inputs:  []string{staging.TableCommonPlayerInfo, staging.TablePlayer},
			Outputs: []string{curated.TablePlayer},
			Run: func(ctx context.Context) (int64, error) {
				return s.writer.ReplacePlayers(ctx, s.players.Resolve(ctx, ds.ModernPlayers, ds.LegacyPlayers))
			},
		},
		{
			Name:    "team_alias",
			Inputs:  []string{staging.TableTeam, staging.TableTeamAbbrev, staging.TableTeamHistory},
			Outputs: []string{curated.TableTeamAlias},
			Run: func(ctx context.Context) (int64, error) {
				state.aliases = s.aliases.Normalize(ctx, ds.Teams, ds.TeamAbbrevs, ds.Franchises)
				return s.writer.ReplaceTeamAliases(ctx, state.aliases)
			},
		},
		{
			Name:    "game",
			Inputs:  []string{staging.TableGame, curated.TableTeam},
			Outputs: []string{curated.TableGame},
			Run: func(ctx context.Context) (int64, error) {
				return s.writer.ReplaceGames(ctx, buildGames(ds.Games, state.teams))
			},
		},
		{
			Name:    "player_game_log",
			Inputs:  []string{staging.TablePlayerGameLog, curated.TableGame, curated.TableTeamAlias},
			Outputs: []string{curated.TablePlayerGameLog},
			Run: func(ctx context.Context) (int64, error) {
				return s.writer.ReplaceGameLogs(ctx, buildGameLogs(ds.GameLogs, state.aliases))
			},
		},
		{
			Name:    "play_by_play",
			Inputs:  []string{staging.TablePlayByPlay, curated.TableGame},
			Outputs: []string{curated.TablePlayByPlay},
			Run: func(ctx context.Context) (int64, error) {
				return s.writer.ReplacePlayByPlay(ctx, buildPlayByPlay(ds.PlayByPlay))
			},
		},
		{
			Name:    "team_season",
			Inputs:  []string{staging.TableTeamStats, curated.TableTeamAlias},
			Outputs: []string{curated.TableTeamSeason},
			Run: func(ctx context.Context) (int64, error) {
				return s.writer.ReplaceTeamSeasons(ctx, buildTeamSeasons(ds.TeamStats, state.aliases))
			},
		},
		{
			Name:    "player_award",
			Inputs:  []string{staging.TablePlayerAward, curated.TablePlayer},
			Outputs: []string{curated.TablePlayerAward},
			Run: func(ctx context.Context) (int64, error) {
				return s.writer.ReplaceAwards(ctx, buildAwards(ds.Awards))
			},
		},
		{
			Name:    "draft",
			Inputs:  []string{staging.TableDraftHistory, curated.TableTeamAlias},
			Outputs: []string{curated.TableDraft},
			Run: func(ctx context.Context) (int64, error) {
				return s.writer.ReplaceDraftPicks(ctx, buildDraftPicks(ds.DraftPicks, state.aliases))
			},
		},
		{
			Name:    "player_season",
			Inputs:  []string{staging.TablePlayerSeason, staging.TableCommonPlayerInfo, curated.TableTeamAlias},
			Outputs: []string{curated.TablePlayerSeason},
			Run: func(ctx context.Context) (int64, error) {
				return s.writer.ReplacePlayerSeasons(ctx, s.seasons.Resolve(ctx, ds.SeasonTotals, state.aliases, ds.ModernPlayers))
			},
		},
	}
}

// ValidatePlan checks that every step's inputs are provided by the staging
// loads or by an earlier step's outputs, and that no two steps claim the same
// output table.
func ValidatePlan(steps []BuildStep, stagingTables []string) error {
	available := make(map[string]bool, len(stagingTables))
	for _, t := range stagingTables {
		available[t] = true
	}

	produced := make(map[string]string, len(steps))
	for _, step := range steps {
		if step.Run == nil {
			return fmt.Errorf("%w: step %q has no run function", ErrInvalidPlan, step.Name)
		}
		if len(step.Outputs) == 0 {
			return fmt.Errorf("%w: step %q declares no outputs", ErrInvalidPlan, step.Name)
		}
		for _, in := range step.Inputs {
			if !available[in] {
				return fmt.Errorf("%w: step %q reads %q which no staging load or earlier step provides", ErrInvalidPlan, step.Name, in)
			}
		}
		for _, out := range step.Outputs {
			if prev, ok := produced[out]; ok {
				return fmt.Errorf("%w: steps %q and %q both produce %q", ErrInvalidPlan, prev, step.Name, out)
			}
			produced[out] = step.Name
			available[out] = true
		}
	}

	return nil
}

func buildTeams(rows []staging.TeamRow) []team.Team {
	out := make([]team.Team, 0, len(rows))
	for _, r := range rows {
		out = append(out, team.Team{
			TeamID:       r.TeamID,
			Abbreviation: r.Abbreviation,
			FullName:     r.FullName,
			Nickname:     r.Nickname,
			City:         r.City,
			State:        r.State,
			YearFounded:  r.YearFounded,
		})
	}
	return out
}

func buildGames(rows []staging.GameRow, teams []team.Team) []game.Game {
	nameByID := make(map[int64]string, len(teams))
	for _, t := range teams {
		nameByID[t.TeamID] = t.FullName
	}

	out := make([]game.Game, 0, len(rows))
	for _, r := range rows {
		out = append(out, game.Game{
			GameID:          r.GameID,
			Season:          r.Season,
			GameDate:        r.GameDate,
			HomeTeamID:      r.HomeTeamID,
			HomeTeamName:    nameByID[r.HomeTeamID],
			HomePoints:      r.HomePoints,
			VisitorTeamID:   r.VisitorTeamID,
			VisitorTeamName: nameByID[r.VisitorTeamID],
			VisitorPoints:   r.VisitorPoints,
		})
	}
	return out
}

func buildGameLogs(rows []staging.GameLogRow, aliases []team.Alias) []game.PlayerGameLog {
	lookup := AliasLookup(aliases)
	out := make([]game.PlayerGameLog, 0, len(rows))
	for _, r := range rows {
		teamID, _ := LookupTeamID(lookup, r.Season, r.TeamCode)
		out = append(out, game.PlayerGameLog{
			GameID:   r.GameID,
			PlayerID: r.PlayerID,
			TeamCode: r.TeamCode,
			TeamID:   teamID,
			Minutes:  r.Minutes,
			Points:   r.Points,
			Assists:  r.Assists,
			Rebounds: r.Rebounds,
		})
	}
	return out
}

func buildPlayByPlay(rows []staging.PlayByPlayRow) []game.PlayByPlayEvent {
	out := make([]game.PlayByPlayEvent, 0, len(rows))
	for _, r := range rows {
		out = append(out, game.PlayByPlayEvent{
			GameID:      r.GameID,
			EventNum:    r.EventNum,
			Period:      r.Period,
			Clock:       r.WCTime,
			EventType:   r.EventType,
			ActionType:  r.ActionType,
			HomeDesc:    r.HomeDesc,
			VisitorDesc: r.VisitorDesc,
			Score:       r.Score,
			PlayerID:    r.Player1ID,
		})
	}
	return out
}

func buildTeamSeasons(rows []staging.TeamStatRow, aliases []team.Alias) []season.TeamSeason {
	lookup := AliasLookup(aliases)
	out := make([]season.TeamSeason, 0, len(rows))
	for _, r := range rows {
		teamID, _ := LookupTeamID(lookup, r.Season, r.TeamCode)
		out = append(out, season.TeamSeason{
			Season:   r.Season,
			TeamCode: r.TeamCode,
			TeamID:   teamID,
			Games:    r.Games,
			Wins:     r.Wins,
			Losses:   r.Losses,
			Points:   r.Points,
		})
	}
	return out
}

func buildAwards(rows []staging.AwardRow) []honors.Award {
	out := make([]honors.Award, 0, len(rows))
	for _, r := range rows {
		out = append(out, honors.Award{
			PlayerID: r.PlayerID,
			Season:   r.Season,
			Award:    r.Award,
		})
	}
	return out
}

func buildDraftPicks(rows []staging.DraftRow, aliases []team.Alias) []honors.DraftPick {
	lookup := AliasLookup(aliases)
	out := make([]honors.DraftPick, 0, len(rows))
	for _, r := range rows {
		teamID, _ := LookupTeamID(lookup, r.Season, r.TeamCode)
		out = append(out, honors.DraftPick{
			Season:      r.Season,
			PlayerID:    r.PersonID,
			RoundNumber: r.RoundNumber,
			OverallPick: r.OverallPick,
			TeamCode:    r.TeamCode,
			TeamID:      teamID,
		})
	}
	return out
}
