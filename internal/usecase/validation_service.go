package usecase

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/curated"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/season"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/staging"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/validation"
	"github.com/hoopsarchive/hoopsarchive/internal/platform/logging"
)

// ReferenceSource supplies the external source-of-truth value for a sampled
// curated metric, or reports it unknown. Implementations are pre-sampled
// snapshots, never live feeds.
type ReferenceSource interface {
	PlayerSeasonMetric(ctx context.Context, playerID int64, seasonYear int, metric string) (float64, bool)
}

// ValidationConfig tunes the sampled reconciliation check. Rand may be nil;
// tests inject a seeded source for deterministic samples.
type ValidationConfig struct {
	SampleSize int
	Tolerance  float64
	Rand       *rand.Rand
}

// ValidationService runs the integrity and accuracy checks over the curated
// dataset. Every check is read-only, individually callable, and returns
// issues instead of failing: an empty or half-built database yields
// informative issues, not errors.
type ValidationService struct {
	stagingRepo staging.Repository
	curatedRepo curated.Reader
	reference   ReferenceSource
	sampleSize  int
	tolerance   float64
	rng         *rand.Rand
	logger      *logging.Logger
}

func NewValidationService(
	stagingRepo staging.Repository,
	curatedRepo curated.Reader,
	reference ReferenceSource,
	cfg ValidationConfig,
	logger *logging.Logger,
) *ValidationService {
	if logger == nil {
		logger = logging.NewNop()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	sampleSize := cfg.SampleSize
	if sampleSize <= 0 {
		sampleSize = 50
	}
	tolerance := cfg.Tolerance
	if tolerance <= 0 {
		tolerance = 1.0
	}
	return &ValidationService{
		stagingRepo: stagingRepo,
		curatedRepo: curatedRepo,
		reference:   reference,
		sampleSize:  sampleSize,
		tolerance:   tolerance,
		rng:         rng,
		logger:      logger,
	}
}

// RunAll executes every check and aggregates the findings. Checks keep
// running after earlier ones report issues; only an unreachable engine stops
// the suite.
func (s *ValidationService) RunAll(ctx context.Context) (validation.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValidationService.RunAll")
	defer span.End()

	var report validation.Report
	var err error

	if report.Presence, err = s.TablePresence(ctx); err != nil {
		return report, err
	}
	if report.Orphans, err = s.FKOrphans(ctx); err != nil {
		return report, err
	}
	if report.Duplicates, err = s.Uniqueness(ctx, ""); err != nil {
		return report, err
	}
	if report.TOTViolations, err = s.TOTConsistency(ctx); err != nil {
		return report, err
	}
	if report.Reconciliation, err = s.SampleReconciliation(ctx); err != nil {
		return report, err
	}

	for check, count := range report.Counts() {
		s.logger.InfoContext(ctx, "validation check finished", "check", check, "issues", count)
	}

	return report, nil
}

// TablePresence fails a run whose curated schema is missing a required table
// or left one empty.
func (s *ValidationService) TablePresence(ctx context.Context) ([]validation.PresenceIssue, error) {
	counts, err := s.curatedRepo.RowCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("curated row counts: %w", err)
	}

	issues := make([]validation.PresenceIssue, 0)
	for _, table := range curated.RequiredTables() {
		count, ok := counts[table]
		switch {
		case !ok:
			issues = append(issues, validation.PresenceIssue{
				Check:  validation.CheckTablePresence,
				Table:  table,
				Reason: "table missing",
			})
		case count == 0:
			issues = append(issues, validation.PresenceIssue{
				Check:  validation.CheckTablePresence,
				Table:  table,
				Reason: "table empty",
			})
		}
	}

	return issues, nil
}

// fkRelation declares one fact -> dimension edge the orphan check walks.
type fkRelation struct {
	relation    string
	childTable  string
	childFK     string
	parentTable string
}

// FKOrphans returns one issue per fact row whose foreign key has no matching
// dimension row. Alias rows that resolved to nothing are reported here too:
// that is the observable form of "alias resolved to nothing" promised by the
// normalizer's never-drop contract.
func (s *ValidationService) FKOrphans(ctx context.Context) ([]validation.OrphanIssue, error) {
	snap, err := s.curatedRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("curated snapshot: %w", err)
	}

	return orphanIssues(snap), nil
}

func orphanIssues(snap *curated.Snapshot) []validation.OrphanIssue {
	playerIDs := make(map[int64]bool, len(snap.Players))
	for _, p := range snap.Players {
		playerIDs[p.PlayerID] = true
	}
	teamIDs := make(map[int64]bool, len(snap.Teams))
	for _, t := range snap.Teams {
		teamIDs[t.TeamID] = true
	}
	gameIDs := make(map[string]bool, len(snap.Games))
	for _, g := range snap.Games {
		gameIDs[g.GameID] = true
	}

	issues := make([]validation.OrphanIssue, 0)

	playerRel := func(rel fkRelation, id int64) {
		if !playerIDs[id] {
			issues = append(issues, validation.OrphanIssue{
				Relation:    rel.relation,
				ChildTable:  rel.childTable,
				ChildFK:     rel.childFK,
				ParentTable: rel.parentTable,
				MissingKey:  fmt.Sprintf("%d", id),
			})
		}
	}
	gameRel := func(rel fkRelation, id string) {
		if !gameIDs[id] {
			issues = append(issues, validation.OrphanIssue{
				Relation:    rel.relation,
				ChildTable:  rel.childTable,
				ChildFK:     rel.childFK,
				ParentTable: rel.parentTable,
				MissingKey:  id,
			})
		}
	}

	psPlayer := fkRelation{"player_season->player", curated.TablePlayerSeason, "player_id", curated.TablePlayer}
	for _, ps := range snap.PlayerSeasons {
		playerRel(psPlayer, ps.PlayerID)
	}

	logGame := fkRelation{"player_game_log->game", curated.TablePlayerGameLog, "game_id", curated.TableGame}
	logPlayer := fkRelation{"player_game_log->player", curated.TablePlayerGameLog, "player_id", curated.TablePlayer}
	for _, l := range snap.GameLogs {
		gameRel(logGame, l.GameID)
		playerRel(logPlayer, l.PlayerID)
	}

	pbpGame := fkRelation{"play_by_play->game", curated.TablePlayByPlay, "game_id", curated.TableGame}
	for _, ev := range snap.PlayByPlay {
		gameRel(pbpGame, ev.GameID)
	}

	awardPlayer := fkRelation{"player_award->player", curated.TablePlayerAward, "player_id", curated.TablePlayer}
	for _, a := range snap.Awards {
		playerRel(awardPlayer, a.PlayerID)
	}

	draftPlayer := fkRelation{"draft->player", curated.TableDraft, "player_id", curated.TablePlayer}
	for _, d := range snap.DraftPicks {
		playerRel(draftPlayer, d.PlayerID)
	}

	aliasTeam := fkRelation{"team_alias->team", curated.TableTeamAlias, "mapped_team_id", curated.TableTeam}
	for _, a := range snap.Aliases {
		if a.MappedTeamID == nil {
			issues = append(issues, validation.OrphanIssue{
				Relation:    aliasTeam.relation,
				ChildTable:  aliasTeam.childTable,
				ChildFK:     aliasTeam.childFK,
				ParentTable: aliasTeam.parentTable,
				MissingKey:  fmt.Sprintf("season=%d alias_code=%s", a.Season, a.AliasCode),
			})
			continue
		}
		if !teamIDs[*a.MappedTeamID] {
			issues = append(issues, validation.OrphanIssue{
				Relation:    aliasTeam.relation,
				ChildTable:  aliasTeam.childTable,
				ChildFK:     aliasTeam.childFK,
				ParentTable: aliasTeam.parentTable,
				MissingKey:  fmt.Sprintf("%d", *a.MappedTeamID),
			})
		}
	}

	teamSeasonTeam := fkRelation{"team_season->team", curated.TableTeamSeason, "team_id", curated.TableTeam}
	for _, ts := range snap.TeamSeasons {
		if ts.TeamID != nil && !teamIDs[*ts.TeamID] {
			issues = append(issues, validation.OrphanIssue{
				Relation:    teamSeasonTeam.relation,
				ChildTable:  teamSeasonTeam.childTable,
				ChildFK:     teamSeasonTeam.childFK,
				ParentTable: teamSeasonTeam.parentTable,
				MissingKey:  fmt.Sprintf("%d", *ts.TeamID),
			})
		}
	}

	return issues
}

// Uniqueness returns one issue per duplicate-key group for each declared
// natural-key grain. Pass an entity name to scope the check; empty means all.
func (s *ValidationService) Uniqueness(ctx context.Context, entity string) ([]validation.DuplicateIssue, error) {
	snap, err := s.curatedRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("curated snapshot: %w", err)
	}

	return duplicateIssues(snap, entity), nil
}

type grainSpec struct {
	entity string
	grain  string
	keys   func(snap *curated.Snapshot) []string
}

func grainSpecs() []grainSpec {
	return []grainSpec{
		{"Player", "player_id", func(snap *curated.Snapshot) []string {
			out := make([]string, 0, len(snap.Players))
			for _, p := range snap.Players {
				out = append(out, fmt.Sprintf("%d", p.PlayerID))
			}
			return out
		}},
		{"Team", "team_id", func(snap *curated.Snapshot) []string {
			out := make([]string, 0, len(snap.Teams))
			for _, t := range snap.Teams {
				out = append(out, fmt.Sprintf("%d", t.TeamID))
			}
			return out
		}},
		{"TeamAlias", "(season, alias_code)", func(snap *curated.Snapshot) []string {
			out := make([]string, 0, len(snap.Aliases))
			for _, a := range snap.Aliases {
				out = append(out, fmt.Sprintf("%d|%s", a.Season, a.AliasCode))
			}
			return out
		}},
		{"PlayerSeason", "(player_id, season)", func(snap *curated.Snapshot) []string {
			out := make([]string, 0, len(snap.PlayerSeasons))
			for _, ps := range snap.PlayerSeasons {
				out = append(out, fmt.Sprintf("%d|%d", ps.PlayerID, ps.Season))
			}
			return out
		}},
		{"Game", "game_id", func(snap *curated.Snapshot) []string {
			out := make([]string, 0, len(snap.Games))
			for _, g := range snap.Games {
				out = append(out, g.GameID)
			}
			return out
		}},
		{"PlayerGameLog", "(game_id, player_id)", func(snap *curated.Snapshot) []string {
			out := make([]string, 0, len(snap.GameLogs))
			for _, l := range snap.GameLogs {
				out = append(out, fmt.Sprintf("%s|%d", l.GameID, l.PlayerID))
			}
			return out
		}},
		{"PlayByPlay", "(game_id, eventnum)", func(snap *curated.Snapshot) []string {
			out := make([]string, 0, len(snap.PlayByPlay))
			for _, ev := range snap.PlayByPlay {
				out = append(out, fmt.Sprintf("%s|%d", ev.GameID, ev.EventNum))
			}
			return out
		}},
		{"TeamSeason", "(season, team_id)", func(snap *curated.Snapshot) []string {
			out := make([]string, 0, len(snap.TeamSeasons))
			for _, ts := range snap.TeamSeasons {
				id := "null"
				if ts.TeamID != nil {
					id = fmt.Sprintf("%d", *ts.TeamID)
				}
				out = append(out, fmt.Sprintf("%d|%s", ts.Season, id))
			}
			return out
		}},
		{"PlayerAward", "(player_id, season, award)", func(snap *curated.Snapshot) []string {
			out := make([]string, 0, len(snap.Awards))
			for _, a := range snap.Awards {
				out = append(out, fmt.Sprintf("%d|%d|%s", a.PlayerID, a.Season, a.Award))
			}
			return out
		}},
		{"Draft", "(season, overall_pick)", func(snap *curated.Snapshot) []string {
			out := make([]string, 0, len(snap.DraftPicks))
			for _, d := range snap.DraftPicks {
				out = append(out, fmt.Sprintf("%d|%d", d.Season, d.OverallPick))
			}
			return out
		}},
	}
}

func duplicateIssues(snap *curated.Snapshot, entity string) []validation.DuplicateIssue {
	issues := make([]validation.DuplicateIssue, 0)
	for _, spec := range grainSpecs() {
		if entity != "" && !strings.EqualFold(entity, spec.entity) {
			continue
		}
		counts := make(map[string]int)
		for _, key := range spec.keys(snap) {
			counts[key]++
		}
		dupKeys := make([]string, 0)
		for key, n := range counts {
			if n > 1 {
				dupKeys = append(dupKeys, key)
			}
		}
		sort.Strings(dupKeys)
		for _, key := range dupKeys {
			issues = append(issues, validation.DuplicateIssue{
				Entity:       spec.entity,
				Grain:        spec.grain,
				DuplicateKey: key,
				Count:        counts[key],
			})
		}
	}
	return issues
}

// TOTConsistency re-derives the one-aggregate-or-many-splits rule directly
// from the pre-resolution staging totals, independent of what the resolver
// produced.
func (s *ValidationService) TOTConsistency(ctx context.Context) ([]validation.TOTIssue, error) {
	ds, err := s.stagingRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load staging dataset: %w", err)
	}

	return totIssues(ds.SeasonTotals), nil
}

func totIssues(totals []staging.SeasonTotalRow) []validation.TOTIssue {
	type groupKey struct {
		playerID int64
		season   int
	}
	type groupStat struct {
		totRows  int
		teamRows int
	}

	groups := make(map[groupKey]*groupStat)
	order := make([]groupKey, 0)
	for _, row := range totals {
		key := groupKey{row.PlayerID, row.Season}
		stat, ok := groups[key]
		if !ok {
			stat = &groupStat{}
			groups[key] = stat
			order = append(order, key)
		}
		code := strings.TrimSpace(row.TeamCode)
		switch {
		case code == season.TotalCode:
			stat.totRows++
		case code != "":
			stat.teamRows++
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].playerID != order[j].playerID {
			return order[i].playerID < order[j].playerID
		}
		return order[i].season < order[j].season
	})

	issues := make([]validation.TOTIssue, 0)
	for _, key := range order {
		stat := groups[key]
		var violation string
		switch {
		case stat.totRows > 1:
			violation = "multiple aggregate rows"
		case stat.totRows >= 1 && stat.teamRows > 0:
			violation = "both aggregate and team rows present"
		case stat.totRows == 0 && stat.teamRows == 0:
			violation = "no rows at all"
		default:
			continue
		}
		issues = append(issues, validation.TOTIssue{
			PlayerID:  key.playerID,
			Season:    key.season,
			HasTOT:    stat.totRows > 0,
			TeamRows:  stat.teamRows,
			Violation: violation,
		})
	}

	return issues
}

// Reconciled metrics, named as the reference source names them.
var reconciliationMetrics = []string{"pts", "ast", "trb"}

// SampleReconciliation draws a bounded random sample of curated player
// seasons and compares each metric against the reference within tolerance.
// Without a configured reference source the check is skipped.
func (s *ValidationService) SampleReconciliation(ctx context.Context) ([]validation.ReconciliationIssue, error) {
	if s.reference == nil {
		s.logger.WarnContext(ctx, "reconciliation skipped: no reference source configured")
		return []validation.ReconciliationIssue{}, nil
	}

	snap, err := s.curatedRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("curated snapshot: %w", err)
	}

	rows := snap.PlayerSeasons
	sampled := rows
	if len(rows) > s.sampleSize {
		perm := s.rng.Perm(len(rows))
		sampled = make([]season.PlayerSeason, 0, s.sampleSize)
		for _, idx := range perm[:s.sampleSize] {
			sampled = append(sampled, rows[idx])
		}
	}

	issues := make([]validation.ReconciliationIssue, 0)
	for _, ps := range sampled {
		for _, metric := range reconciliationMetrics {
			expected, known := s.reference.PlayerSeasonMetric(ctx, ps.PlayerID, ps.Season, metric)
			if !known || math.IsNaN(expected) || math.IsInf(expected, 0) {
				continue
			}
			actual := playerSeasonMetricValue(ps, metric)
			delta := actual - expected
			if math.Abs(delta) <= s.tolerance {
				continue
			}
			issues = append(issues, validation.ReconciliationIssue{
				Entity:    "PlayerSeason",
				RowKey:    fmt.Sprintf("player_id=%d|season=%d", ps.PlayerID, ps.Season),
				Metric:    metric,
				Expected:  expected,
				Actual:    actual,
				Delta:     delta,
				Tolerance: s.tolerance,
			})
		}
	}

	return issues, nil
}

func playerSeasonMetricValue(ps season.PlayerSeason, metric string) float64 {
	switch metric {
	case "pts":
		return ps.Points
	case "ast":
		return ps.Assists
	case "trb":
		return ps.Rebounds
	default:
		return 0
	}
}
