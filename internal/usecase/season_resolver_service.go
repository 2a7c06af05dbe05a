package usecase

import (
	"context"
	"sort"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/season"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/staging"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/team"
	"github.com/hoopsarchive/hoopsarchive/internal/platform/logging"
)

// SeasonResolverService collapses the pre-resolution season-total rows to
// exactly one surviving row per (player_id, season).
type SeasonResolverService struct {
	logger *logging.Logger
}

func NewSeasonResolverService(logger *logging.Logger) *SeasonResolverService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SeasonResolverService{logger: logger}
}

// Resolve picks one row per (player_id, season) and then enriches it.
// Precedence, in order: a TOT aggregate row beats any team-specific row; the
// team row with the most games played beats the rest; residual ties fall to
// the lexicographically smallest team code. The last rule carries no meaning,
// it only makes repeated runs byte-identical. Enrichment (team id through the
// alias table, jersey from player attributes) happens strictly after the
// winner is chosen and can never change which row won.
func (s *SeasonResolverService) Resolve(ctx context.Context, totals []staging.SeasonTotalRow, aliases []team.Alias, attrs []staging.ModernPlayerRow) []season.PlayerSeason {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonResolverService.Resolve")
	defer span.End()

	type groupKey struct {
		playerID int64
		season   int
	}

	groups := make(map[groupKey][]staging.SeasonTotalRow, len(totals))
	for _, row := range totals {
		key := groupKey{playerID: row.PlayerID, season: row.Season}
		groups[key] = append(groups[key], row)
	}

	lookup := AliasLookup(aliases)

	jerseyByPlayer := make(map[int64]*string, len(attrs))
	for _, row := range attrs {
		if row.PersonID != nil && row.Jersey != nil {
			jerseyByPlayer[*row.PersonID] = row.Jersey
		}
	}

	out := make([]season.PlayerSeason, 0, len(groups))
	for _, rows := range groups {
		winner := pickSeasonRow(rows)

		teamID, _ := LookupTeamID(lookup, winner.Season, winner.TeamCode)
		out = append(out, season.PlayerSeason{
			PlayerID:  winner.PlayerID,
			Season:    winner.Season,
			TeamCode:  winner.TeamCode,
			TeamID:    teamID,
			Jersey:    jerseyByPlayer[winner.PlayerID],
			Games:     winner.Games,
			Minutes:   winner.Minutes,
			Points:    winner.Points,
			Assists:   winner.Assists,
			Rebounds:  winner.Rebounds,
			Steals:    winner.Steals,
			Blocks:    winner.Blocks,
			Turnovers: winner.Turnovers,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PlayerID != out[j].PlayerID {
			return out[i].PlayerID < out[j].PlayerID
		}
		return out[i].Season < out[j].Season
	})

	s.logger.InfoContext(ctx, "player seasons resolved",
		"source_rows", len(totals), "resolved", len(out))

	return out
}

func pickSeasonRow(rows []staging.SeasonTotalRow) staging.SeasonTotalRow {
	winner := rows[0]
	for _, row := range rows[1:] {
		if seasonRowBeats(row, winner) {
			winner = row
		}
	}
	return winner
}

func seasonRowBeats(a, b staging.SeasonTotalRow) bool {
	aTot := a.TeamCode == season.TotalCode
	bTot := b.TeamCode == season.TotalCode
	if aTot != bTot {
		return aTot
	}
	if a.Games != b.Games {
		return a.Games > b.Games
	}
	return a.TeamCode < b.TeamCode
}
