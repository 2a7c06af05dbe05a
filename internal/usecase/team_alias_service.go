package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/staging"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/team"
	"github.com/hoopsarchive/hoopsarchive/internal/platform/logging"
)

// HistoricalAliasSeason is the fixed season under which synthetic franchise
// aliases are filed. Real seasons are four-digit years, so zero cannot
// collide with the per-season abbreviation table.
const HistoricalAliasSeason = 0

// manualAbbrevRemap maps source team codes to the canonical registry's
// abbreviation for franchises that rebranded or relocated. The historical
// record pins these by hand; new exceptions belong here, not in code paths.
var manualAbbrevRemap = map[string]string{
	"PHO": "PHX",
	"BRK": "BKN",
	"NJN": "BKN",
	"CHO": "CHA",
	"CHH": "CHA",
	"NOH": "NOP",
	"NOK": "NOP",
	"VAN": "MEM",
	"SEA": "OKC",
	"WSB": "WAS",
	"KCK": "SAC",
	"SDC": "LAC",
}

// TeamAliasService builds the (season, alias_code) -> team_id dimension from
// the per-season abbreviation table and the seasonless franchise history.
type TeamAliasService struct {
	logger *logging.Logger
}

func NewTeamAliasService(logger *logging.Logger) *TeamAliasService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &TeamAliasService{logger: logger}
}

// Normalize resolves every input alias to a canonical team id or retains it
// with a nil target. No alias row is ever dropped: downstream joins are left
// joins, and a nil mapped id is an observable gap the orphan check can flag,
// distinct from the row silently disappearing.
func (s *TeamAliasService) Normalize(ctx context.Context, teams []staging.TeamRow, abbrevs []staging.TeamAbbrevRow, franchises []staging.FranchiseRow) []team.Alias {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamAliasService.Normalize")
	defer span.End()

	// When two registry rows share an abbreviation, the lowest team id wins,
	// deterministically. Historical exceptions are pinned in the manual
	// remap table instead.
	byAbbrev := make(map[string]int64, len(teams))
	for _, t := range teams {
		code := strings.ToUpper(strings.TrimSpace(t.Abbreviation))
		if code == "" {
			continue
		}
		if existing, ok := byAbbrev[code]; !ok || t.TeamID < existing {
			byAbbrev[code] = t.TeamID
		}
	}

	seen := make(map[string]bool, len(abbrevs)+len(franchises))
	out := make([]team.Alias, 0, len(abbrevs)+len(franchises))
	var unmapped int

	for _, row := range abbrevs {
		code := strings.ToUpper(strings.TrimSpace(row.Abbreviation))
		if code == "" {
			continue
		}
		key := aliasKey(row.Season, code)
		if seen[key] {
			continue
		}
		seen[key] = true

		alias := team.Alias{Season: row.Season, AliasCode: code}
		if id, ok := byAbbrev[code]; ok {
			mapped := id
			alias.MappedTeamID = &mapped
		} else if modern, ok := manualAbbrevRemap[code]; ok {
			if id, ok := byAbbrev[modern]; ok {
				mapped := id
				alias.MappedTeamID = &mapped
			}
		}
		if alias.MappedTeamID == nil {
			unmapped++
		}
		out = append(out, alias)
	}

	for _, fr := range franchises {
		code := syntheticFranchiseCode(fr)
		key := aliasKey(HistoricalAliasSeason, code)
		if seen[key] {
			continue
		}
		seen[key] = true

		mapped := fr.TeamID
		out = append(out, team.Alias{
			Season:       HistoricalAliasSeason,
			AliasCode:    code,
			MappedTeamID: &mapped,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season < out[j].Season
		}
		return out[i].AliasCode < out[j].AliasCode
	})

	if unmapped > 0 {
		s.logger.WarnContext(ctx, "aliases retained without canonical team", "count", unmapped)
	}
	s.logger.InfoContext(ctx, "team aliases normalized",
		"abbrevs", len(abbrevs), "franchises", len(franchises), "aliases", len(out))

	return out
}

// syntheticFranchiseCode derives a distinguishing alias code for a
// historical franchise, which has no abbreviation of its own in the source.
func syntheticFranchiseCode(fr staging.FranchiseRow) string {
	nick := strings.ToUpper(strings.TrimSpace(fr.Nickname))
	nick = strings.ReplaceAll(nick, " ", "")
	if len(nick) > 3 {
		nick = nick[:3]
	}
	return fmt.Sprintf("HIST-%s-%d", nick, fr.YearFounded)
}

func aliasKey(season int, code string) string {
	return fmt.Sprintf("%d|%s", season, code)
}

// AliasLookup indexes aliases for enrichment joins.
func AliasLookup(aliases []team.Alias) map[string]*int64 {
	out := make(map[string]*int64, len(aliases))
	for _, a := range aliases {
		out[aliasKey(a.Season, a.AliasCode)] = a.MappedTeamID
	}
	return out
}

// LookupTeamID resolves a (season, code) pair against an AliasLookup; the
// second result distinguishes "no alias row" from "alias mapped to nothing".
func LookupTeamID(lookup map[string]*int64, season int, code string) (*int64, bool) {
	id, ok := lookup[aliasKey(season, strings.ToUpper(strings.TrimSpace(code)))]
	return id, ok
}
