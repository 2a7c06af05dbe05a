package usecase

import (
	"context"
	"sort"

	"github.com/hoopsarchive/hoopsarchive/internal/domain/player"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/staging"
	"github.com/hoopsarchive/hoopsarchive/internal/platform/logging"
)

// Source-priority ranks. Lower wins within an identifier group.
const (
	rankModern = 1
	rankLegacy = 2
)

// PlayerResolverService unifies player identities across the modern and
// legacy registries into one curated row per canonical identifier.
type PlayerResolverService struct {
	logger *logging.Logger
}

func NewPlayerResolverService(logger *logging.Logger) *PlayerResolverService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PlayerResolverService{logger: logger}
}

type playerCandidate struct {
	rank int
	ord  int
	row  player.Player
}

// Resolve produces exactly one Player per distinct identifier present in
// either source. A legacy row whose identifier already appears in the modern
// registry is excluded before any rank comparison, since the two namespaces
// can coincidentally share raw integer values. Rows with a null identifier
// cannot participate in any join and are dropped; the count is logged so the
// gap stays observable.
func (s *PlayerResolverService) Resolve(ctx context.Context, modern []staging.ModernPlayerRow, legacy []staging.LegacyPlayerRow) []player.Player {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerResolverService.Resolve")
	defer span.End()

	modernIDs := make(map[int64]bool, len(modern))
	for _, row := range modern {
		if row.PersonID != nil {
			modernIDs[*row.PersonID] = true
		}
	}

	var droppedNullID int
	candidates := make(map[int64][]playerCandidate, len(modern)+len(legacy))
	ord := 0

	for _, row := range modern {
		if row.PersonID == nil {
			droppedNullID++
			continue
		}
		id := *row.PersonID
		candidates[id] = append(candidates[id], playerCandidate{
			rank: rankModern,
			ord:  ord,
			row: player.Player{
				PlayerID:  id,
				FullName:  row.FullName,
				Namespace: player.NamespaceModern,
				BirthDate: row.BirthDate,
				School:    row.School,
				Country:   row.Country,
				Height:    row.Height,
				Weight:    row.Weight,
				Position:  row.Position,
			},
		})
		ord++
	}

	for _, row := range legacy {
		if row.PlayerID == nil {
			droppedNullID++
			continue
		}
		id := *row.PlayerID
		if modernIDs[id] {
			continue
		}
		candidates[id] = append(candidates[id], playerCandidate{
			rank: rankLegacy,
			ord:  ord,
			row: player.Player{
				PlayerID:  id,
				FullName:  row.FullName,
				Namespace: player.NamespaceLegacy,
			},
		})
		ord++
	}

	out := make([]player.Player, 0, len(candidates))
	for _, group := range candidates {
		sort.Slice(group, func(i, j int) bool {
			if group[i].rank != group[j].rank {
				return group[i].rank < group[j].rank
			}
			return group[i].ord < group[j].ord
		})
		out = append(out, group[0].row)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })

	if droppedNullID > 0 {
		s.logger.WarnContext(ctx, "player rows dropped for null identifier", "count", droppedNullID)
	}
	s.logger.InfoContext(ctx, "players resolved",
		"modern", len(modern), "legacy", len(legacy), "resolved", len(out))

	return out
}
