package scoring

import (
	"sort"

	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
)

// ResolveTeamDeltas folds fighter scores into per-team deltas. A team gets
// the sum of the totals of the fighters it holds, each fighter counted once
// even when the team or the fighter shows up repeatedly in holdings. Teams
// holding none of the scored fighters get no entry. The result is ordered by
// team id.
func ResolveTeamDeltas(scores []FighterScore, holdings []fantasy.TeamHolding) []TeamDelta {
	totals := make(map[string]int, len(scores))
	for _, s := range scores {
		totals[s.FighterID] = s.Total
	}

	type teamKey struct {
		teamID    string
		fighterID string
	}
	counted := make(map[teamKey]struct{})
	byTeam := make(map[string]*TeamDelta)

	for _, h := range holdings {
		for _, fighterID := range h.HeldFighterIDs {
			total, ok := totals[fighterID]
			if !ok {
				continue
			}
			key := teamKey{teamID: h.TeamID, fighterID: fighterID}
			if _, dup := counted[key]; dup {
				continue
			}
			counted[key] = struct{}{}

			d, ok := byTeam[h.TeamID]
			if !ok {
				d = &TeamDelta{TeamID: h.TeamID, LeagueID: h.LeagueID}
				byTeam[h.TeamID] = d
			}
			d.Delta += int64(total)
		}
	}

	out := make([]TeamDelta, 0, len(byTeam))
	for _, d := range byTeam {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out
}
