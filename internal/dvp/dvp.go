// Package dvp infers defense-vs-position ranks for one scoring period from
// the projected points of the starters each defense faces.
package dvp

import (
	"math"
	"sort"

	"github.com/omarshaarawi/coachbrief/internal/models"
)

// DefaultStarterCounts approximates a standard ESPN lineup.
var DefaultStarterCounts = map[models.Position]int{
	models.PositionQB:  1,
	models.PositionRB:  2,
	models.PositionWR:  2,
	models.PositionTE:  1,
	models.PositionK:   1,
	models.PositionDST: 1,
}

type Ranker struct {
	starters  map[models.Position]int
	positions []models.Position
}

// NewRanker takes the number of starters per position. Positions missing
// from counts, or with a count of zero, are not ranked. A nil map uses
// DefaultStarterCounts.
func NewRanker(counts map[models.Position]int) *Ranker {
	if counts == nil {
		counts = DefaultStarterCounts
	}

	starters := make(map[models.Position]int, len(counts))
	positions := make([]models.Position, 0, len(counts))
	for _, pos := range models.Positions {
		if n := counts[pos]; n > 0 {
			starters[pos] = n
			positions = append(positions, pos)
		}
	}

	return &Ranker{starters: starters, positions: positions}
}

// BuildImplied returns the ranks for week.
func (r *Ranker) BuildImplied(data *models.FantasyData, week int) models.DvpRanks {
	return r.Ranks(r.Table(data, week))
}

// Table sums, per defending team and position, the projected points of the
// opposing starters in week. Home offense counts against the away defense
// and the reverse.
func (r *Ranker) Table(data *models.FantasyData, week int) models.DvpTable {
	table := make(models.DvpTable)
	if data == nil {
		return table
	}

	for _, m := range data.Matchups {
		if matchupWeek(m, data) != week || isBye(m) {
			continue
		}
		r.allow(table, m.Away.TeamID, r.starterSums(m.Home.Roster))
		r.allow(table, m.Home.TeamID, r.starterSums(m.Away.Roster))
	}

	return table
}

// Ranks converts a table into dense per-position ranks, 1 being the fewest
// points allowed. Equal values are ordered by team id.
func (r *Ranker) Ranks(table models.DvpTable) models.DvpRanks {
	ranks := make(models.DvpRanks)

	type allowed struct {
		teamID int
		points float64
	}

	for _, pos := range r.positions {
		entries := make([]allowed, 0, len(table))
		for teamID, byPos := range table {
			v, ok := byPos[pos]
			if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			entries = append(entries, allowed{teamID: teamID, points: v})
		}

		sort.Slice(entries, func(i, j int) bool {
			if entries[i].points != entries[j].points {
				return entries[i].points < entries[j].points
			}
			return entries[i].teamID < entries[j].teamID
		})

		for i, e := range entries {
			if ranks[e.teamID] == nil {
				ranks[e.teamID] = make(map[models.Position]int)
			}
			ranks[e.teamID][pos] = i + 1
		}
	}

	return ranks
}

// OpponentRanks returns the ranks of teamID's opponent in week, or an empty
// map when there is no such matchup or the opponent has no ranks.
func OpponentRanks(ranks models.DvpRanks, data *models.FantasyData, week, teamID int) models.PositionRanks {
	out := make(models.PositionRanks)
	if data == nil {
		return out
	}

	for _, m := range data.Matchups {
		if matchupWeek(m, data) != week {
			continue
		}
		_, opp, ok := m.Side(teamID)
		if !ok {
			continue
		}
		for pos, rank := range ranks[opp.TeamID] {
			out[pos] = rank
		}
		return out
	}

	return out
}

func (r *Ranker) allow(table models.DvpTable, defense int, sums map[models.Position]float64) {
	if table[defense] == nil {
		table[defense] = make(map[models.Position]float64, len(r.positions))
	}
	for _, pos := range r.positions {
		table[defense][pos] += sums[pos]
	}
}

// starterSums picks the top-N projected active players per position and
// sums them. Benched players never count against a defense.
func (r *Ranker) starterSums(roster []models.PlayerCard) map[models.Position]float64 {
	buckets := make(map[models.Position][]float64, len(r.positions))
	for _, p := range roster {
		if p.Bench {
			continue
		}
		if _, ok := r.starters[p.Position]; !ok {
			continue
		}
		if math.IsNaN(p.ProjectedPoints) || math.IsInf(p.ProjectedPoints, 0) {
			continue
		}
		buckets[p.Position] = append(buckets[p.Position], p.ProjectedPoints)
	}

	sums := make(map[models.Position]float64, len(buckets))
	for pos, pts := range buckets {
		sort.Sort(sort.Reverse(sort.Float64Slice(pts)))
		n := min(r.starters[pos], len(pts))
		for _, v := range pts[:n] {
			sums[pos] += v
		}
	}
	return sums
}

// isBye reports a pairing with a missing side. Nobody defends anything.
func isBye(m models.Matchup) bool {
	return m.Home.TeamID < 0 || m.Away.TeamID < 0
}

func matchupWeek(m models.Matchup, data *models.FantasyData) int {
	if m.Week == 0 {
		return data.Week
	}
	return m.Week
}
