package coach

import "github.com/omarshaarawi/coachbrief/internal/models"

// RosterPartition decides which roster cards are starters and which sit on
// the bench. Both results keep roster order.
type RosterPartition interface {
	Split(roster []models.PlayerCard) (starters, bench []models.PlayerCard)
}

// FirstN treats the first N cards as starters. It approximates lineup
// slots for standard nine-man lineups when slot data cannot be trusted.
type FirstN struct {
	N int
}

func (f FirstN) Split(roster []models.PlayerCard) (starters, bench []models.PlayerCard) {
	n := min(max(f.N, 0), len(roster))
	return roster[:n:n], roster[n:]
}

// ByLineupSlot uses the card's bench flag.
type ByLineupSlot struct{}

func (ByLineupSlot) Split(roster []models.PlayerCard) (starters, bench []models.PlayerCard) {
	for _, p := range roster {
		if p.Bench {
			bench = append(bench, p)
		} else {
			starters = append(starters, p)
		}
	}
	return starters, bench
}

// PartitionByName maps a configuration value to a partition. Unknown
// names fall back to FirstN.
func PartitionByName(name string, cutoff int) RosterPartition {
	if name == "lineup_slot" {
		return ByLineupSlot{}
	}
	return FirstN{N: cutoff}
}
