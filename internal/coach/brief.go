// Package coach builds the deterministic coach brief for one team and week:
// start/sit swaps, positional mismatches and streamer hints.
package coach

import (
	"fmt"
	"math"
	"sort"

	"github.com/omarshaarawi/coachbrief/internal/models"
	"github.com/omarshaarawi/coachbrief/internal/scoring"
)

const NoMatchupBullet = "No matchup found for this team/week."

const (
	defaultStarterCutoff  = 9
	defaultStreamerRank   = 8
	defaultSwapThreshold  = 0.5
	defaultMaxSwapBullets = 3
	defaultMismatchDepth  = 2
	defaultStreamerGain   = 2.0

	unknownTeam = "Unknown"
)

// DefaultStreamPositions are the thin positions usually streamed.
var DefaultStreamPositions = []models.Position{models.PositionQB, models.PositionK, models.PositionDST}

// Options tunes the builder. Zero values take the defaults.
type Options struct {
	Partition             RosterPartition
	StreamPositions       []models.Position
	StreamerRankThreshold int
	SwapThreshold         float64
	MaxSwapBullets        int
	MismatchDepth         int
	ExpectedStreamerGain  float64
}

type Builder struct {
	opts Options
}

func NewBuilder(opts Options) *Builder {
	if opts.Partition == nil {
		opts.Partition = FirstN{N: defaultStarterCutoff}
	}
	if opts.StreamPositions == nil {
		opts.StreamPositions = DefaultStreamPositions
	}
	if opts.StreamerRankThreshold == 0 {
		opts.StreamerRankThreshold = defaultStreamerRank
	}
	if opts.SwapThreshold == 0 {
		opts.SwapThreshold = defaultSwapThreshold
	}
	if opts.MaxSwapBullets == 0 {
		opts.MaxSwapBullets = defaultMaxSwapBullets
	}
	if opts.MismatchDepth == 0 {
		opts.MismatchDepth = defaultMismatchDepth
	}
	if opts.ExpectedStreamerGain == 0 {
		opts.ExpectedStreamerGain = defaultStreamerGain
	}
	return &Builder{opts: opts}
}

// Request selects the team and week and carries the user's dials.
// OpponentRanks holds the opponent's defensive rank per position; a
// missing position is neutral.
type Request struct {
	Week          int
	TeamID        int
	Risk          float64
	Live          bool
	OpponentRanks models.PositionRanks
}

// Build never fails. Without a matchup for the team in the requested week
// it returns an empty brief with a single explanatory bullet.
func (b *Builder) Build(data *models.FantasyData, req Request) models.CoachBrief {
	week := req.Week
	if week == 0 && data != nil {
		week = data.Week
	}
	risk := scoring.ClampRisk(req.Risk)

	brief := models.CoachBrief{
		Week:           week,
		TeamName:       unknownTeam,
		OpponentName:   unknownTeam,
		SummaryBullets: []string{},
		StartSit:       []models.StartSitAdvice{},
		Streamers:      []models.StreamerAdvice{},
		Mismatches:     []models.Mismatch{},
		Risk:           risk,
		Live:           req.Live,
	}

	you, opp, ok := findSides(data, week, req.TeamID)
	if !ok {
		brief.SummaryBullets = append(brief.SummaryBullets, NoMatchupBullet)
		return brief
	}

	brief.TeamName = nameOr(you.Name)
	brief.OpponentName = nameOr(opp.Name)

	points := projected
	if req.Live {
		points = liveProjected
	}

	brief.StartSit = b.startSit(you.Roster, req.OpponentRanks, risk, points)
	brief.Streamers = b.streamers(req.OpponentRanks)
	brief.Mismatches = b.mismatches(you.Roster, opp.Roster, projected)
	brief.SummaryBullets = b.bullets(brief)

	return brief
}

func (b *Builder) startSit(roster []models.PlayerCard, ranks models.PositionRanks, risk float64, points func(models.PlayerCard) float64) []models.StartSitAdvice {
	starters, bench := b.opts.Partition.Split(roster)

	advice := make([]models.StartSitAdvice, 0, len(starters))
	for _, s := range starters {
		rank := ranks[s.Position]
		current := scoring.RiskAdjustedProjection(points(s), rank, risk, 0)

		item := models.StartSitAdvice{
			Slot: s.Position,
			Current: models.PlayerProjection{
				Name:         s.Name,
				Projected:    points(s),
				RiskAdjusted: current,
				Injury:       s.Injury,
			},
		}

		for _, alt := range bench {
			if alt.Position != s.Position {
				continue
			}
			adjusted := scoring.RiskAdjustedProjection(points(alt), rank, risk, 0)
			if delta := adjusted - current; delta > item.Delta {
				item.Delta = delta
				item.Alternative = &models.Alternative{
					Name:         alt.Name,
					Projected:    points(alt),
					RiskAdjusted: adjusted,
					Reason:       "Better risk-adjusted projection",
				}
			}
		}

		advice = append(advice, item)
	}

	return advice
}

func (b *Builder) streamers(ranks models.PositionRanks) []models.StreamerAdvice {
	out := []models.StreamerAdvice{}
	for _, pos := range b.opts.StreamPositions {
		rank := ranks[pos]
		if rank < 1 || rank > b.opts.StreamerRankThreshold {
			continue
		}
		out = append(out, models.StreamerAdvice{
			Position:     pos,
			Candidate:    fmt.Sprintf("Best available %s", pos),
			Reason:       fmt.Sprintf("Faces top-%d defense vs %s", b.opts.StreamerRankThreshold, pos),
			ExpectedGain: b.opts.ExpectedStreamerGain,
		})
	}
	return out
}

// mismatches compares the top players per position on the team's roster
// with the opponent's, most lopsided first.
func (b *Builder) mismatches(you, opp []models.PlayerCard, points func(models.PlayerCard) float64) []models.Mismatch {
	var positions []models.Position
	seen := make(map[models.Position]bool)
	for _, p := range you {
		if p.Position == models.PositionUnknown || seen[p.Position] {
			continue
		}
		seen[p.Position] = true
		positions = append(positions, p.Position)
	}

	out := make([]models.Mismatch, 0, len(positions))
	for _, pos := range positions {
		yours := topSum(you, pos, b.opts.MismatchDepth, points)
		theirs := topSum(opp, pos, b.opts.MismatchDepth, points)
		out = append(out, models.Mismatch{
			Position: pos,
			You:      yours,
			Opp:      theirs,
			Delta:    yours - theirs,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Delta) > math.Abs(out[j].Delta)
	})
	return out
}

// bullets lists the biggest swaps, then the biggest mismatch, then the
// first streamer.
func (b *Builder) bullets(brief models.CoachBrief) []string {
	out := []string{}

	var swaps []models.StartSitAdvice
	for _, s := range brief.StartSit {
		if s.Alternative != nil && s.Delta > b.opts.SwapThreshold {
			swaps = append(swaps, s)
		}
	}
	sort.SliceStable(swaps, func(i, j int) bool { return swaps[i].Delta > swaps[j].Delta })
	if len(swaps) > b.opts.MaxSwapBullets {
		swaps = swaps[:b.opts.MaxSwapBullets]
	}
	for _, s := range swaps {
		out = append(out, fmt.Sprintf("Start %s over %s at %s (+%.1f rAdj pts).",
			s.Alternative.Name, s.Current.Name, s.Slot, s.Delta))
	}

	if len(brief.Mismatches) > 0 {
		m := brief.Mismatches[0]
		switch {
		case m.Delta > 0:
			out = append(out, fmt.Sprintf("Exploit %s: you +%.1f vs opp.", m.Position, m.Delta))
		case m.Delta < 0:
			out = append(out, fmt.Sprintf("Shore up %s: opp +%.1f vs you.", m.Position, -m.Delta))
		}
	}

	if len(brief.Streamers) > 0 {
		out = append(out, fmt.Sprintf("Consider a %s streamer: tough matchup for your starter.", brief.Streamers[0].Position))
	}

	return out
}

// findSides returns the first matchup in week containing teamID.
func findSides(data *models.FantasyData, week, teamID int) (you, opp models.TeamSide, ok bool) {
	if data == nil || teamID < 0 {
		return you, opp, false
	}
	for _, m := range data.Matchups {
		mw := m.Week
		if mw == 0 {
			mw = data.Week
		}
		if mw != week {
			continue
		}
		if you, opp, ok = m.Side(teamID); ok {
			return you, opp, true
		}
	}
	return you, opp, false
}

func topSum(roster []models.PlayerCard, pos models.Position, depth int, points func(models.PlayerCard) float64) float64 {
	var pts []float64
	for _, p := range roster {
		if p.Position == pos {
			pts = append(pts, points(p))
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(pts)))

	var total float64
	for _, v := range pts[:min(depth, len(pts))] {
		total += v
	}
	return total
}

func projected(p models.PlayerCard) float64 { return finite(p.ProjectedPoints) }

func liveProjected(p models.PlayerCard) float64 { return finite(p.LiveProjectedPoints) }

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func nameOr(name string) string {
	if name == "" {
		return unknownTeam
	}
	return name
}
