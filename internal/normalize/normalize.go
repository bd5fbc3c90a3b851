// Package normalize turns raw ESPN league payloads into the FantasyData
// model. Everything here is a pure function of its inputs.
package normalize

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/omarshaarawi/coachbrief/internal/models"
)

// ErrMalformedBundle is returned when a bundle lacks its schedule.
var ErrMalformedBundle = errors.New("malformed bundle")

const (
	DefaultBenchSlotID = 20

	statSourceActual    = 0
	statSourceProjected = 1

	byeTeamID = -1
)

type Options struct {
	// SeasonID restricts stat lines to one season. Zero falls back to the
	// bundle's own seasonId.
	SeasonID int
	// BenchSlotID is the lineup slot code for the bench. Zero means 20.
	BenchSlotID int
}

type Normalizer struct {
	seasonID    int
	benchSlotID int
}

func New(opts Options) *Normalizer {
	bench := opts.BenchSlotID
	if bench == 0 {
		bench = DefaultBenchSlotID
	}
	return &Normalizer{seasonID: opts.SeasonID, benchSlotID: bench}
}

// Weekly normalizes one scoring period. Rosters come from the team list;
// a team missing there falls back to the side's period snapshot.
func (n *Normalizer) Weekly(raw *models.WeeklyBundle, teams []models.Team) (*models.FantasyData, error) {
	if raw == nil || raw.Schedule == nil {
		return nil, errors.Wrap(ErrMalformedBundle, "weekly bundle has no schedule")
	}

	week := raw.ScoringPeriodID
	season := n.season(raw.SeasonID)
	idx := indexTeams(teams)

	matchups := make([]models.Matchup, 0, len(raw.Schedule))
	for _, entry := range raw.Schedule {
		home := n.side(entry.Home, idx, weeklyEntries(entry.Home, idx), week, season)
		away := byeSide()
		if entry.Away != nil {
			away = n.side(*entry.Away, idx, weeklyEntries(*entry.Away, idx), week, season)
		}

		matchupWeek := week
		if entry.MatchupPeriodID != nil {
			matchupWeek = *entry.MatchupPeriodID
		}

		matchups = append(matchups, models.Matchup{
			Week:      matchupWeek,
			MatchupID: matchupID(entry),
			Home:      home,
			Away:      away,
		})
	}

	return &models.FantasyData{
		SeasonID: season,
		Week:     week,
		Matchups: matchups,
		Teams:    teamInfos(teams),
	}, nil
}

// Season normalizes every matchup period in a season bundle. Rosters come
// from each side's period snapshot and stat lines are read for that period.
func (n *Normalizer) Season(raw *models.SeasonBundle, teams []models.Team) (*models.FantasyData, error) {
	if raw == nil || raw.Schedule == nil {
		return nil, errors.Wrap(ErrMalformedBundle, "season bundle has no schedule")
	}

	season := n.season(raw.SeasonID)
	idx := indexTeams(teams)

	matchups := make([]models.Matchup, 0, len(raw.Schedule))
	for _, entry := range raw.Schedule {
		week := 0
		if entry.MatchupPeriodID != nil {
			week = *entry.MatchupPeriodID
		}

		home := n.side(entry.Home, idx, snapshotEntries(entry.Home), week, season)
		away := byeSide()
		if entry.Away != nil {
			away = n.side(*entry.Away, idx, snapshotEntries(*entry.Away), week, season)
		}

		matchups = append(matchups, models.Matchup{
			Week:      week,
			MatchupID: matchupID(entry),
			Home:      home,
			Away:      away,
		})
	}

	latest := raw.Status.LatestScoringPeriod
	if latest == 0 {
		latest = 1
	}

	return &models.FantasyData{
		SeasonID: season,
		Week:     latest,
		Matchups: matchups,
		Teams:    teamInfos(teams),
	}, nil
}

// Live reduces a live-scoring payload to per-team totals. Without a
// schedule every known team is listed with zeros.
func (n *Normalizer) Live(raw *models.WeeklyBundle, teams []models.Team) models.LiveScoreboard {
	idx := indexTeams(teams)
	board := models.LiveScoreboard{Teams: []models.LiveTeamTotal{}}
	if raw == nil {
		raw = &models.WeeklyBundle{}
	}
	board.Week = raw.ScoringPeriodID

	buckets := make(map[int]models.LiveTeamTotal)
	add := func(s models.ScheduleSide) {
		if s.TeamID < 0 {
			return
		}
		total := value(s.TotalPoints)
		live := total
		if s.TotalPointsLive != nil {
			live = finite(*s.TotalPointsLive)
		}

		prev, ok := buckets[s.TeamID]
		if !ok {
			t, known := idx[s.TeamID]
			prev = models.LiveTeamTotal{TeamID: s.TeamID, Name: teamName(t, known, s.TeamID)}
		}
		prev.TotalPoints = math.Max(prev.TotalPoints, total)
		prev.TotalPointsLive = math.Max(prev.TotalPointsLive, live)
		buckets[s.TeamID] = prev
	}

	for _, entry := range raw.Schedule {
		add(entry.Home)
		if entry.Away != nil {
			add(*entry.Away)
		}
	}

	if len(buckets) == 0 {
		for _, t := range teams {
			buckets[t.ID] = models.LiveTeamTotal{TeamID: t.ID, Name: teamName(t, true, t.ID)}
		}
	}

	for _, total := range buckets {
		board.Teams = append(board.Teams, total)
	}
	sort.Slice(board.Teams, func(i, j int) bool {
		return board.Teams[i].TeamID < board.Teams[j].TeamID
	})

	return board
}

// ProjectedTotal sums projected points over the non-bench cards.
func ProjectedTotal(roster []models.PlayerCard) float64 {
	var total float64
	for _, p := range roster {
		if !p.Bench {
			total += p.ProjectedPoints
		}
	}
	return total
}

func (n *Normalizer) season(bundleSeason int) int {
	if n.seasonID != 0 {
		return n.seasonID
	}
	return bundleSeason
}

func (n *Normalizer) side(raw models.ScheduleSide, idx map[int]models.Team, entries []models.RosterEntry, week, season int) models.TeamSide {
	team, ok := idx[raw.TeamID]
	roster := n.cards(entries, week, season)

	return models.TeamSide{
		TeamID:                   raw.TeamID,
		Name:                     teamName(team, ok, raw.TeamID),
		TotalPoints:              value(raw.TotalPoints),
		TotalProjectedPoints:     ProjectedTotal(roster),
		TotalProjectedPointsLive: finitePtr(raw.TotalProjectedPointsLive),
		Roster:                   roster,
	}
}

func (n *Normalizer) cards(entries []models.RosterEntry, week, season int) []models.PlayerCard {
	cards := make([]models.PlayerCard, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, n.card(e, week, season))
	}
	return cards
}

func (n *Normalizer) card(e models.RosterEntry, week, season int) models.PlayerCard {
	p := e.PlayerPoolEntry.Player

	actual := findStat(p.Stats, statSourceActual, week, season)
	proj := findStat(p.Stats, statSourceProjected, week, season)

	var projected float64
	if proj != nil {
		projected = appliedTotal(*proj)
	}

	var actualPoints float64
	switch {
	case actual != nil:
		actualPoints = appliedTotal(*actual)
	case e.PlayerPoolEntry.AppliedStatTotal != nil:
		actualPoints = finite(*e.PlayerPoolEntry.AppliedStatTotal)
	}

	live := projected
	if actual != nil {
		live = actualPoints
	}

	id := p.ID
	if id == 0 {
		id = e.PlayerPoolEntry.ID
	}

	return models.PlayerCard{
		ID:                  id,
		Name:                playerName(p),
		ProTeam:             proTeamAbbrev(p),
		Position:            PositionLabel(p.DefaultPositionID),
		ProjectedPoints:     projected,
		ActualPoints:        actualPoints,
		LiveProjectedPoints: live,
		Bench:               e.LineupSlotID == n.benchSlotID,
		Injury:              injuryStatus(e),
	}
}

func injuryStatus(e models.RosterEntry) string {
	status := e.InjuryStatus
	if status == "" {
		status = e.PlayerPoolEntry.Player.InjuryStatus
	}
	if status == "ACTIVE" || status == "NORMAL" {
		return ""
	}
	return status
}

// findStat returns the first line for source in week and season. A zero
// week or season matches any.
func findStat(stats []models.Stat, source, week, season int) *models.Stat {
	for i := range stats {
		s := &stats[i]
		if s.StatSourceID != source {
			continue
		}
		if week > 0 && s.ScoringPeriodID != week {
			continue
		}
		if season > 0 && s.SeasonID != season {
			continue
		}
		return s
	}
	return nil
}

// appliedTotal prefers appliedTotal, then the applied breakdown, then the
// raw breakdown.
func appliedTotal(s models.Stat) float64 {
	switch {
	case s.AppliedTotal != nil:
		return finite(*s.AppliedTotal)
	case s.AppliedStats != nil:
		return sumValues(s.AppliedStats)
	case s.Stats != nil:
		return sumValues(s.Stats)
	}
	return 0
}

// sumValues adds in key order so repeated calls give identical floats.
func sumValues(m map[string]float64) float64 {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var total float64
	for _, k := range keys {
		total += finite(m[k])
	}
	return total
}

func weeklyEntries(s models.ScheduleSide, idx map[int]models.Team) []models.RosterEntry {
	if t, ok := idx[s.TeamID]; ok && t.Roster != nil && len(t.Roster.Entries) > 0 {
		return t.Roster.Entries
	}
	return snapshotEntries(s)
}

func snapshotEntries(s models.ScheduleSide) []models.RosterEntry {
	if s.RosterForCurrentScoringPeriod == nil {
		return nil
	}
	return s.RosterForCurrentScoringPeriod.Entries
}

func byeSide() models.TeamSide {
	return models.TeamSide{TeamID: byeTeamID, Name: "Bye", Roster: []models.PlayerCard{}}
}

func matchupID(e models.ScheduleEntry) *int {
	if e.MatchupID != nil {
		id := *e.MatchupID
		return &id
	}
	if e.ID != nil {
		id := *e.ID
		return &id
	}
	return nil
}

func indexTeams(teams []models.Team) map[int]models.Team {
	idx := make(map[int]models.Team, len(teams))
	for _, t := range teams {
		idx[t.ID] = t
	}
	return idx
}

func teamInfos(teams []models.Team) []models.TeamInfo {
	infos := make([]models.TeamInfo, 0, len(teams))
	for _, t := range teams {
		infos = append(infos, models.TeamInfo{
			ID:           t.ID,
			Abbreviation: t.Abbreviation,
			Name:         teamName(t, true, t.ID),
		})
	}
	return infos
}

func teamName(t models.Team, known bool, id int) string {
	placeholder := "Team " + strconv.Itoa(id)
	if !known {
		return placeholder
	}
	if t.Name != "" {
		return t.Name
	}
	if name := strings.TrimSpace(t.Location + " " + t.Nickname); name != "" {
		return name
	}
	return placeholder
}

func playerName(p models.Player) string {
	if p.FullName != "" {
		return p.FullName
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return finite(*v)
}

func finitePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := finite(*v)
	return &f
}
