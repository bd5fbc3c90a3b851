package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/omarshaarawi/coachbrief/internal/models"
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// esc escapes text for Telegram's legacy Markdown.
func esc(s string) string {
	return markdownEscaper.Replace(s)
}

var injuryAbbr = map[string]string{
	"QUESTIONABLE":   "Q",
	"DOUBTFUL":       "D",
	"OUT":            "O",
	"INJURY_RESERVE": "IR",
	"SUSPENSION":     "SSPD",
}

func injuryTag(status string) string {
	if status == "" {
		return ""
	}
	abbr, ok := injuryAbbr[status]
	if !ok {
		abbr = status
	}
	return fmt.Sprintf(" (%s)", abbr)
}

func (s *FantasyService) GetCoachReport(ctx context.Context, req CoachRequest) (string, error) {
	report, err := s.CoachReport(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "building coach report")
	}
	return FormatCoachReport(report), nil
}

func FormatCoachReport(report *models.CoachReport) string {
	b := report.Brief
	var sb strings.Builder

	mode := "pre-game"
	if b.Live {
		mode = "live"
	}
	sb.WriteString(fmt.Sprintf("🧠 *Week %d Coach Brief*\n", b.Week))
	sb.WriteString(fmt.Sprintf("*%s* vs *%s*\n", esc(b.TeamName), esc(b.OpponentName)))
	sb.WriteString(fmt.Sprintf("Risk %.0f, %s projections\n\n", b.Risk, mode))

	for _, bullet := range b.SummaryBullets {
		sb.WriteString(fmt.Sprintf("• %s\n", esc(bullet)))
	}

	if len(b.StartSit) > 0 {
		sb.WriteString("\n*Start/Sit:*\n")
		for _, s := range b.StartSit {
			sb.WriteString(fmt.Sprintf("▫️ %s %s%s - %.1f (%.1f rAdj)",
				s.Slot, esc(s.Current.Name), injuryTag(s.Current.Injury), s.Current.Projected, s.Current.RiskAdjusted))
			if s.Alternative != nil {
				sb.WriteString(fmt.Sprintf(" ➜ %s +%.1f", esc(s.Alternative.Name), s.Delta))
			}
			sb.WriteString("\n")
		}
	}

	if len(b.Mismatches) > 0 {
		sb.WriteString("\n*Mismatches:*\n")
		for _, m := range b.Mismatches {
			sb.WriteString(fmt.Sprintf("%s: %.1f - %.1f (%+.1f)\n", m.Position, m.You, m.Opp, m.Delta))
		}
	}

	if len(b.Streamers) > 0 {
		sb.WriteString("\n*Streamers:*\n")
		for _, st := range b.Streamers {
			sb.WriteString(fmt.Sprintf("%s: %s, %s\n", st.Position, esc(st.Candidate), esc(st.Reason)))
		}
	}

	switch {
	case report.Narrative != nil:
		n := report.Narrative
		sb.WriteString(fmt.Sprintf("\n📝 *%s*\n", esc(n.Headline)))
		for _, bullet := range n.Bullets {
			sb.WriteString(fmt.Sprintf("• %s\n", esc(bullet)))
		}
		for _, r := range n.Risks {
			sb.WriteString(fmt.Sprintf("⚠️ %s\n", esc(r)))
		}
		for _, m := range n.Moves {
			if m.Reason != "" {
				sb.WriteString(fmt.Sprintf("➜ %s: %s\n", esc(m.Label), esc(m.Reason)))
			} else {
				sb.WriteString(fmt.Sprintf("➜ %s\n", esc(m.Label)))
			}
		}
	case report.NarrativeError != "":
		sb.WriteString(fmt.Sprintf("\n_%s_\n", esc(report.NarrativeError)))
	}

	return sb.String()
}

func (s *FantasyService) GetMatchups(ctx context.Context) (string, error) {
	data, err := s.Week(ctx, 0)
	if err != nil {
		return "", errors.Wrap(err, "fetching matchups")
	}
	return FormatMatchups(data), nil
}

func FormatMatchups(data *models.FantasyData) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏈 *Week %d Matchups*\n\n", data.Week))

	for _, m := range data.Matchups {
		if m.Week != data.Week {
			continue
		}
		sb.WriteString(fmt.Sprintf("*%s* vs *%s*\n", esc(m.Home.Name), esc(m.Away.Name)))
		sb.WriteString(fmt.Sprintf("Projected: %.2f - %.2f\n", m.Home.TotalProjectedPoints, m.Away.TotalProjectedPoints))
		if m.Home.TotalPoints > 0 || m.Away.TotalPoints > 0 {
			sb.WriteString(fmt.Sprintf("Current: %.2f - %.2f\n", m.Home.TotalPoints, m.Away.TotalPoints))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (s *FantasyService) GetDvp(ctx context.Context) (string, error) {
	ranks, data, err := s.DvpRanks(ctx, 0)
	if err != nil {
		return "", errors.Wrap(err, "building dvp ranks")
	}
	return FormatDvp(ranks, data), nil
}

// FormatDvp lists each team's ranks in position order. A dash means no
// opinion.
func FormatDvp(ranks models.DvpRanks, data *models.FantasyData) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🛡 *Week %d Defense vs Position*\n", data.Week))
	sb.WriteString("_1 = toughest_\n\n")

	ids := make([]int, 0, len(ranks))
	for id := range ranks {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	header := make([]string, 0, len(models.Positions))
	for _, pos := range models.Positions {
		header = append(header, string(pos))
	}
	sb.WriteString(fmt.Sprintf("`%s`\n", strings.Join(header, " ")))

	for _, id := range ids {
		cells := make([]string, 0, len(models.Positions))
		for _, pos := range models.Positions {
			if r, ok := ranks[id][pos]; ok {
				cells = append(cells, fmt.Sprintf("%d", r))
			} else {
				cells = append(cells, "-")
			}
		}
		name := data.TeamName(id)
		if name == "" {
			name = fmt.Sprintf("Team %d", id)
		}
		sb.WriteString(fmt.Sprintf("*%s*: %s\n", esc(name), strings.Join(cells, " / ")))
	}

	return sb.String()
}

func (s *FantasyService) GetStandings(ctx context.Context) (string, error) {
	standings, err := s.Standings(ctx)
	if err != nil {
		return "", errors.Wrap(err, "fetching standings")
	}
	return FormatStandings(standings), nil
}

func FormatStandings(standings []models.TeamStanding) string {
	var sb strings.Builder
	sb.WriteString("🏆 *Current Standings*\n\n")
	for _, team := range standings {
		sb.WriteString(fmt.Sprintf("%d. *%s*\n", team.Rank, esc(team.TeamName)))
		sb.WriteString(fmt.Sprintf("   Record: %d-%d-%d\n", team.Wins, team.Losses, team.Ties))
		sb.WriteString(fmt.Sprintf("   Points For: %.2f\n", team.PointsFor))
		sb.WriteString(fmt.Sprintf("   Points Against: %.2f\n\n", team.PointsAgainst))
	}
	return sb.String()
}

func (s *FantasyService) GetLiveScores(ctx context.Context) (string, error) {
	board, err := s.Live(ctx)
	if err != nil {
		return "", errors.Wrap(err, "fetching live scores")
	}
	return FormatLive(board), nil
}

// FormatLive orders teams by live points, highest first.
func FormatLive(board models.LiveScoreboard) string {
	teams := append([]models.LiveTeamTotal(nil), board.Teams...)
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].TotalPointsLive > teams[j].TotalPointsLive
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📡 *Week %d Live Scores*\n\n", board.Week))
	if len(teams) == 0 {
		sb.WriteString("No live scoring yet.")
		return sb.String()
	}
	for _, t := range teams {
		sb.WriteString(fmt.Sprintf("*%s*: %.2f", esc(t.Name), t.TotalPointsLive))
		if t.TotalPointsLive != t.TotalPoints {
			sb.WriteString(fmt.Sprintf(" (official %.2f)", t.TotalPoints))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (s *FantasyService) GetTeamRoster(ctx context.Context, name string) (string, error) {
	side, week, err := s.Team(ctx, name, 0)
	if err != nil {
		return "", errors.Wrap(err, "fetching team roster")
	}
	return FormatRoster(side, week), nil
}

func FormatRoster(side models.TeamSide, week int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *%s's Week %d Roster*\n", esc(side.Name), week))
	sb.WriteString(fmt.Sprintf("Projected: %.2f\n\n", side.TotalProjectedPoints))

	write := func(bench bool) {
		for _, p := range side.Roster {
			if p.Bench != bench {
				continue
			}
			sb.WriteString(fmt.Sprintf("▫️ %s %s%s - %.1f pts\n", p.Position, esc(p.Name), injuryTag(p.Injury), p.ProjectedPoints))
		}
	}

	sb.WriteString("*Starting Lineup:*\n")
	write(false)
	sb.WriteString("\n*Bench:*\n")
	write(true)

	return sb.String()
}

func (s *FantasyService) GetSchedule(ctx context.Context, name string) (string, error) {
	team, err := s.ResolveTeam(ctx, name)
	if err != nil {
		return "", errors.Wrap(err, "resolving team")
	}
	matchups, err := s.Schedule(ctx, team.ID)
	if err != nil {
		return "", errors.Wrap(err, "fetching schedule")
	}
	return FormatSchedule(team, matchups), nil
}

func FormatSchedule(team models.TeamInfo, matchups []models.Matchup) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *%s Season*\n\n", esc(team.Name)))

	if len(matchups) == 0 {
		sb.WriteString("No matchups found.")
		return sb.String()
	}

	for _, m := range matchups {
		you, opp, _ := m.Side(team.ID)
		result := ""
		switch {
		case you.TotalPoints == 0 && opp.TotalPoints == 0:
		case you.TotalPoints > opp.TotalPoints:
			result = " W"
		case you.TotalPoints < opp.TotalPoints:
			result = " L"
		default:
			result = " T"
		}
		sb.WriteString(fmt.Sprintf("Week %d vs *%s*: %.2f - %.2f%s\n", m.Week, esc(opp.Name), you.TotalPoints, opp.TotalPoints, result))
	}
	return sb.String()
}
