package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/coachbrief/internal/api/fantasy"
	"github.com/omarshaarawi/coachbrief/internal/coach"
	"github.com/omarshaarawi/coachbrief/internal/config"
	"github.com/omarshaarawi/coachbrief/internal/dvp"
	"github.com/omarshaarawi/coachbrief/internal/models"
	"github.com/omarshaarawi/coachbrief/internal/normalize"
	"github.com/omarshaarawi/coachbrief/internal/repository/memory"
	"github.com/omarshaarawi/coachbrief/internal/summarizer"
)

var ErrTeamNotFound = errors.New("team not found")

const teamMatchThreshold = 0.6

// LeagueData is the upstream league source.
type LeagueData interface {
	GetBundles(ctx context.Context, period fantasy.Period) (*fantasy.Bundles, error)
	GetLeagueMetadata(ctx context.Context) (*models.LeagueMetadata, error)
	GetStandings(ctx context.Context) ([]models.TeamStanding, error)
	GetLiveBundle(ctx context.Context, matchupPeriod int) (*models.WeeklyBundle, error)
	GetSeasonBundle(ctx context.Context) (*models.SeasonBundle, error)
}

// Summarizer turns a brief into a narrative. It is optional.
type Summarizer interface {
	Summarize(ctx context.Context, brief models.CoachBrief) (*models.CoachNarrative, error)
}

type FantasyService struct {
	api        LeagueData
	repo       *memory.Repository
	summarizer Summarizer

	normalizer *normalize.Normalizer
	ranker     *dvp.Ranker
	builder    *coach.Builder

	defaultTeamID int
	defaultRisk   float64
}

// NewFantasyService wires the analytics pipeline from cfg. narrator may be
// nil, in which case reports carry no narrative.
func NewFantasyService(api LeagueData, repo *memory.Repository, narrator Summarizer, cfg config.Analytics) *FantasyService {
	season, _ := strconv.Atoi(cfg.ESPNAPI.Year)

	return &FantasyService{
		api:        api,
		repo:       repo,
		summarizer: narrator,
		normalizer: normalize.New(normalize.Options{
			SeasonID:    season,
			BenchSlotID: cfg.Coach.BenchSlotID,
		}),
		ranker: dvp.NewRanker(starterCounts(cfg.Coach.StarterCounts)),
		builder: coach.NewBuilder(coach.Options{
			Partition:             coach.PartitionByName(cfg.Coach.RosterPartition, cfg.Coach.StarterCutoff),
			StreamerRankThreshold: cfg.Coach.StreamerRankThreshold,
		}),
		defaultTeamID: cfg.Coach.TeamID,
		defaultRisk:   cfg.Coach.Risk,
	}
}

func starterCounts(raw map[string]int) map[models.Position]int {
	if len(raw) == 0 {
		return nil
	}
	counts := make(map[models.Position]int, len(raw))
	for label, n := range raw {
		pos, ok := normalize.ParsePosition(strings.ToUpper(strings.TrimSpace(label)))
		if !ok {
			slog.Warn("Ignoring unknown starter position", "position", label)
			continue
		}
		counts[pos] = n
	}
	return counts
}

func (s *FantasyService) getLeagueMetadata(ctx context.Context) (*models.LeagueMetadata, error) {
	if metadata := s.repo.GetMetadata(); metadata != nil {
		return metadata, nil
	}

	metadata, err := s.api.GetLeagueMetadata(ctx)
	if err != nil {
		return nil, err
	}
	s.repo.SaveMetadata(metadata)
	return metadata, nil
}

// CurrentPeriod returns the league's current matchup and scoring periods.
// They differ once playoff matchups span two scoring periods.
func (s *FantasyService) CurrentPeriod(ctx context.Context) (fantasy.Period, error) {
	metadata, err := s.getLeagueMetadata(ctx)
	if err != nil {
		return fantasy.Period{}, errors.Wrap(err, "fetching current week")
	}
	slog.Info("Current week", "matchupPeriod", metadata.CurrentWeek, "scoringPeriod", metadata.CurrentScoringPeriod)

	period := fantasy.Period{Matchup: metadata.CurrentWeek, Scoring: metadata.CurrentScoringPeriod}
	if period.Scoring == 0 {
		period.Scoring = period.Matchup
	}
	return period, nil
}

// period resolves a week to fetch. A requested week is a matchup period
// whose scoring period is assumed to share the number. Zero means the
// current period.
func (s *FantasyService) period(ctx context.Context, week int) (fantasy.Period, error) {
	if week > 0 {
		return fantasy.Period{Matchup: week, Scoring: week}, nil
	}
	return s.CurrentPeriod(ctx)
}

// Week fetches and normalizes one week. Zero means the current week. The
// returned data is keyed by matchup period, like its matchups.
func (s *FantasyService) Week(ctx context.Context, week int) (*models.FantasyData, error) {
	period, err := s.period(ctx, week)
	if err != nil {
		return nil, err
	}

	bundles, err := s.api.GetBundles(ctx, period)
	if err != nil {
		return nil, err
	}

	data, err := s.normalizer.Weekly(bundles.Weekly, bundles.Static.Teams)
	if err != nil {
		return nil, errors.Wrapf(err, "normalizing week %d", period.Matchup)
	}
	if period.Matchup > 0 {
		data.Week = period.Matchup
	}

	s.repo.SaveTeams(data.Teams)
	return data, nil
}

// DvpRanks returns the implied defense-vs-position ranks for week along
// with the data they were computed from.
func (s *FantasyService) DvpRanks(ctx context.Context, week int) (models.DvpRanks, *models.FantasyData, error) {
	data, err := s.Week(ctx, week)
	if err != nil {
		return nil, nil, err
	}
	return s.ranker.BuildImplied(data, data.Week), data, nil
}

// CoachRequest selects a team by id or by name. Zero values fall back to
// the configured team, the configured risk and the current week.
type CoachRequest struct {
	Week     int
	TeamID   int
	TeamName string
	Risk     *float64
	Live     bool
}

// CoachReport builds the deterministic brief and, when a summarizer is
// configured, attaches its narrative. A narrative failure never fails the
// report.
func (s *FantasyService) CoachReport(ctx context.Context, req CoachRequest) (*models.CoachReport, error) {
	data, err := s.Week(ctx, req.Week)
	if err != nil {
		return nil, err
	}

	teamID := req.TeamID
	if req.TeamName != "" {
		team, err := MatchTeam(data.Teams, req.TeamName)
		if err != nil {
			return nil, err
		}
		teamID = team.ID
	}
	if teamID == 0 {
		teamID = s.defaultTeamID
	}

	risk := s.defaultRisk
	if req.Risk != nil {
		risk = *req.Risk
	}

	ranks := s.ranker.BuildImplied(data, data.Week)
	brief := s.builder.Build(data, coach.Request{
		Week:          data.Week,
		TeamID:        teamID,
		Risk:          risk,
		Live:          req.Live,
		OpponentRanks: dvp.OpponentRanks(ranks, data, data.Week, teamID),
	})

	report := &models.CoachReport{Brief: brief}
	if s.summarizer == nil || !hasMatchup(brief) {
		return report, nil
	}

	narrative, err := s.summarizer.Summarize(ctx, brief)
	if err != nil {
		slog.Warn("Coach narrative unavailable", "team", brief.TeamName, "week", brief.Week, "error", err)
		report.NarrativeError = narrativeError(err)
		return report, nil
	}
	report.Narrative = narrative
	return report, nil
}

func hasMatchup(brief models.CoachBrief) bool {
	return len(brief.SummaryBullets) != 1 || brief.SummaryBullets[0] != coach.NoMatchupBullet
}

func narrativeError(err error) string {
	switch {
	case errors.Is(err, summarizer.ErrUpstreamTimeout):
		return "Coach narrative timed out."
	case errors.Is(err, summarizer.ErrMalformedNarrative):
		return "Coach narrative was malformed."
	default:
		return "Coach narrative unavailable."
	}
}

// Team returns the named team's side in week.
func (s *FantasyService) Team(ctx context.Context, name string, week int) (models.TeamSide, int, error) {
	data, err := s.Week(ctx, week)
	if err != nil {
		return models.TeamSide{}, 0, err
	}

	team, err := MatchTeam(data.Teams, name)
	if err != nil {
		return models.TeamSide{}, 0, err
	}

	for _, m := range data.Matchups {
		if m.Week != data.Week {
			continue
		}
		if side, _, ok := m.Side(team.ID); ok {
			return side, data.Week, nil
		}
	}
	return models.TeamSide{TeamID: team.ID, Name: team.Name, Roster: []models.PlayerCard{}}, data.Week, nil
}

// Live returns the live scoreboard. Team names come from the cache and are
// refreshed from the current week when stale.
func (s *FantasyService) Live(ctx context.Context) (models.LiveScoreboard, error) {
	period, err := s.period(ctx, 0)
	if err != nil {
		return models.LiveScoreboard{}, err
	}

	raw, err := s.api.GetLiveBundle(ctx, period.Matchup)
	if err != nil {
		return models.LiveScoreboard{}, err
	}

	teams, err := s.teams(ctx)
	if err != nil {
		return models.LiveScoreboard{}, err
	}

	board := s.normalizer.Live(raw, teams)
	if period.Matchup > 0 {
		board.Week = period.Matchup
	}
	return board, nil
}

// Schedule returns every matchup of the season involving teamID, oldest
// first.
func (s *FantasyService) Schedule(ctx context.Context, teamID int) ([]models.Matchup, error) {
	raw, err := s.api.GetSeasonBundle(ctx)
	if err != nil {
		return nil, err
	}

	teams, err := s.teams(ctx)
	if err != nil {
		return nil, err
	}

	season, err := s.normalizer.Season(raw, teams)
	if err != nil {
		return nil, errors.Wrap(err, "normalizing season")
	}

	var out []models.Matchup
	for _, m := range season.Matchups {
		if _, _, ok := m.Side(teamID); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *FantasyService) Standings(ctx context.Context) ([]models.TeamStanding, error) {
	return s.api.GetStandings(ctx)
}

// ResolveTeam finds a team by fuzzy name.
func (s *FantasyService) ResolveTeam(ctx context.Context, name string) (models.TeamInfo, error) {
	infos := s.repo.GetTeams()
	if infos == nil {
		data, err := s.Week(ctx, 0)
		if err != nil {
			return models.TeamInfo{}, err
		}
		infos = data.Teams
	}
	return MatchTeam(infos, name)
}

func (s *FantasyService) teams(ctx context.Context) ([]models.Team, error) {
	infos := s.repo.GetTeams()
	if infos == nil {
		data, err := s.Week(ctx, 0)
		if err != nil {
			return nil, err
		}
		infos = data.Teams
	}

	teams := make([]models.Team, 0, len(infos))
	for _, t := range infos {
		teams = append(teams, models.Team{ID: t.ID, Abbreviation: t.Abbreviation, Name: t.Name})
	}
	return teams, nil
}

// MatchTeam picks the team whose name or abbreviation is closest to name
// by Levenshtein similarity, requiring more than 0.6.
func MatchTeam(teams []models.TeamInfo, name string) (models.TeamInfo, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return models.TeamInfo{}, errors.Wrap(ErrTeamNotFound, "empty team name")
	}

	var best models.TeamInfo
	bestScore := teamMatchThreshold
	found := false

	for _, t := range teams {
		for _, candidate := range []string{t.Name, t.Abbreviation} {
			if candidate == "" {
				continue
			}
			candidate = strings.ToLower(candidate)
			distance := fuzzy.LevenshteinDistance(query, candidate)
			similarity := 1 - float64(distance)/float64(max(len(query), len(candidate)))

			if similarity > bestScore {
				best, bestScore, found = t, similarity, true
			}
		}
	}

	if !found {
		return models.TeamInfo{}, errors.Wrapf(ErrTeamNotFound, "%q", name)
	}
	return best, nil
}
