package espn

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/omarshaarawi/coachbrief/internal/models"
)

var (
	staticViews = []string{"mSettings", "mTeam", "mRoster", "mMatchup"}
	weeklyViews = []string{"mMatchup", "mScoreboard", "mMatchupScore"}
	seasonViews = []string{"mMatchupScore"}
	liveViews   = []string{"mLiveScoring", "mScoreboard"}
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) GetLeagueMetadata(ctx context.Context) (*models.LeagueMetadata, error) {
	var espnResponse models.LeagueResponse
	if err := a.client.Get(ctx, a.client.leagueEndpoint(), Request{Views: []string{"mSettings"}}, &espnResponse); err != nil {
		return nil, errors.Wrap(err, "fetching league metadata")
	}

	metadata := &models.LeagueMetadata{
		LeagueID:             espnResponse.ID,
		Name:                 espnResponse.Settings.Name,
		CurrentWeek:          espnResponse.Status.CurrentMatchupPeriod,
		CurrentScoringPeriod: espnResponse.ScoringPeriodID,
		SeasonID:             espnResponse.SeasonID,
		FirstWeek:            espnResponse.Status.FirstScoringPeriod,
		LastWeek:             espnResponse.Status.FinalScoringPeriod,
		IsActive:             espnResponse.Status.IsActive,
		LastUpdated:          time.Now(),
	}

	return metadata, nil
}

func (a *API) GetStandings(ctx context.Context) ([]models.TeamStanding, error) {
	var leagueResponse models.LeagueResponse
	if err := a.client.Get(ctx, a.client.leagueEndpoint(), Request{Views: []string{"mTeam"}}, &leagueResponse); err != nil {
		return nil, errors.Wrap(err, "fetching standings")
	}
	return RankStandings(leagueResponse.Teams), nil
}

// RankStandings orders teams by win percentage, then points for.
func RankStandings(teams []models.Team) []models.TeamStanding {
	standings := make([]models.TeamStanding, len(teams))
	for i, team := range teams {
		standings[i] = models.TeamStanding{
			TeamID:        team.ID,
			TeamName:      team.Name,
			Abbreviation:  team.Abbreviation,
			Wins:          team.Record.Overall.Wins,
			Losses:        team.Record.Overall.Losses,
			Ties:          team.Record.Overall.Ties,
			PointsFor:     team.Record.Overall.PointsFor,
			PointsAgainst: team.Record.Overall.PointsAgainst,
			WinPercentage: team.Record.Overall.Percentage,
			PlayoffSeed:   team.PlayoffSeed,
		}
		if standings[i].TeamName == "" {
			standings[i].TeamName = "Team " + strconv.Itoa(team.ID)
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].WinPercentage != standings[j].WinPercentage {
			return standings[i].WinPercentage > standings[j].WinPercentage
		}
		return standings[i].PointsFor > standings[j].PointsFor
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings
}

// GetStaticBundle returns settings, teams and rosters. A week > 0 asks the
// provider for that scoring period's stat lines.
func (a *API) GetStaticBundle(ctx context.Context, week int) (*models.LeagueResponse, error) {
	var bundle models.LeagueResponse
	if err := a.client.Get(ctx, a.client.leagueEndpoint(), Request{Views: staticViews, Params: periodParams(week)}, &bundle); err != nil {
		return nil, errors.Wrap(err, "fetching static bundle")
	}
	return &bundle, nil
}

// GetWeeklyBundle returns the schedule of one matchup period with player
// stats for scoringPeriod. Zero for either means the league's current one.
func (a *API) GetWeeklyBundle(ctx context.Context, matchupPeriod, scoringPeriod int) (*models.WeeklyBundle, error) {
	var bundle models.WeeklyBundle
	r := Request{Views: weeklyViews, Params: periodParams(scoringPeriod)}
	if matchupPeriod > 0 {
		r.Filter = matchupPeriodFilter(matchupPeriod)
	}
	if err := a.client.Get(ctx, a.client.leagueEndpoint(), r, &bundle); err != nil {
		return nil, errors.Wrap(err, "fetching weekly bundle")
	}
	return &bundle, nil
}

func (a *API) GetSeasonBundle(ctx context.Context) (*models.SeasonBundle, error) {
	var bundle models.SeasonBundle
	if err := a.client.Get(ctx, a.client.leagueEndpoint(), Request{Views: seasonViews}, &bundle); err != nil {
		return nil, errors.Wrap(err, "fetching season bundle")
	}
	return &bundle, nil
}

// GetLiveBundle returns live totals for matchupPeriod, or for whatever the
// provider sends when it is zero.
func (a *API) GetLiveBundle(ctx context.Context, matchupPeriod int) (*models.WeeklyBundle, error) {
	var bundle models.WeeklyBundle
	r := Request{Views: liveViews}
	if matchupPeriod > 0 {
		r.Filter = matchupPeriodFilter(matchupPeriod)
	}
	if err := a.client.Get(ctx, a.client.leagueEndpoint(), r, &bundle); err != nil {
		return nil, errors.Wrap(err, "fetching live scoring")
	}
	return &bundle, nil
}

func periodParams(week int) url.Values {
	if week <= 0 {
		return nil
	}
	return url.Values{"scoringPeriodId": []string{strconv.Itoa(week)}}
}

func matchupPeriodFilter(week int) map[string]any {
	return map[string]any{
		"schedule": map[string]any{
			"filterMatchupPeriodIds": map[string]any{
				"value": []int{week},
			},
		},
	}
}
