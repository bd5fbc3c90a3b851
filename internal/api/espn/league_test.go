package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/omarshaarawi/coachbrief/internal/config"
	"github.com/omarshaarawi/coachbrief/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.ESPNAPI{Year: "2025", LeagueID: "99", SWID: "{abc}", ESPNS2: "s2"}).WithBaseURL(srv.URL)
	return NewAPI(client)
}

func TestGetWeeklyBundleSendsViewsAndFilter(t *testing.T) {
	var gotViews []string
	var gotPeriod, gotFilter, gotCookie, gotPath string

	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotViews = r.URL.Query()["view"]
		gotPeriod = r.URL.Query().Get("scoringPeriodId")
		gotFilter = r.Header.Get("x-fantasy-filter")
		gotCookie = r.Header.Get("Cookie")
		_, _ = w.Write([]byte(`{"id":99,"seasonId":2025,"scoringPeriodId":3,"schedule":[{"id":7,"matchupPeriodId":3,"home":{"teamId":1,"totalPoints":12.5},"away":{"teamId":2}}]}`))
	})

	bundle, err := api.GetWeeklyBundle(context.Background(), 3, 3)
	require.NoError(t, err)

	assert.Equal(t, "/seasons/2025/segments/0/leagues/99", gotPath)
	assert.Equal(t, []string{"mMatchup", "mScoreboard", "mMatchupScore"}, gotViews)
	assert.Equal(t, "3", gotPeriod)
	assert.JSONEq(t, `{"schedule":{"filterMatchupPeriodIds":{"value":[3]}}}`, gotFilter)
	assert.Equal(t, "SWID={abc}; espn_s2=s2", gotCookie)

	require.Len(t, bundle.Schedule, 1)
	entry := bundle.Schedule[0]
	require.NotNil(t, entry.ID)
	assert.Equal(t, 7, *entry.ID)
	require.NotNil(t, entry.Home.TotalPoints)
	assert.Equal(t, 12.5, *entry.Home.TotalPoints)
	require.NotNil(t, entry.Away)
	assert.Nil(t, entry.Away.TotalPoints)
}

func TestGetWeeklyBundleKeepsMissingScheduleNil(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "{}", r.Header.Get("x-fantasy-filter"))
		_, _ = w.Write([]byte(`{"id":99,"scoringPeriodId":4}`))
	})

	bundle, err := api.GetWeeklyBundle(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Nil(t, bundle.Schedule)
	assert.Equal(t, 4, bundle.ScoringPeriodID)
}

func TestGetStaticBundleReturnsStatusError(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	})

	_, err := api.GetStaticBundle(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching static bundle")
	assert.Contains(t, err.Error(), "401")
}

func TestGetLeagueMetadata(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"mSettings"}, r.URL.Query()["view"])
		_, _ = w.Write([]byte(`{"id":99,"seasonId":2025,"scoringPeriodId":5,"settings":{"name":"Dads"},"status":{"currentMatchupPeriod":5,"firstScoringPeriod":1,"finalScoringPeriod":17,"isActive":true}}`))
	})

	meta, err := api.GetLeagueMetadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dads", meta.Name)
	assert.Equal(t, 5, meta.CurrentWeek)
	assert.Equal(t, 17, meta.LastWeek)
	assert.True(t, meta.IsActive)
}

func TestRankStandings(t *testing.T) {
	teams := []models.Team{
		{ID: 1, Name: "Alpha", Record: models.Record{Overall: models.RecordDetails{Wins: 2, Losses: 2, Percentage: 0.5, PointsFor: 400}}},
		{ID: 2, Record: models.Record{Overall: models.RecordDetails{Wins: 3, Losses: 1, Percentage: 0.75, PointsFor: 380}}},
		{ID: 3, Name: "Gamma", Record: models.Record{Overall: models.RecordDetails{Wins: 2, Losses: 2, Percentage: 0.5, PointsFor: 410}}},
	}

	standings := RankStandings(teams)
	require.Len(t, standings, 3)
	assert.Equal(t, "Team 2", standings[0].TeamName)
	assert.Equal(t, "Gamma", standings[1].TeamName)
	assert.Equal(t, "Alpha", standings[2].TeamName)
	for i, s := range standings {
		assert.Equal(t, i+1, s.Rank)
	}
}

func TestGetSeasonAndLiveBundleViews(t *testing.T) {
	var gotViews [][]string
	var gotFilters []string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotViews = append(gotViews, r.URL.Query()["view"])
		gotFilters = append(gotFilters, r.Header.Get("x-fantasy-filter"))
		assert.Empty(t, r.URL.Query().Get("scoringPeriodId"))
		_, _ = w.Write([]byte(`{"id":99,"seasonId":2025,"scoringPeriodId":6,"schedule":[{"matchupPeriodId":1,"home":{"teamId":1,"totalPoints":101,"totalPointsLive":104.5},"away":{"teamId":2,"totalPoints":99}}]}`))
	})

	season, err := api.GetSeasonBundle(context.Background())
	require.NoError(t, err)
	require.Len(t, season.Schedule, 1)
	assert.Equal(t, 2025, season.SeasonID)

	live, err := api.GetLiveBundle(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, live.Schedule, 1)
	require.NotNil(t, live.Schedule[0].Home.TotalPointsLive)
	assert.Equal(t, 104.5, *live.Schedule[0].Home.TotalPointsLive)

	assert.Equal(t, [][]string{{"mMatchupScore"}, {"mLiveScoring", "mScoreboard"}}, gotViews)
	require.Len(t, gotFilters, 2)
	assert.Equal(t, "{}", gotFilters[0])
	assert.JSONEq(t, `{"schedule":{"filterMatchupPeriodIds":{"value":[6]}}}`, gotFilters[1])
}
