package fantasy

import (
	"context"

	"github.com/omarshaarawi/coachbrief/internal/api/espn"
	"github.com/omarshaarawi/coachbrief/internal/models"
	"github.com/sourcegraph/conc/pool"
)

type API struct {
	espnAPI *espn.API
}

func NewAPI(espnAPI *espn.API) *API {
	return &API{espnAPI: espnAPI}
}

// Bundles holds the two payloads normalization needs.
type Bundles struct {
	Static *models.LeagueResponse
	Weekly *models.WeeklyBundle
}

// Period names a fantasy week. Matchup keys the schedule; Scoring selects
// player stats. They differ when a playoff matchup spans several scoring
// periods.
type Period struct {
	Matchup int
	Scoring int
}

// GetBundles fetches the static and weekly bundles concurrently. The first
// failure cancels the other request and is returned as is.
func (a *API) GetBundles(ctx context.Context, period Period) (*Bundles, error) {
	var out Bundles

	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		static, err := a.espnAPI.GetStaticBundle(ctx, period.Scoring)
		if err != nil {
			return err
		}
		out.Static = static
		return nil
	})
	p.Go(func(ctx context.Context) error {
		weekly, err := a.espnAPI.GetWeeklyBundle(ctx, period.Matchup, period.Scoring)
		if err != nil {
			return err
		}
		out.Weekly = weekly
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return &out, nil
}

func (a *API) GetLeagueMetadata(ctx context.Context) (*models.LeagueMetadata, error) {
	return a.espnAPI.GetLeagueMetadata(ctx)
}

func (a *API) GetStandings(ctx context.Context) ([]models.TeamStanding, error) {
	return a.espnAPI.GetStandings(ctx)
}

func (a *API) GetLiveBundle(ctx context.Context, matchupPeriod int) (*models.WeeklyBundle, error) {
	return a.espnAPI.GetLiveBundle(ctx, matchupPeriod)
}

func (a *API) GetSeasonBundle(ctx context.Context) (*models.SeasonBundle, error) {
	return a.espnAPI.GetSeasonBundle(ctx)
}
