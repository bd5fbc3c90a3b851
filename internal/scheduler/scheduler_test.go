package scheduler

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/omarshaarawi/coachbrief/internal/config"
	"github.com/omarshaarawi/coachbrief/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReports struct {
	mock.Mock
}

func (m *mockReports) GetCoachReport(ctx context.Context, req service.CoachRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockReports) GetLiveScores(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockReports) GetMatchups(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockReports) GetStandings(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

var testSchedule = config.Schedule{CoachBriefCron: "0 9 * * 0", Timezone: "America/Chicago"}

func TestStartRegistersJobs(t *testing.T) {
	tests := []struct {
		name   string
		teamID int
		want   int
	}{
		{"with coach team", 3, 4},
		{"without coach team", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScheduler(new(mockReports), func(string) error { return nil }, testSchedule, tt.teamID)
			require.NoError(t, err)
			require.NoError(t, s.Start(context.Background()))
			defer func() { assert.NoError(t, s.Stop()) }()

			assert.Len(t, s.s.Jobs(), tt.want)
		})
	}
}

func TestNewSchedulerRejectsBadTimezone(t *testing.T) {
	_, err := NewScheduler(new(mockReports), nil, config.Schedule{Timezone: "Nowhere/City"}, 0)
	assert.Error(t, err)
}

func TestPostCoachBrief(t *testing.T) {
	reports := new(mockReports)
	reports.On("GetCoachReport", mock.Anything, service.CoachRequest{TeamID: 3}).Return("brief", nil)

	var sent []string
	s, err := NewScheduler(reports, func(text string) error {
		sent = append(sent, text)
		return nil
	}, testSchedule, 3)
	require.NoError(t, err)

	s.post("coach brief", s.coachBrief)

	assert.Equal(t, []string{"brief"}, sent)
	reports.AssertExpectations(t)
}

func TestPostSkipsSendOnError(t *testing.T) {
	reports := new(mockReports)
	reports.On("GetStandings", mock.Anything).Return("", errors.New("espn down"))

	sent := 0
	s, err := NewScheduler(reports, func(string) error {
		sent++
		return nil
	}, testSchedule, 0)
	require.NoError(t, err)

	s.post("standings", reports.GetStandings)

	assert.Zero(t, sent)
}
