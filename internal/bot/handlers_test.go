package bot

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
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

func (m *mockReports) GetDvp(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockReports) GetStandings(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockReports) GetTeamRoster(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *mockReports) GetSchedule(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func command(text string) tgbotapi.Update {
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: 42},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}}
}

func TestParseCoachArgs(t *testing.T) {
	tests := []struct {
		args string
		team string
		risk *float64
		live bool
	}{
		{"", "", nil, false},
		{"Gridiron Gang 70", "Gridiron Gang", ptr(70.0), false},
		{"35.5 LIVE", "", ptr(35.5), true},
		{"live 35.5", "", ptr(35.5), true},
		{"Team 7", "Team 7", nil, false},
		{"Team 7 live", "Team 7", nil, true},
		{"Team 7 80 live", "Team 7", ptr(80.0), true},
		{"Team 7 live 80", "Team 7", ptr(80.0), true},
		{"49ers Faithful", "49ers Faithful", nil, false},
		{"3 Headed Monster", "3 Headed Monster", nil, false},
		{"Inf", "Inf", nil, false},
		{"Rivals NaN", "Rivals NaN", nil, false},
		{"Rivals 60 70", "Rivals 60", ptr(70.0), false},
	}

	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			req := parseCoachArgs(tt.args)
			assert.Equal(t, tt.team, req.TeamName)
			assert.Equal(t, tt.risk, req.Risk)
			assert.Equal(t, tt.live, req.Live)
		})
	}
}

func TestHandleCoachCommand(t *testing.T) {
	ctx := context.Background()
	reports := new(mockReports)
	risk := 80.0
	reports.On("GetCoachReport", ctx, service.CoachRequest{TeamName: "Rivals", Risk: &risk}).Return("brief text", nil)

	msg := NewHandler(reports).HandleCommand(ctx, command("/coach Rivals 80"))

	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "brief text", msg.Text)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
	reports.AssertExpectations(t)
}

func TestHandleCommandError(t *testing.T) {
	ctx := context.Background()
	reports := new(mockReports)
	reports.On("GetStandings", ctx).Return("", errors.New("espn down"))

	msg := NewHandler(reports).HandleCommand(ctx, command("/standings"))

	assert.Equal(t, "Error fetching standings: espn down", msg.Text)
	assert.Empty(t, msg.ParseMode)
}

func TestHandleCommandRouting(t *testing.T) {
	ctx := context.Background()
	reports := new(mockReports)
	reports.On("GetLiveScores", ctx).Return("live", nil)
	reports.On("GetMatchups", ctx).Return("matchups", nil)
	reports.On("GetDvp", ctx).Return("dvp", nil)
	reports.On("GetTeamRoster", ctx, "Alpha").Return("roster", nil)
	reports.On("GetSchedule", ctx, "Alpha").Return("schedule", nil)
	h := NewHandler(reports)

	tests := []struct {
		text string
		want string
	}{
		{"/live", "live"},
		{"/matchups", "matchups"},
		{"/dvp", "dvp"},
		{"/team Alpha", "roster"},
		{"/schedule Alpha", "schedule"},
		{"/team", "Please provide a team name. Usage: /team <team name>"},
		{"/schedule", "Please provide a team name. Usage: /schedule <team name>"},
		{"/help", helpText},
		{"/whohas", "Unknown command. Use /help to see available commands."},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, h.HandleCommand(ctx, command(tt.text)).Text)
		})
	}
	reports.AssertExpectations(t)
}
