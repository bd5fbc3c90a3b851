package bot

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/coachbrief/internal/service"
)

// Reports is what the bot needs from the fantasy service.
type Reports interface {
	GetCoachReport(ctx context.Context, req service.CoachRequest) (string, error)
	GetLiveScores(ctx context.Context) (string, error)
	GetMatchups(ctx context.Context) (string, error)
	GetDvp(ctx context.Context) (string, error)
	GetStandings(ctx context.Context) (string, error)
	GetTeamRoster(ctx context.Context, name string) (string, error)
	GetSchedule(ctx context.Context, name string) (string, error)
}

const helpText = "Available commands:\n" +
	"/coach [team] [risk] [live] - Coach brief, risk 0-100\n" +
	"/live - Live scoreboard\n" +
	"/matchups - Matchups for this week\n" +
	"/dvp - Defense vs position ranks\n" +
	"/standings - League standings\n" +
	"/team <team> - Team roster with projections\n" +
	"/schedule <team> - Team results this season"

type Handler struct {
	reports Reports
}

func NewHandler(reports Reports) *Handler {
	return &Handler{reports: reports}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = tgbotapi.ModeMarkdown

	switch command {
	case "start":
		msg.Text = "Welcome to CoachBot! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "coach":
		h.reply(&msg, "building coach brief", func() (string, error) {
			return h.reports.GetCoachReport(ctx, parseCoachArgs(args))
		})
	case "live", "scores":
		h.reply(&msg, "fetching live scores", func() (string, error) { return h.reports.GetLiveScores(ctx) })
	case "matchups", "matchup":
		h.reply(&msg, "fetching matchups", func() (string, error) { return h.reports.GetMatchups(ctx) })
	case "dvp":
		h.reply(&msg, "building defense ranks", func() (string, error) { return h.reports.GetDvp(ctx) })
	case "standings":
		h.reply(&msg, "fetching standings", func() (string, error) { return h.reports.GetStandings(ctx) })
	case "team":
		if args == "" {
			msg.Text = "Please provide a team name. Usage: /team <team name>"
			break
		}
		h.reply(&msg, "getting team roster", func() (string, error) { return h.reports.GetTeamRoster(ctx, args) })
	case "schedule":
		if args == "" {
			msg.Text = "Please provide a team name. Usage: /schedule <team name>"
			break
		}
		h.reply(&msg, "getting schedule", func() (string, error) { return h.reports.GetSchedule(ctx, args) })
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) reply(msg *tgbotapi.MessageConfig, action string, fn func() (string, error)) {
	text, err := fn()
	if err != nil {
		slog.Error("Command failed", "action", action, "error", err)
		msg.ParseMode = ""
		msg.Text = fmt.Sprintf("Error %s: %v", action, err)
		return
	}
	msg.Text = text
}

// parseCoachArgs reads "[team words...] [risk] [live]". Risk and live are
// only taken from the last two tokens, in either order. A number right after
// the word "Team" stays in the name, since unnamed teams are shown as
// "Team <id>".
func parseCoachArgs(args string) service.CoachRequest {
	var req service.CoachRequest
	tokens := strings.Fields(args)

	for range 2 {
		n := len(tokens)
		if n == 0 {
			break
		}
		last := tokens[n-1]

		if !req.Live && strings.EqualFold(last, "live") {
			req.Live = true
			tokens = tokens[:n-1]
			continue
		}
		if req.Risk == nil && !(n > 1 && strings.EqualFold(tokens[n-2], "team")) {
			if risk, ok := parseRisk(last); ok {
				req.Risk = &risk
				tokens = tokens[:n-1]
				continue
			}
		}
		break
	}

	req.TeamName = strings.Join(tokens, " ")
	return req
}

func parseRisk(tok string) (float64, bool) {
	risk, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(risk) || math.IsInf(risk, 0) {
		return 0, false
	}
	return risk, true
}
