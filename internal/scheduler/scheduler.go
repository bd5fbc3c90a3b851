package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/coachbrief/internal/config"
	"github.com/omarshaarawi/coachbrief/internal/service"
)

// Reports is the subset of the fantasy service the scheduled posts use.
type Reports interface {
	GetCoachReport(ctx context.Context, req service.CoachRequest) (string, error)
	GetLiveScores(ctx context.Context) (string, error)
	GetMatchups(ctx context.Context) (string, error)
	GetStandings(ctx context.Context) (string, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	reports     Reports
	sendMessage func(string) error
	cfg         config.Schedule
	coachTeamID int
	ctx         context.Context
}

// NewScheduler posts weekly reports through sendMessage. The coach brief
// job is registered only when coachTeamID is set.
func NewScheduler(reports Reports, sendMessage func(string) error, cfg config.Schedule, coachTeamID int) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "loading location %q", cfg.Timezone)
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(location))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scheduler")
	}

	return &Scheduler{
		s:           s,
		reports:     reports,
		sendMessage: sendMessage,
		cfg:         cfg,
		coachTeamID: coachTeamID,
		ctx:         context.Background(),
	}, nil
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx = ctx

	if s.coachTeamID != 0 {
		if _, err := s.s.NewJob(
			gocron.CronJob(s.cfg.CoachBriefCron, false),
			gocron.NewTask(s.post, "coach brief", s.coachBrief),
		); err != nil {
			return errors.Wrap(err, "failed to create coach brief job")
		}
	} else {
		slog.Warn("COACH_TEAM_ID not set; scheduled coach brief disabled")
	}

	// Matchups - Thursday 18:30
	if _, err := s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Thursday), gocron.NewAtTimes(gocron.NewAtTime(18, 30, 0))),
		gocron.NewTask(s.post, "matchups", s.reports.GetMatchups),
	); err != nil {
		return errors.Wrap(err, "failed to create matchups job")
	}

	// Standings - Wednesday 7:30
	if _, err := s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Wednesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.post, "standings", s.reports.GetStandings),
	); err != nil {
		return errors.Wrap(err, "failed to create standings job")
	}

	// Live scores - Sunday 15:00 and 19:00
	if _, err := s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Sunday), gocron.NewAtTimes(gocron.NewAtTime(15, 0, 0), gocron.NewAtTime(19, 0, 0))),
		gocron.NewTask(s.post, "live scores", s.reports.GetLiveScores),
	); err != nil {
		return errors.Wrap(err, "failed to create live scores job")
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) coachBrief(ctx context.Context) (string, error) {
	return s.reports.GetCoachReport(ctx, service.CoachRequest{TeamID: s.coachTeamID})
}

func (s *Scheduler) post(name string, fetch func(context.Context) (string, error)) {
	text, err := fetch(s.ctx)
	if err != nil {
		slog.Error("Scheduled report failed", "report", name, "error", err)
		return
	}
	if err := s.sendMessage(text); err != nil {
		slog.Error("Failed to send scheduled report", "report", name, "error", err)
	}
}
