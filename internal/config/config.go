package config

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Analytics
	TelegramBot TelegramBot
	Schedule    Schedule
	HTTP        HTTP
}

// Analytics is everything the coach pipeline needs, without a chat surface.
type Analytics struct {
	ESPNAPI ESPNAPI
	LLM     LLM
	Coach   Coach
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID int64  `envconfig:"CHAT_ID" required:"true"`
}

type ESPNAPI struct {
	Year     string        `envconfig:"YEAR" required:"true"`
	LeagueID string        `envconfig:"LEAGUE_ID" required:"true"`
	SWID     string        `envconfig:"SWID" required:"true"`
	ESPNS2   string        `envconfig:"ESPN_S2" required:"true"`
	Timeout  time.Duration `envconfig:"ESPN_TIMEOUT" default:"10s"`
}

// LLM configures the narrative summarizer. An empty APIKey disables it.
type LLM struct {
	APIKey  string        `envconfig:"OPENAI_API_KEY"`
	Model   string        `envconfig:"LLM_MODEL" default:"gpt-4o-mini"`
	BaseURL string        `envconfig:"LLM_BASE_URL"`
	Timeout time.Duration `envconfig:"LLM_TIMEOUT" default:"5s"`
}

func (l LLM) Enabled() bool {
	return l.APIKey != ""
}

type Coach struct {
	TeamID                int            `envconfig:"COACH_TEAM_ID"`
	Risk                  float64        `envconfig:"COACH_RISK" default:"50"`
	StarterCounts         map[string]int `envconfig:"STARTER_COUNTS" default:"QB:1,RB:2,WR:2,TE:1,K:1,D/ST:1"`
	BenchSlotID           int            `envconfig:"BENCH_SLOT_ID" default:"20"`
	RosterPartition       string         `envconfig:"ROSTER_PARTITION" default:"first_n"`
	StarterCutoff         int            `envconfig:"STARTER_CUTOFF" default:"9"`
	StreamerRankThreshold int            `envconfig:"STREAMER_RANK_THRESHOLD" default:"8"`
}

type Schedule struct {
	CoachBriefCron string `envconfig:"COACH_BRIEF_CRON" default:"0 9 * * 0"`
	Timezone       string `envconfig:"SCHEDULE_TZ" default:"America/Chicago"`
}

type HTTP struct {
	Addr string `envconfig:"HTTP_ADDR" default:":80"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func NewAnalytics() (*Analytics, error) {
	var a Analytics
	err := envconfig.Process("", &a)
	if err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Config) Validate() error {
	if _, err := cron.ParseStandard(c.Schedule.CoachBriefCron); err != nil {
		return errors.Wrapf(err, "invalid COACH_BRIEF_CRON %q", c.Schedule.CoachBriefCron)
	}
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return errors.Wrapf(err, "invalid SCHEDULE_TZ %q", c.Schedule.Timezone)
	}
	return c.Analytics.Validate()
}

func (a *Analytics) Validate() error {
	switch a.Coach.RosterPartition {
	case "first_n", "lineup_slot":
	default:
		return errors.Newf("unsupported ROSTER_PARTITION %q; expected first_n or lineup_slot", a.Coach.RosterPartition)
	}
	if a.Coach.StarterCutoff < 0 {
		return errors.Newf("STARTER_CUTOFF must not be negative, got %d", a.Coach.StarterCutoff)
	}
	for pos, n := range a.Coach.StarterCounts {
		if n < 0 {
			return errors.Newf("starter count for %s must not be negative, got %d", pos, n)
		}
	}
	return nil
}
