package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("CHAT_ID", "42")
	t.Setenv("YEAR", "2025")
	t.Setenv("LEAGUE_ID", "1820127949")
	t.Setenv("SWID", "{swid}")
	t.Setenv("ESPN_S2", "s2")
}

func TestNewAppliesDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "2025", cfg.ESPNAPI.Year)
	assert.Equal(t, 10*time.Second, cfg.ESPNAPI.Timeout)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.False(t, cfg.LLM.Enabled())
	assert.Equal(t, 50.0, cfg.Coach.Risk)
	assert.Equal(t, 20, cfg.Coach.BenchSlotID)
	assert.Equal(t, 9, cfg.Coach.StarterCutoff)
	assert.Equal(t, "first_n", cfg.Coach.RosterPartition)
	assert.Equal(t, map[string]int{"QB": 1, "RB": 2, "WR": 2, "TE": 1, "K": 1, "D/ST": 1}, cfg.Coach.StarterCounts)
	assert.Equal(t, "0 9 * * 0", cfg.Schedule.CoachBriefCron)
	assert.Equal(t, "America/Chicago", cfg.Schedule.Timezone)
}

func TestNewRejectsBadTimezone(t *testing.T) {
	setRequired(t)
	t.Setenv("SCHEDULE_TZ", "Mars/Olympus")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCHEDULE_TZ")
}

func TestNewRejectsBadCron(t *testing.T) {
	setRequired(t)
	t.Setenv("COACH_BRIEF_CRON", "every sunday")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COACH_BRIEF_CRON")
}

func TestNewRejectsUnknownPartition(t *testing.T) {
	setRequired(t)
	t.Setenv("ROSTER_PARTITION", "random")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROSTER_PARTITION")
}

func TestNewAnalyticsDoesNotNeedTelegram(t *testing.T) {
	t.Setenv("YEAR", "2025")
	t.Setenv("LEAGUE_ID", "1")
	t.Setenv("SWID", "swid")
	t.Setenv("ESPN_S2", "s2")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("STARTER_COUNTS", "QB:2,RB:2")

	cfg, err := NewAnalytics()
	require.NoError(t, err)
	assert.True(t, cfg.LLM.Enabled())
	assert.Equal(t, map[string]int{"QB": 2, "RB": 2}, cfg.Coach.StarterCounts)
}
