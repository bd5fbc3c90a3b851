package memory

import (
	"testing"
	"time"

	"github.com/omarshaarawi/coachbrief/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMetadataExpires(t *testing.T) {
	now := time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC)
	repo := NewRepository(time.Hour)
	repo.now = func() time.Time { return now }

	assert.Nil(t, repo.GetMetadata())

	repo.SaveMetadata(&models.LeagueMetadata{CurrentWeek: 5, LastUpdated: now})
	assert.Equal(t, 5, repo.GetMetadata().CurrentWeek)

	now = now.Add(61 * time.Minute)
	assert.Nil(t, repo.GetMetadata())
}

func TestTeamsAreCopied(t *testing.T) {
	now := time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC)
	repo := NewRepository(0)
	repo.now = func() time.Time { return now }

	teams := []models.TeamInfo{{ID: 1, Name: "Alpha"}}
	repo.SaveTeams(teams)
	teams[0].Name = "changed"

	got := repo.GetTeams()
	assert.Equal(t, "Alpha", got[0].Name)
	got[0].Name = "changed again"
	assert.Equal(t, "Alpha", repo.GetTeams()[0].Name)

	now = now.Add(DefaultTTL + time.Second)
	assert.Nil(t, repo.GetTeams())
}
