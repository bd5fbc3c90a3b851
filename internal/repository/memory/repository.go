package memory

import (
	"sync"
	"time"

	"github.com/omarshaarawi/coachbrief/internal/models"
)

const DefaultTTL = 24 * time.Hour

// Repository caches slow-moving league data between requests.
type Repository struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time

	metadata *models.LeagueMetadata
	teams    []models.TeamInfo
	teamsAt  time.Time
}

func NewRepository(ttl time.Duration) *Repository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Repository{ttl: ttl, now: time.Now}
}

func (r *Repository) SaveMetadata(metadata *models.LeagueMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metadata = metadata
}

// GetMetadata returns the cached metadata, or nil when missing or older
// than the TTL.
func (r *Repository) GetMetadata() *models.LeagueMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.metadata == nil || r.now().Sub(r.metadata.LastUpdated) > r.ttl {
		return nil
	}
	return r.metadata
}

func (r *Repository) SaveTeams(teams []models.TeamInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams = append([]models.TeamInfo(nil), teams...)
	r.teamsAt = r.now()
}

// GetTeams returns a copy of the cached team list, or nil when stale.
func (r *Repository) GetTeams() []models.TeamInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.teams == nil || r.now().Sub(r.teamsAt) > r.ttl {
		return nil
	}
	return append([]models.TeamInfo(nil), r.teams...)
}
