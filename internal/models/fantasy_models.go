package models

type Position string

const (
	PositionQB      Position = "QB"
	PositionRB      Position = "RB"
	PositionWR      Position = "WR"
	PositionTE      Position = "TE"
	PositionK       Position = "K"
	PositionDST     Position = "D/ST"
	PositionUnknown Position = "??"
)

// Positions lists the offensive labels in display order.
var Positions = []Position{PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDST}

// PlayerCard is a player in the context of one scoring period. Injury is
// the provider status, empty for healthy players.
type PlayerCard struct {
	ID                  int      `json:"id"`
	Name                string   `json:"name"`
	ProTeam             string   `json:"team"`
	Position            Position `json:"position"`
	ProjectedPoints     float64  `json:"projectedPoints"`
	ActualPoints        float64  `json:"actualPoints"`
	LiveProjectedPoints float64  `json:"liveProjectedPoints"`
	Bench               bool     `json:"bench"`
	Injury              string   `json:"injury,omitempty"`
}

// TeamSide is one side of a matchup. TotalProjectedPoints is always the
// sum of ProjectedPoints over the non-bench cards in Roster.
type TeamSide struct {
	TeamID                   int          `json:"teamId"`
	Name                     string       `json:"name"`
	TotalPoints              float64      `json:"totalPoints"`
	TotalProjectedPoints     float64      `json:"totalProjectedPoints"`
	TotalProjectedPointsLive *float64     `json:"totalProjectedPointsLive,omitempty"`
	Roster                   []PlayerCard `json:"roster"`
}

type Matchup struct {
	Week      int      `json:"week"`
	MatchupID *int     `json:"matchupId,omitempty"`
	Home      TeamSide `json:"home"`
	Away      TeamSide `json:"away"`
}

// Side returns the side for teamID and its opponent.
func (m Matchup) Side(teamID int) (you, opp TeamSide, ok bool) {
	switch teamID {
	case m.Home.TeamID:
		return m.Home, m.Away, true
	case m.Away.TeamID:
		return m.Away, m.Home, true
	}
	return TeamSide{}, TeamSide{}, false
}

type TeamInfo struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbrev"`
	Name         string `json:"name"`
}

// FantasyData is the normalized bundle for one scoring period. Matchups keep
// the provider's schedule order.
type FantasyData struct {
	SeasonID int        `json:"seasonId,omitempty"`
	Week     int        `json:"week"`
	Matchups []Matchup  `json:"matchups"`
	Teams    []TeamInfo `json:"teams"`
}

// TeamName returns the display name for id, or "" when unknown.
func (d *FantasyData) TeamName(id int) string {
	for _, t := range d.Teams {
		if t.ID == id {
			return t.Name
		}
	}
	return ""
}
