package models

// LeagueResponse is the static/season-level bundle (mSettings, mTeam, mRoster, mMatchup).
type LeagueResponse struct {
	ID              int      `json:"id"`
	ScoringPeriodID int      `json:"scoringPeriodId"`
	SeasonID        int      `json:"seasonId"`
	SegmentID       int      `json:"segmentId"`
	Status          Status   `json:"status"`
	Teams           []Team   `json:"teams"`
	Settings        Settings `json:"settings"`
}

type Settings struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type Status struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	FinalScoringPeriod   int  `json:"finalScoringPeriod"`
	FirstScoringPeriod   int  `json:"firstScoringPeriod"`
	LatestScoringPeriod  int  `json:"latestScoringPeriod"`
	IsActive             bool `json:"isActive"`
}

type Team struct {
	ID           int     `json:"id"`
	Abbreviation string  `json:"abbrev"`
	Location     string  `json:"location"`
	Nickname     string  `json:"nickname"`
	Name         string  `json:"name"`
	PlayoffSeed  int     `json:"playoffSeed"`
	Points       float64 `json:"points"`
	Roster       *Roster `json:"roster,omitempty"`
	Record       Record  `json:"record"`
}

type Roster struct {
	Entries []RosterEntry `json:"entries"`
}

type Record struct {
	Overall RecordDetails `json:"overall"`
}

type RecordDetails struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	Percentage    float64 `json:"percentage"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

// WeeklyBundle is the mMatchup/mScoreboard/mMatchupScore response. A nil
// Schedule means the field was missing from the payload.
type WeeklyBundle struct {
	ID              int             `json:"id"`
	SeasonID        int             `json:"seasonId"`
	ScoringPeriodID int             `json:"scoringPeriodId"`
	Schedule        []ScheduleEntry `json:"schedule"`
}

// SeasonBundle is the mMatchupScore response covering every matchup period.
type SeasonBundle struct {
	ID              int             `json:"id"`
	SeasonID        int             `json:"seasonId"`
	ScoringPeriodID int             `json:"scoringPeriodId"`
	Status          Status          `json:"status"`
	Schedule        []ScheduleEntry `json:"schedule"`
}

type ScheduleEntry struct {
	ID              *int          `json:"id,omitempty"`
	MatchupID       *int          `json:"matchupId,omitempty"`
	MatchupPeriodID *int          `json:"matchupPeriodId,omitempty"`
	Home            ScheduleSide  `json:"home"`
	Away            *ScheduleSide `json:"away,omitempty"`
	Winner          string        `json:"winner"`
}

type ScheduleSide struct {
	TeamID                        int              `json:"teamId"`
	TotalPoints                   *float64         `json:"totalPoints,omitempty"`
	TotalPointsLive               *float64         `json:"totalPointsLive,omitempty"`
	TotalProjectedPointsLive      *float64         `json:"totalProjectedPointsLive,omitempty"`
	RosterForCurrentScoringPeriod *RosterForPeriod `json:"rosterForCurrentScoringPeriod,omitempty"`
}

type RosterForPeriod struct {
	AppliedStatTotal float64       `json:"appliedStatTotal"`
	Entries          []RosterEntry `json:"entries"`
}

type RosterEntry struct {
	PlayerPoolEntry PlayerPoolEntry `json:"playerPoolEntry"`
	LineupSlotID    int             `json:"lineupSlotId"`
	InjuryStatus    string          `json:"injuryStatus"`
}

type PlayerPoolEntry struct {
	ID               int      `json:"id"`
	OnTeamID         int      `json:"onTeamId"`
	Player           Player   `json:"player"`
	AppliedStatTotal *float64 `json:"appliedStatTotal,omitempty"`
}

type Player struct {
	ID                  int       `json:"id"`
	FullName            string    `json:"fullName"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	DefaultPositionID   int       `json:"defaultPositionId"`
	ProTeamID           int       `json:"proTeamId"`
	ProTeamAbbreviation string    `json:"proTeamAbbreviation"`
	Ownership           Ownership `json:"ownership"`
	Stats               []Stat    `json:"stats"`
	InjuryStatus        string    `json:"injuryStatus"`
}

type Ownership struct {
	PercentOwned float64 `json:"percentOwned"`
}

// Stat is one stat line. StatSourceID 0 is observed, 1 is forecast.
type Stat struct {
	SeasonID        int                `json:"seasonId"`
	ScoringPeriodID int                `json:"scoringPeriodId"`
	StatSourceID    int                `json:"statSourceId"`
	StatSplitTypeID int                `json:"statSplitTypeId"`
	AppliedTotal    *float64           `json:"appliedTotal,omitempty"`
	AppliedStats    map[string]float64 `json:"appliedStats,omitempty"`
	Stats           map[string]float64 `json:"stats,omitempty"`
}
