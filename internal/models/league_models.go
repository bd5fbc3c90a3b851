package models

import "time"

type LeagueMetadata struct {
	LeagueID             int
	Name                 string
	CurrentWeek          int
	CurrentScoringPeriod int
	SeasonID             int
	FirstWeek            int
	LastWeek             int
	IsActive             bool
	LastUpdated          time.Time
}

type TeamStanding struct {
	Rank          int
	TeamID        int
	TeamName      string
	Abbreviation  string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
	WinPercentage float64
	PlayoffSeed   int
}

type LiveTeamTotal struct {
	TeamID          int     `json:"teamId"`
	Name            string  `json:"name"`
	TotalPoints     float64 `json:"totalPoints"`
	TotalPointsLive float64 `json:"totalPointsLive"`
}

type LiveScoreboard struct {
	Week  int             `json:"week"`
	Teams []LiveTeamTotal `json:"teams"`
}
