package models

// DvpTable maps team id -> position -> projected points allowed to opposing starters.
type DvpTable map[int]map[Position]float64

// DvpRanks maps team id -> position -> rank, 1 being the toughest defense.
// A missing entry means no opinion.
type DvpRanks map[int]map[Position]int

// PositionRanks is one opponent's defensive rank per position.
type PositionRanks map[Position]int

type PlayerProjection struct {
	Name         string  `json:"name"`
	Projected    float64 `json:"proj"`
	RiskAdjusted float64 `json:"riskAdjProj"`
	Injury       string  `json:"injury,omitempty"`
}

type Alternative struct {
	Name         string  `json:"name"`
	Projected    float64 `json:"proj"`
	RiskAdjusted float64 `json:"riskAdjProj"`
	Reason       string  `json:"reason"`
}

// StartSitAdvice compares a starter with the best strictly better bench
// option at the same position. Delta is zero when Alternative is nil.
type StartSitAdvice struct {
	Slot        Position         `json:"slot"`
	Current     PlayerProjection `json:"current"`
	Alternative *Alternative     `json:"alternative,omitempty"`
	Delta       float64          `json:"delta"`
}

type StreamerAdvice struct {
	Position     Position `json:"position"`
	Candidate    string   `json:"candidate"`
	Reason       string   `json:"reason"`
	ExpectedGain float64  `json:"expectedGain"`
}

type Mismatch struct {
	Position Position `json:"position"`
	You      float64  `json:"you"`
	Opp      float64  `json:"opp"`
	Delta    float64  `json:"delta"`
}

type CoachBrief struct {
	Week           int              `json:"week"`
	TeamName       string           `json:"teamName"`
	OpponentName   string           `json:"opponentName"`
	SummaryBullets []string         `json:"summaryBullets"`
	StartSit       []StartSitAdvice `json:"startSit"`
	Streamers      []StreamerAdvice `json:"streamers"`
	Mismatches     []Mismatch       `json:"mismatches"`
	Risk           float64          `json:"risk"`
	Live           bool             `json:"live"`
}

type Move struct {
	Label  string `json:"label" validate:"required"`
	Reason string `json:"reason,omitempty"`
}

// CoachNarrative is the summarizer's structured output.
type CoachNarrative struct {
	Headline string   `json:"headline" validate:"required"`
	Bullets  []string `json:"bullets" validate:"min=1,max=6,dive,required"`
	Risks    []string `json:"risks,omitempty" validate:"omitempty,dive,required"`
	Moves    []Move   `json:"moves,omitempty" validate:"omitempty,dive"`
}

// CoachReport pairs the deterministic brief with the advisory narrative.
// NarrativeError is set when the narrative could not be produced.
type CoachReport struct {
	Brief          CoachBrief      `json:"brief"`
	Narrative      *CoachNarrative `json:"narrative,omitempty"`
	NarrativeError string          `json:"narrativeError,omitempty"`
}
