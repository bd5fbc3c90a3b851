// Package scoring adjusts a base projection for matchup difficulty and the
// user's appetite for risk.
package scoring

import "math"

const (
	maxRank = 32

	matchupSpread  = 0.20 // rank 1 -> 0.90, rank 32 -> 1.10
	riskSpread     = 0.30 // risk 0 -> 0.85, risk 100 -> 1.15
	varianceSpread = 0.20

	NeutralRisk = 50.0
)

// OpponentMultiplier maps a 1..32 defensive rank (1 = toughest) to a
// multiplier. Zero and out-of-range ranks mean no opinion.
func OpponentMultiplier(rank int) float64 {
	if rank < 1 || rank > maxRank {
		return 1
	}
	softness := float64(rank-1) / float64(maxRank-1)
	return 1 + (softness-0.5)*matchupSpread
}

// RiskTilt maps a 0..100 risk tolerance to a multiplier. Out-of-range values
// are clamped; 50 is exactly neutral.
func RiskTilt(risk float64) float64 {
	return 1 + (riskUnit(risk)-0.5)*riskSpread
}

// RiskAdjustedProjection returns base * matchup * tilt * variance. A
// non-finite base counts as zero and a non-finite variance as none.
func RiskAdjustedProjection(base float64, opponentRank int, risk, variance float64) float64 {
	if !isFinite(base) {
		return 0
	}
	if !isFinite(variance) {
		variance = 0
	}

	varianceMult := 1 + variance*(riskUnit(risk)-0.5)*varianceSpread
	return base * OpponentMultiplier(opponentRank) * RiskTilt(risk) * varianceMult
}

// ClampRisk brings risk into [0, 100]. NaN becomes neutral.
func ClampRisk(risk float64) float64 {
	if math.IsNaN(risk) {
		return NeutralRisk
	}
	return math.Min(100, math.Max(0, risk))
}

func riskUnit(risk float64) float64 {
	return ClampRisk(risk) / 100
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
