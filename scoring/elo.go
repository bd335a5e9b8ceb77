// Package scoring turns external debate evaluations into rating updates.
package scoring

import "math"

// KFactor is the shared Elo K constant for all rating updates.
const KFactor = 32

// Outcome values from the perspective of one debater.
const (
	OutcomeWin  = 1.0
	OutcomeLoss = 0.0
	OutcomeDraw = 0.5
)

// Expected returns the expected score of a player rated ra against rb.
func Expected(ra, rb int) float64 {
	return 1 / (1 + math.Pow(10, float64(rb-ra)/400))
}

// NewRating applies one Elo update: round(r + K*(outcome-expected)).
func NewRating(rating, opponent int, outcome float64) int {
	return int(math.Round(float64(rating) + KFactor*(outcome-Expected(rating, opponent))))
}
