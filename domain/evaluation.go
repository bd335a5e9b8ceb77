package domain

// Scorecard is the structured result of the external evaluation for one
// debater: per-criterion sub-scores plus their total.
type Scorecard struct {
	Criteria map[string]float64 `json:"criteria"`
	Total    float64            `json:"total"`
}

// Evaluation maps a debater's display name to their scorecard.
type Evaluation map[string]Scorecard
