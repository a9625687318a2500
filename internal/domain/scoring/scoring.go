// Package scoring implements the heuristic survival scorer. It is a fixed
// rule set, not a fitted model: the same input always yields the same result.
package scoring

import (
	"context"
	"math"
)

// Scoring constants.
const (
	// LogisticScale multiplies the integer score before the logistic transform.
	LogisticScale = 0.3
	// Threshold is the probability above which a passenger is predicted to survive.
	Threshold = 0.5
)

// Input holds the attributes of a hypothetical passenger.
type Input struct {
	Pclass   int     `json:"pclass"`
	Sex      string  `json:"sex"`
	Age      float64 `json:"age"`
	SibSp    float64 `json:"sibsp"`
	Parch    float64 `json:"parch"`
	Fare     float64 `json:"fare"`
	Embarked string  `json:"embarked"`
	Name     string  `json:"name,omitempty"`
}

// FamilySize is the number of relatives aboard (siblings/spouses plus parents/children).
func (in Input) FamilySize() float64 { return in.SibSp + in.Parch }

// Result is the outcome of scoring one Input.
type Result struct {
	Survived    bool     `json:"survived"`
	Probability float64  `json:"probability"`
	Score       int      `json:"score"`
	Features    Features `json:"features"`
}

// Scorer computes a Result from an Input.
type Scorer interface {
	Score(ctx context.Context, in Input) (Result, error)
}

// HeuristicScorer implements Scorer with the fixed rule set.
type HeuristicScorer struct{}

// NewHeuristicScorer creates a HeuristicScorer.
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Score implements Scorer. It only fails when ctx is already done.
func (s *HeuristicScorer) Score(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return Score(in), nil
}

// Score applies the rules, the logistic transform and the threshold.
func Score(in Input) Result {
	score := RawScore(in)
	p := Probability(score)
	return Result{
		Survived:    p > Threshold,
		Probability: p,
		Score:       score,
		Features:    Explain(in),
	}
}

// RawScore sums the rule adjustments.
func RawScore(in Input) int {
	score := 0

	switch in.Sex {
	case "female":
		score += 3
	case "male":
		score--
	}

	switch in.Pclass {
	case 1:
		score += 2
	case 2:
		score++
	case 3:
		score--
	}

	// Ages in (25, 60] are left unadjusted.
	switch {
	case in.Age <= 12:
		score += 2
	case in.Age <= 25:
		score++
	case in.Age > 60:
		score--
	}

	switch family := in.FamilySize(); {
	case family == 1 || family == 2:
		score++
	case family > 4:
		score--
	}

	switch {
	case in.Fare > 50:
		score += 2
	case in.Fare > 20:
		score++
	}

	if in.Embarked == "C" {
		score++
	}

	return score
}

// Probability maps a score to (0, 1) with 1 / (1 + e^(-score*LogisticScale)).
func Probability(score int) float64 {
	return 1 / (1 + math.Exp(-float64(score)*LogisticScale))
}
