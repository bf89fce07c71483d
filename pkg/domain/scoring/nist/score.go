package nist

import (
	"fmt"

	"github.com/secmon-lab/airegister/pkg/domain/types"
)

// Answers maps each answered question to a value in [0, 5]
type Answers map[QuestionID]float64

type FunctionScore struct {
	FunctionID FunctionID `json:"function_id"`
	Name       string     `json:"name"`
	Score      float64    `json:"score"`
}

// Result is the NIST AI RMF maturity outcome
type Result struct {
	Functions       []FunctionScore     `json:"functions"`
	OverallScore    float64             `json:"overall_score"`
	Maturity        types.MaturityLevel `json:"maturity"`
	Recommendations []string            `json:"recommendations"`
}

const (
	establishThreshold  = 2.0
	strengthenThreshold = 3.5
)

// Score averages each function over all of its questions, treating
// unanswered questions as 0, then averages the function scores.
func Score(answers Answers) Result {
	result := Result{
		Functions:       make([]FunctionScore, 0, len(functions)),
		Recommendations: []string{},
	}

	var total float64
	for _, f := range functions {
		score := functionScore(f, answers)
		total += score

		result.Functions = append(result.Functions, FunctionScore{
			FunctionID: f.ID,
			Name:       f.Name,
			Score:      score,
		})

		if rec, ok := recommendation(f, score); ok {
			result.Recommendations = append(result.Recommendations, rec)
		}
	}

	result.OverallScore = total / float64(len(functions))
	result.Maturity = MaturityForScore(result.OverallScore)
	return result
}

func functionScore(f Function, answers Answers) float64 {
	var sum float64
	for _, q := range f.Questions {
		sum += answers[q.ID]
	}
	return sum / float64(QuestionsPerFunction)
}

func recommendation(f Function, score float64) (string, bool) {
	switch {
	case score < establishThreshold:
		return fmt.Sprintf("%s: Establish basic %s processes and document ownership (score %.1f/5)", f.Name, f.Name, score), true
	case score < strengthenThreshold:
		return fmt.Sprintf("%s: Strengthen existing %s processes and formalise them across the organisation (score %.1f/5)", f.Name, f.Name, score), true
	default:
		return "", false
	}
}

// MaturityForScore buckets an overall score with inclusive upper bounds:
// ≤1.5 initial, ≤2.5 developing, ≤3.5 defined, ≤4.5 managed, otherwise optimising.
func MaturityForScore(score float64) types.MaturityLevel {
	switch {
	case score <= 1.5:
		return types.MaturityInitial
	case score <= 2.5:
		return types.MaturityDeveloping
	case score <= 3.5:
		return types.MaturityDefined
	case score <= 4.5:
		return types.MaturityManaged
	default:
		return types.MaturityOptimising
	}
}
