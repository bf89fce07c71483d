package uk

import (
	"fmt"

	"github.com/secmon-lab/airegister/pkg/domain/types"
)

const (
	// LowComplianceThreshold marks a principle as a gap when its score is below it
	LowComplianceThreshold = 50.0

	fullyAddressedThreshold     = 75.0
	partiallyAddressedThreshold = 40.0
)

// Answers maps each answered question to its implementation level
type Answers map[QuestionID]types.ImplementationLevel

// PrincipleScore is the score of a single principle
type PrincipleScore struct {
	PrincipleID PrincipleID               `json:"principle_id"`
	Name        string                    `json:"name"`
	Score       float64                   `json:"score"`
	Level       types.ImplementationLevel `json:"level"`
}

// Result is the UK principle assessment outcome
type Result struct {
	Principles   []PrincipleScore `json:"principles"`
	OverallScore float64          `json:"overall_score"`
	Gaps         []string         `json:"gaps"`
}

// Score computes the per-principle and overall scores. Unanswered questions
// count as zero: the denominator is always QuestionsPerPrinciple × 2.
func Score(answers Answers) Result {
	result := Result{
		Principles: make([]PrincipleScore, 0, len(principles)),
		Gaps:       []string{},
	}

	var total float64
	for _, p := range principles {
		score := principleScore(p, answers)
		total += score

		result.Principles = append(result.Principles, PrincipleScore{
			PrincipleID: p.ID,
			Name:        p.Name,
			Score:       score,
			Level:       LevelForScore(score),
		})

		if score < LowComplianceThreshold {
			result.Gaps = append(result.Gaps, fmt.Sprintf("%s: low compliance (%.0f%%)", p.Name, score))
		}
		for _, q := range p.Questions {
			level, ok := answers[q.ID]
			if !ok || level == types.NotAddressed {
				result.Gaps = append(result.Gaps, fmt.Sprintf("%s: %s", p.Name, q.Text))
			}
		}
	}

	result.OverallScore = total / float64(len(principles))
	return result
}

func principleScore(p Principle, answers Answers) float64 {
	var points int
	for _, q := range p.Questions {
		if level, ok := answers[q.ID]; ok {
			points += level.Points()
		}
	}
	return float64(points) * 100 / float64(QuestionsPerPrinciple*types.MaxImplementationPoints)
}

// LevelForScore re-buckets a 0–100 principle score into an implementation
// level: ≥75 fully, ≥40 partially, otherwise not addressed.
func LevelForScore(score float64) types.ImplementationLevel {
	switch {
	case score >= fullyAddressedThreshold:
		return types.FullyAddressed
	case score >= partiallyAddressedThreshold:
		return types.PartiallyAddressed
	default:
		return types.NotAddressed
	}
}

// Levels returns the re-bucketed level of each principle, as persisted
func (r Result) Levels() map[PrincipleID]types.ImplementationLevel {
	levels := make(map[PrincipleID]types.ImplementationLevel, len(r.Principles))
	for _, p := range r.Principles {
		levels[p.PrincipleID] = p.Level
	}
	return levels
}
