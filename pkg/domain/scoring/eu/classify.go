package eu

import (
	"strings"

	"github.com/secmon-lab/airegister/pkg/domain/types"
)

// Answers is the questionnaire state. A question is answered when its key is
// present, even if the value is false. HighRisk is a set: only selected
// categories are stored with true.
type Answers struct {
	Prohibited map[QuestionID]bool `json:"prohibited"`
	HighRisk   map[CategoryID]bool `json:"high_risk"`
	Limited    map[QuestionID]bool `json:"limited"`
}

// NewAnswers returns an empty answer set with initialized maps
func NewAnswers() Answers {
	return Answers{
		Prohibited: make(map[QuestionID]bool),
		HighRisk:   make(map[CategoryID]bool),
		Limited:    make(map[QuestionID]bool),
	}
}

// Clone returns a deep copy of the answer set
func (a Answers) Clone() Answers {
	c := NewAnswers()
	for k, v := range a.Prohibited {
		c.Prohibited[k] = v
	}
	for k, v := range a.HighRisk {
		c.HighRisk[k] = v
	}
	for k, v := range a.Limited {
		c.Limited[k] = v
	}
	return c
}

// SelectedCategories returns the selected high-risk categories in catalog order
func (a Answers) SelectedCategories() []CategoryID {
	var selected []CategoryID
	for _, c := range highRiskCategories {
		if a.HighRisk[c.ID] {
			selected = append(selected, c.ID)
		}
	}
	return selected
}

// Verdict is the outcome of the EU AI Act classification
type Verdict struct {
	Tier                       types.RiskTier `json:"tier"`
	ProhibitedTrigger          string         `json:"prohibited_trigger,omitempty"`
	ComplianceRequirements     []string       `json:"compliance_requirements"`
	TransparencyObligations    []string       `json:"transparency_obligations"`
	ConformityAssessmentNeeded bool           `json:"conformity_assessment_needed"`
	CEMarkingRequired          bool           `json:"ce_marking_required"`
	HumanOversightRequired     bool           `json:"human_oversight_required"`
}

const prohibitedTriggerSeparator = "; "

var prohibitedObligations = []string{
	"This AI system falls under a prohibited practice (Article 5) and may not be placed on the market, put into service or used in the EU.",
}

var highRiskRequirements = []string{
	"Establish and maintain a risk management system throughout the lifecycle (Article 9)",
	"Apply data governance to training, validation and testing data sets (Article 10)",
	"Draw up technical documentation before placing on the market (Article 11)",
	"Enable automatic recording of events (logging) over the system lifetime (Article 12)",
	"Provide transparency and instructions for use to deployers (Article 13)",
	"Design the system for effective human oversight (Article 14)",
	"Achieve appropriate accuracy, robustness and cybersecurity (Article 15)",
	"Operate a quality management system (Article 17)",
	"Complete a conformity assessment, affix CE marking and register in the EU database (Articles 43, 48, 49)",
}

var highRiskObligations = []string{
	"Inform natural persons that they are subject to the use of a high-risk AI system",
	"Provide deployers with clear instructions for use, capabilities and limitations",
	"Register the system in the EU database before placing it on the market or putting it into service",
}

var limitedRiskObligations = []string{
	"Inform persons that they are interacting with an AI system unless this is obvious from the context",
	"Mark AI-generated or manipulated audio, image, video and text content in a machine-readable format",
	"Disclose that deep fake content or AI-generated text published to inform the public has been artificially generated",
}

var minimalRiskObligations = []string{
	"No specific obligations apply under the EU AI Act. Voluntary codes of conduct are encouraged.",
}

// Classify applies strict tier precedence: prohibited, then high-risk, then
// limited-risk, then minimal. The first matching tier wins.
func Classify(answers Answers) Verdict {
	if triggers := prohibitedTriggers(answers); len(triggers) > 0 {
		return Verdict{
			Tier:                    types.RiskTierProhibited,
			ProhibitedTrigger:       strings.Join(triggers, prohibitedTriggerSeparator),
			ComplianceRequirements:  []string{},
			TransparencyObligations: copyStrings(prohibitedObligations),
		}
	}

	if len(answers.SelectedCategories()) > 0 {
		return Verdict{
			Tier:                       types.RiskTierHighRisk,
			ComplianceRequirements:     copyStrings(highRiskRequirements),
			TransparencyObligations:    copyStrings(highRiskObligations),
			ConformityAssessmentNeeded: true,
			CEMarkingRequired:          true,
			HumanOversightRequired:     true,
		}
	}

	for _, q := range limitedRiskQuestions {
		if answers.Limited[q.ID] {
			return Verdict{
				Tier:                    types.RiskTierLimitedRisk,
				ComplianceRequirements:  []string{},
				TransparencyObligations: copyStrings(limitedRiskObligations),
			}
		}
	}

	return Verdict{
		Tier:                    types.RiskTierMinimalRisk,
		ComplianceRequirements:  []string{},
		TransparencyObligations: copyStrings(minimalRiskObligations),
	}
}

// prohibitedTriggers returns the text of every prohibited question answered true, in catalog order
func prohibitedTriggers(answers Answers) []string {
	var triggers []string
	for _, q := range prohibitedQuestions {
		if answers.Prohibited[q.ID] {
			triggers = append(triggers, q.Text)
		}
	}
	return triggers
}

// HighRiskRequirements returns the fixed compliance requirement list for high-risk systems
func HighRiskRequirements() []string {
	return copyStrings(highRiskRequirements)
}

// LimitedRiskObligations returns the fixed AI-disclosure obligation list
func LimitedRiskObligations() []string {
	return copyStrings(limitedRiskObligations)
}

func copyStrings(s []string) []string {
	return append([]string(nil), s...)
}
