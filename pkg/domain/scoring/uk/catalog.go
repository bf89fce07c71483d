// Package uk scores AI systems against the five UK AI regulation principles.
package uk

// CatalogVersion identifies the principle and question set used for a score
const CatalogVersion = "uk-ai-principles/2023.1"

// QuestionsPerPrinciple is fixed; it is the denominator base of every principle score
const QuestionsPerPrinciple = 5

// PrincipleID identifies one of the five principles
type PrincipleID string

// QuestionID identifies a principle question
type QuestionID string

const (
	SafetySecurityRobustness   PrincipleID = "SAFETY_SECURITY_ROBUSTNESS"
	TransparencyExplainability PrincipleID = "TRANSPARENCY_EXPLAINABILITY"
	Fairness                   PrincipleID = "FAIRNESS"
	AccountabilityGovernance   PrincipleID = "ACCOUNTABILITY_GOVERNANCE"
	ContestabilityRedress      PrincipleID = "CONTESTABILITY_REDRESS"
)

type Question struct {
	ID   QuestionID `json:"id"`
	Text string     `json:"text"`
}

type Principle struct {
	ID        PrincipleID `json:"id"`
	Name      string      `json:"name"`
	Questions []Question  `json:"questions"`
}

var principles = []Principle{
	{
		ID:   SafetySecurityRobustness,
		Name: "Safety, security and robustness",
		Questions: []Question{
			{ID: "safety_risk_assessment", Text: "Safety risks are identified and assessed before deployment"},
			{ID: "safety_robustness_testing", Text: "The system is tested for robustness against unexpected inputs and adversarial attacks"},
			{ID: "safety_security_controls", Text: "Security controls protect the model, data and infrastructure"},
			{ID: "safety_monitoring", Text: "Performance and failures are monitored continuously in production"},
			{ID: "safety_incident_response", Text: "An incident response plan covers AI-specific failures"},
		},
	},
	{
		ID:   TransparencyExplainability,
		Name: "Appropriate transparency and explainability",
		Questions: []Question{
			{ID: "transparency_ai_disclosure", Text: "Users are informed when they interact with or are affected by the AI system"},
			{ID: "transparency_documentation", Text: "Purpose, capabilities and limitations are documented"},
			{ID: "transparency_explanations", Text: "Decisions can be explained at a level appropriate to the audience"},
			{ID: "transparency_data_provenance", Text: "Training data sources and provenance are recorded"},
			{ID: "transparency_change_log", Text: "Material model changes are communicated to stakeholders"},
		},
	},
	{
		ID:   Fairness,
		Name: "Fairness",
		Questions: []Question{
			{ID: "fairness_bias_assessment", Text: "Outputs are assessed for bias across protected characteristics"},
			{ID: "fairness_representative_data", Text: "Training data is representative of the affected population"},
			{ID: "fairness_metrics", Text: "Fairness metrics are defined and tracked"},
			{ID: "fairness_equality_law", Text: "Compliance with equality and data protection law has been reviewed"},
			{ID: "fairness_mitigation", Text: "Identified bias is mitigated and the mitigation is verified"},
		},
	},
	{
		ID:   AccountabilityGovernance,
		Name: "Accountability and governance",
		Questions: []Question{
			{ID: "accountability_owner", Text: "A named owner is accountable for the system"},
			{ID: "accountability_governance_body", Text: "A governance body oversees AI use and approves high-impact deployments"},
			{ID: "accountability_policies", Text: "AI policies and procedures are documented and followed"},
			{ID: "accountability_audit_trail", Text: "Decisions and changes are recorded in an auditable trail"},
			{ID: "accountability_supplier_management", Text: "Third-party AI suppliers are assessed and contractually bound"},
		},
	},
	{
		ID:   ContestabilityRedress,
		Name: "Contestability and redress",
		Questions: []Question{
			{ID: "contestability_challenge_route", Text: "Affected persons can challenge outcomes through a clear route"},
			{ID: "contestability_human_review", Text: "Challenged outcomes are reviewed by a human"},
			{ID: "contestability_redress", Text: "Redress is available where harm is confirmed"},
			{ID: "contestability_feedback", Text: "Complaints and feedback are fed back into system improvements"},
			{ID: "contestability_timelines", Text: "Response timelines for challenges are defined and met"},
		},
	},
}

// Principles returns the principles in catalog order
func Principles() []Principle {
	out := make([]Principle, len(principles))
	for i, p := range principles {
		out[i] = Principle{
			ID:        p.ID,
			Name:      p.Name,
			Questions: append([]Question(nil), p.Questions...),
		}
	}
	return out
}

// PrincipleOf returns the principle a question belongs to
func PrincipleOf(id QuestionID) (PrincipleID, bool) {
	for _, p := range principles {
		for _, q := range p.Questions {
			if q.ID == id {
				return p.ID, true
			}
		}
	}
	return "", false
}

// IsQuestion reports whether id is a catalog question
func IsQuestion(id QuestionID) bool {
	_, ok := PrincipleOf(id)
	return ok
}

type Catalog struct {
	Version    string      `json:"version"`
	Principles []Principle `json:"principles"`
}

// GetCatalog returns a copy of the current catalog
func GetCatalog() Catalog {
	return Catalog{
		Version:    CatalogVersion,
		Principles: Principles(),
	}
}
