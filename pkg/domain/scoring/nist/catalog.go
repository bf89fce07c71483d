// Package nist scores AI risk management maturity against the four NIST AI RMF functions.
package nist

// CatalogVersion identifies the function and question set used for a score
const CatalogVersion = "nist-ai-rmf/1.0"

const (
	QuestionsPerFunction = 4

	MinValue  = 0.0
	MaxValue  = 5.0
	ValueStep = 0.5
)

type FunctionID string

type QuestionID string

const (
	Govern  FunctionID = "GOVERN"
	Map     FunctionID = "MAP"
	Measure FunctionID = "MEASURE"
	Manage  FunctionID = "MANAGE"
)

type Question struct {
	ID   QuestionID `json:"id"`
	Text string     `json:"text"`
}

type Function struct {
	ID        FunctionID `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

var functions = []Function{
	{
		ID:   Govern,
		Name: "Govern",
		Questions: []Question{
			{ID: "govern_policies", Text: "AI risk management policies, processes and procedures are in place"},
			{ID: "govern_accountability", Text: "Roles and responsibilities for AI risk are defined and assigned"},
			{ID: "govern_workforce", Text: "Staff receive AI risk management training appropriate to their role"},
			{ID: "govern_third_party", Text: "Risks from third-party software, data and models are governed"},
		},
	},
	{
		ID:   Map,
		Name: "Map",
		Questions: []Question{
			{ID: "map_context", Text: "Intended purpose, context of use and affected parties are documented"},
			{ID: "map_categorisation", Text: "The system and its tasks are categorised"},
			{ID: "map_capabilities", Text: "Capabilities, limitations and expected benefits are understood"},
			{ID: "map_impacts", Text: "Impacts on individuals, groups and society are characterised"},
		},
	},
	{
		ID:   Measure,
		Name: "Measure",
		Questions: []Question{
			{ID: "measure_metrics", Text: "Appropriate metrics and methods are selected for identified risks"},
			{ID: "measure_trustworthiness", Text: "Trustworthiness characteristics are evaluated and documented"},
			{ID: "measure_tracking", Text: "Identified risks are tracked over time"},
			{ID: "measure_feedback", Text: "Measurement efficacy is assessed using feedback"},
		},
	},
	{
		ID:   Manage,
		Name: "Manage",
		Questions: []Question{
			{ID: "manage_prioritisation", Text: "Risks are prioritised and responded to based on impact and likelihood"},
			{ID: "manage_benefits", Text: "Strategies to maximise benefits and minimise negative impacts are planned"},
			{ID: "manage_third_party", Text: "Third-party risks are monitored and managed"},
			{ID: "manage_incidents", Text: "Risk treatments, response, recovery and communication plans are documented"},
		},
	},
}

// Functions returns the functions in catalog order
func Functions() []Function {
	out := make([]Function, len(functions))
	for i, f := range functions {
		out[i] = Function{
			ID:        f.ID,
			Name:      f.Name,
			Questions: append([]Question(nil), f.Questions...),
		}
	}
	return out
}

// FunctionOf returns the function a question belongs to
func FunctionOf(id QuestionID) (FunctionID, bool) {
	for _, f := range functions {
		for _, q := range f.Questions {
			if q.ID == id {
				return f.ID, true
			}
		}
	}
	return "", false
}

// IsQuestion reports whether id is a catalog question
func IsQuestion(id QuestionID) bool {
	_, ok := FunctionOf(id)
	return ok
}

// IsValidValue reports whether v is within [MinValue, MaxValue] on a ValueStep grid
func IsValidValue(v float64) bool {
	if v < MinValue || v > MaxValue {
		return false
	}
	steps := v / ValueStep
	return steps == float64(int(steps))
}

type Catalog struct {
	Version   string     `json:"version"`
	MinValue  float64    `json:"min_value"`
	MaxValue  float64    `json:"max_value"`
	ValueStep float64    `json:"value_step"`
	Functions []Function `json:"functions"`
}

// GetCatalog returns a copy of the current catalog
func GetCatalog() Catalog {
	return Catalog{
		Version:   CatalogVersion,
		MinValue:  MinValue,
		MaxValue:  MaxValue,
		ValueStep: ValueStep,
		Functions: Functions(),
	}
}
