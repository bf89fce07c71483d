// Package eu implements the EU AI Act risk classification questionnaire.
//
// The question catalog below is a versioned schema: stored answer snapshots are
// keyed by these identifiers, so any change to the question set must bump
// CatalogVersion instead of editing entries in place.
package eu

// CatalogVersion identifies the question set used to produce a verdict
const CatalogVersion = "eu-ai-act/2024.1"

// QuestionID identifies a yes/no question of the prohibited or limited-risk step
type QuestionID string

// CategoryID identifies an Annex III high-risk category
type CategoryID string

// Question is a yes/no question
type Question struct {
	ID   QuestionID `json:"id"`
	Text string     `json:"text"`
}

// Category is a selectable high-risk use category
type Category struct {
	ID          CategoryID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

const (
	SubliminalManipulation                QuestionID = "subliminal_manipulation"
	ExploitationOfVulnerabilities         QuestionID = "exploitation_of_vulnerabilities"
	SocialScoring                         QuestionID = "social_scoring"
	PredictivePolicing                    QuestionID = "predictive_policing"
	FacialImageScraping                   QuestionID = "facial_image_scraping"
	EmotionRecognitionWorkplace           QuestionID = "emotion_recognition_workplace"
	BiometricCategorisation               QuestionID = "biometric_categorisation"
	RealtimeRemoteBiometricIdentification QuestionID = "realtime_remote_biometric_identification"

	HumanInteraction   QuestionID = "human_interaction"
	SyntheticContent   QuestionID = "synthetic_content"
	EmotionRecognition QuestionID = "emotion_recognition"
)

const (
	BiometricIdentification   CategoryID = "BIOMETRIC_IDENTIFICATION"
	CriticalInfrastructure    CategoryID = "CRITICAL_INFRASTRUCTURE"
	EducationAndTraining      CategoryID = "EDUCATION_AND_TRAINING"
	Employment                CategoryID = "EMPLOYMENT"
	EssentialServices         CategoryID = "ESSENTIAL_SERVICES"
	LawEnforcement            CategoryID = "LAW_ENFORCEMENT"
	MigrationAndBorderControl CategoryID = "MIGRATION_AND_BORDER_CONTROL"
	JusticeAndDemocracy       CategoryID = "JUSTICE_AND_DEMOCRACY"
)

var prohibitedQuestions = []Question{
	{ID: SubliminalManipulation, Text: "Deploys subliminal, manipulative or deceptive techniques that materially distort a person's behaviour"},
	{ID: ExploitationOfVulnerabilities, Text: "Exploits vulnerabilities of persons due to their age, disability or social or economic situation"},
	{ID: SocialScoring, Text: "Evaluates or classifies persons based on social behaviour or personal characteristics (social scoring)"},
	{ID: PredictivePolicing, Text: "Assesses the risk of a person committing a criminal offence based solely on profiling or personality traits"},
	{ID: FacialImageScraping, Text: "Builds facial recognition databases through untargeted scraping of facial images"},
	{ID: EmotionRecognitionWorkplace, Text: "Infers emotions of persons in the workplace or in education institutions"},
	{ID: BiometricCategorisation, Text: "Categorises persons by biometric data to deduce race, political opinions, religion or sexual orientation"},
	{ID: RealtimeRemoteBiometricIdentification, Text: "Performs real-time remote biometric identification in publicly accessible spaces for law enforcement"},
}

var highRiskCategories = []Category{
	{ID: BiometricIdentification, Name: "Biometric identification", Description: "Remote biometric identification, biometric categorisation and emotion recognition"},
	{ID: CriticalInfrastructure, Name: "Critical infrastructure", Description: "Safety components in the management of critical digital infrastructure, road traffic and utilities"},
	{ID: EducationAndTraining, Name: "Education and vocational training", Description: "Access, admission, evaluation of learning outcomes and proctoring"},
	{ID: Employment, Name: "Employment and worker management", Description: "Recruitment, selection, promotion, termination, task allocation and monitoring"},
	{ID: EssentialServices, Name: "Essential private and public services", Description: "Eligibility for public benefits, creditworthiness, insurance pricing and emergency dispatch"},
	{ID: LawEnforcement, Name: "Law enforcement", Description: "Risk assessment of victims, polygraphs, evidence reliability and profiling"},
	{ID: MigrationAndBorderControl, Name: "Migration, asylum and border control", Description: "Risk assessment, examination of applications and detection of persons"},
	{ID: JusticeAndDemocracy, Name: "Administration of justice and democratic processes", Description: "Assisting judicial authorities and influencing elections or referendums"},
}

var limitedRiskQuestions = []Question{
	{ID: HumanInteraction, Text: "Interacts directly with natural persons (for example a chatbot or voice assistant)"},
	{ID: SyntheticContent, Text: "Generates or manipulates image, audio, video or text content (including deep fakes)"},
	{ID: EmotionRecognition, Text: "Performs emotion recognition or biometric categorisation outside prohibited contexts"},
}

// ProhibitedQuestions returns the prohibited-practice questions in catalog order
func ProhibitedQuestions() []Question {
	return append([]Question(nil), prohibitedQuestions...)
}

// HighRiskCategories returns the high-risk categories in catalog order
func HighRiskCategories() []Category {
	return append([]Category(nil), highRiskCategories...)
}

// LimitedRiskQuestions returns the limited-risk questions in catalog order
func LimitedRiskQuestions() []Question {
	return append([]Question(nil), limitedRiskQuestions...)
}

// IsProhibitedQuestion reports whether id belongs to the prohibited-practice step
func IsProhibitedQuestion(id QuestionID) bool {
	return containsQuestion(prohibitedQuestions, id)
}

// IsLimitedRiskQuestion reports whether id belongs to the limited-risk step
func IsLimitedRiskQuestion(id QuestionID) bool {
	return containsQuestion(limitedRiskQuestions, id)
}

// IsHighRiskCategory reports whether id is a known high-risk category
func IsHighRiskCategory(id CategoryID) bool {
	for _, c := range highRiskCategories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func containsQuestion(questions []Question, id QuestionID) bool {
	for _, q := range questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

// Catalog is the full questionnaire, suitable for rendering
type Catalog struct {
	Version              string     `json:"version"`
	ProhibitedQuestions  []Question `json:"prohibited_questions"`
	HighRiskCategories   []Category `json:"high_risk_categories"`
	LimitedRiskQuestions []Question `json:"limited_risk_questions"`
}

// GetCatalog returns a copy of the current catalog
func GetCatalog() Catalog {
	return Catalog{
		Version:              CatalogVersion,
		ProhibitedQuestions:  ProhibitedQuestions(),
		HighRiskCategories:   HighRiskCategories(),
		LimitedRiskQuestions: LimitedRiskQuestions(),
	}
}
