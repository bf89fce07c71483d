package eu

import (
	"github.com/m-mizutani/goerr/v2"
)

// Step is a state of the classification questionnaire
type Step string

const (
	StepProhibited  Step = "PROHIBITED_STEP"
	StepHighRisk    Step = "HIGH_RISK_STEP"
	StepLimitedRisk Step = "LIMITED_RISK_STEP"
	StepResult      Step = "RESULT"
)

// IsValid checks if the step is a known state
func (s Step) IsValid() bool {
	switch s {
	case StepProhibited, StepHighRisk, StepLimitedRisk, StepResult:
		return true
	default:
		return false
	}
}

// Action is an input event of the questionnaire state machine
type Action string

const (
	// ActionUpdate re-evaluates the current step after an answer changed
	ActionUpdate  Action = "update"
	ActionAdvance Action = "advance"
	ActionBack    Action = "back"
	ActionReset   Action = "reset"
)

var (
	ErrStepIncomplete    = goerr.New("every question of the current step must be answered")
	ErrInvalidTransition = goerr.New("invalid step transition")
	ErrUnknownStep       = goerr.New("unknown step")
	ErrUnknownAction     = goerr.New("unknown action")
	ErrUnknownQuestion   = goerr.New("unknown question")
	ErrUnknownCategory   = goerr.New("unknown high-risk category")
)

// IsStepComplete reports whether every question displayed in step has an
// answer. An empty high-risk selection is a complete answer.
func IsStepComplete(step Step, answers Answers) bool {
	switch step {
	case StepProhibited:
		return allAnswered(prohibitedQuestions, answers.Prohibited)
	case StepLimitedRisk:
		return allAnswered(limitedRiskQuestions, answers.Limited)
	case StepHighRisk, StepResult:
		return true
	default:
		return false
	}
}

func allAnswered(questions []Question, answered map[QuestionID]bool) bool {
	for _, q := range questions {
		if _, ok := answered[q.ID]; !ok {
			return false
		}
	}
	return true
}

// shortcutToResult is true once a prohibited practice is confirmed or a
// high-risk category is selected; later steps cannot change the tier.
func shortcutToResult(answers Answers) bool {
	for _, q := range prohibitedQuestions {
		if answers.Prohibited[q.ID] {
			return true
		}
	}
	return len(answers.SelectedCategories()) > 0
}

// Transition computes the next step for action. It holds no state, so the
// HTTP API and Wizard share it.
func Transition(step Step, answers Answers, action Action) (Step, error) {
	if !step.IsValid() {
		return "", goerr.Wrap(ErrUnknownStep, "cannot transition", goerr.V("step", step))
	}

	switch action {
	case ActionReset:
		return StepProhibited, nil

	case ActionUpdate:
		if shortcutToResult(answers) {
			return StepResult, nil
		}
		if step == StepResult {
			return resumeStep(answers), nil
		}
		return step, nil

	case ActionAdvance:
		if step == StepResult {
			return "", goerr.Wrap(ErrInvalidTransition, "already at result", goerr.V("step", step))
		}
		if !IsStepComplete(step, answers) {
			return "", goerr.Wrap(ErrStepIncomplete, "cannot advance", goerr.V("step", step))
		}
		if shortcutToResult(answers) {
			return StepResult, nil
		}
		switch step {
		case StepProhibited:
			return StepHighRisk, nil
		case StepHighRisk:
			return StepLimitedRisk, nil
		default:
			return StepResult, nil
		}

	case ActionBack:
		switch step {
		case StepHighRisk:
			return StepProhibited, nil
		case StepLimitedRisk:
			return StepHighRisk, nil
		case StepResult:
			return resultOrigin(answers), nil
		default:
			return "", goerr.Wrap(ErrInvalidTransition, "no previous step", goerr.V("step", step))
		}

	default:
		return "", goerr.Wrap(ErrUnknownAction, "cannot transition", goerr.V("action", action))
	}
}

// resumeStep returns where a walk continues once a shortcut trigger is
// withdrawn at RESULT. RESULT is kept only if every question was answered.
func resumeStep(answers Answers) Step {
	if !IsStepComplete(StepProhibited, answers) {
		return StepProhibited
	}
	if !IsStepComplete(StepLimitedRisk, answers) {
		return StepHighRisk
	}
	return StepResult
}

// resultOrigin returns the step from which RESULT was reached
func resultOrigin(answers Answers) Step {
	for _, q := range prohibitedQuestions {
		if answers.Prohibited[q.ID] {
			return StepProhibited
		}
	}
	if len(answers.SelectedCategories()) > 0 {
		return StepHighRisk
	}
	return StepLimitedRisk
}

// Wizard is a single questionnaire session. It is not safe for concurrent use.
type Wizard struct {
	step    Step
	answers Answers
}

// NewWizard starts a session at the prohibited-practice step
func NewWizard() *Wizard {
	return &Wizard{
		step:    StepProhibited,
		answers: NewAnswers(),
	}
}

// Step returns the current step
func (w *Wizard) Step() Step {
	return w.step
}

// Answers returns a copy of the recorded answers
func (w *Wizard) Answers() Answers {
	return w.answers.Clone()
}

// AnswerProhibited records a prohibited-practice answer. A true answer jumps to RESULT.
func (w *Wizard) AnswerProhibited(id QuestionID, value bool) error {
	if !IsProhibitedQuestion(id) {
		return goerr.Wrap(ErrUnknownQuestion, "cannot answer", goerr.V("question_id", id))
	}
	w.answers.Prohibited[id] = value
	return w.apply(ActionUpdate)
}

// SelectCategory selects or deselects a high-risk category. Selecting any category jumps to RESULT.
func (w *Wizard) SelectCategory(id CategoryID, selected bool) error {
	if !IsHighRiskCategory(id) {
		return goerr.Wrap(ErrUnknownCategory, "cannot select", goerr.V("category_id", id))
	}
	if selected {
		w.answers.HighRisk[id] = true
	} else {
		delete(w.answers.HighRisk, id)
	}
	return w.apply(ActionUpdate)
}

// AnswerLimited records a limited-risk answer
func (w *Wizard) AnswerLimited(id QuestionID, value bool) error {
	if !IsLimitedRiskQuestion(id) {
		return goerr.Wrap(ErrUnknownQuestion, "cannot answer", goerr.V("question_id", id))
	}
	w.answers.Limited[id] = value
	return w.apply(ActionUpdate)
}

// CanAdvance reports whether the current step is complete and not final
func (w *Wizard) CanAdvance() bool {
	return w.step != StepResult && IsStepComplete(w.step, w.answers)
}

// Advance moves to the next step
func (w *Wizard) Advance() error {
	return w.apply(ActionAdvance)
}

// Back moves to the previous step
func (w *Wizard) Back() error {
	return w.apply(ActionBack)
}

// Reset clears all answers and returns to the first step
func (w *Wizard) Reset() {
	w.answers = NewAnswers()
	w.step = StepProhibited
}

// Done reports whether the result step has been reached
func (w *Wizard) Done() bool {
	return w.step == StepResult
}

// Verdict classifies the current answers with Classify
func (w *Wizard) Verdict() Verdict {
	return Classify(w.answers)
}

func (w *Wizard) apply(action Action) error {
	next, err := Transition(w.step, w.answers, action)
	if err != nil {
		return err
	}
	w.step = next
	return nil
}
