// Package intent classifies incoming chat messages into tutoring actions.
package intent

// Kind is the closed set of actions a turn can resolve to. The zero value
// is KindGeneralChat so every fallback path lands on safe open chat.
type Kind int

const (
	KindGeneralChat Kind = iota
	KindGenerateExplanation
	KindGenerateHint
	KindAskSocraticQuestion
	KindRequestPassage
	KindRequestPractice
	KindProvideFeedback
	KindAskForClarification
	KindGeneratePractice
)

func (k Kind) String() string {
	switch k {
	case KindGeneralChat:
		return "general_chat"
	case KindGenerateExplanation:
		return "generate_explanation"
	case KindGenerateHint:
		return "generate_hint"
	case KindAskSocraticQuestion:
		return "ask_socratic_question"
	case KindRequestPassage:
		return "request_passage"
	case KindRequestPractice:
		return "request_practice"
	case KindProvideFeedback:
		return "provide_feedback"
	case KindAskForClarification:
		return "ask_for_clarification"
	case KindGeneratePractice:
		return "generate_practice"
	}
	return "unknown"
}

// classifierTags maps the wire tags the classifier emits to Kinds.
// Unrecognized tags are forced through the fallback branch by parseTag.
var classifierTags = map[string]Kind{
	"GENERATE_EXPLANATION":    KindGenerateExplanation,
	"GENERATE_HINT":           KindGenerateHint,
	"ASK_SOCRATIC_QUESTION":   KindAskSocraticQuestion,
	"ANSWER_GENERAL_QUESTION": KindGeneralChat,
	"CHITCHAT":                KindGeneralChat,
	"REQUEST_USER_TEXT":       KindRequestPassage,
	"REQUEST_PRACTICE":        KindRequestPractice,
	"PROVIDE_FEEDBACK":        KindProvideFeedback,
	"ASK_FOR_CLARIFICATION":   KindAskForClarification,
	"GENERATE_EXERCISE":       KindGeneratePractice,
}

func parseTag(tag string) (Kind, bool) {
	k, ok := classifierTags[tag]
	return k, ok
}

// Params is the optional parameter bag attached to an action.
type Params struct {
	// Level is the requested difficulty for exercise generation, raw as
	// stated by the user ("beginner", "advanced", ...). Empty if unstated.
	Level string

	// Topic is the requested exercise topic. Empty if unstated.
	Topic string

	// QuestionID references a specific question for hints/explanations.
	// Zero if unstated.
	QuestionID int

	// Skip is set when the user wants to skip the current remediation step.
	Skip bool

	// Answers carries the parsed submission when Kind is ProvideFeedback
	// via the extraction fast path.
	Answers map[int]string
}

// Action is a classified intent with its parameters.
type Action struct {
	Kind   Kind
	Params Params
}
