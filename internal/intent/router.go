package intent

import (
	"context"
	"strings"

	"github.com/avetrov/readmentor/internal/extract"
	"github.com/avetrov/readmentor/internal/llm"
)

// Router turns a chat message into an Action. Cheap deterministic checks
// run first; the LLM classifier is the last resort, and any failure there
// degrades to general chat rather than surfacing an error to the student.
type Router struct {
	classifier Classifier
}

// NewRouter creates a Router that falls back to the given classifier.
func NewRouter(classifier Classifier) *Router {
	return &Router{classifier: classifier}
}

// greetings are short messages routed straight to chat. Checked only for
// messages of at most two words so "hi, why is question 2 wrong" still
// reaches the classifier. Multi-word entries match the whole message.
var greetings = map[string]bool{
	"hi":           true,
	"hello":        true,
	"hey":          true,
	"yo":           true,
	"morning":      true,
	"good morning": true,
	"good evening": true,
	"thanks":       true,
	"thank":        true,
	"thank you":    true,
	"ok":           true,
	"okay":         true,
	"bye":          true,
	"goodbye":      true,
}

// practiceKeywords trigger exercise generation without an LLM round trip.
var practiceKeywords = []string{
	"new exercise",
	"new passage",
	"another exercise",
	"another passage",
	"another one",
	"next exercise",
	"next passage",
	"give me an exercise",
	"let's practice",
	"lets practice",
	"practice reading",
	"start practicing",
	"i want to practice",
}

var levelWords = []string{"beginner", "intermediate", "advanced", "easy", "hard"}

// Route classifies message. hasExercise reports whether the session has an
// active exercise; answer extraction only applies when it does, since
// letters in a message can't be answers to nothing.
func (r *Router) Route(ctx context.Context, message string, history []llm.Message, hasExercise bool) Action {
	trimmed := strings.TrimSpace(message)
	lower := strings.ToLower(trimmed)

	// 1. Answer submission beats everything else.
	if hasExercise {
		if answers := extract.Answers(trimmed); len(answers) > 0 {
			return Action{Kind: KindProvideFeedback, Params: Params{Answers: answers}}
		}
	}

	// 2. Short greetings, matched as the whole message so "good morning"
	// resolves without an LLM round trip.
	if words := strings.Fields(lower); len(words) > 0 && len(words) <= 2 {
		for i, w := range words {
			words[i] = strings.Trim(w, ".,!?")
		}
		if greetings[strings.Join(words, " ")] || greetings[words[0]] {
			return Action{Kind: KindGeneralChat}
		}
	}

	// 3. Practice requests by keyword.
	for _, kw := range practiceKeywords {
		if strings.Contains(lower, kw) {
			return Action{Kind: KindGeneratePractice, Params: Params{Level: levelWord(lower)}}
		}
	}

	// 4. Everything else goes to the classifier. Routing must never fail,
	// so classifier errors and unknown tags degrade to chat.
	action, err := r.classifier.Classify(ctx, trimmed, history)
	if err != nil {
		return Action{Kind: KindGeneralChat}
	}

	if action.Kind == KindGenerateExplanation || action.Kind == KindGenerateHint {
		if action.Params.QuestionID == 0 {
			if id, ok := extract.QuestionRef(trimmed); ok {
				action.Params.QuestionID = id
			}
		}
	}
	return action
}

func levelWord(lower string) string {
	for _, w := range levelWords {
		if strings.Contains(lower, w) {
			switch w {
			case "easy":
				return "beginner"
			case "hard":
				return "advanced"
			}
			return w
		}
	}
	return ""
}
