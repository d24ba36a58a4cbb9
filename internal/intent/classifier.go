package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avetrov/readmentor/internal/llm"
)

// Classifier decides what a message is asking for when no fast path
// matched. Implementations must be safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, message string, history []llm.Message) (Action, error)
}

const classifierSystemPrompt = `You are the intent router for an IELTS reading tutor.
Classify the student's latest message into exactly one intent tag.

Tags:
- GENERATE_EXERCISE: the student wants a new reading passage with questions.
- PROVIDE_FEEDBACK: the message contains answers to the current questions.
- GENERATE_EXPLANATION: the student asks why an answer is right or wrong.
- GENERATE_HINT: the student is stuck and wants a nudge, not the answer.
- ASK_SOCRATIC_QUESTION: the student gave reasoning and should be probed further.
- REQUEST_USER_TEXT: the student wants to work on their own passage.
- REQUEST_PRACTICE: the student asks what practice is available.
- ASK_FOR_CLARIFICATION: the message is about the exercise but too vague to act on.
- ANSWER_GENERAL_QUESTION: a question about English or IELTS not tied to a question.
- CHITCHAT: anything else.

Fill level and topic only when the student states them explicitly.
Fill question_id only when the student names a specific question number.
Set skip only when the student declines to explain their reasoning.`

const (
	classifierMaxTokens = 256
	classifierHistory   = 6
)

var classifierSchema = &llm.Schema{
	Name:        "message-intent",
	Description: "Intent classification for one tutoring chat message",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"intent": map[string]any{
				"type":        "string",
				"description": "The single intent tag for the message",
				"enum": []any{
					"GENERATE_EXERCISE",
					"PROVIDE_FEEDBACK",
					"GENERATE_EXPLANATION",
					"GENERATE_HINT",
					"ASK_SOCRATIC_QUESTION",
					"REQUEST_USER_TEXT",
					"REQUEST_PRACTICE",
					"ASK_FOR_CLARIFICATION",
					"ANSWER_GENERAL_QUESTION",
					"CHITCHAT",
				},
			},
			"level": map[string]any{
				"type":        "string",
				"description": "Requested difficulty if stated, else empty",
			},
			"topic": map[string]any{
				"type":        "string",
				"description": "Requested topic if stated, else empty",
			},
			"question_id": map[string]any{
				"type":        "integer",
				"description": "Referenced question number, 0 if none",
			},
			"skip": map[string]any{
				"type":        "boolean",
				"description": "True when the student wants to skip the current step",
			},
		},
		"required": []any{"intent"},
	},
}

type classifierOutput struct {
	Intent     string `json:"intent"`
	Level      string `json:"level"`
	Topic      string `json:"topic"`
	QuestionID int    `json:"question_id"`
	Skip       bool   `json:"skip"`
}

// LLMClassifier implements Classifier on top of an llm.Provider.
type LLMClassifier struct {
	provider llm.Provider
}

// NewLLMClassifier creates a classifier backed by the given provider.
func NewLLMClassifier(provider llm.Provider) *LLMClassifier {
	return &LLMClassifier{provider: provider}
}

func (c *LLMClassifier) Classify(ctx context.Context, message string, history []llm.Message) (Action, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeIntent)

	msgs := recentHistory(history, classifierHistory)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:    classifierSystemPrompt,
		Messages:  msgs,
		Schema:    classifierSchema,
		MaxTokens: classifierMaxTokens,
	})
	if err != nil {
		return Action{}, fmt.Errorf("classify intent: %w", err)
	}

	var out classifierOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Action{}, fmt.Errorf("decode intent: %w", err)
	}

	kind, ok := parseTag(out.Intent)
	if !ok {
		return Action{}, fmt.Errorf("unknown intent tag %q", out.Intent)
	}

	return Action{
		Kind: kind,
		Params: Params{
			Level:      strings.TrimSpace(out.Level),
			Topic:      strings.TrimSpace(out.Topic),
			QuestionID: out.QuestionID,
			Skip:       out.Skip,
		},
	}, nil
}

func recentHistory(history []llm.Message, n int) []llm.Message {
	if len(history) > n {
		history = history[len(history)-n:]
	}
	out := make([]llm.Message, 0, n+1)
	return append(out, history...)
}
