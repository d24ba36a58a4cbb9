package exercise

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an IELTS Academic Reading item writer creating short practice exercises.

Rules:
- Write a self-contained passage of 2-3 paragraphs on the given topic, pitched at the given level (beginner = IELTS 4-5, intermediate = 6-6.5, advanced = 7+).
- Write 3-5 questions numbered from 1, each targeting one skill: GIST (main idea), DETAIL (specific fact), or INFERENCE (implied meaning).
- Mix formats across the set: multiple_choice, short_answer, true_false_not_given.
- For multiple_choice provide exactly 4 options prefixed "A) " through "D) ", exactly one correct, and set the correct answer to the option letter alone (A, B, C or D), never the option text. Distractors should reflect plausible misreadings, not random facts.
- For true_false_not_given the correct answer must be exactly TRUE, FALSE or NOT GIVEN. NOT GIVEN means the passage neither confirms nor contradicts the statement.
- For short_answer the answer must be one to three words or a number taken verbatim from the passage.
- Each rationale must quote or point at the passage evidence in one or two sentences.
- Do not reuse a topic listed as recently used.`

// GenerateInput holds the context for one exercise generation.
type GenerateInput struct {
	// Level is required; the caller resolves "auto" before generation.
	Level Level

	// Topic is optional. Empty lets the model choose.
	Topic string

	// RecentTopics lists topics already used in this conversation so the
	// generator can avoid repeats.
	RecentTopics []string

	// History is a compact rendering of recent conversation turns, used
	// for topical continuity. May be empty.
	History string
}

// maxHistoryChars caps the conversation context included in the prompt.
const maxHistoryChars = 2000

// buildUserMessage constructs the generation prompt body.
func buildUserMessage(input GenerateInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Level: %s\n", input.Level)
	if input.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	} else {
		b.WriteString("Topic: your choice\n")
	}

	if len(input.RecentTopics) > 0 {
		b.WriteString("Recently used topics (avoid):\n")
		for i, t := range input.RecentTopics {
			fmt.Fprintf(&b, "%d. %s\n", i+1, t)
		}
	}

	if input.History != "" {
		h := input.History
		if len(h) > maxHistoryChars {
			h = h[len(h)-maxHistoryChars:]
		}
		b.WriteString("\nRecent conversation:\n")
		b.WriteString(h)
	}

	return b.String()
}
