package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/avetrov/readmentor/internal/emotion"
	"github.com/avetrov/readmentor/internal/llm"
	"github.com/avetrov/readmentor/internal/persona"
)

const replyRequestPassage = `Working with your own text is a great idea, but I can't take pasted passages yet. What I can do is generate an exam-style passage on any topic you like. Name a topic and a level and I'll build one.`

const replyRequestPractice = `Here's what we can practise together:

1. Reading exercises — a short passage with mixed IELTS question types (multiple choice, short answer, true/false/not given)
2. Hints and explanations for any question you're stuck on
3. Going over your wrong answers together, one at a time

Say "let's practice" and pick a level to get going.`

const replyClarification = "I didn't quite catch what you'd like to do. Do you want a new exercise, a hint, or should I explain one of the questions?"

const (
	chatMaxTokens   = 512
	chatTemperature = 0.8
	chatHistory     = 12
)

// handleChat is open conversation in Alex's voice. Chat failure falls
// back to a canned greeting: an LLM outage must read as small talk, not
// as an error message.
func (s *Service) handleChat(ctx context.Context, message string, history []llm.Message, mood emotion.Emotion, intensity float64) (Reply, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeChat)

	msgs := make([]llm.Message, 0, chatHistory+1)
	if len(history) > chatHistory {
		history = history[len(history)-chatHistory:]
	}
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      s.chatSystemPrompt(mood, intensity),
		Messages:    msgs,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		return Reply{Text: s.voice.Greeting()}, nil
	}

	text := strings.TrimSpace(resp.Text())
	if prefix := s.voice.EmpathyPrefix(mood, intensity); prefix != "" && intensity >= 0.7 {
		text = prefix + "\n\n" + text
	}
	return Reply{Text: text}, nil
}

func (s *Service) chatSystemPrompt(mood emotion.Emotion, intensity float64) string {
	if mood == emotion.Neutral {
		return persona.SystemPrompt
	}
	return fmt.Sprintf("%s\n\nThe student currently seems %s (intensity %.1f of 1). Acknowledge that briefly and adjust your tone.",
		persona.SystemPrompt, mood, intensity)
}

// renderHistory flattens recent turns into the compact text form the
// exercise generator consumes.
func renderHistory(history []llm.Message) string {
	var b strings.Builder
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	return b.String()
}
