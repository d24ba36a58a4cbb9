package tutor

import (
	"context"

	"github.com/avetrov/readmentor/internal/exercise"
	"github.com/avetrov/readmentor/internal/intent"
	"github.com/avetrov/readmentor/internal/llm"
	"github.com/avetrov/readmentor/internal/session"
)

const replyAskLevel = `Happy to! What level would you like?

1. Beginner — shorter passage, direct questions
2. Intermediate — exam-length passage, mixed question types
3. Advanced — dense passage, inference-heavy questions

Just say "beginner", "intermediate" or "advanced".`

const replyGenerationFailed = "I couldn't put an exercise together just now. Give it another try in a moment?"

// handlePractice generates a new exercise. The session is only mutated
// after generation succeeds; a failed generation leaves the previous
// exercise and any remediation state untouched.
func (s *Service) handlePractice(ctx context.Context, sessionID string, params intent.Params, history []llm.Message) (Reply, error) {
	level, ok := exercise.ParseLevel(params.Level)
	if !ok {
		return Reply{Text: replyAskLevel}, nil
	}

	var recent []string
	if err := s.sessions.Do(sessionID, func(sess *session.Session) error {
		recent = append(recent, sess.RecentTopics...)
		return nil
	}); err != nil {
		return Reply{}, err
	}

	ex, err := s.generator.Generate(ctx, exercise.GenerateInput{
		Level:        level,
		Topic:        params.Topic,
		RecentTopics: recent,
		History:      renderHistory(history),
	})
	if err != nil {
		return Reply{Text: replyGenerationFailed}, nil
	}

	if err := s.sessions.Do(sessionID, func(sess *session.Session) error {
		sess.RecordExercise(ex)
		return nil
	}); err != nil {
		return Reply{}, err
	}

	text := s.voice.Transition() + "\n\n" + exercise.Render(ex)
	return Reply{Text: text, NewExercise: true}, nil
}
