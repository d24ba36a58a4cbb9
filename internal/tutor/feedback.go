package tutor

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/avetrov/readmentor/internal/emotion"
	"github.com/avetrov/readmentor/internal/exercise"
	"github.com/avetrov/readmentor/internal/persona"
	"github.com/avetrov/readmentor/internal/session"
	"github.com/avetrov/readmentor/internal/store"
)

const replyNoExercise = "There's no exercise on the table yet! Say \"let's practice\" and I'll generate a passage for you."

// handleFeedback records a submission, evaluates it, and arms remediation
// for any wrong answers. Record + evaluate + begin-remediation happen in
// one critical section so a double-submit can't interleave.
func (s *Service) handleFeedback(ctx context.Context, sessionID string, parsed map[int]string, mood emotion.Emotion, intensity float64) (Reply, error) {
	var (
		result    exercise.Result
		questions []exercise.Question
		first     session.Remediation
		armed     bool
		elapsed   time.Duration
		noEx      bool
	)
	err := s.sessions.Do(sessionID, func(sess *session.Session) error {
		if sess.Exercise == nil {
			noEx = true
			return nil
		}
		sess.RecordAnswers(parsed)
		result = exercise.Evaluate(sess.Answers, sess.Exercise.Questions)
		questions = sess.Exercise.Questions
		elapsed = time.Since(sess.StartedAt)

		if len(result.IncorrectIDs) > 0 {
			items := lo.Map(result.IncorrectIDs, func(id int, _ int) session.Remediation {
				v := result.Verdicts[id]
				rem := session.Remediation{
					QuestionID: id,
					Given:      v.Given,
					Want:       v.Want,
				}
				if q := sess.Exercise.QuestionByID(id); q != nil {
					rem.QuestionText = q.Text
				}
				return rem
			})
			sess.BeginRemediation(items)
			first, armed = sess.CurrentRemediation()
		}
		return nil
	})
	if err != nil {
		return Reply{}, err
	}
	if noEx {
		return Reply{Text: replyNoExercise}, nil
	}

	s.recordOutcomes(ctx, sessionID, result, questions, elapsed)

	return Reply{Text: s.feedbackText(result, first, armed, mood, intensity)}, nil
}

func (s *Service) feedbackText(result exercise.Result, first session.Remediation, armed bool, mood emotion.Emotion, intensity float64) string {
	var b strings.Builder

	if prefix := s.voice.EmpathyPrefix(mood, intensity); prefix != "" {
		b.WriteString(prefix + "\n\n")
	}

	ids := make([]int, 0, len(result.Verdicts))
	for id := range result.Verdicts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		v := result.Verdicts[id]
		if v.Correct {
			fmt.Fprintf(&b, "Question %d: correct (%s)\n", id, v.Given)
		} else {
			fmt.Fprintf(&b, "Question %d: not quite (you answered %s)\n", id, v.Given)
		}
	}
	fmt.Fprintf(&b, "\nScore: %d/%d\n\n", len(result.CorrectIDs), len(ids))

	if !armed {
		b.WriteString(s.voice.Encouragement(persona.ResultCorrect))
		b.WriteString("\nWant to try a harder one?")
		return b.String()
	}

	b.WriteString(s.voice.Encouragement(persona.ResultWrong))
	b.WriteString("\n\n" + probe(first))
	b.WriteString("\n(Say \"skip\" if you'd rather jump straight to the explanation of the next one.)")
	return b.String()
}

// recordOutcomes persists answer events and profile skill stats. Both are
// best effort: persistence failure never fails the turn.
func (s *Service) recordOutcomes(ctx context.Context, sessionID string, result exercise.Result, questions []exercise.Question, elapsed time.Duration) {
	byID := make(map[int]exercise.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	for id, v := range result.Verdicts {
		q, ok := byID[id]
		if !ok {
			continue
		}
		if s.answers != nil {
			ev := store.AnswerEventData{
				SessionID:  sessionID,
				QuestionID: id,
				Skill:      string(q.Skill),
				Format:     string(q.Format),
				Given:      v.Given,
				Want:       v.Want,
				Correct:    v.Correct,
			}
			if err := s.answers.AppendAnswer(ctx, ev); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to record answer event: %v\n", err)
			}
		}
		if s.profiles != nil {
			if err := s.profiles.RecordAnswer(ctx, sessionID, string(q.Skill), v.Correct, elapsed); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to update profile: %v\n", err)
			}
		}
	}
}
