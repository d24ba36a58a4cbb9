package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/avetrov/readmentor/internal/exercise"
	"github.com/avetrov/readmentor/internal/extract"
	"github.com/avetrov/readmentor/internal/intent"
	"github.com/avetrov/readmentor/internal/llm"
	"github.com/avetrov/readmentor/internal/session"
)

const replyWhichQuestion = "Which question do you mean? Give me its number, e.g. \"question 2\"."

const replyGenerationRetry = "I'm having trouble putting that together right now. Ask me again in a moment?"

const hintSystemPrompt = `You are Alex, an IELTS Reading coach. The student is stuck on a question.
Give a short hint (2-3 sentences) that points them toward the right part
of the passage or the right reading strategy. Never state or strongly
imply the answer itself.`

const directExplanationSystemPrompt = `You are Alex, an IELTS Reading coach. Explain a question's correct
answer in 3-5 sentences, using the provided rationale and the passage
logic. If the student's own answer is given, address why it is tempting
but wrong.`

const hintMaxTokens = 384

// resolveQuestion finds the question a hint/explanation request refers
// to: the explicit parameter, a textual reference, or, when exactly one
// remediation item is in flight, that item.
func (s *Service) resolveQuestion(sessionID, message string, params intent.Params) (exercise.Question, string, bool, error) {
	id := params.QuestionID
	if id == 0 {
		if ref, ok := extract.QuestionRef(message); ok {
			id = ref
		}
	}

	var (
		q     exercise.Question
		given string
		found bool
	)
	err := s.sessions.Do(sessionID, func(sess *session.Session) error {
		if sess.Exercise == nil {
			return nil
		}
		if id == 0 {
			if cur, ok := sess.CurrentRemediation(); ok {
				id = cur.QuestionID
			}
		}
		if id == 0 {
			return nil
		}
		if qq := sess.Exercise.QuestionByID(id); qq != nil {
			q = *qq
			given = sess.Answers[id]
			found = true
		}
		return nil
	})
	return q, given, found, err
}

func (s *Service) handleHint(ctx context.Context, sessionID, message string, params intent.Params) (Reply, error) {
	q, _, ok, err := s.resolveQuestion(sessionID, message, params)
	if err != nil {
		return Reply{}, err
	}
	if !ok {
		return Reply{Text: replyWhichQuestion}, nil
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeHint)
	body := fmt.Sprintf("Question: %s\nCorrect answer (do NOT reveal): %s\nRationale: %s",
		q.Text, q.Answer, q.Rationale)

	resp, gerr := s.provider.Generate(ctx, llm.Request{
		System:    hintSystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: body}},
		MaxTokens: hintMaxTokens,
	})
	if gerr != nil {
		return Reply{Text: replyGenerationRetry}, nil
	}
	return Reply{Text: strings.TrimSpace(resp.Text())}, nil
}

func (s *Service) handleExplanation(ctx context.Context, sessionID, message string, params intent.Params) (Reply, error) {
	q, given, ok, err := s.resolveQuestion(sessionID, message, params)
	if err != nil {
		return Reply{}, err
	}
	if !ok {
		return Reply{Text: replyWhichQuestion}, nil
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeExplanation)

	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	fmt.Fprintf(&b, "Correct answer: %s\n", q.Answer)
	fmt.Fprintf(&b, "Rationale: %s\n", q.Rationale)
	if given != "" {
		fmt.Fprintf(&b, "Student's answer: %s\n", exercise.Normalize(given, q.Format))
	}

	resp, gerr := s.provider.Generate(ctx, llm.Request{
		System:    directExplanationSystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: b.String()}},
		MaxTokens: explanationMaxTokens,
	})
	if gerr != nil {
		return Reply{Text: replyGenerationRetry}, nil
	}
	return Reply{Text: strings.TrimSpace(resp.Text())}, nil
}
