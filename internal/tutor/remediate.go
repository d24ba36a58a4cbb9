package tutor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/avetrov/readmentor/internal/llm"
	"github.com/avetrov/readmentor/internal/persona"
	"github.com/avetrov/readmentor/internal/session"
)

// skipPattern matches messages that decline to give reasoning.
var skipPattern = regexp.MustCompile(`(?i)^\s*(skip|pass|next|move on|no idea|i? ?do?n'?t know|dunno|just tell me)\b`)

func isSkip(message string) bool {
	return skipPattern.MatchString(message)
}

const explanationSystemPrompt = `You are Alex, an IELTS Reading coach. A student answered a question
incorrectly and has just explained their reasoning. Write a short
explanation (3-5 sentences) that names the specific misconception in
their reasoning, shows why the correct answer is right using the
passage's logic, and ends on an encouraging note. Do not lecture.`

const explanationMaxTokens = 512

// handleRemediationTurn consumes one message while the session awaits
// reasoning for current. The message is either a skip signal or, by
// definition, the student's reasoning; there is no third option.
func (s *Service) handleRemediationTurn(ctx context.Context, sessionID, message string, current session.Remediation) (Reply, error) {
	if isSkip(message) {
		next, resolved, err := s.advancePast(sessionID, current.QuestionID)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Text: s.afterAdvance("No problem, let's move on.", next, resolved)}, nil
	}

	// Any non-skip message is the student's reasoning. Explanation
	// failure still advances: one unexplainable item must never block
	// the rest of the queue.
	explanation, err := s.generateExplanation(ctx, current, message)
	if err != nil {
		explanation = fmt.Sprintf(
			"I couldn't put together a proper explanation just now. The correct answer to question %d is %s. Let's keep going.",
			current.QuestionID, current.Want)
	}

	next, resolved, aerr := s.advancePast(sessionID, current.QuestionID)
	if aerr != nil {
		return Reply{}, aerr
	}
	return Reply{Text: s.afterAdvance(explanation, next, resolved)}, nil
}

// advancePast advances remediation if the session still points at
// questionID, guarding against a concurrent turn having advanced already.
// Returns the next pending record and whether the queue resolved.
func (s *Service) advancePast(sessionID string, questionID int) (session.Remediation, bool, error) {
	var (
		next     session.Remediation
		resolved bool
	)
	err := s.sessions.Do(sessionID, func(sess *session.Session) error {
		if cur, ok := sess.CurrentRemediation(); ok && cur.QuestionID == questionID {
			sess.AdvanceRemediation()
		}
		var hasNext bool
		next, hasNext = sess.CurrentRemediation()
		resolved = !hasNext
		return nil
	})
	return next, resolved, err
}

func (s *Service) afterAdvance(lead string, next session.Remediation, resolved bool) string {
	if resolved {
		return lead + "\n\n" + s.voice.Encouragement(persona.ResultPersistence) +
			"\nThat's every question from this round reviewed. Want another exercise?"
	}
	return lead + "\n\n" + probe(next)
}

// probe is the Socratic opener for one pending incorrect answer.
func probe(r session.Remediation) string {
	return fmt.Sprintf(
		"Now, question %d: %s\nYou answered %s. Walk me through it. What in the passage made you choose that?",
		r.QuestionID, r.QuestionText, r.Given)
}

func (s *Service) generateExplanation(ctx context.Context, r session.Remediation, reasoning string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExplanation)

	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", r.QuestionText)
	fmt.Fprintf(&b, "Student's answer: %s\n", r.Given)
	fmt.Fprintf(&b, "Correct answer: %s\n", r.Want)
	fmt.Fprintf(&b, "Student's reasoning: %s\n", reasoning)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:    explanationSystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: b.String()}},
		MaxTokens: explanationMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate explanation: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
