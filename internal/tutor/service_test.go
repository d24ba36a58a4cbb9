package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/avetrov/readmentor/internal/exercise"
	"github.com/avetrov/readmentor/internal/intent"
	"github.com/avetrov/readmentor/internal/llm"
	"github.com/avetrov/readmentor/internal/persona"
	"github.com/avetrov/readmentor/internal/session"
)

type stubClassifier struct {
	action intent.Action
	err    error
}

func (s *stubClassifier) Classify(_ context.Context, _ string, _ []llm.Message) (intent.Action, error) {
	return s.action, s.err
}

type stubGenerator struct {
	ex    *exercise.Exercise
	err   error
	calls int
}

func (g *stubGenerator) Generate(_ context.Context, _ exercise.GenerateInput) (*exercise.Exercise, error) {
	g.calls++
	return g.ex, g.err
}

func tfngExercise() *exercise.Exercise {
	return &exercise.Exercise{
		Level:             exercise.LevelIntermediate,
		Topic:             "Desert ecosystems",
		TimeTargetSeconds: 300,
		WordCount:         150,
		Passage:           []string{"Deserts host more life than most people assume."},
		Questions: []exercise.Question{
			{ID: 1, Skill: exercise.SkillGist, Format: exercise.FormatTrueFalseNotGiven,
				Text: "Deserts are lifeless.", Answer: "FALSE", Rationale: "The passage states the opposite."},
			{ID: 2, Skill: exercise.SkillDetail, Format: exercise.FormatTrueFalseNotGiven,
				Text: "Some plants store water.", Answer: "TRUE", Rationale: "Stated directly."},
			{ID: 3, Skill: exercise.SkillInference, Format: exercise.FormatTrueFalseNotGiven,
				Text: "Deserts are growing yearly.", Answer: "NOT GIVEN", Rationale: "Never discussed."},
		},
	}
}

type fixture struct {
	svc        *Service
	provider   *llm.MockProvider
	generator  *stubGenerator
	classifier *stubClassifier
}

func newFixture(responses ...llm.MockResponse) *fixture {
	provider := llm.NewMockProvider(responses...)
	classifier := &stubClassifier{err: errors.New("classifier unused")}
	generator := &stubGenerator{ex: tfngExercise()}
	svc := New(
		session.NewStore(),
		intent.NewRouter(classifier),
		provider,
		generator,
		persona.NewPicker(1),
		Options{},
	)
	return &fixture{svc: svc, provider: provider, generator: generator, classifier: classifier}
}

func (f *fixture) loadExercise(t *testing.T, sessionID string) {
	t.Helper()
	err := f.svc.sessions.Do(sessionID, func(s *session.Session) error {
		s.RecordExercise(tfngExercise())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) sessionState(t *testing.T, sessionID string) (session.State, int) {
	t.Helper()
	var st session.State
	var id int
	_ = f.svc.sessions.Do(sessionID, func(s *session.Session) error {
		st, id = s.State, s.AwaitingID
		return nil
	})
	return st, id
}

func TestHandleMessage_AllCorrectSubmission(t *testing.T) {
	f := newFixture()
	f.loadExercise(t, "s1")

	reply, err := f.svc.HandleMessage(context.Background(), "s1", "1-B, 2-A, 3-C", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(reply.Text, "Score: 3/3") {
		t.Fatalf("reply missing score:\n%s", reply.Text)
	}
	if st, _ := f.sessionState(t, "s1"); st != session.StateIdle {
		t.Fatalf("state = %v, want Idle after a clean sheet", st)
	}
	if f.provider.CallCount() != 0 {
		t.Fatal("feedback turn should not call the LLM")
	}
}

func TestHandleMessage_WrongAnswersArmRemediation(t *testing.T) {
	f := newFixture()
	f.loadExercise(t, "s1")

	// Q1 wrong (TRUE vs FALSE), Q2 right, Q3 wrong (TRUE vs NOT GIVEN).
	reply, err := f.svc.HandleMessage(context.Background(), "s1", "1-A, 2-A, 3-A", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(reply.Text, "Score: 1/3") {
		t.Fatalf("reply missing score:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "question 1") {
		t.Fatalf("reply does not probe question 1 first:\n%s", reply.Text)
	}

	st, id := f.sessionState(t, "s1")
	if st != session.StateAwaitingReasoning || id != 1 {
		t.Fatalf("state = %v/%d, want AwaitingReasoning(1)", st, id)
	}
}

func TestHandleMessage_SkipAdvancesWithoutLLM(t *testing.T) {
	f := newFixture()
	f.loadExercise(t, "s1")
	if _, err := f.svc.HandleMessage(context.Background(), "s1", "1-A, 2-A, 3-A", nil); err != nil {
		t.Fatal(err)
	}

	reply, err := f.svc.HandleMessage(context.Background(), "s1", "skip", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply.Text, "question 3") {
		t.Fatalf("skip did not move on to question 3:\n%s", reply.Text)
	}
	if st, id := f.sessionState(t, "s1"); st != session.StateAwaitingReasoning || id != 3 {
		t.Fatalf("state = %v/%d, want AwaitingReasoning(3)", st, id)
	}

	// Skipping the last item resolves the queue.
	reply, err = f.svc.HandleMessage(context.Background(), "s1", "dunno", nil)
	if err != nil {
		t.Fatal(err)
	}
	if st, id := f.sessionState(t, "s1"); st != session.StateResolved || id != 0 {
		t.Fatalf("state = %v/%d, want Resolved", st, id)
	}
	if !strings.Contains(reply.Text, "Want another exercise?") {
		t.Fatalf("missing completion summary:\n%s", reply.Text)
	}
	if f.provider.CallCount() != 0 {
		t.Fatal("skips should not call the LLM")
	}
}

func TestHandleMessage_ReasoningProducesExplanation(t *testing.T) {
	f := newFixture(llm.TextResponse("The passage actually says deserts teem with life."))
	f.loadExercise(t, "s1")
	if _, err := f.svc.HandleMessage(context.Background(), "s1", "1-A, 2-A, 3-C", nil); err != nil {
		t.Fatal(err)
	}

	reply, err := f.svc.HandleMessage(context.Background(), "s1",
		"I picked TRUE because deserts look empty in photos", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(reply.Text, "teem with life") {
		t.Fatalf("reply missing generated explanation:\n%s", reply.Text)
	}
	if st, _ := f.sessionState(t, "s1"); st != session.StateResolved {
		t.Fatalf("state = %v, want Resolved after last item explained", st)
	}

	req := f.provider.Calls[0]
	if !strings.Contains(req.Messages[0].Content, "deserts look empty in photos") {
		t.Fatal("student reasoning not passed to the explanation prompt")
	}
}

// An LLM failure while explaining must advance anyway.
func TestHandleMessage_ExplanationFailureStillAdvances(t *testing.T) {
	f := newFixture(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	f.loadExercise(t, "s1")
	if _, err := f.svc.HandleMessage(context.Background(), "s1", "1-A, 2-A, 3-A", nil); err != nil {
		t.Fatal(err)
	}

	reply, err := f.svc.HandleMessage(context.Background(), "s1", "because I assumed so", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(reply.Text, "FALSE") {
		t.Fatalf("fallback should state the correct answer:\n%s", reply.Text)
	}
	if st, id := f.sessionState(t, "s1"); st != session.StateAwaitingReasoning || id != 3 {
		t.Fatalf("state = %v/%d, want AwaitingReasoning(3)", st, id)
	}
}

// While awaiting reasoning, even a practice request is consumed as
// reasoning rather than routed.
func TestHandleMessage_RemediationConsumesEveryMessage(t *testing.T) {
	f := newFixture(llm.TextResponse("Here is what went wrong."))
	f.loadExercise(t, "s1")
	if _, err := f.svc.HandleMessage(context.Background(), "s1", "1-A, 2-A, 3-C", nil); err != nil {
		t.Fatal(err)
	}

	reply, err := f.svc.HandleMessage(context.Background(), "s1", "let's practice something new", nil)
	if err != nil {
		t.Fatal(err)
	}
	if reply.NewExercise {
		t.Fatal("message was routed to practice generation mid-remediation")
	}
	if f.generator.calls != 0 {
		t.Fatal("generator invoked mid-remediation")
	}
	if !strings.Contains(reply.Text, "Here is what went wrong.") {
		t.Fatalf("message was not consumed as reasoning:\n%s", reply.Text)
	}
}

func TestHandleMessage_PracticeAsksForLevel(t *testing.T) {
	f := newFixture()

	reply, err := f.svc.HandleMessage(context.Background(), "s1", "let's practice", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply.Text, "What level") {
		t.Fatalf("missing level prompt:\n%s", reply.Text)
	}
	if f.generator.calls != 0 {
		t.Fatal("generator invoked without a level")
	}
}

func TestHandleMessage_PracticeGeneratesAndStores(t *testing.T) {
	f := newFixture()

	reply, err := f.svc.HandleMessage(context.Background(), "s1", "let's practice, intermediate please", nil)
	if err != nil {
		t.Fatal(err)
	}

	if !reply.NewExercise {
		t.Fatal("NewExercise not set")
	}
	if !strings.Contains(reply.Text, "PASSAGE") || !strings.Contains(reply.Text, "Desert ecosystems") {
		t.Fatalf("reply missing rendered exercise:\n%s", reply.Text)
	}

	_ = f.svc.sessions.Do("s1", func(s *session.Session) error {
		if s.Exercise == nil || s.Exercise.Topic != "Desert ecosystems" {
			t.Error("exercise not recorded in session")
		}
		return nil
	})
}

// A failed generation leaves the session untouched.
func TestHandleMessage_GenerationFailureLeavesSessionAlone(t *testing.T) {
	f := newFixture()
	f.loadExercise(t, "s1")
	f.generator.ex = nil
	f.generator.err = errors.New("model overloaded")

	reply, err := f.svc.HandleMessage(context.Background(), "s1", "let's practice, advanced", nil)
	if err != nil {
		t.Fatal(err)
	}
	if reply.NewExercise {
		t.Fatal("NewExercise set on failure")
	}
	if !strings.Contains(reply.Text, "another try") {
		t.Fatalf("missing retry text:\n%s", reply.Text)
	}

	_ = f.svc.sessions.Do("s1", func(s *session.Session) error {
		if s.Exercise == nil || s.Exercise.Topic != "Desert ecosystems" {
			t.Error("previous exercise was lost on generation failure")
		}
		return nil
	})
}

func TestHandleMessage_FeedbackWithoutExercise(t *testing.T) {
	f := newFixture()
	f.classifier.err = nil
	f.classifier.action = intent.Action{Kind: intent.KindProvideFeedback}

	reply, err := f.svc.HandleMessage(context.Background(), "s1", "did I do well?", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply.Text, "no exercise") {
		t.Fatalf("missing no-exercise reply:\n%s", reply.Text)
	}
}

func TestHandleMessage_ChatFallsBackToCannedGreeting(t *testing.T) {
	// Classifier fails and the chat LLM call fails: the student still
	// gets a friendly reply, never an error.
	f := newFixture(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})

	reply, err := f.svc.HandleMessage(context.Background(), "s1", "tell me about the test format", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(reply.Text) == "" {
		t.Fatal("empty fallback reply")
	}
}

func TestHandleMessage_HintDoesNotNeedRemediation(t *testing.T) {
	f := newFixture(llm.TextResponse("Look at the second sentence of the passage."))
	f.loadExercise(t, "s1")
	f.classifier.err = nil
	f.classifier.action = intent.Action{Kind: intent.KindGenerateHint}

	reply, err := f.svc.HandleMessage(context.Background(), "s1", "im stuck on question 2, help", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply.Text, "second sentence") {
		t.Fatalf("reply missing hint:\n%s", reply.Text)
	}

	req := f.provider.Calls[0]
	if !strings.Contains(req.Messages[0].Content, "Some plants store water.") {
		t.Fatal("hint prompt does not reference question 2")
	}
}

func TestHandleMessage_ExplanationForResolvedQuestion(t *testing.T) {
	f := newFixture(llm.TextResponse("NOT GIVEN means the passage never commits either way."))
	f.loadExercise(t, "s1")
	f.classifier.err = nil
	f.classifier.action = intent.Action{Kind: intent.KindGenerateExplanation, Params: intent.Params{QuestionID: 3}}

	reply, err := f.svc.HandleMessage(context.Background(), "s1", "why is that one not given?", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply.Text, "never commits") {
		t.Fatalf("reply missing explanation:\n%s", reply.Text)
	}
}

func TestHandleMessage_HintWithoutReferenceAsksWhich(t *testing.T) {
	f := newFixture()
	f.loadExercise(t, "s1")
	f.classifier.err = nil
	f.classifier.action = intent.Action{Kind: intent.KindGenerateHint}

	reply, err := f.svc.HandleMessage(context.Background(), "s1", "give me some help here", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply.Text, "Which question") {
		t.Fatalf("missing clarification prompt:\n%s", reply.Text)
	}
}
