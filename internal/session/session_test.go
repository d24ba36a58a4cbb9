package session

import (
	"testing"

	"github.com/avetrov/readmentor/internal/exercise"
)

func testExercise(topic string) *exercise.Exercise {
	return &exercise.Exercise{
		Topic:   topic,
		Level:   exercise.LevelIntermediate,
		Passage: []string{"A passage."},
		Questions: []exercise.Question{
			{ID: 1, Format: exercise.FormatTrueFalseNotGiven, Text: "One.", Answer: "TRUE"},
			{ID: 2, Format: exercise.FormatTrueFalseNotGiven, Text: "Two.", Answer: "FALSE"},
			{ID: 3, Format: exercise.FormatTrueFalseNotGiven, Text: "Three.", Answer: "NOT GIVEN"},
		},
	}
}

func remediations(ids ...int) []Remediation {
	out := make([]Remediation, len(ids))
	for i, id := range ids {
		out[i] = Remediation{QuestionID: id, Given: "B", Want: "TRUE"}
	}
	return out
}

func TestRecordAnswers_MergeOverwrites(t *testing.T) {
	s := newSession("s1")
	s.RecordAnswers(map[int]string{1: "A", 2: "B"})
	s.RecordAnswers(map[int]string{2: "C", 3: "A"})

	want := map[int]string{1: "A", 2: "C", 3: "A"}
	for id, w := range want {
		if s.Answers[id] != w {
			t.Errorf("Answers[%d] = %q, want %q", id, s.Answers[id], w)
		}
	}
}

func TestBeginRemediation_PointsAtLowestID(t *testing.T) {
	s := newSession("s1")
	s.BeginRemediation(remediations(3, 1))

	if s.State != StateAwaitingReasoning {
		t.Fatalf("State = %v, want AwaitingReasoning", s.State)
	}
	if s.AwaitingID != 1 {
		t.Fatalf("AwaitingID = %d, want 1", s.AwaitingID)
	}
	if _, ok := s.Pending[s.AwaitingID]; !ok {
		t.Fatal("pointer references a key absent from Pending")
	}
}

func TestBeginRemediation_EmptySetIsNoOp(t *testing.T) {
	s := newSession("s1")
	s.BeginRemediation(nil)
	if s.State != StateIdle || s.AwaitingID != 0 {
		t.Fatalf("empty begin mutated state: %v / %d", s.State, s.AwaitingID)
	}
}

// Skip from AwaitingReasoning(1) with pending {1,3} advances to 3.
func TestAdvanceRemediation_MovesToNextLowest(t *testing.T) {
	s := newSession("s1")
	s.BeginRemediation(remediations(1, 3))

	s.AdvanceRemediation()

	if s.State != StateAwaitingReasoning {
		t.Fatalf("State = %v, want AwaitingReasoning", s.State)
	}
	if s.AwaitingID != 3 {
		t.Fatalf("AwaitingID = %d, want 3", s.AwaitingID)
	}
	if _, ok := s.Pending[1]; ok {
		t.Fatal("question 1 still pending after advance")
	}
}

// Advancing past the last pending item resolves the queue.
func TestAdvanceRemediation_LastItemResolves(t *testing.T) {
	s := newSession("s1")
	s.BeginRemediation(remediations(3))

	s.AdvanceRemediation()

	if s.State != StateResolved {
		t.Fatalf("State = %v, want Resolved", s.State)
	}
	if s.AwaitingID != 0 {
		t.Fatalf("AwaitingID = %d, want cleared", s.AwaitingID)
	}
	if len(s.Pending) != 0 {
		t.Fatalf("Pending not empty: %v", s.Pending)
	}
}

// A new exercise always clears remediation, even mid-queue.
func TestRecordExercise_ResetsRemediation(t *testing.T) {
	s := newSession("s1")
	s.RecordExercise(testExercise("old topic"))
	s.RecordAnswers(map[int]string{1: "B", 2: "B"})
	s.BeginRemediation(remediations(2))

	s.RecordExercise(testExercise("new topic"))

	if s.State != StateIdle {
		t.Fatalf("State = %v, want Idle", s.State)
	}
	if s.AwaitingID != 0 || len(s.Pending) != 0 || len(s.Answers) != 0 {
		t.Fatal("exercise replacement left stale answer/remediation state")
	}
	if len(s.RecentTopics) != 2 {
		t.Fatalf("RecentTopics = %v, want both topics", s.RecentTopics)
	}
}

func TestRecordExercise_BoundsRecentTopics(t *testing.T) {
	s := newSession("s1")
	for i := 0; i < maxRecentTopics+3; i++ {
		s.RecordExercise(testExercise(string(rune('a' + i))))
	}
	if len(s.RecentTopics) != maxRecentTopics {
		t.Fatalf("RecentTopics length = %d, want %d", len(s.RecentTopics), maxRecentTopics)
	}
	if s.RecentTopics[len(s.RecentTopics)-1] != string(rune('a'+maxRecentTopics+2)) {
		t.Fatal("RecentTopics did not keep the newest entries")
	}
}

// N advances from a pending set of size N reach Resolved with strictly
// increasing pointed-to ids.
func TestRemediationProgress(t *testing.T) {
	s := newSession("s1")
	ids := []int{5, 2, 9, 4}
	s.BeginRemediation(remediations(ids...))

	var visited []int
	for range ids {
		if s.State != StateAwaitingReasoning {
			t.Fatalf("queue resolved early after %v", visited)
		}
		visited = append(visited, s.AwaitingID)
		s.AdvanceRemediation()
	}

	if s.State != StateResolved {
		t.Fatalf("State = %v after %d advances, want Resolved", s.State, len(ids))
	}
	for i := 1; i < len(visited); i++ {
		if visited[i] <= visited[i-1] {
			t.Fatalf("pointed ids not strictly increasing: %v", visited)
		}
	}
}

func TestCurrentRemediation(t *testing.T) {
	s := newSession("s1")
	if _, ok := s.CurrentRemediation(); ok {
		t.Fatal("idle session reported an active remediation")
	}

	s.BeginRemediation(remediations(2, 7))
	r, ok := s.CurrentRemediation()
	if !ok || r.QuestionID != 2 {
		t.Fatalf("CurrentRemediation = (%v, %v), want question 2", r, ok)
	}
}
