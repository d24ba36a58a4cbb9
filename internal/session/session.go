// Package session owns all mutable per-conversation state: the active
// exercise, submitted answers, and the remediation queue. No other
// package mutates this state directly; callers go through Store.Do.
package session

import (
	"time"

	"github.com/avetrov/readmentor/internal/exercise"
)

// State is the remediation phase of a session.
type State int

const (
	// StateIdle — no remediation pending.
	StateIdle State = iota

	// StateAwaitingReasoning — the student has been asked why they chose
	// their answer for the question AwaitingID points at.
	StateAwaitingReasoning

	// StateResolved — all incorrect items of the last evaluation pass
	// have been processed. Returns to StateIdle on the next exercise.
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingReasoning:
		return "awaiting_reasoning"
	case StateResolved:
		return "resolved"
	}
	return "unknown"
}

// Remediation is one queued incorrect answer awaiting the Socratic
// ask-reasoning-then-explain exchange.
type Remediation struct {
	QuestionID   int
	Given        string // normalized student answer, as displayed
	Want         string // correct answer
	QuestionText string
}

// Session holds the conversation state for one session id. Created
// implicitly on first use and never destroyed by the core; eviction is
// the hosting environment's concern.
type Session struct {
	ID string

	// Exercise is the active practice unit, nil before first generation.
	Exercise *exercise.Exercise

	// Answers maps question id to the most recently submitted raw
	// answer. Resubmission overwrites.
	Answers map[int]string

	// Pending holds a remediation record for every question answered
	// incorrectly in the most recent evaluation pass, keyed by question id.
	Pending map[int]Remediation

	// AwaitingID is the question currently awaiting the student's
	// reasoning. Zero when no question is awaiting. At most one question
	// awaits reasoning at a time; this is a per-session lock by design.
	AwaitingID int

	// State is the remediation phase.
	State State

	// RecentTopics lists topics of exercises generated in this session,
	// newest last, for generation dedup.
	RecentTopics []string

	// StartedAt is when the active exercise was handed to the student,
	// used to estimate time-on-task for profile stats.
	StartedAt time.Time
}

func newSession(id string) *Session {
	return &Session{
		ID:      id,
		Answers: make(map[int]string),
		Pending: make(map[int]Remediation),
	}
}

// maxRecentTopics bounds the topic dedup list.
const maxRecentTopics = 8

// RecordExercise replaces the active exercise and resets all answer and
// remediation state. Starting a new exercise always clears remediation.
func (s *Session) RecordExercise(ex *exercise.Exercise) {
	s.Exercise = ex
	s.Answers = make(map[int]string)
	s.Pending = make(map[int]Remediation)
	s.AwaitingID = 0
	s.State = StateIdle
	s.StartedAt = time.Now()

	if ex.Topic != "" {
		s.RecentTopics = append(s.RecentTopics, ex.Topic)
		if len(s.RecentTopics) > maxRecentTopics {
			s.RecentTopics = s.RecentTopics[len(s.RecentTopics)-maxRecentTopics:]
		}
	}
}

// RecordAnswers merges parsed answers into the session. Keys present in
// parsed overwrite prior values; absent keys are untouched.
func (s *Session) RecordAnswers(parsed map[int]string) {
	for id, ans := range parsed {
		s.Answers[id] = ans
	}
}

// BeginRemediation installs the pending set and points at the lowest
// question id, establishing ascending-id processing order. An empty set
// is a no-op.
func (s *Session) BeginRemediation(items []Remediation) {
	if len(items) == 0 {
		return
	}
	s.Pending = make(map[int]Remediation, len(items))
	for _, it := range items {
		s.Pending[it.QuestionID] = it
	}
	s.AwaitingID = minPendingID(s.Pending)
	s.State = StateAwaitingReasoning
}

// AdvanceRemediation removes the currently awaited entry and re-points at
// the new lowest remaining id, or resolves the queue when empty.
func (s *Session) AdvanceRemediation() {
	if s.State != StateAwaitingReasoning {
		return
	}
	delete(s.Pending, s.AwaitingID)
	if len(s.Pending) == 0 {
		s.AwaitingID = 0
		s.State = StateResolved
		return
	}
	s.AwaitingID = minPendingID(s.Pending)
}

// CurrentRemediation returns the record the session is awaiting reasoning
// for, or (Remediation{}, false) when none is active.
func (s *Session) CurrentRemediation() (Remediation, bool) {
	if s.State != StateAwaitingReasoning {
		return Remediation{}, false
	}
	r, ok := s.Pending[s.AwaitingID]
	return r, ok
}

func minPendingID(pending map[int]Remediation) int {
	minID := 0
	for id := range pending {
		if minID == 0 || id < minID {
			minID = id
		}
	}
	return minID
}
