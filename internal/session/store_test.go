package session

import (
	"sync"
	"testing"
)

func TestStore_CreatesOnFirstAccess(t *testing.T) {
	st := NewStore()
	if st.Len() != 0 {
		t.Fatalf("new store has %d sessions", st.Len())
	}

	err := st.Do("abc", func(s *Session) error {
		if s.ID != "abc" {
			t.Errorf("ID = %q, want abc", s.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Len() != 1 {
		t.Fatalf("Len = %d, want 1", st.Len())
	}
}

func TestStore_SessionIsolation(t *testing.T) {
	st := NewStore()

	_ = st.Do("a", func(s *Session) error {
		s.RecordAnswers(map[int]string{1: "A"})
		return nil
	})
	_ = st.Do("b", func(s *Session) error {
		if len(s.Answers) != 0 {
			t.Errorf("session b sees session a's answers: %v", s.Answers)
		}
		return nil
	})
}

// Concurrent turns on the same session must serialize: the closure bodies
// never interleave, so the final count equals the number of turns.
func TestStore_SerializesPerSession(t *testing.T) {
	st := NewStore()
	const turns = 200

	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Do("same", func(s *Session) error {
				// Read-modify-write that would lose updates if unlocked.
				n := len(s.Answers)
				s.Answers[n+1] = "A"
				return nil
			})
		}()
	}
	wg.Wait()

	_ = st.Do("same", func(s *Session) error {
		if len(s.Answers) != turns {
			t.Errorf("got %d answers, want %d — mutations interleaved", len(s.Answers), turns)
		}
		return nil
	})
}

func TestStore_ConcurrentDistinctSessions(t *testing.T) {
	st := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n%26))
			_ = st.Do(id, func(s *Session) error {
				s.RecordAnswers(map[int]string{n: "A"})
				return nil
			})
		}(i)
	}
	wg.Wait()

	if st.Len() != 26 {
		t.Fatalf("Len = %d, want 26", st.Len())
	}
}
