package profile

import (
	"testing"
	"time"
)

func TestUpdateSkill_AccuracyAndTiming(t *testing.T) {
	p := New("stu-1")

	p.UpdateSkill("GIST", true, 30*time.Second)
	p.UpdateSkill("GIST", false, 90*time.Second)
	p.UpdateSkill("DETAIL", true, 60*time.Second)

	gist := p.Skills["GIST"]
	if gist.Attempts != 2 || gist.Correct != 1 {
		t.Fatalf("GIST = %d/%d, want 1/2", gist.Correct, gist.Attempts)
	}
	if gist.AvgTimeSeconds != 60 {
		t.Fatalf("GIST avg time = %v, want 60", gist.AvgTimeSeconds)
	}
	if gist.Accuracy() != 50 {
		t.Fatalf("GIST accuracy = %v, want 50", gist.Accuracy())
	}

	// Overall: 2 of 3 correct.
	if p.OverallAccuracy < 66 || p.OverallAccuracy > 67 {
		t.Fatalf("OverallAccuracy = %v, want ~66.7", p.OverallAccuracy)
	}
}

func TestRecordSession_Achievements(t *testing.T) {
	p := New("stu-1")

	p.RecordSession(25 * time.Minute)
	if p.SessionsCompleted != 1 || p.TotalPracticeMinutes != 25 {
		t.Fatalf("sessions=%d minutes=%d", p.SessionsCompleted, p.TotalPracticeMinutes)
	}
	if !hasAchievement(p, "first_session") {
		t.Fatal("first_session not unlocked")
	}

	for i := 0; i < 9; i++ {
		p.RecordSession(10 * time.Minute)
	}
	if !hasAchievement(p, "10_sessions") {
		t.Fatal("10_sessions not unlocked")
	}

	// Re-recording never duplicates achievements.
	count := 0
	for _, a := range p.Achievements {
		if a == "first_session" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("first_session appears %d times", count)
	}
}

func TestUpdateStreak(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

	p := New("stu-1")
	p.updateStreak(now)
	if p.CurrentStreakDays != 1 {
		t.Fatalf("first activity streak = %d, want 1", p.CurrentStreakDays)
	}

	// Same day: unchanged.
	p.updateStreak(now.Add(2 * time.Hour))
	if p.CurrentStreakDays != 1 {
		t.Fatalf("same-day streak = %d, want 1", p.CurrentStreakDays)
	}

	// Next day: extends.
	p.updateStreak(now.Add(26 * time.Hour))
	if p.CurrentStreakDays != 2 {
		t.Fatalf("next-day streak = %d, want 2", p.CurrentStreakDays)
	}

	// Gap: resets.
	p.updateStreak(now.Add(5 * 24 * time.Hour))
	if p.CurrentStreakDays != 1 {
		t.Fatalf("post-gap streak = %d, want 1", p.CurrentStreakDays)
	}
}

func TestAddWin_Bounded(t *testing.T) {
	p := New("stu-1")
	for i := 0; i < maxRecentWins+4; i++ {
		p.AddWin("win")
	}
	if len(p.RecentWins) != maxRecentWins {
		t.Fatalf("RecentWins length = %d, want %d", len(p.RecentWins), maxRecentWins)
	}
}

func hasAchievement(p *Profile, name string) bool {
	for _, a := range p.Achievements {
		if a == name {
			return true
		}
	}
	return false
}
