// Package profile tracks per-student progress across sessions: skill
// accuracy, practice streaks, and achievements. Profiles persist as JSON
// documents in the store.
package profile

import (
	"time"
)

// SkillStat is cumulative performance on one reading skill.
type SkillStat struct {
	Attempts       int       `json:"attempts"`
	Correct        int       `json:"correct"`
	AvgTimeSeconds float64   `json:"avg_time_seconds"`
	LastPracticed  time.Time `json:"last_practiced"`
}

// Accuracy returns the percentage of correct attempts, 0 when unattempted.
func (s SkillStat) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts) * 100
}

// Profile is the persistent record for one student.
type Profile struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name,omitempty"`

	Skills          map[string]SkillStat `json:"skills"`
	OverallAccuracy float64              `json:"overall_accuracy"`

	SessionsCompleted    int       `json:"sessions_completed"`
	TotalPracticeMinutes int       `json:"total_practice_minutes"`
	CurrentStreakDays    int       `json:"current_streak_days"`
	LastActive           time.Time `json:"last_active"`

	Achievements []string `json:"achievements,omitempty"`
	RecentWins   []string `json:"recent_wins,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// maxRecentWins bounds the recent-wins list.
const maxRecentWins = 5

// New creates an empty profile for studentID.
func New(studentID string) *Profile {
	now := time.Now()
	return &Profile{
		StudentID: studentID,
		Skills:    make(map[string]SkillStat),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateSkill records one evaluated answer for the named skill, updating
// the running time average and overall accuracy.
func (p *Profile) UpdateSkill(skill string, correct bool, timeTaken time.Duration) {
	st := p.Skills[skill]
	st.Attempts++
	if correct {
		st.Correct++
	}

	secs := timeTaken.Seconds()
	if st.AvgTimeSeconds == 0 {
		st.AvgTimeSeconds = secs
	} else {
		st.AvgTimeSeconds = (st.AvgTimeSeconds*float64(st.Attempts-1) + secs) / float64(st.Attempts)
	}
	st.LastPracticed = time.Now()
	p.Skills[skill] = st

	totalAttempts, totalCorrect := 0, 0
	for _, s := range p.Skills {
		totalAttempts += s.Attempts
		totalCorrect += s.Correct
	}
	if totalAttempts > 0 {
		p.OverallAccuracy = float64(totalCorrect) / float64(totalAttempts) * 100
	}
}

// RecordSession marks a completed practice session, advancing the daily
// streak and unlocking milestone achievements.
func (p *Profile) RecordSession(duration time.Duration) {
	p.SessionsCompleted++
	p.TotalPracticeMinutes += int(duration.Minutes())
	p.updateStreak(time.Now())

	switch p.SessionsCompleted {
	case 1:
		p.addAchievement("first_session")
	case 10:
		p.addAchievement("10_sessions")
	case 50:
		p.addAchievement("50_sessions")
	}
	switch p.CurrentStreakDays {
	case 7:
		p.addAchievement("week_streak")
	case 30:
		p.addAchievement("month_streak")
	}
}

// AddWin records a recent success for personalized greetings.
func (p *Profile) AddWin(description string) {
	p.RecentWins = append(p.RecentWins, description)
	if len(p.RecentWins) > maxRecentWins {
		p.RecentWins = p.RecentWins[len(p.RecentWins)-maxRecentWins:]
	}
}

func (p *Profile) updateStreak(now time.Time) {
	today := now.Truncate(24 * time.Hour)
	last := p.LastActive.Truncate(24 * time.Hour)

	switch {
	case p.LastActive.IsZero():
		p.CurrentStreakDays = 1
	case last.Equal(today):
		// Already counted today.
	case today.Sub(last) == 24*time.Hour:
		p.CurrentStreakDays++
	default:
		p.CurrentStreakDays = 1
	}
	p.LastActive = now
}

func (p *Profile) addAchievement(name string) {
	for _, a := range p.Achievements {
		if a == name {
			return
		}
	}
	p.Achievements = append(p.Achievements, name)
}
