package exercise

import "strings"

// Exercise is a generated practice unit: a short reading passage plus an
// ordered set of questions. Immutable once stored in a session; replaced
// wholesale when a new exercise is generated.
type Exercise struct {
	// Level is the difficulty tier the exercise was generated for.
	Level Level

	// Topic is a short topic label, e.g. "ocean exploration".
	Topic string

	// TimeTargetSeconds is the suggested completion time.
	TimeTargetSeconds int

	// WordCount is the passage length reported by the generator.
	WordCount int

	// Passage holds the passage paragraphs in reading order.
	Passage []string

	// Questions is ordered by ascending ID.
	Questions []Question
}

// Question belongs to exactly one Exercise.
type Question struct {
	// ID is unique within the exercise, 1-based and stable.
	ID int

	// Skill is the reading sub-skill the question targets.
	Skill Skill

	// Format determines which normalization rule applies to answers.
	Format Format

	// Text is the question prompt shown to the student.
	Text string

	// Options holds the choice labels for multiple choice, already
	// prefixed ("A) ...", "B) ..."). Empty for other formats.
	Options []string

	// Answer is the canonical correct answer.
	Answer string

	// Rationale explains why Answer is correct. Shown during remediation.
	Rationale string
}

// Level is the exercise difficulty tier.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// ParseLevel maps a free-form token to a Level.
// Returns ("", false) for anything unrecognized.
func ParseLevel(s string) (Level, bool) {
	switch Level(strings.ToLower(normalizeToken(s))) {
	case LevelBeginner:
		return LevelBeginner, true
	case LevelIntermediate:
		return LevelIntermediate, true
	case LevelAdvanced:
		return LevelAdvanced, true
	}
	return "", false
}

// Format describes how the student answers a question.
type Format string

const (
	FormatMultipleChoice    Format = "multiple_choice"
	FormatShortAnswer       Format = "short_answer"
	FormatTrueFalseNotGiven Format = "true_false_not_given"
)

// Skill is the reading sub-skill a question exercises.
type Skill string

const (
	SkillGist      Skill = "GIST"
	SkillDetail    Skill = "DETAIL"
	SkillInference Skill = "INFERENCE"
)

// QuestionByID returns the question with the given id, or nil.
func (e *Exercise) QuestionByID(id int) *Question {
	for i := range e.Questions {
		if e.Questions[i].ID == id {
			return &e.Questions[i]
		}
	}
	return nil
}
