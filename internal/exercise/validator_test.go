package exercise

import (
	"strings"
	"testing"
)

func validExercise() *Exercise {
	return &Exercise{
		Level:   LevelIntermediate,
		Topic:   "Urban beekeeping",
		Passage: []string{"Paragraph one.", "Paragraph two."},
		Questions: []Question{
			{
				ID: 1, Skill: SkillGist, Format: FormatMultipleChoice,
				Text:    "What is the main idea?",
				Options: []string{"A) Bees thrive in cities", "B) Bees are dying", "C) Cities ban hives", "D) Honey is expensive"},
				Answer:  "A",
			},
			{
				ID: 2, Skill: SkillDetail, Format: FormatTrueFalseNotGiven,
				Text: "Hives are illegal in most cities.", Answer: "NOT GIVEN",
			},
			{
				ID: 3, Skill: SkillInference, Format: FormatShortAnswer,
				Text: "What product do the hives yield?", Answer: "honey",
			},
		},
	}
}

func TestValidators_AcceptValidExercise(t *testing.T) {
	ex := validExercise()
	for _, v := range DefaultValidators() {
		if err := v.Validate(ex); err != nil {
			t.Fatalf("%s rejected a valid exercise: %v", v.Name(), err)
		}
	}
}

func TestStructureValidator_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Exercise)
		substr string
	}{
		{"empty passage", func(e *Exercise) { e.Passage = nil }, "empty passage"},
		{"blank paragraph", func(e *Exercise) { e.Passage = []string{"ok", "  "} }, "blank"},
		{"no questions", func(e *Exercise) { e.Questions = nil }, "no questions"},
		{"zero id", func(e *Exercise) { e.Questions[0].ID = 0 }, "not positive"},
		{"duplicate id", func(e *Exercise) { e.Questions[1].ID = 1 }, "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := validExercise()
			tt.mutate(ex)
			err := (&StructureValidator{}).Validate(ex)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Message, tt.substr) {
				t.Fatalf("message %q does not mention %q", err.Message, tt.substr)
			}
			if !err.Retryable {
				t.Fatal("structure errors should be retryable")
			}
		})
	}
}

func TestQuestionFormatValidator_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Exercise)
	}{
		{"mc too few options", func(e *Exercise) { e.Questions[0].Options = []string{"A) only one"} }},
		{"mc answer not among options", func(e *Exercise) { e.Questions[0].Answer = "E" }},
		{"mc answer as option text", func(e *Exercise) { e.Questions[0].Answer = "Bees thrive in cities" }},
		{"tfng non-canonical answer", func(e *Exercise) { e.Questions[1].Answer = "maybe" }},
		{"short answer with options", func(e *Exercise) { e.Questions[2].Options = []string{"A) honey"} }},
		{"unknown format", func(e *Exercise) { e.Questions[2].Format = Format("essay") }},
		{"empty answer", func(e *Exercise) { e.Questions[0].Answer = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := validExercise()
			tt.mutate(ex)
			if err := (&QuestionFormatValidator{}).Validate(ex); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

// Multiple-choice answers must be stored in letter form: the student is
// told to submit letters and evaluation compares normalized strings, so a
// full-text stored answer would fail every correct letter submission.
func TestAnswerLetterOf(t *testing.T) {
	opts := []string{"A) Bees thrive in cities", "B) Bees are dying"}

	for _, answer := range []string{"A", "a", "B", " b "} {
		if !answerLetterOf(opts, answer) {
			t.Errorf("answerLetterOf(%q) = false, want true", answer)
		}
	}
	for _, answer := range []string{"C", "Bees thrive in cities", "BEES ARE DYING", ""} {
		if answerLetterOf(opts, answer) {
			t.Errorf("answerLetterOf(%q) = true, want false", answer)
		}
	}
}
