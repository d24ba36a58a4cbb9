package exercise

import (
	"fmt"
	"strings"
)

// ValidationError describes why a generated exercise was rejected.
type ValidationError struct {
	Validator string
	Message   string

	// Retryable indicates regeneration may produce a valid exercise.
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Validator, e.Message)
}

// Validator checks one aspect of a generated exercise.
type Validator interface {
	Name() string
	Validate(e *Exercise) *ValidationError
}

// DefaultValidators returns the validators run after generation, in order.
func DefaultValidators() []Validator {
	return []Validator{
		&StructureValidator{},
		&QuestionFormatValidator{},
	}
}

// StructureValidator checks passage presence and question id integrity.
type StructureValidator struct{}

func (v *StructureValidator) Name() string { return "structure" }

func (v *StructureValidator) Validate(e *Exercise) *ValidationError {
	if len(e.Passage) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "empty passage", Retryable: true}
	}
	for _, p := range e.Passage {
		if strings.TrimSpace(p) == "" {
			return &ValidationError{Validator: v.Name(), Message: "blank passage paragraph", Retryable: true}
		}
	}
	if len(e.Questions) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "no questions", Retryable: true}
	}

	seen := make(map[int]bool, len(e.Questions))
	for _, q := range e.Questions {
		if q.ID <= 0 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question id %d is not positive", q.ID),
				Retryable: true,
			}
		}
		if seen[q.ID] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate question id %d", q.ID),
				Retryable: true,
			}
		}
		seen[q.ID] = true
	}
	return nil
}

// QuestionFormatValidator checks per-format constraints: option counts for
// multiple choice, canonical labels for true/false/not-given, answer
// membership in the option set.
type QuestionFormatValidator struct{}

func (v *QuestionFormatValidator) Name() string { return "question-format" }

func (v *QuestionFormatValidator) Validate(e *Exercise) *ValidationError {
	for _, q := range e.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return v.fail(q.ID, "empty question text")
		}
		if strings.TrimSpace(q.Answer) == "" {
			return v.fail(q.ID, "empty correct answer")
		}

		switch q.Format {
		case FormatMultipleChoice:
			if len(q.Options) < 2 {
				return v.fail(q.ID, fmt.Sprintf("multiple choice needs at least 2 options, got %d", len(q.Options)))
			}
			if !answerLetterOf(q.Options, q.Answer) {
				return v.fail(q.ID, fmt.Sprintf("answer %q is not the letter of one of the options", q.Answer))
			}
		case FormatTrueFalseNotGiven:
			switch Normalize(q.Answer, FormatTrueFalseNotGiven) {
			case LabelTrue, LabelFalse, LabelNotGiven:
			default:
				return v.fail(q.ID, fmt.Sprintf("answer %q is not TRUE/FALSE/NOT GIVEN", q.Answer))
			}
		case FormatShortAnswer:
			if len(q.Options) > 0 {
				return v.fail(q.ID, "short answer must have no options")
			}
		default:
			return v.fail(q.ID, fmt.Sprintf("unknown format %q", q.Format))
		}
	}
	return nil
}

func (v *QuestionFormatValidator) fail(id int, msg string) *ValidationError {
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("question %d: %s", id, msg),
		Retryable: true,
	}
}

// answerLetterOf reports whether answer is exactly the leading letter of
// one of the options ("A) ..." style). Multiple-choice answers are pinned
// to letter form: students submit letters, evaluation is strict equality
// of normalized strings, so a full-text stored answer would mark every
// correct letter submission wrong.
func answerLetterOf(options []string, answer string) bool {
	want := normalizeToken(answer)
	if len(want) != 1 {
		return false
	}
	for _, opt := range options {
		if letter, ok := optionLetter(normalizeToken(opt)); ok && letter == want {
			return true
		}
	}
	return false
}

// optionLetter extracts the leading letter of "A) TEXT" style options.
func optionLetter(opt string) (string, bool) {
	if len(opt) >= 2 && opt[0] >= 'A' && opt[0] <= 'Z' && (opt[1] == ')' || opt[1] == '.' || opt[1] == ':') {
		return opt[:1], true
	}
	return "", false
}
