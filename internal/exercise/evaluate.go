package exercise

import "sort"

// Verdict is the per-question outcome of an evaluation pass.
type Verdict struct {
	QuestionID int

	// Given is the normalized student answer used for the comparison.
	Given string

	// Want is the normalized correct answer.
	Want string

	Correct bool
}

// Result partitions the answered questions of one evaluation pass.
type Result struct {
	// Verdicts is keyed by question id, one entry per answered question
	// that exists in the exercise.
	Verdicts map[int]Verdict

	// CorrectIDs and IncorrectIDs are in ascending question id order.
	CorrectIDs   []int
	IncorrectIDs []int
}

// Evaluate compares submitted answers against the exercise questions.
//
// Pure function: calling it again after the student resubmits recomputes
// everything from the current answer set with no first-attempt bias.
// Answer keys that reference no question in the exercise are ignored
// (stale submissions against a replaced exercise). Questions without a
// submitted answer receive no verdict.
func Evaluate(answers map[int]string, questions []Question) Result {
	res := Result{Verdicts: make(map[int]Verdict, len(answers))}

	for _, q := range questions {
		raw, ok := answers[q.ID]
		if !ok {
			continue
		}
		given := Normalize(raw, q.Format)
		want := Normalize(q.Answer, q.Format)
		v := Verdict{
			QuestionID: q.ID,
			Given:      given,
			Want:       want,
			Correct:    given == want,
		}
		res.Verdicts[q.ID] = v
		if v.Correct {
			res.CorrectIDs = append(res.CorrectIDs, q.ID)
		} else {
			res.IncorrectIDs = append(res.IncorrectIDs, q.ID)
		}
	}

	sort.Ints(res.CorrectIDs)
	sort.Ints(res.IncorrectIDs)
	return res
}
