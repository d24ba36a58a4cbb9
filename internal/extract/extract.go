// Package extract pulls structured answer submissions out of free-form
// chat messages. It is a best-effort parser: unparseable input yields an
// empty result, never an error, so the caller can treat "no answers" and
// "not an answer message" the same way.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// maxBareAnswers caps the bare-sequence pattern ("A, B, C") to avoid
// reading ordinary prose as an answer list.
const maxBareAnswers = 5

var (
	// "A-2, B-1" — letter-to-number pairs, common in matching tasks where
	// items are lettered and answers numbered.
	letterNumberPattern = regexp.MustCompile(`\b([A-Za-z])\s*[-:]\s*(\d{1,2})\b`)

	// "1-A", "Q2: B", "3-TRUE", "4 - NOT GIVEN".
	numberedPattern = regexp.MustCompile(`(?i)\bQ?(\d{1,2})\s*[-:]\s*([A-Da-d]\b|TRUE|FALSE|NOT[ _]GIVEN)`)

	// "1. A", "Q2. TRUE".
	dottedPattern = regexp.MustCompile(`(?i)\bQ?(\d{1,2})\.\s*([A-Da-d]\b|TRUE|FALSE|NOT[ _]GIVEN)`)

	// Bare sequence: "A, B, C" or "TRUE, FALSE, NOT GIVEN".
	barePattern = regexp.MustCompile(`(?i)\b([A-Da-d]|TRUE|FALSE|NOT[ _]GIVEN)\b`)

	questionRefPattern = regexp.MustCompile(`(?i)\b(?:question|q)\s*(?:number\s*)?(\d{1,2})`)
)

// ordinalWords maps ordinal references to question numbers.
var ordinalWords = []struct {
	word string
	num  int
}{
	{"first", 1}, {"1st", 1},
	{"second", 2}, {"2nd", 2},
	{"third", 3}, {"3rd", 3},
	{"fourth", 4}, {"4th", 4},
	{"fifth", 5}, {"5th", 5},
}

// Answers extracts question-number to raw-answer pairs from a message.
//
// Patterns are tried in priority order and the first family that matches
// wins, so "A-2, B-1" style is never mixed with "1-A" style within one
// message. The returned answers are uppercased but otherwise raw; format
// normalization happens at evaluation time.
func Answers(message string) map[int]string {
	answers := make(map[int]string)

	// Letter-number pairs: A->1, B->2, the number is the answer.
	if pairs := letterNumberPattern.FindAllStringSubmatch(message, -1); len(pairs) > 0 {
		for _, m := range pairs {
			letter := strings.ToUpper(m[1])
			qnum := int(letter[0]-'A') + 1
			answers[qnum] = m[2]
		}
		// Only accept when at least two items parse; a lone "a-2" inside
		// prose ("give me a-2 minute break") is too ambiguous.
		if len(answers) > 1 {
			return answers
		}
		clear(answers)
	}

	for _, m := range numberedPattern.FindAllStringSubmatch(message, -1) {
		qnum, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		answers[qnum] = strings.ToUpper(m[2])
	}
	if len(answers) > 0 {
		return answers
	}

	for _, m := range dottedPattern.FindAllStringSubmatch(message, -1) {
		qnum, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		answers[qnum] = strings.ToUpper(m[2])
	}
	if len(answers) > 0 {
		return answers
	}

	// Bare sequence, assumed to start at question 1. A single bare token
	// is too ambiguous ("a" appears in ordinary prose), so two items is
	// the minimum here as well.
	matches := barePattern.FindAllStringSubmatch(message, -1)
	if len(matches) >= 2 && len(matches) <= maxBareAnswers {
		for i, m := range matches {
			answers[i+1] = strings.ToUpper(m[1])
		}
	}
	return answers
}

// QuestionRef extracts a question number when the user refers to a
// specific question ("why is question 2 wrong", "explain Q3", "the third
// one"). Returns (0, false) when no reference is found.
func QuestionRef(message string) (int, bool) {
	if m := questionRefPattern.FindStringSubmatch(message); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}

	lower := strings.ToLower(message)
	for _, o := range ordinalWords {
		if strings.Contains(lower, o.word) {
			return o.num, true
		}
	}
	return 0, false
}
