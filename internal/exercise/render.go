package exercise

import (
	"fmt"
	"strings"
)

const separator = "------------------------------"

var levelBadges = map[Level]string{
	LevelBeginner:     "[beginner]",
	LevelIntermediate: "[intermediate]",
	LevelAdvanced:     "[advanced]",
}

// Render formats an exercise into the chat transcript layout: header,
// passage, then the numbered questions with their answer instructions.
func Render(e *Exercise) string {
	var b strings.Builder

	badge := levelBadges[e.Level]
	if badge == "" {
		badge = "[" + string(e.Level) + "]"
	}
	fmt.Fprintf(&b, "Level: %s %s\n", capitalize(string(e.Level)), badge)
	fmt.Fprintf(&b, "Topic: %s\n", e.Topic)
	fmt.Fprintf(&b, "Length: %d words\n", e.WordCount)
	fmt.Fprintf(&b, "Target time: %d:%02d\n\n", e.TimeTargetSeconds/60, e.TimeTargetSeconds%60)

	b.WriteString(separator + "\n\nPASSAGE\n\n")
	for _, p := range e.Passage {
		b.WriteString(p + "\n\n")
	}

	b.WriteString(separator + "\n\nQUESTIONS\n")
	for _, q := range e.Questions {
		fmt.Fprintf(&b, "\nQ%d. %s\n", q.ID, q.Text)
		switch q.Format {
		case FormatMultipleChoice:
			for _, opt := range q.Options {
				b.WriteString(opt + "\n")
			}
		case FormatShortAnswer:
			b.WriteString("Write your answer (one to three words or a number).\n")
		case FormatTrueFalseNotGiven:
			b.WriteString("A) TRUE\nB) FALSE\nC) NOT GIVEN\n")
		}
	}

	b.WriteString("\n" + separator + "\n")
	b.WriteString("\nType your answers (e.g. \"1-C, 2-A, 3-C\") and I'll check them right away.")
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
