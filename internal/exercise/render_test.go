package exercise

import (
	"strings"
	"testing"
)

func TestRender_Layout(t *testing.T) {
	ex := validExercise()
	ex.TimeTargetSeconds = 330
	ex.WordCount = 180

	out := Render(ex)

	for _, want := range []string{
		"Level: Intermediate [intermediate]",
		"Topic: Urban beekeeping",
		"Length: 180 words",
		"Target time: 5:30",
		"PASSAGE",
		"QUESTIONS",
		"Q1. What is the main idea?",
		"A) Bees thrive in cities",
		"Q2. Hives are illegal in most cities.",
		"A) TRUE\nB) FALSE\nC) NOT GIVEN",
		"Q3. What product do the hives yield?",
		"Type your answers",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered exercise missing %q", want)
		}
	}
}
