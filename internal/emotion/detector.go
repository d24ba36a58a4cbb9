// Package emotion detects the student's emotional state from message
// text. Detection is regex-based and deliberately cheap: it runs on every
// turn, so it must never call out to a model.
package emotion

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// Emotion is a detected student state.
type Emotion string

const (
	Frustrated Emotion = "frustrated"
	Confused   Emotion = "confused"
	Confident  Emotion = "confident"
	Anxious    Emotion = "anxious"
	Tired      Emotion = "tired"
	Motivated  Emotion = "motivated"
	Neutral    Emotion = "neutral"
)

var patterns = map[Emotion][]*regexp.Regexp{
	Frustrated: compile(
		`i (don'?t|cant|cannot) (get|understand|do) (this|it)`,
		`\b(ugh|argh|grrr|damn)\b`,
		`this is (so )?(hard|difficult|impossible|stupid|annoying)`,
		`i('m| am) (so )?(frustrated|angry|upset|done)`,
		`(hate|can't stand) (this|ielts|reading)`,
		`give up|giving up|quit`,
		`what('s| is) the point`,
		`(waste of|wasting) time`,
	),
	Confused: compile(
		`i (don'?t|do not) (understand|get|know)`,
		`(what|how) (do you mean|does this mean)`,
		`\b(confused|lost|stuck)\b`,
		`\?\?\?+`,
		`\b(huh|what)\??$`,
		`can you (explain|clarify|help)`,
		`i('m| am) not sure`,
		`makes no sense`,
	),
	Anxious: compile(
		`(exam|test) (is )?(tomorrow|soon|next week|in \d+ days?)`,
		`\b(nervous|anxious|scared|worried|stressed)\b`,
		`(what if|afraid) i (fail|don'?t pass)`,
		`running out of time`,
		`panic|panicking`,
		`need (band )?\d+ (score)?`,
	),
	Tired: compile(
		`\b(tired|exhausted|sleepy|drowsy)\b`,
		`(can'?t|cannot) (focus|concentrate|think)`,
		`(brain|head) (hurts?|fried|dead)`,
		`(need|taking) a break`,
		`been (studying|practicing) (for|all) (hours|\d+)`,
	),
	Confident: compile(
		`\b(i )?(got|get) (it|this)\b`,
		`\b(easy|simple|no problem)\b`,
		`(i'?m|feel) (ready|confident|good)`,
		`bring it on|let'?s go`,
		`(nailed|aced|crushed) (it|this|that)`,
		`(making|getting) (progress|better)`,
	),
	Motivated: compile(
		`let'?s (do|go|start|try)`,
		`\b(ready|excited|pumped|eager)\b`,
		`(want|need) to (improve|practice|learn)`,
		`(one|another) more`,
		`keep going|continue`,
		`show me|teach me|give me`,
	),
}

var (
	highMarkers = compile(`\bso `, `\bvery `, `\breally `, `\bextremely `, `\bsuper `, `!!!+`)
	lowMarkers  = compile(`a (bit|little) `, `kind of `, `somewhat `, `\bmaybe `)
)

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// Detect returns the dominant emotion in message and its intensity in
// [0.1, 1.0]. Messages matching no pattern are Neutral at 0.5.
func Detect(message string) (Emotion, float64) {
	lower := strings.ToLower(message)

	var dominant Emotion = Neutral
	best := 0
	for _, e := range []Emotion{Frustrated, Confused, Anxious, Tired, Confident, Motivated} {
		score := 0
		for _, p := range patterns[e] {
			if p.MatchString(lower) {
				score++
			}
		}
		if score > best {
			best = score
			dominant = e
		}
	}
	if dominant == Neutral {
		return Neutral, 0.5
	}

	intensity := 0.5
	for _, p := range highMarkers {
		if p.MatchString(lower) {
			intensity = math.Min(1.0, intensity+0.2)
		}
	}
	for _, p := range lowMarkers {
		if p.MatchString(lower) {
			intensity = math.Max(0.1, intensity-0.15)
		}
	}
	if strings.Count(message, "!") > 2 {
		intensity = math.Min(1.0, intensity+0.1)
	}
	if upperRatio(message) > 0.5 {
		intensity = math.Min(1.0, intensity+0.15)
	}
	return dominant, math.Round(intensity*100) / 100
}

func upperRatio(s string) float64 {
	if s == "" {
		return 0
	}
	upper := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(len([]rune(s)))
}
