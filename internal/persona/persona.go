// Package persona gives the tutor its voice: Alex, a former IELTS
// examiner. It owns the chat system prompt and the canned phrase pools
// used to open, encourage, and empathize without an LLM round trip.
package persona

import (
	"math/rand"
	"sync"

	"github.com/samber/lo"

	"github.com/avetrov/readmentor/internal/emotion"
)

// SystemPrompt is the persona prompt for free-form chat turns.
const SystemPrompt = `You are Alex, an IELTS Reading coach and former IELTS examiner with
8 years of teaching experience. You are encouraging but honest, use light
humour to ease stress, and celebrate small wins.

Rules:
- Stay on IELTS reading, English comprehension, and study habits.
- Keep replies short: two or three sentences unless asked to explain.
- Never invent scores or promise band results.
- If the student seems stuck, suggest generating a practice exercise.
- Use British spellings (colour, practise as the verb).`

// ResultKind selects an encouragement pool.
type ResultKind string

const (
	ResultCorrect     ResultKind = "correct"
	ResultWrong       ResultKind = "wrong"
	ResultStruggling  ResultKind = "struggling"
	ResultPersistence ResultKind = "persistence"
)

var greetingPool = []string{
	"Welcome back! Ready to pick up where we left off?",
	"Hey again! Good to see you. Shall we continue?",
	"Good to see you! How's your confidence feeling today?",
	"Back for more! I like your dedication. What shall we tackle?",
	"Hi there! I'm Alex, your IELTS Reading coach. Want a practice passage to start?",
}

var encouragementPools = map[ResultKind][]string{
	ResultCorrect: {
		"Nailed it! That's exactly the kind of thinking examiners love.",
		"Spot on! You're developing a real eye for this.",
		"Yes! See? You're better at this than you think.",
		"Perfect! That reading strategy is becoming second nature.",
		"Exactly right! You found the key evidence perfectly.",
	},
	ResultWrong: {
		"Not quite, but that's exactly how we learn. Let's unpack this.",
		"This one's tricky. You're not the first to stumble here!",
		"Hmm, let's look at this together. These questions have hidden traps.",
		"That's a trap answer, and now you'll never fall for it again!",
	},
	ResultStruggling: {
		"I can tell this is frustrating. Want to try a different approach?",
		"These are genuinely hard. Even native speakers find them tricky.",
		"Let's slow down. Sometimes the best progress comes from patience.",
		"This type trips up everyone at first. It's not you, it's the question!",
	},
	ResultPersistence: {
		"I love that you're not giving up. That mindset is half the battle.",
		"Your persistence will pay off. I've seen it happen countless times.",
		"Still here, still trying. That's exactly what separates success from giving up.",
	},
}

var transitionPool = []string{
	"Alright, let's shift gears.",
	"Ready for the next challenge?",
	"Let's try something different.",
	"Time for a change of pace.",
}

// empathyPools is keyed by emotion, then by intensity band.
var empathyPools = map[emotion.Emotion]map[string][]string{
	emotion.Frustrated: {
		"high": {
			"I hear you. This IS genuinely frustrating. Let's pause and try a completely different angle.",
			"Take a breath. I've seen students go from exactly where you are to Band 7+. This bump is temporary.",
		},
		"medium": {
			"I get it. These questions can be maddening. But frustration often comes right before a breakthrough.",
			"This one's a tricky beast. Let me show you a technique that makes it click.",
		},
		"low": {
			"A bit challenging, isn't it? That's actually a good sign. You're pushing your limits.",
		},
	},
	emotion.Confused: {
		"high": {
			"Okay, let me try explaining this completely differently. Forget what I said before.",
			"My bad. Let me try a different approach entirely.",
		},
		"medium": {
			"Let me break this down step by step. We'll go slower.",
			"Good that you said something. I'd rather you ask than stay confused!",
		},
		"low": {
			"Fair question! Here's another way to think about it.",
		},
	},
	emotion.Anxious: {
		"high": {
			"I can feel the pressure you're under. Let's focus on what you CAN control right now.",
			"Deep breath. I've coached students who felt exactly like this the week before their exam, and they surprised themselves.",
		},
		"medium": {
			"Test anxiety is real, but so is your preparation. Let's channel that nervous energy into focused practice.",
			"Remember: the exam tests skills, and skills can be trained. That's exactly what we're doing.",
		},
		"low": {
			"A little nervousness is actually good. It keeps you sharp. Let's use that energy!",
		},
	},
	emotion.Tired: {
		"high": {
			"You sound exhausted. Pushing through when you're this tired often does more harm than good. Can you take a short break?",
			"Your brain needs rest to process what you've learned. Maybe pick this up tomorrow when you're fresh?",
		},
		"medium": {
			"Feeling the fatigue? Let's do one more short exercise and then call it for today. Quality over quantity.",
		},
		"low": {
			"Getting a bit tired? That's normal after focused practice. Let's wrap up this section.",
		},
	},
}

// maxRecent is how many picks per category are remembered to avoid
// repeating the same phrase in close succession.
const maxRecent = 3

// Picker selects phrases from the pools while avoiding recent repeats.
// Safe for concurrent use.
type Picker struct {
	mu     sync.Mutex
	rng    *rand.Rand
	recent map[string][]string
}

// NewPicker creates a Picker seeded from seed. Tests pass a fixed seed.
func NewPicker(seed int64) *Picker {
	return &Picker{
		rng:    rand.New(rand.NewSource(seed)),
		recent: make(map[string][]string),
	}
}

// Greeting returns a session opener.
func (p *Picker) Greeting() string {
	return p.pick("greeting", greetingPool)
}

// Encouragement returns a phrase matching the answer outcome.
func (p *Picker) Encouragement(result ResultKind) string {
	pool, ok := encouragementPools[result]
	if !ok {
		pool = encouragementPools[ResultCorrect]
	}
	return p.pick("encouragement_"+string(result), pool)
}

// Transition returns a topic-change phrase.
func (p *Picker) Transition() string {
	return p.pick("transition", transitionPool)
}

// EmpathyPrefix returns an opener matching the detected emotion, or ""
// when the emotion has no empathy pool (neutral, confident, motivated).
func (p *Picker) EmpathyPrefix(e emotion.Emotion, intensity float64) string {
	bands, ok := empathyPools[e]
	if !ok {
		return ""
	}
	band := "medium"
	switch {
	case intensity >= 0.7:
		band = "high"
	case intensity < 0.4:
		band = "low"
	}
	pool := bands[band]
	if len(pool) == 0 {
		pool = bands["medium"]
	}
	return p.pick("empathy_"+string(e)+"_"+band, pool)
}

func (p *Picker) pick(category string, pool []string) string {
	if len(pool) == 0 {
		return ""
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	recent := p.recent[category]
	available := lo.Filter(pool, func(phrase string, _ int) bool {
		return !lo.Contains(recent, phrase)
	})
	if len(available) == 0 {
		available = pool
		recent = nil
	}

	choice := available[p.rng.Intn(len(available))]
	recent = append(recent, choice)
	if len(recent) > maxRecent {
		recent = recent[len(recent)-maxRecent:]
	}
	p.recent[category] = recent
	return choice
}
