// Package tutor is the turn handler: it takes one chat message, decides
// what the student wants, reads and writes session state, and produces
// the reply text. All LLM calls for a turn are awaited sequentially here.
package tutor

import (
	"context"

	"github.com/avetrov/readmentor/internal/emotion"
	"github.com/avetrov/readmentor/internal/exercise"
	"github.com/avetrov/readmentor/internal/intent"
	"github.com/avetrov/readmentor/internal/llm"
	"github.com/avetrov/readmentor/internal/persona"
	"github.com/avetrov/readmentor/internal/profile"
	"github.com/avetrov/readmentor/internal/session"
	"github.com/avetrov/readmentor/internal/store"
)

// AnswerLog receives evaluated answer events. *store.Store implements it;
// tests use a fake or leave it nil.
type AnswerLog interface {
	AppendAnswer(ctx context.Context, data store.AnswerEventData) error
}

// Reply is the tutor's response to one message.
type Reply struct {
	Text string

	// NewExercise is set when this turn generated a fresh exercise, so
	// the caller can reset any per-exercise UI state.
	NewExercise bool
}

// Service handles chat turns. Safe for concurrent use across sessions;
// turns on the same session serialize on the session store's per-id lock.
type Service struct {
	sessions  *session.Store
	router    *intent.Router
	provider  llm.Provider
	generator exercise.Generator
	voice     *persona.Picker

	// Optional sinks, nil-safe.
	answers  AnswerLog
	profiles *profile.Service
}

// Options configures optional Service collaborators.
type Options struct {
	AnswerLog AnswerLog
	Profiles  *profile.Service
}

// New creates the turn handler.
func New(sessions *session.Store, router *intent.Router, provider llm.Provider, generator exercise.Generator, voice *persona.Picker, opts Options) *Service {
	return &Service{
		sessions:  sessions,
		router:    router,
		provider:  provider,
		generator: generator,
		voice:     voice,
		answers:   opts.AnswerLog,
		profiles:  opts.Profiles,
	}
}

// Greeting returns a session opener in the tutor's voice.
func (s *Service) Greeting() string {
	return s.voice.Greeting()
}

// HandleMessage processes one student message and returns the reply.
// history is the prior conversation, oldest first, not including message.
//
// Remediation comes first: while the session awaits reasoning for a
// question, every message is consumed by the sequencer (as skip or as
// reasoning) and never reaches the router.
func (s *Service) HandleMessage(ctx context.Context, sessionID, message string, history []llm.Message) (Reply, error) {
	mood, intensity := emotion.Detect(message)

	var (
		awaiting bool
		current  session.Remediation
		active   bool
	)
	err := s.sessions.Do(sessionID, func(sess *session.Session) error {
		active = sess.Exercise != nil
		current, awaiting = sess.CurrentRemediation()
		return nil
	})
	if err != nil {
		return Reply{}, err
	}

	if awaiting {
		return s.handleRemediationTurn(ctx, sessionID, message, current)
	}

	action := s.router.Route(ctx, message, history, active)

	switch action.Kind {
	case intent.KindProvideFeedback:
		return s.handleFeedback(ctx, sessionID, action.Params.Answers, mood, intensity)
	case intent.KindGeneratePractice:
		return s.handlePractice(ctx, sessionID, action.Params, history)
	case intent.KindGenerateHint:
		return s.handleHint(ctx, sessionID, message, action.Params)
	case intent.KindGenerateExplanation:
		return s.handleExplanation(ctx, sessionID, message, action.Params)
	case intent.KindRequestPassage:
		return Reply{Text: replyRequestPassage}, nil
	case intent.KindRequestPractice:
		return Reply{Text: replyRequestPractice}, nil
	case intent.KindAskForClarification:
		return Reply{Text: replyClarification}, nil
	default:
		// GeneralChat and AskSocraticQuestion outside remediation both
		// fall through to open persona chat.
		return s.handleChat(ctx, message, history, mood, intensity)
	}
}
