package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/avetrov/readmentor/internal/exercise"
	"github.com/avetrov/readmentor/internal/intent"
	"github.com/avetrov/readmentor/internal/llm"
	"github.com/avetrov/readmentor/internal/persona"
	"github.com/avetrov/readmentor/internal/profile"
	"github.com/avetrov/readmentor/internal/session"
	"github.com/avetrov/readmentor/internal/store"
	"github.com/avetrov/readmentor/internal/tutor"
	"github.com/avetrov/readmentor/internal/ui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive tutoring session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func init() {
	chatCmd.Flags().String("session", "", "Session id to resume within this process (default: new)")
}

// runChat opens the store, builds the turn handler, and launches the TUI.
func runChat(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st)
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w (set READMENTOR_LLM_PROVIDER or an API key)", err)
	}

	sessionID, _ := cmd.Flags().GetString("session")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	svc := tutor.New(
		session.NewStore(),
		intent.NewRouter(intent.NewLLMClassifier(provider)),
		provider,
		exercise.NewGenerator(provider, exercise.DefaultConfig()),
		persona.NewPicker(time.Now().UnixNano()),
		tutor.Options{
			AnswerLog: st,
			Profiles:  profile.NewService(st),
		},
	)

	return ui.Run(svc, sessionID)
}
