// Package cmd wires the CLI surface: the interactive chat client plus a
// few maintenance commands over the local database.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/avetrov/readmentor/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "readmentor",
	Short: "Conversational IELTS Reading tutor",
	Long:  "Readmentor — terminal chat tutor that generates IELTS-style reading exercises, checks your answers, and talks you through the ones you miss.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func Execute() error {
	// Missing .env is fine; env vars may be set directly.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides READMENTOR_DB env var)")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then READMENTOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
