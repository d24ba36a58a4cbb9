package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/avetrov/readmentor/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()

		skills, err := st.SkillAccuracies(ctx)
		if err != nil {
			return err
		}
		if len(skills) == 0 {
			fmt.Println("No answers recorded yet. Run a chat session first.")
			return nil
		}

		fmt.Println("Accuracy by skill:")
		for _, s := range skills {
			pct := float64(s.Correct) / float64(s.Attempts) * 100
			fmt.Printf("  %-10s %3d/%3d  (%.0f%%)\n", s.Skill, s.Correct, s.Attempts, pct)
		}

		llmStats, err := st.LLMStatsByPurpose(ctx)
		if err != nil {
			return err
		}
		if len(llmStats) > 0 {
			fmt.Println("\nLLM usage by purpose:")
			purposes := make([]string, 0, len(llmStats))
			for p := range llmStats {
				purposes = append(purposes, p)
			}
			sort.Strings(purposes)
			for _, p := range purposes {
				u := llmStats[p]
				fmt.Printf("  %-16s %4d requests, %d failed, %d in / %d out tokens\n",
					p, u.Requests, u.Failures, u.InputTokens, u.OutputTokens)
			}
		}
		return nil
	},
}
