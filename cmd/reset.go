package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avetrov/readmentor/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset <student-id>",
	Short: "Delete a student's profile",
	Args:  cobra.ExactArgs(1),
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

		if err := st.ResetProfile(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Profile reset for", args[0])
		return nil
	},
}
