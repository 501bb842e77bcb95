package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/mora/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Deletes all skill states, attempts, and history for a learner. Generated questions and LLM events are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		learner, _ := cmd.Flags().GetString("learner")
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			fmt.Printf("Delete all progress for learner %q? [y/N] ", learner)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.ToLower(strings.TrimSpace(line)) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		tx, err := s.DB().Begin()
		if err != nil {
			return fmt.Errorf("begin reset: %w", err)
		}
		defer tx.Rollback()

		for _, table := range []string{"skill_states", "attempts", "skill_history"} {
			if _, err := tx.Exec(
				fmt.Sprintf("DELETE FROM %s WHERE learner_id = ?", table), learner); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit reset: %w", err)
		}

		fmt.Printf("Learner %q reset.\n", learner)
		return nil
	},
}

func init() {
	resetCmd.Flags().String("learner", defaultLearnerID, "Learner profile to reset")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
}
