package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/mora/internal/curriculum"
	"github.com/abhisek/mora/internal/elo"
	"github.com/abhisek/mora/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		learner, _ := cmd.Flags().GetString("learner")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		graph := curriculum.NewGraph(curriculum.Default())
		states, err := s.Skills().All(ctx, learner)
		if err != nil {
			return fmt.Errorf("load skill states: %w", err)
		}

		fmt.Printf("%-28s  %7s  %8s  %8s  %9s  %s\n",
			"Concept", "Rating", "Mastery", "Attempts", "Accuracy", "")
		fmt.Println(strings.Repeat("─", 76))

		var totalAttempts, totalCorrect, mastered int
		for _, c := range graph.All() {
			st, ok := states[c.ID]
			if !ok {
				fmt.Printf("%-28s  %7s  %8s  %8s  %9s\n",
					truncate(c.Name, 28), "-", "-", "-", "-")
				continue
			}
			acc := 0.0
			if st.TotalAttempts > 0 {
				acc = float64(st.CorrectAttempts) / float64(st.TotalAttempts)
			}
			mark := ""
			if elo.IsMastered(st.Mastery, c.Threshold()) {
				mark = "mastered"
				mastered++
			}
			fmt.Printf("%-28s  %7.0f  %7.0f%%  %8d  %8.0f%%  %s\n",
				truncate(c.Name, 28), st.Rating, st.Mastery*100, st.TotalAttempts, acc*100, mark)
			totalAttempts += st.TotalAttempts
			totalCorrect += st.CorrectAttempts
		}

		fmt.Println(strings.Repeat("─", 76))
		overall := 0.0
		if totalAttempts > 0 {
			overall = float64(totalCorrect) / float64(totalAttempts) * 100
		}
		fmt.Printf("%d/%d concepts mastered, %d attempts, %.0f%% accuracy\n",
			mastered, graph.Len(), totalAttempts, overall)
		return nil
	},
}

func init() {
	statsCmd.Flags().String("learner", defaultLearnerID, "Learner profile to report on")
}
