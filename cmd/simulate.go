package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/curriculum"
	"github.com/abhisek/mora/internal/elo"
	"github.com/abhisek/mora/internal/grade"
	"github.com/abhisek/mora/internal/selector"
	"github.com/abhisek/mora/internal/store"
	"github.com/spf13/cobra"
)

// simulateCmd drives the selection and grading pipeline with a
// synthetic learner, no LLM involved. Useful for sanity-checking how
// ratings and concept routing evolve over a run.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a learner answering questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("questions")
		accuracy, _ := cmd.Flags().GetFloat64("accuracy")
		seed, _ := cmd.Flags().GetUint64("seed")
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
		if err := s.Concepts().Seed(ctx, graph.All()); err != nil {
			return fmt.Errorf("seed curriculum: %w", err)
		}

		log := slog.New(slog.DiscardHandler)
		proc := grade.NewProcessor(grade.NewGrader(nil, log), s, log)

		rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		eloParams := elo.DefaultParams()
		selParams := selector.DefaultParams()
		sessionID := uuid.NewString()

		currentConcept := ""
		lastCorrect := false
		correctCount := 0

		for i := 0; i < n; i++ {
			attempts, err := s.Attempts().Recent(ctx, learner, selParams.Window)
			if err != nil {
				return fmt.Errorf("load attempts: %w", err)
			}
			states, err := s.Skills().All(ctx, learner)
			if err != nil {
				return fmt.Errorf("load skill states: %w", err)
			}

			analysis := selector.Analyze(attempts, selParams)
			concept := selector.NextConcept(selector.Input{
				Graph:            graph,
				States:           states,
				Analysis:         analysis,
				CurrentConceptID: currentConcept,
				LastCorrect:      lastCorrect,
			}, selParams)
			qp := selector.ComputeQuestionParams(concept.ID, states, analysis, eloParams, selParams)

			// A stand-in question graded by exact match, so correctness
			// is decided here and the full pipeline runs on it.
			q := content.Question{
				ID:                uuid.NewString(),
				ConceptID:         concept.ID,
				Text:              fmt.Sprintf("simulated question %d on %s", i+1, concept.ID),
				Type:              content.TypeShortAnswer,
				Answer:            "42",
				Difficulty:        qp.TargetDifficulty,
				EstimatedPCorrect: elo.ProbabilityCorrect(qp.RatingUsed, qp.TargetDifficulty, eloParams.Scale),
				Status:            content.StatusApproved,
			}
			if err := s.Questions().Save(ctx, q); err != nil {
				return fmt.Errorf("save question: %w", err)
			}

			answer := "42"
			if rng.Float64() >= accuracy {
				answer = "0"
			}

			out, err := proc.Process(ctx, grade.Submission{
				LearnerID: learner,
				SessionID: sessionID,
				Question:  q,
				Answer:    answer,
			})
			if err != nil {
				return fmt.Errorf("process answer: %w", err)
			}

			mark := "wrong"
			if out.Correct {
				mark = "correct"
				correctCount++
			}
			fmt.Printf("Q%-3d %-24s  diff %6.0f  rating %6.0f  mastery %3.0f%%  %s\n",
				i+1, truncate(concept.Name, 24), q.Difficulty, out.Rating, out.Mastery*100, mark)

			currentConcept = concept.ID
			lastCorrect = out.Correct
		}

		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%d/%d correct (%.0f%% target rate)\n", correctCount, n, accuracy*100)
		return nil
	},
}

func init() {
	simulateCmd.Flags().Int("questions", 20, "Number of questions to simulate")
	simulateCmd.Flags().Float64("accuracy", 0.75, "Probability the simulated learner answers correctly")
	simulateCmd.Flags().Uint64("seed", 1, "Random seed")
	simulateCmd.Flags().String("learner", "sim", "Learner profile to write to")
}
