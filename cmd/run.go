package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abhisek/mora/internal/app"
	"github.com/abhisek/mora/internal/curriculum"
	"github.com/abhisek/mora/internal/grade"
	"github.com/abhisek/mora/internal/llm"
	"github.com/abhisek/mora/internal/question"
	"github.com/abhisek/mora/internal/store"
	"github.com/spf13/cobra"
)

// defaultLearnerID identifies the single local learner. Multi-profile
// support would thread a flag through here.
const defaultLearnerID = "default"

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
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

	graph := curriculum.NewGraph(curriculum.Default())
	if err := st.Concepts().Seed(ctx, graph.All()); err != nil {
		return fmt.Errorf("seed curriculum: %w", err)
	}

	log, closeLog := openLogger(dbPath)
	defer closeLog()

	// Provider is optional. Without one the generator fails on use
	// and practice surfaces the error, while specialty concepts keep
	// working.
	var gen question.Generator
	provider, err := llm.NewProviderFromEnv(ctx, st.Events())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Question generation will be unavailable outside built-in concepts.")
		gen = question.NewLLMGenerator(llm.NewMockProvider())
	} else {
		gen = question.NewLLMGenerator(provider)
	}

	questions := question.NewService(graph, gen, st, log)
	questions.Topic = "1st grade math"

	grader := grade.NewGrader(provider, log)
	processor := grade.NewProcessor(grader, st, log)

	return app.Run(app.Deps{
		Questions: questions,
		Processor: processor,
		Graph:     graph,
		Store:     st,
		LearnerID: defaultLearnerID,
	})
}

// openLogger writes structured logs to mora.log beside the database.
// Stderr belongs to the TUI, so file logging is the only usable sink
// while the app runs. Falls back to discarding on error.
func openLogger(dbPath string) (*slog.Logger, func()) {
	path := filepath.Join(filepath.Dir(dbPath), "mora.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.DiscardHandler), func() {}
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }
}
