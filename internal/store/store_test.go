package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/curriculum"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestConceptSeedAndAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	concepts := []curriculum.Concept{
		{ID: "b", Name: "B", OrderIndex: 2, Prerequisites: []string{"a"}},
		{ID: "a", Name: "A", OrderIndex: 1},
	}
	if err := s.Concepts().Seed(ctx, concepts); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := s.Concepts().All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("concepts = %+v, want a then b", got)
	}
	if len(got[1].Prerequisites) != 1 || got[1].Prerequisites[0] != "a" {
		t.Errorf("prerequisites = %v, want [a]", got[1].Prerequisites)
	}

	// Re-seeding updates in place.
	concepts[1].Name = "A renamed"
	if err := s.Concepts().Seed(ctx, concepts); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	got, _ = s.Concepts().All(ctx)
	if got[0].Name != "A renamed" {
		t.Errorf("name after re-seed = %q", got[0].Name)
	}
}

func TestSkillStateLazyDefault(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, found, err := s.Skills().Get(ctx, "learner", "add")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("found a skill state that was never saved")
	}

	state := content.SkillState{
		LearnerID: "learner", ConceptID: "add",
		Rating: 850, Uncertainty: 300, Mastery: 0.4,
		TotalAttempts: 3, CorrectAttempts: 2,
	}
	if err := s.Skills().Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, found, err := s.Skills().Get(ctx, "learner", "add")
	if err != nil || !found {
		t.Fatalf("get after save: found=%v err=%v", found, err)
	}
	if got != state {
		t.Errorf("state = %+v, want %+v", got, state)
	}

	// Upsert overwrites.
	state.Rating = 900
	state.TotalAttempts = 4
	if err := s.Skills().Save(ctx, state); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	all, err := s.Skills().All(ctx, "learner")
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if all["add"].Rating != 900 {
		t.Errorf("rating after upsert = %v, want 900", all["add"].Rating)
	}
}

func TestQuestionRoundTripAndStatus(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	q := content.Question{
		ID:                "q1",
		ConceptID:         "add",
		Text:              "What is 3 + 4?",
		Type:              content.TypeMultipleChoice,
		Options:           []string{"A) 6", "B) 7", "C) 8"},
		Answer:            "B) 7",
		Explanation:       "3 + 4 = 7",
		Difficulty:        760,
		EstimatedPCorrect: 0.8,
		Status:            content.StatusPending,
	}
	if err := s.Questions().Save(ctx, q); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Questions().Get(ctx, "q1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Text != q.Text || got.Type != q.Type || len(got.Options) != 3 {
		t.Errorf("question = %+v", got)
	}

	if err := s.Questions().SetStatus(ctx, "q1", content.StatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	got, _ = s.Questions().Get(ctx, "q1")
	if got.Status != content.StatusApproved {
		t.Errorf("status = %v, want approved", got.Status)
	}

	// Rejected is terminal.
	if err := s.Questions().SetStatus(ctx, "q1", content.StatusRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := s.Questions().SetStatus(ctx, "q1", content.StatusApproved); !errors.Is(err, ErrNotFound) {
		t.Errorf("un-rejecting returned %v, want ErrNotFound", err)
	}

	if _, err := s.Questions().Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get missing returned %v, want ErrNotFound", err)
	}
}

func TestAttemptQueries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	insert := func(id, concept, session, text string, correct bool, offset time.Duration) {
		t.Helper()
		err := s.Attempts().Append(ctx, content.Attempt{
			ID: id, QuestionID: "q-" + id, LearnerID: "learner",
			SessionID: session, ConceptID: concept, QuestionText: text,
			Submitted: "x", IsCorrect: correct,
			ResponseTime: 1500 * time.Millisecond,
			RatingBefore: 800, RatingAfter: 810,
			CreatedAt: base.Add(offset),
		})
		if err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	insert("a1", "add", "s1", "What is 1 + 1?", true, 0)
	insert("a2", "add", "s1", "What is 2 + 2?", false, time.Minute)
	insert("a3", "sub", "s2", "What is 5 - 2?", true, 2*time.Minute)

	recent, err := s.Attempts().Recent(ctx, "learner", 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "a3" || recent[1].ID != "a2" {
		t.Fatalf("recent = %v, want a3 then a2", ids(recent))
	}
	if recent[0].ResponseTime != 1500*time.Millisecond {
		t.Errorf("response time = %v", recent[0].ResponseTime)
	}

	byConcept, err := s.Attempts().RecentByConcept(ctx, "learner", "add", 10)
	if err != nil {
		t.Fatalf("by concept: %v", err)
	}
	if len(byConcept) != 2 || byConcept[0].ID != "a2" {
		t.Fatalf("by concept = %v, want a2 then a1", ids(byConcept))
	}

	bySession, err := s.Attempts().BySession(ctx, "learner", "s1")
	if err != nil {
		t.Fatalf("by session: %v", err)
	}
	if len(bySession) != 2 {
		t.Fatalf("by session = %v", ids(bySession))
	}

	correct, err := s.Attempts().CorrectTexts(ctx, "learner")
	if err != nil {
		t.Fatalf("correct texts: %v", err)
	}
	if len(correct) != 2 {
		t.Errorf("correct texts = %v, want the two correct questions", correct)
	}

	session, err := s.Attempts().SessionTexts(ctx, "learner", "s1")
	if err != nil {
		t.Fatalf("session texts: %v", err)
	}
	if len(session) != 2 {
		t.Errorf("session texts = %v, want both s1 questions", session)
	}
}

func TestHistoryAppendOnly(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i, rating := range []float64{800, 815, 830} {
		err := s.History().Append(ctx, content.HistorySample{
			LearnerID: "learner", ConceptID: "add",
			Rating: rating, Uncertainty: 350, Mastery: 0.3,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	samples, err := s.History().ForConcept(ctx, "learner", "add")
	if err != nil {
		t.Fatalf("for concept: %v", err)
	}
	if len(samples) != 3 || samples[0].Rating != 800 || samples[2].Rating != 830 {
		t.Fatalf("samples = %+v, want ratings oldest first", samples)
	}
}

func TestEventSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := s.Events().AppendLLMRequest(ctx, LLMRequestEvent{
			Provider: "mock", Model: "test", Purpose: "question", Success: true,
		})
		if err != nil {
			t.Fatalf("append event: %v", err)
		}
	}

	rows, err := s.DB().Query(`SELECT sequence FROM llm_events ORDER BY sequence`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()

	var seqs []int64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			t.Fatalf("scan: %v", err)
		}
		seqs = append(seqs, v)
	}
	if len(seqs) != 3 || seqs[0] != 1 || seqs[2] != 3 {
		t.Errorf("sequences = %v, want 1..3", seqs)
	}
}

func ids(attempts []content.Attempt) []string {
	out := make([]string, len(attempts))
	for i, a := range attempts {
		out[i] = a.ID
	}
	return out
}
