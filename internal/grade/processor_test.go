package grade

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/elo"
	"github.com/abhisek/mora/internal/store"
)

func testProcessor(t *testing.T) *Processor {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewProcessor(NewGrader(nil, discardLog()), st, discardLog())
}

func testQuestion() content.Question {
	return content.Question{
		ID:         "q1",
		ConceptID:  "addition",
		Text:       "What is 5 + 3?",
		Type:       content.TypeShortAnswer,
		Answer:     "8",
		Difficulty: 800,
	}
}

func TestProcessCorrectAnswerRaisesRating(t *testing.T) {
	p := testProcessor(t)
	ctx := context.Background()

	out, err := p.Process(ctx, Submission{
		LearnerID:    "l1",
		SessionID:    "s1",
		Question:     testQuestion(),
		Answer:       "8",
		ResponseTime: 3 * time.Second,
	})
	require.NoError(t, err)

	assert.True(t, out.Correct)
	assert.Greater(t, out.Rating, elo.DefaultParams().InitialRating)
	assert.Greater(t, out.Mastery, 0.0)
	assert.NotEmpty(t, out.AttemptID)
}

func TestProcessWrongAnswerLowersRating(t *testing.T) {
	p := testProcessor(t)

	out, err := p.Process(context.Background(), Submission{
		LearnerID: "l1", SessionID: "s1", Question: testQuestion(), Answer: "7",
	})
	require.NoError(t, err)

	assert.False(t, out.Correct)
	assert.Less(t, out.Rating, elo.DefaultParams().InitialRating)
}

func TestProcessPersistsAttemptAndState(t *testing.T) {
	p := testProcessor(t)
	ctx := context.Background()

	out, err := p.Process(ctx, Submission{
		LearnerID: "l1", SessionID: "s1", Question: testQuestion(), Answer: "8",
	})
	require.NoError(t, err)

	attempts, err := p.store.Attempts().Recent(ctx, "l1", 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, out.AttemptID, attempts[0].ID)
	assert.Equal(t, elo.DefaultParams().InitialRating, attempts[0].RatingBefore)
	assert.Equal(t, out.Rating, attempts[0].RatingAfter)

	state, found, err := p.store.Skills().Get(ctx, "l1", "addition")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, state.TotalAttempts)
	assert.Equal(t, 1, state.CorrectAttempts)
	assert.Equal(t, out.Rating, state.Rating)

	history, err := p.store.History().ForConcept(ctx, "l1", "addition")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, out.AttemptID, history[0].AttemptID)
	assert.Equal(t, out.Mastery, history[0].Mastery)
}

func TestProcessUncertaintyDecays(t *testing.T) {
	p := testProcessor(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := p.Process(ctx, Submission{
			LearnerID: "l1", SessionID: "s1", Question: testQuestion(), Answer: "8",
		})
		require.NoError(t, err)
	}

	state, _, err := p.store.Skills().Get(ctx, "l1", "addition")
	require.NoError(t, err)
	initial := elo.DefaultParams().InitialUncertainty
	assert.InDelta(t, initial*0.95*0.95*0.95, state.Uncertainty, 1e-6)
}

func TestProcessMasteryBlendsRecentAccuracy(t *testing.T) {
	p := testProcessor(t)
	ctx := context.Background()

	var out Outcome
	var err error
	for i := 0; i < 5; i++ {
		out, err = p.Process(ctx, Submission{
			LearnerID: "l1", SessionID: "s1", Question: testQuestion(), Answer: "8",
		})
		require.NoError(t, err)
	}

	// Five straight correct answers: recent accuracy is 1.0, so mastery
	// carries at least the full recency weight.
	assert.GreaterOrEqual(t, out.Mastery, elo.DefaultParams().WeightRecent)
}
