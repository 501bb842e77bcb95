package question

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mora/internal/content"
)

func TestPrecachePutPop(t *testing.T) {
	p := NewPrecache()
	p.Put("l1", "s1", content.Question{ID: "q1", ConceptID: "addition"})

	q, ok := p.Pop("l1", "s1", "addition")
	require.True(t, ok)
	assert.Equal(t, "q1", q.ID)

	// Pop clears the slot.
	_, ok = p.Pop("l1", "s1", "addition")
	assert.False(t, ok)
}

func TestPrecachePopConceptMismatchDiscards(t *testing.T) {
	p := NewPrecache()
	p.Put("l1", "s1", content.Question{ID: "q1", ConceptID: "addition"})

	_, ok := p.Pop("l1", "s1", "subtraction")
	require.False(t, ok)

	// The stale entry is gone, not retried.
	_, ok = p.Pop("l1", "s1", "addition")
	assert.False(t, ok)
}

func TestPrecacheKeysAreDisjoint(t *testing.T) {
	p := NewPrecache()
	p.Put("l1", "s1", content.Question{ID: "q1", ConceptID: "addition"})
	p.Put("l1", "s2", content.Question{ID: "q2", ConceptID: "addition"})

	q, ok := p.Pop("l1", "s2", "addition")
	require.True(t, ok)
	assert.Equal(t, "q2", q.ID)

	q, ok = p.Pop("l1", "s1", "addition")
	require.True(t, ok)
	assert.Equal(t, "q1", q.ID)
}

func TestPrecacheOverwrite(t *testing.T) {
	p := NewPrecache()
	p.Put("l1", "s1", content.Question{ID: "old", ConceptID: "addition"})
	p.Put("l1", "s1", content.Question{ID: "new", ConceptID: "addition"})

	q, ok := p.Pop("l1", "s1", "addition")
	require.True(t, ok)
	assert.Equal(t, "new", q.ID)
}

func TestPrecacheClear(t *testing.T) {
	p := NewPrecache()
	p.Put("l1", "s1", content.Question{ID: "q1", ConceptID: "addition"})
	p.Clear("l1", "s1")

	_, ok := p.Pop("l1", "s1", "addition")
	assert.False(t, ok)
}

func TestPrecacheConcurrentAccess(t *testing.T) {
	p := NewPrecache()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Put("l1", "s1", content.Question{ID: "q", ConceptID: "addition"})
			p.Pop("l1", "s1", "addition")
		}()
	}
	wg.Wait()
}
