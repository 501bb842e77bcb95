package question

import (
	"sync"

	"github.com/abhisek/mora/internal/content"
)

type precacheKey struct {
	learnerID string
	sessionID string
}

// Precache holds at most one pre-generated question per (learner,
// session), computed while the learner is still answering. Pop is
// atomic so a cached question is never served twice.
type Precache struct {
	mu sync.Mutex
	m  map[precacheKey]content.Question
}

// NewPrecache creates an empty cache.
func NewPrecache() *Precache {
	return &Precache{m: make(map[precacheKey]content.Question)}
}

// Put stores the next question for a (learner, session), replacing
// any existing entry.
func (p *Precache) Put(learnerID, sessionID string, q content.Question) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[precacheKey{learnerID, sessionID}] = q
}

// Pop atomically removes and returns the cached question. When
// expectedConceptID is non-empty and the cached entry targets a
// different concept, the stale entry is discarded and ok is false.
func (p *Precache) Pop(learnerID, sessionID, expectedConceptID string) (content.Question, bool) {
	key := precacheKey{learnerID, sessionID}

	p.mu.Lock()
	q, ok := p.m[key]
	if ok {
		delete(p.m, key)
	}
	p.mu.Unlock()

	if !ok {
		return content.Question{}, false
	}
	if expectedConceptID != "" && q.ConceptID != expectedConceptID {
		return content.Question{}, false
	}
	return q, true
}

// Clear drops a session's entry, for session teardown.
func (p *Precache) Clear(learnerID, sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.m, precacheKey{learnerID, sessionID})
}
