// Package selector decides which concept a learner practices next and
// what parameters the next question should target. Every call is a
// pure function of the caller-supplied history and skill states.
package selector

import (
	"math"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/curriculum"
	"github.com/abhisek/mora/internal/elo"
)

// Params collects the selector's tunable constants.
type Params struct {
	// Window is the number of recent attempts analyzed.
	Window int

	// RecencyNotSeen is the recency index assigned to concepts absent
	// from the window.
	RecencyNotSeen int

	// RecencyDivisor and RecencyCap shape the recency bonus
	// min(recency/divisor, cap).
	RecencyDivisor float64
	RecencyCap     float64

	// BaseBonus is the constant part of the recency multiplier.
	BaseBonus float64

	// VirginBonus is added for concepts never attempted.
	VirginBonus float64

	// StruggleAccuracy is the windowed-accuracy cutoff below which an
	// incorrect answer routes back to a prerequisite.
	StruggleAccuracy float64

	// PrereqMinAttempts is the soft gate: a prerequisite counts as
	// satisfied when mastered or attempted at least this many times.
	PrereqMinAttempts int

	// WarmStartMinAttempts is the attempt floor for a concept's rating
	// to contribute to warm starting a fresh concept.
	WarmStartMinAttempts int

	// ShortAnswerMastery is the mastery level at which presentation
	// switches from multiple choice to short answer.
	ShortAnswerMastery float64
}

func DefaultParams() Params {
	return Params{
		Window:               30,
		RecencyNotSeen:       99,
		RecencyDivisor:       3,
		RecencyCap:           2.0,
		BaseBonus:            0.5,
		VirginBonus:          0.5,
		StruggleAccuracy:     0.5,
		PrereqMinAttempts:    2,
		WarmStartMinAttempts: 3,
		ShortAnswerMastery:   0.7,
	}
}

// ConceptStats summarizes one concept's slice of the attempt window.
type ConceptStats struct {
	Attempts int
	Correct  int

	// Results is ordered oldest to newest.
	Results []bool

	// Recency is 0 for the most recently seen concept, RecencyNotSeen
	// for concepts absent from the window.
	Recency int
}

// Accuracy over the windowed results. Zero attempts yields 0.
func (s ConceptStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// Analysis is the per-selection view of recent history.
type Analysis struct {
	Concepts map[string]ConceptStats

	// Global is every windowed result, oldest to newest, across all
	// concepts.
	Global []bool
}

// Analyze builds per-concept statistics from the attempt window.
// Attempts must be ordered newest first, as the storage layer returns
// them.
func Analyze(attempts []content.Attempt, p Params) Analysis {
	if len(attempts) > p.Window {
		attempts = attempts[:p.Window]
	}

	stats := make(map[string]ConceptStats)
	global := make([]bool, len(attempts))

	for i, a := range attempts {
		// Index from the end so results read oldest to newest.
		global[len(attempts)-1-i] = a.IsCorrect

		s, seen := stats[a.ConceptID]
		if !seen {
			s.Recency = i
		}
		s.Attempts++
		if a.IsCorrect {
			s.Correct++
		}
		s.Results = append([]bool{a.IsCorrect}, s.Results...)
		stats[a.ConceptID] = s
	}

	return Analysis{Concepts: stats, Global: global}
}

func (a Analysis) recency(conceptID string, p Params) int {
	s, ok := a.Concepts[conceptID]
	if !ok {
		return p.RecencyNotSeen
	}
	return s.Recency
}

// Input carries everything one selection needs.
type Input struct {
	Graph  *curriculum.Graph
	States map[string]content.SkillState

	Analysis Analysis

	// CurrentConceptID is the concept of the question just answered.
	// Empty at session start.
	CurrentConceptID string

	// LastCorrect is whether the previous answer was correct.
	LastCorrect bool

	// Denylist names concepts that cannot currently be presented.
	Denylist map[string]bool
}

func (in Input) mastery(conceptID string) float64 {
	return in.States[conceptID].Mastery
}

func (in Input) totalAttempts(conceptID string) int {
	return in.States[conceptID].TotalAttempts
}

func (in Input) isMastered(c curriculum.Concept) bool {
	return elo.IsMastered(in.mastery(c.ID), c.Threshold())
}

// NextConcept picks the concept to practice next. It never returns
// the current concept unless that is the sole eligible candidate, and
// never fails: with nothing eligible it falls back to the
// least-mastered concept.
func NextConcept(in Input, p Params) curriculum.Concept {
	eligible := eligibleConcepts(in, p)

	if c, ok := strugglingPrerequisite(in, p); ok {
		return c
	}

	candidates := eligible
	if len(eligible) > 1 {
		candidates = make([]curriculum.Concept, 0, len(eligible)-1)
		for _, c := range eligible {
			if c.ID != in.CurrentConceptID {
				candidates = append(candidates, c)
			}
		}
	}

	if len(candidates) > 0 {
		best := candidates[0]
		bestScore := math.Inf(-1)
		for _, c := range candidates {
			if s := in.score(c, p); s > bestScore {
				best, bestScore = c, s
			}
		}
		return best
	}

	return leastMastered(in)
}

func eligibleConcepts(in Input, p Params) []curriculum.Concept {
	var out []curriculum.Concept
	for _, c := range in.Graph.All() {
		if in.Denylist[c.ID] || in.isMastered(c) {
			continue
		}
		if !prerequisitesSatisfied(in, c, p) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func prerequisitesSatisfied(in Input, c curriculum.Concept, p Params) bool {
	for _, pre := range in.Graph.Prerequisites(c.ID) {
		if in.isMastered(pre) {
			continue
		}
		if in.totalAttempts(pre.ID) >= p.PrereqMinAttempts {
			continue
		}
		return false
	}
	return true
}

// strugglingPrerequisite routes a struggling learner back to an
// unmastered prerequisite of the current concept: previous answer
// wrong and windowed accuracy on the concept below the cutoff.
func strugglingPrerequisite(in Input, p Params) (curriculum.Concept, bool) {
	if in.LastCorrect || in.CurrentConceptID == "" {
		return curriculum.Concept{}, false
	}
	stats, ok := in.Analysis.Concepts[in.CurrentConceptID]
	if !ok || stats.Accuracy() >= p.StruggleAccuracy {
		return curriculum.Concept{}, false
	}
	for _, pre := range in.Graph.Prerequisites(in.CurrentConceptID) {
		if in.Denylist[pre.ID] || in.isMastered(pre) {
			continue
		}
		return pre, true
	}
	return curriculum.Concept{}, false
}

func (in Input) score(c curriculum.Concept, p Params) float64 {
	recency := float64(in.Analysis.recency(c.ID, p))
	bonus := recency / p.RecencyDivisor
	if bonus > p.RecencyCap {
		bonus = p.RecencyCap
	}
	score := (1 - in.mastery(c.ID)) * (p.BaseBonus + bonus)
	if in.totalAttempts(c.ID) == 0 {
		score += p.VirginBonus
	}
	return score
}

func leastMastered(in Input) curriculum.Concept {
	all := in.Graph.All()
	best := all[0]
	bestMastery := math.Inf(1)
	for _, c := range all {
		if c.ID == in.CurrentConceptID && in.Graph.Len() > 1 {
			continue
		}
		if m := in.mastery(c.ID); m < bestMastery {
			best, bestMastery = c, m
		}
	}
	return best
}
