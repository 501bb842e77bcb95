// Package curriculum models the prerequisite-linked concept graph a
// learner progresses through.
package curriculum

// Concept is an atomic curriculum topic. Concepts are authored once and
// treated as immutable by the engine (prerequisite edits happen at
// authoring time, not at runtime).
type Concept struct {
	// ID uniquely identifies the concept.
	ID string

	// Name is the short display name, e.g. "Subtraction within 20".
	Name string

	// Description guides question generation and specialty routing.
	Description string

	// OrderIndex is the authored position within the curriculum.
	OrderIndex int

	// Prerequisites lists the IDs of concepts recommended before this
	// one. The graph is assumed acyclic; the engine does not validate
	// acyclicity.
	Prerequisites []string

	// MasteryThreshold is the mastery level at which this concept counts
	// as mastered. Zero means "use the model default" (0.75).
	MasteryThreshold float64
}

// Threshold returns the effective mastery threshold for the concept.
func (c Concept) Threshold() float64 {
	if c.MasteryThreshold > 0 {
		return c.MasteryThreshold
	}
	return 0.75
}
