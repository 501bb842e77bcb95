package curriculum

import (
	"fmt"
	"slices"
	"sort"
)

// Graph holds a set of concepts with precomputed indices.
type Graph struct {
	concepts   []Concept
	byID       map[string]*Concept
	dependents map[string][]string
}

// NewGraph constructs a Graph from a slice of concepts, ordered by
// OrderIndex (ties broken by ID for determinism).
func NewGraph(concepts []Concept) *Graph {
	ordered := make([]Concept, len(concepts))
	copy(ordered, concepts)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].OrderIndex != ordered[j].OrderIndex {
			return ordered[i].OrderIndex < ordered[j].OrderIndex
		}
		return ordered[i].ID < ordered[j].ID
	})

	g := &Graph{
		concepts:   ordered,
		byID:       make(map[string]*Concept, len(ordered)),
		dependents: make(map[string][]string),
	}
	for i := range g.concepts {
		g.byID[g.concepts[i].ID] = &g.concepts[i]
	}
	for i := range g.concepts {
		for _, pid := range g.concepts[i].Prerequisites {
			g.dependents[pid] = append(g.dependents[pid], g.concepts[i].ID)
		}
	}
	return g
}

// Get returns a concept by ID.
func (g *Graph) Get(id string) (Concept, error) {
	c, ok := g.byID[id]
	if !ok {
		return Concept{}, fmt.Errorf("concept not found: %q", id)
	}
	return *c, nil
}

// All returns every concept in curriculum order.
func (g *Graph) All() []Concept {
	return slices.Clone(g.concepts)
}

// Len returns the number of concepts.
func (g *Graph) Len() int {
	return len(g.concepts)
}

// Prerequisites returns the direct prerequisite concepts of id. Unknown
// prerequisite references are skipped.
func (g *Graph) Prerequisites(id string) []Concept {
	c, ok := g.byID[id]
	if !ok {
		return nil
	}
	result := make([]Concept, 0, len(c.Prerequisites))
	for _, pid := range c.Prerequisites {
		if p, ok := g.byID[pid]; ok {
			result = append(result, *p)
		}
	}
	return result
}

// Dependents returns the concepts that list id as a prerequisite.
func (g *Graph) Dependents(id string) []Concept {
	depIDs := g.dependents[id]
	result := make([]Concept, 0, len(depIDs))
	for _, did := range depIDs {
		if d, ok := g.byID[did]; ok {
			result = append(result, *d)
		}
	}
	return result
}

// Validate checks the graph for structural issues: duplicate IDs, empty
// names, prerequisite references to unknown concepts, and self-loops.
// Cycles across multiple concepts are not detected (authoring contract).
func Validate(concepts []Concept) error {
	seen := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		if c.ID == "" {
			return fmt.Errorf("concept with empty ID (name %q)", c.Name)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate concept ID: %q", c.ID)
		}
		seen[c.ID] = true
		if c.Name == "" {
			return fmt.Errorf("concept %q has no name", c.ID)
		}
	}
	for _, c := range concepts {
		for _, pid := range c.Prerequisites {
			if pid == c.ID {
				return fmt.Errorf("concept %q lists itself as a prerequisite", c.ID)
			}
			if !seen[pid] {
				return fmt.Errorf("concept %q references unknown prerequisite %q", c.ID, pid)
			}
		}
	}
	return nil
}
