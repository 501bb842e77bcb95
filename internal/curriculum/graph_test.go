package curriculum

import "testing"

func testConcepts() []Concept {
	return []Concept{
		{ID: "a", Name: "A", OrderIndex: 1},
		{ID: "b", Name: "B", OrderIndex: 2, Prerequisites: []string{"a"}},
		{ID: "c", Name: "C", OrderIndex: 3, Prerequisites: []string{"a", "b"}},
	}
}

func TestGraph_Lookup(t *testing.T) {
	g := NewGraph(testConcepts())

	c, err := g.Get("b")
	if err != nil {
		t.Fatalf("Get(b): %v", err)
	}
	if c.Name != "B" {
		t.Errorf("Get(b).Name = %q", c.Name)
	}

	if _, err := g.Get("missing"); err == nil {
		t.Error("expected error for unknown concept")
	}
}

func TestGraph_Order(t *testing.T) {
	// Constructed out of order; All() must return curriculum order.
	g := NewGraph([]Concept{
		{ID: "z", Name: "Z", OrderIndex: 3},
		{ID: "x", Name: "X", OrderIndex: 1},
		{ID: "y", Name: "Y", OrderIndex: 2},
	})
	all := g.All()
	want := []string{"x", "y", "z"}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("All()[%d].ID = %q, want %q", i, all[i].ID, id)
		}
	}
}

func TestGraph_PrerequisitesAndDependents(t *testing.T) {
	g := NewGraph(testConcepts())

	prereqs := g.Prerequisites("c")
	if len(prereqs) != 2 {
		t.Fatalf("Prerequisites(c) = %d, want 2", len(prereqs))
	}

	deps := g.Dependents("a")
	if len(deps) != 2 {
		t.Errorf("Dependents(a) = %d, want 2", len(deps))
	}
	if len(g.Dependents("c")) != 0 {
		t.Error("Dependents(c) should be empty")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		concepts []Concept
		wantErr  bool
	}{
		{"valid", testConcepts(), false},
		{"empty id", []Concept{{ID: "", Name: "X"}}, true},
		{"duplicate id", []Concept{{ID: "a", Name: "A"}, {ID: "a", Name: "A2"}}, true},
		{"missing name", []Concept{{ID: "a"}}, true},
		{"unknown prereq", []Concept{{ID: "a", Name: "A", Prerequisites: []string{"nope"}}}, true},
		{"self prereq", []Concept{{ID: "a", Name: "A", Prerequisites: []string{"a"}}}, true},
	}
	for _, tt := range tests {
		err := Validate(tt.concepts)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestDefaultCurriculumIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("default curriculum invalid: %v", err)
	}
}
