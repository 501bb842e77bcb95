package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/abhisek/mora/internal/curriculum"
)

// ConceptRepo persists curriculum concepts.
type ConceptRepo struct {
	db *sql.DB
}

// Seed upserts the given concepts. Existing rows are overwritten so
// curriculum edits take effect on restart.
func (r *ConceptRepo) Seed(ctx context.Context, concepts []curriculum.Concept) error {
	for _, c := range concepts {
		prereqs, err := json.Marshal(c.Prerequisites)
		if err != nil {
			return fmt.Errorf("marshal prerequisites: %w", err)
		}
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO concepts (id, name, description, order_index, prerequisites, mastery_threshold)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				description = excluded.description,
				order_index = excluded.order_index,
				prerequisites = excluded.prerequisites,
				mastery_threshold = excluded.mastery_threshold`,
			c.ID, c.Name, c.Description, c.OrderIndex, string(prereqs), c.MasteryThreshold)
		if err != nil {
			return fmt.Errorf("seed concept %s: %w", c.ID, err)
		}
	}
	return nil
}

// All returns every concept ordered by order_index.
func (r *ConceptRepo) All(ctx context.Context) ([]curriculum.Concept, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, order_index, prerequisites, mastery_threshold
		FROM concepts ORDER BY order_index, id`)
	if err != nil {
		return nil, fmt.Errorf("query concepts: %w", err)
	}
	defer rows.Close()

	var out []curriculum.Concept
	for rows.Next() {
		var c curriculum.Concept
		var prereqs string
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.OrderIndex, &prereqs, &c.MasteryThreshold); err != nil {
			return nil, fmt.Errorf("scan concept: %w", err)
		}
		if err := json.Unmarshal([]byte(prereqs), &c.Prerequisites); err != nil {
			return nil, fmt.Errorf("unmarshal prerequisites for %s: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
