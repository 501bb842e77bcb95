package specialty

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/curriculum"
)

const inequalityPrompt = "Which inequality does this number line represent?"

var inequalityOps = []string{">", "<", ">=", "<="}

type inequalityGenerator struct {
	rng *rand.Rand
}

func (g *inequalityGenerator) Name() string { return "local-inequality" }

func (g *inequalityGenerator) Generate(c curriculum.Concept, recent []string) content.Question {
	recentSet := make(map[string]bool, len(recent))
	for _, r := range recent {
		recentSet[r] = true
	}

	type ineq struct {
		op       string
		boundary int
	}
	var candidates []ineq
	for _, op := range inequalityOps {
		for v := -5; v <= 5; v++ {
			candidates = append(candidates, ineq{op, v})
		}
	}
	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	picked := candidates[0]
	for _, cand := range candidates {
		key := fmt.Sprintf("%s [x %s %d]", inequalityPrompt, cand.op, cand.boundary)
		if !recentSet[key] {
			picked = cand
			break
		}
	}

	correct := fmt.Sprintf("x %s %d", picked.op, picked.boundary)

	// The other three operators on the same boundary.
	var distractors []string
	for _, op := range inequalityOps {
		if op != picked.op {
			distractors = append(distractors, fmt.Sprintf("x %s %d", op, picked.boundary))
		}
	}

	options, answer := assembleOptions(g.rng, correct, distractors)

	return content.Question{
		ConceptID:   c.ID,
		Text:        fmt.Sprintf("%s [%s]", inequalityPrompt, correct),
		Type:        content.TypeMultipleChoice,
		Options:     options,
		Answer:      answer,
		Explanation: inequalityHint(picked.op),
		Status:      content.StatusApproved,
		Artifact:    numberLineSVG(picked.op, picked.boundary),
	}
}

func inequalityHint(op string) string {
	switch op {
	case ">":
		return "An open circle with shading to the right means x is greater than the boundary."
	case "<":
		return "An open circle with shading to the left means x is less than the boundary."
	case ">=":
		return "A filled circle with shading to the right means x is greater than or equal to the boundary."
	default:
		return "A filled circle with shading to the left means x is less than or equal to the boundary."
	}
}

// numberLineSVG renders a number line from -7 to 7 with a boundary
// circle (open for strict, filled for inclusive) and a shaded ray.
func numberLineSVG(op string, boundary int) string {
	const width, height = 400, 80
	const lo, hi = -7, 7
	axisY := 40.0
	scale := float64(width-40) / float64(hi-lo)
	xFor := func(v int) float64 { return 20 + float64(v-lo)*scale }

	rightward := op == ">" || op == ">="
	filled := op == ">=" || op == "<="

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`+"\n", width, height, width, height)
	fmt.Fprintf(&b, `<line x1="10" y1="%g" x2="%d" y2="%g" stroke="#2C3E50" stroke-width="2"/>`+"\n", axisY, width-10, axisY)

	// Ticks and labels.
	for v := lo; v <= hi; v++ {
		x := xFor(v)
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%g" x2="%.1f" y2="%g" stroke="#2C3E50" stroke-width="1"/>`+"\n", x, axisY-5, x, axisY+5)
		fmt.Fprintf(&b, `<text x="%.1f" y="%g" text-anchor="middle" font-size="11" font-family="sans-serif" fill="#2C3E50">%d</text>`+"\n", x, axisY+20, v)
	}

	// Shaded ray from the boundary.
	bx := xFor(boundary)
	endX := 10.0
	if rightward {
		endX = float64(width - 10)
	}
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%g" x2="%.1f" y2="%g" stroke="#E74C3C" stroke-width="4" stroke-linecap="round"/>`+"\n", bx, axisY, endX, axisY)

	fill := "white"
	if filled {
		fill = "#E74C3C"
	}
	fmt.Fprintf(&b, `<circle cx="%.1f" cy="%g" r="6" fill="%s" stroke="#E74C3C" stroke-width="2.5"/>`+"\n", bx, axisY, fill)

	b.WriteString(`</svg>`)
	return b.String()
}
